package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arloliu/fspscan/types"
)

// Supported log formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
	FormatText    = "text"
)

// New creates a logger from a level and format name.
//
// "console" and "json" are served by zerolog, "text" by log/slog's text handler.
//
// Parameters:
//   - level: "debug", "info", "warn" or "error" (empty means "info")
//   - format: FormatConsole, FormatJSON or FormatText (empty means console)
//   - w: Destination (os.Stderr if nil)
//
// Returns:
//   - types.Logger: The configured logger
//   - error: If level or format is unknown
func New(level, format string, w io.Writer) (types.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	if level == "" {
		level = "info"
	}

	zl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || zl < zerolog.DebugLevel || zl > zerolog.ErrorLevel {
		return nil, fmt.Errorf("unknown log level %q", level)
	}

	switch strings.ToLower(format) {
	case "", FormatConsole:
		return NewZerologConsole(w, zl), nil
	case FormatJSON:
		return NewZerolog(zerolog.New(w).Level(zl).With().Timestamp().Logger()), nil
	case FormatText:
		handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slogLevel(zl)})
		return NewSlog(slog.New(handler)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

func slogLevel(l zerolog.Level) slog.Level {
	switch l {
	case zerolog.DebugLevel:
		return slog.LevelDebug
	case zerolog.WarnLevel:
		return slog.LevelWarn
	case zerolog.ErrorLevel:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
