package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/arloliu/fspscan/types"
)

// ZerologLogger implements types.Logger using zerolog.
type ZerologLogger struct {
	logger zerolog.Logger
}

var _ types.Logger = (*ZerologLogger)(nil)

// NewZerolog wraps an existing zerolog.Logger.
func NewZerolog(logger zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{logger: logger}
}

// NewZerologConsole creates a zerolog logger with human-readable console output.
//
// Parameters:
//   - w: Destination (os.Stderr if nil)
//   - level: Minimum level to emit
func NewZerologConsole(w io.Writer, level zerolog.Level) *ZerologLogger {
	if w == nil {
		w = os.Stderr
	}
	output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: w != os.Stderr}

	return &ZerologLogger{logger: zerolog.New(output).Level(level).With().Timestamp().Logger()}
}

// Debug logs a debug-level message.
func (z *ZerologLogger) Debug(msg string, keysAndValues ...any) {
	addFields(z.logger.Debug(), keysAndValues).Msg(msg)
}

// Info logs an info-level message.
func (z *ZerologLogger) Info(msg string, keysAndValues ...any) {
	addFields(z.logger.Info(), keysAndValues).Msg(msg)
}

// Warn logs a warning-level message.
func (z *ZerologLogger) Warn(msg string, keysAndValues ...any) {
	addFields(z.logger.Warn(), keysAndValues).Msg(msg)
}

// Error logs an error-level message.
func (z *ZerologLogger) Error(msg string, keysAndValues ...any) {
	addFields(z.logger.Error(), keysAndValues).Msg(msg)
}

// Logger returns the underlying zerolog.Logger.
func (z *ZerologLogger) Logger() zerolog.Logger {
	return z.logger
}

// addFields adds alternating key-value pairs to a zerolog event.
// A trailing key without a value is logged as "<missing>".
func addFields(event *zerolog.Event, keysAndValues []any) *zerolog.Event {
	for i := 0; i < len(keysAndValues); i += 2 {
		key := fmt.Sprint(keysAndValues[i])
		if i+1 >= len(keysAndValues) {
			event = event.Str(key, "<missing>")
			break
		}

		switch v := keysAndValues[i+1].(type) {
		case string:
			event = event.Str(key, v)
		case int:
			event = event.Int(key, v)
		case int64:
			event = event.Int64(key, v)
		case uint32:
			event = event.Uint32(key, v)
		case uint64:
			event = event.Uint64(key, v)
		case float64:
			event = event.Float64(key, v)
		case bool:
			event = event.Bool(key, v)
		case time.Duration:
			event = event.Dur(key, v)
		case error:
			event = event.AnErr(key, v)
		default:
			event = event.Interface(key, v)
		}
	}

	return event
}
