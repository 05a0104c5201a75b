package logging

import (
	"log/slog"

	"github.com/arloliu/fspscan/types"
)

// SlogLogger adapts a *slog.Logger to types.Logger.
//
// It backs the "text" log format of New and suits embedders that already
// route their process logs through log/slog. Key/value pairs are passed to
// slog unchanged, so slog.Attr values work as well.
type SlogLogger struct {
	logger *slog.Logger
}

var _ types.Logger = (*SlogLogger)(nil)

// NewSlog wraps logger. A nil logger selects slog.Default().
//
// Example:
//
//	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
//	cfgr, err := fspscan.NewConfigurator(&cfg, reg, fspscan.WithLogger(logging.NewSlog(slog.New(h))))
func NewSlog(logger *slog.Logger) *SlogLogger {
	if logger == nil {
		logger = slog.Default()
	}

	return &SlogLogger{logger: logger}
}

func (l *SlogLogger) Debug(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l *SlogLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Info(msg, keysAndValues...)
}

func (l *SlogLogger) Warn(msg string, keysAndValues ...any) {
	l.logger.Warn(msg, keysAndValues...)
}

func (l *SlogLogger) Error(msg string, keysAndValues ...any) {
	l.logger.Error(msg, keysAndValues...)
}
