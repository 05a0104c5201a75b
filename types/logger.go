package types

// Logger defines methods for structured logging.
//
// Compatible with zap.SugaredLogger, log/slog and zerolog adapters.
// Every method takes alternating key-value pairs for structured fields, e.g.
//
//	logger.Info("scan configuration built", "mode", "CORR", "fsps", 4)
type Logger interface {
	// Debug logs a message at DebugLevel.
	// Per-region and per-FSP detail is logged at this level.
	Debug(msg string, keysAndValues ...any)

	// Info logs a message at InfoLevel.
	Info(msg string, keysAndValues ...any)

	// Warn logs a message at WarnLevel.
	// Used for accepted but suspicious requests, such as an FSP configured twice.
	Warn(msg string, keysAndValues ...any)

	// Error logs a message at ErrorLevel.
	Error(msg string, keysAndValues ...any)
}
