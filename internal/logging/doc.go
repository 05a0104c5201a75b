// Package logging provides types.Logger implementations backed by log/slog
// and zerolog, and a constructor selecting one from configuration.
package logging
