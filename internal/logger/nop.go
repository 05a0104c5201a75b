// Package logger holds the types.Logger implementations fspscan uses when the
// caller supplies none: a discarding logger and a recorder for tests.
package logger

import "github.com/arloliu/fspscan/types"

// NopLogger drops every entry. Builders, registries and the Configurator fall
// back to it when no logger option is given.
type NopLogger struct{}

var _ types.Logger = NopLogger{}

// NewNop returns a NopLogger.
func NewNop() NopLogger {
	return NopLogger{}
}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}
