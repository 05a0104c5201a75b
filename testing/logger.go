package testing

import (
	"testing"

	"github.com/arloliu/fspscan/internal/logger"
	"github.com/arloliu/fspscan/types"
)

// NewTestLogger returns a logger that writes to t.Logf.
func NewTestLogger(t testing.TB) types.Logger {
	return logger.NewTest(t)
}
