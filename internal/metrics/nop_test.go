package metrics

import (
	"testing"

	"github.com/arloliu/fspscan/types"
	"github.com/stretchr/testify/require"
)

func TestNewNop(t *testing.T) {
	metrics := NewNop()

	require.NotNil(t, metrics)
	require.IsType(t, &NopMetrics{}, metrics)
}

func TestNopMetrics_ImplementsInterface(_ *testing.T) {
	var _ types.MetricsCollector = NewNop()
}

func TestNopMetrics_Record(t *testing.T) {
	metrics := NewNop()

	require.NotPanics(t, func() {
		metrics.RecordBuild(types.FunctionModeCorr, 2, 8, 0.001, true)
		metrics.RecordBuild("", 0, 0, -1, false)
		metrics.RecordPartition("5a", 27)
		metrics.RecordPartition("", 0)
		metrics.RecordRegistryReload("kv", 197, true)
		metrics.RecordRegistryReload("file", -1, false)
	})
}
