package metrics

import "github.com/arloliu/fspscan/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. It is the default collector of the builder and
// the Configurator.
type NopMetrics struct{}

var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Example:
//
//	cfgr, err := fspscan.NewConfigurator(&cfg, reg, fspscan.WithMetrics(metrics.NewNop()))
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// RecordBuild discards the build metric.
func (n *NopMetrics) RecordBuild(_ /* mode */ types.FunctionMode, _ /* regions */, _ /* elements */ int, _ /* duration */ float64, _ /* success */ bool) {
	// No-op
}

// RecordPartition discards the partition metric.
func (n *NopMetrics) RecordPartition(_ /* band */ string, _ /* slices */ int) {
	// No-op
}

// RecordRegistryReload discards the registry reload metric.
func (n *NopMetrics) RecordRegistryReload(_ /* source */ string, _ /* dishes */ int, _ /* success */ bool) {
	// No-op
}
