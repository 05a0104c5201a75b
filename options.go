package fspscan

// Option configures a Configurator with optional dependencies.
type Option func(*configuratorOptions)

type configuratorOptions struct {
	metrics MetricsCollector
	logger  Logger
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - metrics: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for NewConfigurator
//
// Example:
//
//	collector := metrics.NewPrometheus(prometheus.DefaultRegisterer, metrics.DefaultNamespace)
//	cfgr, err := fspscan.NewConfigurator(&cfg, reg, fspscan.WithMetrics(collector))
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *configuratorOptions) {
		o.metrics = metrics
	}
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation
//
// Returns:
//   - Option: Functional option for NewConfigurator
//
// Example:
//
//	log, _ := logging.New("info", logging.FormatJSON, os.Stderr)
//	cfgr, err := fspscan.NewConfigurator(&cfg, reg, fspscan.WithLogger(log))
func WithLogger(logger Logger) Option {
	return func(o *configuratorOptions) {
		o.logger = logger
	}
}
