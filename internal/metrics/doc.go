// Package metrics provides types.MetricsCollector implementations: a no-op
// collector and a Prometheus collector.
package metrics
