package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arloliu/fspscan/types"
)

// DefaultNamespace is the metric namespace used when none is given.
const DefaultNamespace = "fspscan"

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Collectors are created and registered on first use.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	builds          *prometheus.CounterVec
	buildDuration   *prometheus.HistogramVec
	buildElements   *prometheus.HistogramVec
	buildRegions    *prometheus.HistogramVec
	partitionSlices *prometheus.HistogramVec
	registryReloads *prometheus.CounterVec
	registryDishes  *prometheus.GaugeVec
}

var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "fspscan" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.builds = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "build",
			Name:      "total",
			Help:      "Total scan configuration builds by mode and result (success,failure).",
		}, []string{"mode", "result"})

		p.buildDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "build",
			Name:      "duration_seconds",
			Help:      "Duration of scan configuration builds in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12), // 100us .. ~200ms
		}, []string{"mode"})

		p.buildElements = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "build",
			Name:      "elements",
			Help:      "FSP configuration records produced per successful build.",
			Buckets:   []float64{1, 2, 4, 8, 16, 27, 54, 108},
		}, []string{"mode"})

		p.buildRegions = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "build",
			Name:      "processing_regions",
			Help:      "Processing regions per build request.",
			Buckets:   []float64{1, 2, 4, 8, 16},
		}, []string{"mode"})

		p.partitionSlices = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "partition",
			Name:      "slices",
			Help:      "Coarse frequency slices spanned per processing region.",
			Buckets:   []float64{1, 2, 4, 8, 10, 16, 27},
		}, []string{"band"})

		p.registryReloads = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "registry",
			Name:      "reloads_total",
			Help:      "Dish registry reloads by source (file,kv) and result (success,failure).",
		}, []string{"source", "result"})

		p.registryDishes = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "registry",
			Name:      "dishes",
			Help:      "Dishes known to the registry after the last successful reload.",
		}, []string{"source"})

		p.reg.MustRegister(p.builds)
		p.reg.MustRegister(p.buildDuration)
		p.reg.MustRegister(p.buildElements)
		p.reg.MustRegister(p.buildRegions)
		p.reg.MustRegister(p.partitionSlices)
		p.reg.MustRegister(p.registryReloads)
		p.reg.MustRegister(p.registryDishes)
	})
}

// RecordBuild records one build.
func (p *PrometheusCollector) RecordBuild(mode types.FunctionMode, regions, elements int, duration float64, success bool) {
	p.ensureRegistered()
	m := mode.String()
	p.builds.WithLabelValues(m, result(success)).Inc()
	p.buildDuration.WithLabelValues(m).Observe(duration)
	p.buildRegions.WithLabelValues(m).Observe(float64(regions))
	if success {
		p.buildElements.WithLabelValues(m).Observe(float64(elements))
	}
}

// RecordPartition observes the slices one processing region spans.
func (p *PrometheusCollector) RecordPartition(band string, slices int) {
	p.ensureRegistered()
	p.partitionSlices.WithLabelValues(band).Observe(float64(slices))
}

// RecordRegistryReload records a registry reload; the dish gauge only moves on success.
func (p *PrometheusCollector) RecordRegistryReload(source string, dishes int, success bool) {
	p.ensureRegistered()
	p.registryReloads.WithLabelValues(source, result(success)).Inc()
	if success {
		p.registryDishes.WithLabelValues(source).Set(float64(dishes))
	}
}

func result(success bool) string {
	if success {
		return "success"
	}

	return "failure"
}
