package fspscan

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/arloliu/fspscan/builder"
	"github.com/arloliu/fspscan/internal/logger"
	"github.com/arloliu/fspscan/internal/metrics"
	"github.com/arloliu/fspscan/types"
)

// fingerprinter is implemented by registries that can identify their contents.
type fingerprinter interface {
	Fingerprint() uint64
}

// Configurator builds FSP scan configurations for one subarray.
//
// It wraps a CORR and a PST-BF builder with logging and metrics. A
// Configurator is immutable and safe for concurrent use; the dish registry is
// read through one snapshot per build.
type Configurator struct {
	cfg      Config
	registry DishRegistry
	logger   Logger
	metrics  MetricsCollector
	corr     *builder.Builder
	pst      *builder.Builder
}

// NewConfigurator creates a Configurator for the subarray described by cfg.
//
// The configuration is copied, defaulted and validated. Every subarray dish
// must be resolvable in the registry.
//
// Parameters:
//   - cfg: Subarray configuration (not modified)
//   - registry: Dish registry; file and KV registries stay live
//   - opts: WithLogger, WithMetrics
//
// Returns:
//   - *Configurator: Ready-to-use configurator
//   - error: wraps ErrInvalidConfig, ErrRegistryRequired or ErrInvalidArgument
//
// Example:
//
//	reg, _ := registry.OpenFile("dishes.yaml")
//	cfgr, err := fspscan.NewConfigurator(&cfg, reg, fspscan.WithLogger(log))
//	elements, err := cfgr.BuildCorrelation(fspscan.CorrConfiguration{ProcessingRegions: regions})
func NewConfigurator(cfg *Config, registry DishRegistry, opts ...Option) (*Configurator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: config is required", ErrInvalidConfig)
	}
	if registry == nil {
		return nil, ErrRegistryRequired
	}

	o := configuratorOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.NewNop()
	}
	if o.metrics == nil {
		o.metrics = metrics.NewNop()
	}

	c := &Configurator{
		cfg:      cloneConfig(*cfg),
		registry: registry,
		logger:   o.logger,
		metrics:  o.metrics,
	}
	SetDefaults(&c.cfg)
	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}
	c.cfg.ValidateWithWarnings(c.logger)

	params := builder.Params{
		Band:           c.cfg.FrequencyBand,
		WidebandShift:  c.cfg.WidebandShift,
		SubarrayDishes: c.cfg.SubarrayDishes,
		Registry:       registry,
		SliceGains:     c.cfg.Correlation.SliceGains,
		Logger:         c.logger,
		Metrics:        c.metrics,
	}

	var err error
	if c.corr, err = builder.NewCorrelation(params); err != nil {
		return nil, err
	}
	if c.pst, err = builder.NewPst(params); err != nil {
		return nil, err
	}

	c.logger.Info("configurator created",
		"band", c.cfg.FrequencyBand,
		"dishes", len(c.cfg.SubarrayDishes),
		"wideband_shift", c.cfg.WidebandShift,
	)

	return c, nil
}

// Config returns a copy of the effective configuration.
func (c *Configurator) Config() Config {
	return cloneConfig(c.cfg)
}

// Build builds the FSP records of a scan's function configuration.
//
// Parameters:
//   - fc: CorrConfiguration or PstConfiguration (value or pointer)
//
// Returns:
//   - []ElementConfig: One record per FSP per processing region
//   - error: wraps ErrInvalidArgument; no partial result is returned
func (c *Configurator) Build(fc FunctionConfiguration) ([]ElementConfig, error) {
	if fc == nil {
		return nil, fmt.Errorf("%w: function configuration is required", ErrInvalidArgument)
	}

	var b *builder.Builder
	switch fc.FunctionMode() {
	case FunctionModeCorr:
		b = c.corr
	case FunctionModePst:
		b = c.pst
	default:
		return nil, fmt.Errorf("%w: unsupported function mode %q", ErrInvalidArgument, fc.FunctionMode())
	}

	start := time.Now()
	elements, err := b.Build(fc)
	duration := time.Since(start).Seconds()

	c.metrics.RecordBuild(fc.FunctionMode(), fc.RegionCount(), len(elements), duration, err == nil)
	if err != nil {
		c.logger.Error("scan configuration rejected",
			"mode", fc.FunctionMode().String(),
			"regions", fc.RegionCount(),
			"error", err,
		)

		return nil, err
	}

	c.warnDuplicateFsps(fc.FunctionMode(), elements)
	c.logger.Info("scan configuration built",
		"mode", fc.FunctionMode().String(),
		"band", c.cfg.FrequencyBand,
		"regions", fc.RegionCount(),
		"fsps", len(elements),
		"registry_fingerprint", c.registryFingerprint(),
		"duration_ms", duration*1000,
	)

	return elements, nil
}

// BuildCorrelation builds the CORR records of a scan.
func (c *Configurator) BuildCorrelation(fc CorrConfiguration) ([]*CorrConfig, error) {
	elements, err := c.Build(fc)
	if err != nil {
		return nil, err
	}

	return typed[*CorrConfig](elements), nil
}

// BuildPst builds the PST-BF records of a scan.
func (c *Configurator) BuildPst(fc PstConfiguration) ([]*PstConfig, error) {
	elements, err := c.Build(fc)
	if err != nil {
		return nil, err
	}

	return typed[*PstConfig](elements), nil
}

func typed[T types.ElementConfig](elements []ElementConfig) []T {
	out := make([]T, 0, len(elements))
	for _, e := range elements {
		if v, ok := e.(T); ok {
			out = append(out, v)
		}
	}

	return out
}

// warnDuplicateFsps logs FSPs that more than one processing region configures.
func (c *Configurator) warnDuplicateFsps(mode FunctionMode, elements []ElementConfig) {
	counts := make(map[int]int, len(elements))
	for _, e := range elements {
		counts[e.Common().FspID]++
	}

	var dups []int
	for id, n := range counts {
		if n > 1 {
			dups = append(dups, id)
		}
	}
	if len(dups) == 0 {
		return
	}
	slices.Sort(dups)

	c.logger.Warn("FSPs configured by more than one processing region",
		"mode", mode.String(),
		"fsp_ids", dups,
	)
}

func (c *Configurator) registryFingerprint() string {
	f, ok := c.registry.(fingerprinter)
	if !ok {
		return ""
	}

	return fmt.Sprintf("%016x", f.Fingerprint())
}

func cloneConfig(cfg Config) Config {
	cfg.SubarrayDishes = slices.Clone(cfg.SubarrayDishes)
	cfg.Correlation.SliceGains = maps.Clone(cfg.Correlation.SliceGains)

	return cfg
}
