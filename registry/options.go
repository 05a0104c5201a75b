package registry

import (
	"time"

	"github.com/arloliu/fspscan/internal/logger"
	"github.com/arloliu/fspscan/internal/metrics"
	"github.com/arloliu/fspscan/types"
)

const (
	// DefaultDebounce is the delay between a file change and its reload.
	DefaultDebounce = 100 * time.Millisecond

	// DefaultKeyPrefix prefixes every dish key in a KV bucket.
	DefaultKeyPrefix = "dish"
)

// Option configures a file or KV registry.
type Option func(*options)

type options struct {
	logger    types.Logger
	metrics   types.RegistryMetrics
	debounce  time.Duration
	keyPrefix string
}

func applyOptions(opts []Option) options {
	o := options{
		logger:    logger.NewNop(),
		metrics:   metrics.NewNop(),
		debounce:  DefaultDebounce,
		keyPrefix: DefaultKeyPrefix,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithLogger sets the logger for reload and watch events.
func WithLogger(l types.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics sets the collector for reload metrics.
func WithMetrics(m types.RegistryMetrics) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithDebounce sets how long a file registry waits after a change before
// reloading. Non-positive values keep the default.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.debounce = d
		}
	}
}

// WithKeyPrefix sets the key prefix of a KV registry ("dish" gives keys
// like "dish.SKA001").
func WithKeyPrefix(prefix string) Option {
	return func(o *options) {
		if prefix != "" {
			o.keyPrefix = prefix
		}
	}
}
