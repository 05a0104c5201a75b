package fspscan

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/fspscan/internal/logging"
	"github.com/arloliu/fspscan/types"
)

// CorrelationConfig holds the CORR-only settings of a subarray.
type CorrelationConfig struct {
	// SliceGains maps a coarse frequency slice id to the gain correction
	// applied by every VCC for that slice. Slices without an entry use 1.0.
	SliceGains map[int]float64 `yaml:"sliceGains"`
}

// RegistryConfig selects the dish registry source.
//
// At most one of File and NatsURL may be set. A Configurator is always handed
// an open registry, so both may be empty when the registry is built in code.
type RegistryConfig struct {
	// File is the path of a YAML registry file.
	File string `yaml:"file"`

	// NatsURL is the NATS server URL of a JetStream KV registry.
	NatsURL string `yaml:"natsUrl"`

	// Bucket is the KV bucket name.
	Bucket string `yaml:"bucket"`

	// KeyPrefix prefixes every dish key in the bucket.
	KeyPrefix string `yaml:"keyPrefix"`

	// Watch keeps the registry current while the process runs.
	Watch bool `yaml:"watch"`

	// Debounce is the delay between a registry file change and its reload.
	Debounce time.Duration `yaml:"debounce"`

	// OperationTimeout bounds connecting to NATS and loading the bucket.
	OperationTimeout time.Duration `yaml:"operationTimeout"`
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `yaml:"level"`

	// Format is one of "console", "json", "text".
	Format string `yaml:"format"`
}

// Config is the subarray configuration of a Configurator.
//
// All duration fields accept standard Go duration strings like "100ms", "10s".
type Config struct {
	// FrequencyBand is the receiver band of the subarray ("1", "2", "3", "4", "5a", "5b").
	FrequencyBand string `yaml:"frequencyBand"`

	// WidebandShift is the wideband frequency shift applied by every VCC (Hz).
	WidebandShift int64 `yaml:"widebandShift"`

	// SubarrayDishes lists the dishes assigned to the subarray.
	SubarrayDishes []string `yaml:"subarrayDishes"`

	// Correlation holds CORR-only settings.
	Correlation CorrelationConfig `yaml:"correlation"`

	// Registry selects the dish registry source.
	Registry RegistryConfig `yaml:"registry"`

	// Log selects logging.
	Log LogConfig `yaml:"log"`
}

// DefaultConfig returns a Config with defaults for every optional field.
//
// FrequencyBand and SubarrayDishes have no default.
//
// Returns:
//   - Config: Configuration with default values
func DefaultConfig() Config {
	return Config{
		Registry: RegistryConfig{
			Bucket:           "fspscan-dishes",
			KeyPrefix:        "dish",
			Debounce:         100 * time.Millisecond,
			OperationTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: logging.FormatConsole,
		},
	}
}

// SetDefaults fills in missing configuration values.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.Registry.Bucket == "" {
		cfg.Registry.Bucket = defaults.Registry.Bucket
	}
	if cfg.Registry.KeyPrefix == "" {
		cfg.Registry.KeyPrefix = defaults.Registry.KeyPrefix
	}
	if cfg.Registry.Debounce == 0 {
		cfg.Registry.Debounce = defaults.Registry.Debounce
	}
	if cfg.Registry.OperationTimeout == 0 {
		cfg.Registry.OperationTimeout = defaults.Registry.OperationTimeout
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = defaults.Log.Format
	}
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{logging.FormatConsole, logging.FormatJSON, logging.FormatText}
)

// Validate checks configuration constraints.
//
// Hard Validation Rules:
//   - FrequencyBand names a known band
//   - SubarrayDishes is non-empty, without empty or duplicate ids
//   - every SliceGains key is a slice of the band and every gain is positive
//   - Registry.File and Registry.NatsURL are not both set
//   - Registry durations are non-negative
//   - Log.Level and Log.Format are known (empty is allowed before SetDefaults)
//
// Returns:
//   - error: wraps ErrInvalidConfig, nil if valid
func (cfg *Config) Validate() error {
	band, ok := types.LookupBand(cfg.FrequencyBand)
	if !ok {
		return configErrorf("frequencyBand %q is not one of %v", cfg.FrequencyBand, types.BandNames())
	}

	if len(cfg.SubarrayDishes) == 0 {
		return configErrorf("subarrayDishes must not be empty")
	}
	seen := make(map[string]struct{}, len(cfg.SubarrayDishes))
	for _, id := range cfg.SubarrayDishes {
		if id == "" {
			return configErrorf("subarrayDishes contains an empty dish id")
		}
		if _, dup := seen[id]; dup {
			return configErrorf("subarrayDishes lists %q twice", id)
		}
		seen[id] = struct{}{}
	}

	for slice, gain := range cfg.Correlation.SliceGains {
		if slice < 0 || slice >= band.NumSlices {
			return configErrorf("correlation.sliceGains: slice %d is outside band %s (0..%d)",
				slice, band.Name, band.NumSlices-1)
		}
		if gain <= 0 {
			return configErrorf("correlation.sliceGains: slice %d has non-positive gain %v", slice, gain)
		}
	}

	if cfg.Registry.File != "" && cfg.Registry.NatsURL != "" {
		return configErrorf("registry.file and registry.natsUrl are mutually exclusive")
	}
	if cfg.Registry.Debounce < 0 || cfg.Registry.OperationTimeout < 0 {
		return configErrorf("registry durations must not be negative")
	}

	if cfg.Log.Level != "" && !slices.Contains(logLevels, strings.ToLower(cfg.Log.Level)) {
		return configErrorf("log.level %q is not one of %v", cfg.Log.Level, logLevels)
	}
	if cfg.Log.Format != "" && !slices.Contains(logFormats, strings.ToLower(cfg.Log.Format)) {
		return configErrorf("log.format %q is not one of %v", cfg.Log.Format, logFormats)
	}

	return nil
}

// ValidateWithWarnings logs warnings for accepted but unusual values.
//
// This is called after Validate() in NewConfigurator() to provide operator guidance.
//
// Parameters:
//   - logger: Logger instance for warning output
func (cfg *Config) ValidateWithWarnings(logger Logger) {
	if cfg.WidebandShift > types.HalfFSBandwidth || cfg.WidebandShift < -types.HalfFSBandwidth {
		logger.Warn(
			"widebandShift exceeds half a frequency slice",
			"widebandShift", cfg.WidebandShift,
			"halfSliceBandwidth", types.HalfFSBandwidth,
		)
	}

	for slice, gain := range cfg.Correlation.SliceGains {
		if gain < 0.5 || gain > 2 {
			logger.Warn(
				"slice gain correction is far from unity",
				"slice", slice,
				"gain", gain,
				"recommended", "0.5 to 2.0",
			)
		}
	}

	if cfg.Registry.Watch && cfg.Registry.File == "" && cfg.Registry.NatsURL == "" {
		logger.Warn("registry.watch is set but no registry source is configured")
	}
}

// LoadConfig reads a YAML configuration file, applies defaults and validates it.
//
// Unknown fields are rejected.
//
// Parameters:
//   - path: Path of the YAML file
//
// Returns:
//   - *Config: The validated configuration
//   - error: If the file cannot be read, decoded or validated
//
// Example:
//
//	cfg, err := fspscan.LoadConfig("subarray.yaml")
//	if err != nil {
//	    return err
//	}
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig decodes YAML configuration, applies defaults and validates it.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	SetDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
