package fspscan

import "github.com/arloliu/fspscan/types"

// Sentinel errors returned by the Configurator, re-exported from types.
var (
	// ErrInvalidArgument is wrapped by every scan request validation failure.
	ErrInvalidArgument = types.ErrInvalidArgument

	// ErrRegistryRequired is returned when no dish registry is supplied.
	ErrRegistryRequired = types.ErrRegistryRequired

	// ErrInvalidConfig is wrapped by every Config validation failure.
	ErrInvalidConfig = types.ErrInvalidConfig
)
