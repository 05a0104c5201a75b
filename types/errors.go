package types

import "errors"

// Sentinel errors for the fspscan library.
//
// These errors provide type-safe error checking using errors.Is() and errors.As().
// All components should use these sentinel errors for known error conditions
// and wrap them with context using fmt.Errorf("%w: msg", err).
//
// Every caller configuration problem is reported as ErrInvalidArgument. None of
// them is retryable; the caller is expected to reject the whole scan request.
var (
	// ErrInvalidArgument is returned when a scan request or builder input is invalid.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrRegistryRequired is returned when a builder is created without a dish registry.
	ErrRegistryRequired = errors.New("dish registry is required")

	// ErrInvalidConfig is returned when the library configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")
)
