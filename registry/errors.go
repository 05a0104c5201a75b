package registry

import "errors"

var (
	// ErrDishNotFound is returned when a dish is not in the registry.
	ErrDishNotFound = errors.New("dish not found in registry")

	// ErrInvalidEntry is returned when registry entries are inconsistent.
	ErrInvalidEntry = errors.New("invalid registry entry")

	// ErrDecode is returned when a registry file or KV value cannot be decoded.
	ErrDecode = errors.New("failed to decode registry data")

	// ErrUnavailable is returned when the KV registry cannot reach NATS.
	// The registry keeps its previous contents and the call may be retried.
	ErrUnavailable = errors.New("dish registry backend unavailable")

	// ErrNotStarted is returned by KV.Stop when Start was never called.
	ErrNotStarted = errors.New("registry watcher not started")

	// ErrAlreadyStarted is returned by KV.Start when the watcher is running.
	ErrAlreadyStarted = errors.New("registry watcher already started")

	// ErrAlreadyStopped is returned by KV.Start after Stop.
	ErrAlreadyStopped = errors.New("registry watcher already stopped")
)
