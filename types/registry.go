package types

// DishRegistry resolves the per-dish constants a scan configuration needs.
//
// Implementations must be safe for concurrent reads. A builder treats the
// registry as read-only for the duration of a build.
type DishRegistry interface {
	// VCCID returns the VCC assigned to the dish.
	VCCID(dishID string) (int, bool)

	// K returns the dish's frequency offset scale constant.
	K(dishID string) (int, bool)
}

// Snapshotter is implemented by registries that change at runtime.
//
// Builders call Snapshot once per build so every region of a scan sees the
// same registry contents.
type Snapshotter interface {
	Snapshot() DishRegistry
}
