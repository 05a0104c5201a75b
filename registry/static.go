package registry

import (
	"fmt"
	"sync"

	"github.com/arloliu/fspscan/types"
)

// Static is an in-memory dish registry.
//
// Reads and Update are safe for concurrent use. Snapshot returns a view that
// later updates do not affect.
type Static struct {
	mu      sync.RWMutex
	current view
}

var (
	_ types.DishRegistry = (*Static)(nil)
	_ types.Snapshotter  = (*Static)(nil)
)

// NewStatic creates a registry holding the given entries.
//
// Parameters:
//   - entries: Dish entries; validated with ValidateEntries
//
// Returns:
//   - *Static: Initialized registry
//   - error: wraps ErrInvalidEntry
//
// Example:
//
//	reg, err := registry.NewStatic([]registry.Entry{
//	    {DishID: "SKA001", VCCID: 1, K: 100},
//	    {DishID: "SKA036", VCCID: 2, K: 1000},
//	})
func NewStatic(entries []Entry) (*Static, error) {
	s := &Static{}
	if err := s.Update(entries); err != nil {
		return nil, err
	}

	return s, nil
}

// Update replaces the registry contents.
//
// The entries are validated first; on error the previous contents are kept.
func (s *Static) Update(entries []Entry) error {
	if err := ValidateEntries(entries); err != nil {
		return err
	}
	next := newView(entries)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = next

	return nil
}

// VCCID returns the VCC assigned to the dish.
func (s *Static) VCCID(dishID string) (int, bool) {
	return s.Snapshot().VCCID(dishID)
}

// K returns the dish's scale constant.
func (s *Static) K(dishID string) (int, bool) {
	return s.Snapshot().K(dishID)
}

// Snapshot returns the current contents as an immutable registry.
func (s *Static) Snapshot() types.DishRegistry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current
}

// Lookup returns the dish's entry.
//
// Returns:
//   - Entry: The dish entry
//   - error: wraps ErrDishNotFound if the dish is unknown
func (s *Static) Lookup(dishID string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.current[dishID]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrDishNotFound, dishID)
	}

	return e, nil
}

// Entries returns a copy of the contents sorted by dish id.
func (s *Static) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current.entries()
}

// Len returns the number of dishes.
func (s *Static) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.current)
}

// Fingerprint returns the fingerprint of the current contents.
func (s *Static) Fingerprint() uint64 {
	return Fingerprint(s.Entries())
}
