package registry

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/arloliu/fspscan/internal/hash"
	"github.com/arloliu/fspscan/types"
)

// Entry is one dish of the registry.
type Entry struct {
	DishID string `yaml:"dishId" json:"dish_id"`
	VCCID  int    `yaml:"vccId" json:"vcc_id"`
	K      int    `yaml:"k" json:"k"`
}

// Validate checks a single entry.
func (e Entry) Validate() error {
	if e.DishID == "" {
		return fmt.Errorf("%w: dish id is empty", ErrInvalidEntry)
	}
	if e.VCCID <= 0 {
		return fmt.Errorf("%w: dish %q has non-positive vcc id %d", ErrInvalidEntry, e.DishID, e.VCCID)
	}
	if e.K < types.MinK || e.K > types.MaxK {
		return fmt.Errorf("%w: dish %q has k %d outside [%d, %d]",
			ErrInvalidEntry, e.DishID, e.K, types.MinK, types.MaxK)
	}

	return nil
}

// ValidateEntries checks every entry and that dish ids and VCC ids are unique.
func ValidateEntries(entries []Entry) error {
	dishes := make(map[string]struct{}, len(entries))
	vccs := make(map[int]string, len(entries))
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
		if _, dup := dishes[e.DishID]; dup {
			return fmt.Errorf("%w: dish %q listed twice", ErrInvalidEntry, e.DishID)
		}
		if other, dup := vccs[e.VCCID]; dup {
			return fmt.Errorf("%w: dishes %q and %q share vcc id %d", ErrInvalidEntry, other, e.DishID, e.VCCID)
		}
		dishes[e.DishID] = struct{}{}
		vccs[e.VCCID] = e.DishID
	}

	return nil
}

// SortEntries sorts entries by dish id in place.
func SortEntries(entries []Entry) {
	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.DishID, b.DishID)
	})
}

// Fingerprint returns an order-independent hash of the entries.
//
// It identifies the registry contents a build used in logs.
func Fingerprint(entries []Entry) uint64 {
	records := make([][]string, len(entries))
	for i, e := range entries {
		records[i] = []string{e.DishID, strconv.Itoa(e.VCCID), strconv.Itoa(e.K)}
	}

	return hash.Fingerprint(records)
}

// view is an immutable registry snapshot.
type view map[string]Entry

var _ types.DishRegistry = view(nil)

func newView(entries []Entry) view {
	v := make(view, len(entries))
	for _, e := range entries {
		v[e.DishID] = e
	}

	return v
}

func (v view) VCCID(dishID string) (int, bool) {
	e, ok := v[dishID]
	return e.VCCID, ok
}

func (v view) K(dishID string) (int, bool) {
	e, ok := v[dishID]
	return e.K, ok
}

func (v view) entries() []Entry {
	out := make([]Entry, 0, len(v))
	for _, e := range v {
		out = append(out, e)
	}
	SortEntries(out)

	return out
}
