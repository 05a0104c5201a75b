package builder

import (
	"fmt"
	"maps"
	"slices"

	"github.com/arloliu/fspscan/internal/logger"
	"github.com/arloliu/fspscan/internal/metrics"
	"github.com/arloliu/fspscan/types"
)

// Params is the construction input of a Builder.
type Params struct {
	// Band is the receiver band of the subarray.
	Band string

	// WidebandShift is the band-wide frequency shift (Hz).
	WidebandShift int64

	// SubarrayDishes is the subarray's assigned dish set, in subarray order.
	SubarrayDishes []string

	// Registry resolves VCC ids and k values. Required.
	Registry types.DishRegistry

	// SliceGains is the CORR gain correction per coarse slice index.
	// Slices without an entry use 1.0.
	SliceGains map[int]float64

	// Logger receives per-region debug output. Defaults to a no-op logger.
	Logger types.Logger

	// Metrics receives partition metrics. Defaults to a no-op collector.
	Metrics types.PartitionMetrics
}

// dish is one subarray dish with its registry constants.
type dish struct {
	ID    string
	VCCID int
	K     int
}

func (p Params) validate() (types.Band, error) {
	if p.Registry == nil {
		return types.Band{}, types.ErrRegistryRequired
	}
	if p.Band == "" {
		return types.Band{}, invalidf("band is required")
	}
	band, ok := types.LookupBand(p.Band)
	if !ok {
		return types.Band{}, invalidf("unsupported band %q", p.Band)
	}
	if len(p.SubarrayDishes) == 0 {
		return types.Band{}, invalidf("subarray dish set must not be empty")
	}
	seen := make(map[string]struct{}, len(p.SubarrayDishes))
	for _, id := range p.SubarrayDishes {
		if id == "" {
			return types.Band{}, invalidf("subarray dish id must not be empty")
		}
		if _, dup := seen[id]; dup {
			return types.Band{}, invalidf("subarray dish set contains %q twice", id)
		}
		seen[id] = struct{}{}
	}
	for slice, gain := range p.SliceGains {
		if slice < 0 || slice >= band.NumSlices {
			return types.Band{}, invalidf("slice gain for slice %d is outside band %s slices 0..%d",
				slice, band.Name, band.NumSlices-1)
		}
		if gain <= 0 {
			return types.Band{}, invalidf("slice gain for slice %d must be positive, got %g", slice, gain)
		}
	}

	return band, nil
}

// clone returns a copy of p that shares no slices or maps with the caller.
func (p Params) clone() Params {
	p.SubarrayDishes = slices.Clone(p.SubarrayDishes)
	p.SliceGains = maps.Clone(p.SliceGains)
	if p.Logger == nil {
		p.Logger = logger.NewNop()
	}
	if p.Metrics == nil {
		p.Metrics = metrics.NewNop()
	}

	return p
}

// resolveDishes looks up every subarray dish in reg.
func resolveDishes(reg types.DishRegistry, ids []string) ([]dish, error) {
	out := make([]dish, 0, len(ids))
	byVCC := make(map[int]string, len(ids))
	for _, id := range ids {
		vcc, ok := reg.VCCID(id)
		if !ok {
			return nil, invalidf("dish %q has no vcc id in the dish registry", id)
		}
		k, ok := reg.K(id)
		if !ok {
			return nil, invalidf("dish %q has no k value in the dish registry", id)
		}
		if other, dup := byVCC[vcc]; dup {
			return nil, invalidf("dishes %q and %q share vcc id %d", other, id, vcc)
		}
		byVCC[vcc] = id
		out = append(out, dish{ID: id, VCCID: vcc, K: k})
	}

	return out, nil
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", types.ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func regionError(idx int, field string, err error) error {
	return fmt.Errorf("processing region %d %s: %w", idx, field, err)
}
