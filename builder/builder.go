package builder

import (
	"fmt"
	"slices"

	"github.com/arloliu/fspscan/partition"
	"github.com/arloliu/fspscan/types"
)

// modeBuilder assembles the element configs of one function mode.
type modeBuilder interface {
	mode() types.FunctionMode

	// build assembles every region of fc, which has already been checked to
	// match mode().
	build(b *Builder, run *buildRun, fc types.FunctionConfiguration) ([]types.ElementConfig, error)
}

// Builder builds FSP configuration records for one function mode.
//
// A Builder holds no per-build state and is safe for concurrent use.
type Builder struct {
	params Params
	band   types.Band
	modes  modeBuilder
}

// NewCorrelation creates a builder for CORR scans.
//
// Parameters:
//   - p: Band, subarray dishes, registry and slice gains
//
// Returns:
//   - *Builder: Builder for types.CorrConfiguration input
//   - error: types.ErrRegistryRequired, or wraps types.ErrInvalidArgument
//
// Example:
//
//	b, err := builder.NewCorrelation(builder.Params{
//	    Band:           "1",
//	    SubarrayDishes: []string{"SKA001", "SKA036"},
//	    Registry:       reg,
//	})
//	elements, err := b.Build(types.CorrConfiguration{ProcessingRegions: regions})
func NewCorrelation(p Params) (*Builder, error) {
	return newBuilder(p, correlation{})
}

// NewPst creates a builder for PST-BF scans.
//
// Parameters:
//   - p: Band, subarray dishes and registry; SliceGains is not used
//
// Returns:
//   - *Builder: Builder for types.PstConfiguration input
//   - error: types.ErrRegistryRequired, or wraps types.ErrInvalidArgument
func NewPst(p Params) (*Builder, error) {
	return newBuilder(p, pst{})
}

// New creates a builder for the given function mode.
func New(mode types.FunctionMode, p Params) (*Builder, error) {
	switch mode {
	case types.FunctionModeCorr:
		return NewCorrelation(p)
	case types.FunctionModePst:
		return NewPst(p)
	default:
		return nil, invalidf("unsupported function mode %q", mode)
	}
}

func newBuilder(p Params, m modeBuilder) (*Builder, error) {
	band, err := p.validate()
	if err != nil {
		return nil, err
	}
	p = p.clone()

	if _, err := resolveDishes(registryFor(p.Registry), p.SubarrayDishes); err != nil {
		return nil, err
	}

	return &Builder{params: p, band: band, modes: m}, nil
}

// Mode returns the function mode the builder accepts.
func (b *Builder) Mode() types.FunctionMode {
	return b.modes.mode()
}

// Band returns the builder's receiver band.
func (b *Builder) Band() types.Band {
	return b.band
}

// Build produces one configuration record per FSP of every processing region.
//
// Regions are processed in order and their records concatenated. The dish
// registry is read through a single snapshot for the whole call.
//
// Parameters:
//   - fc: The scan's function configuration; its mode must match the builder
//
// Returns:
//   - []types.ElementConfig: *types.CorrConfig or *types.PstConfig records
//   - error: wraps types.ErrInvalidArgument; no partial result is returned
func (b *Builder) Build(fc types.FunctionConfiguration) ([]types.ElementConfig, error) {
	if fc == nil {
		return nil, invalidf("function configuration is required")
	}
	if got, want := fc.FunctionMode(), b.Mode(); got != want {
		return nil, invalidf("%s builder cannot build a %s configuration", want, got)
	}
	if fc.RegionCount() == 0 {
		return nil, invalidf("processing_regions must not be empty")
	}

	dishes, err := resolveDishes(registryFor(b.params.Registry), b.params.SubarrayDishes)
	if err != nil {
		return nil, err
	}

	run := &buildRun{dishes: dishes}
	for _, d := range dishes {
		run.subarray = append(run.subarray, d.ID)
	}

	return b.modes.build(b, run, fc)
}

// buildRun holds the registry view of one Build call.
type buildRun struct {
	dishes   []dish
	subarray []string
}

// regionPlan is the partitioning result of one processing region.
type regionPlan struct {
	assignments []types.ElementAssignment
	shifts      map[int]map[int]types.FreqShifts // fsp id -> vcc id -> shifts
}

// startChannelIDs returns every FSP's offset within the region's channel stream.
func (p regionPlan) startChannelIDs() []int {
	out := make([]int, len(p.assignments))
	for i, a := range p.assignments {
		out[i] = a.StartChannelID
	}

	return out
}

// planRegion partitions one region for every subarray dish and once with the
// placeholder k for the region's own channel boundaries.
func (b *Builder) planRegion(idx int, run *buildRun, spec types.Spectrum) (regionPlan, error) {
	req := partition.Request{
		FspIDs:        spec.SortedFspIDs(),
		StartFreq:     spec.StartFreq,
		ChannelWidth:  spec.ChannelWidth,
		ChannelCount:  spec.ChannelCount,
		WidebandShift: b.params.WidebandShift,
		Band:          b.band.Name,
		Mode:          b.Mode(),
	}

	plan := regionPlan{shifts: make(map[int]map[int]types.FreqShifts, len(req.FspIDs))}
	for _, id := range req.FspIDs {
		plan.shifts[id] = make(map[int]types.FreqShifts, len(run.dishes))
	}

	req.K = types.PlaceholderK
	result, err := partition.Partition(req)
	if err != nil {
		return regionPlan{}, fmt.Errorf("processing region %d: %w", idx, err)
	}
	plan.assignments = partition.Ordered(result)

	for _, d := range run.dishes {
		req.K = d.K
		dishResult, err := partition.Partition(req)
		if err != nil {
			return regionPlan{}, fmt.Errorf("processing region %d: dish %q: %w", idx, d.ID, err)
		}
		for id, a := range dishResult {
			// Channel boundaries are shared by every dish; only the shifts may vary with k.
			if !a.SameBoundaries(result[id]) {
				return regionPlan{}, invalidf("processing region %d: dish %q: fsp %d channel boundaries depend on k=%d",
					idx, d.ID, id, d.K)
			}
			plan.shifts[id][d.VCCID] = a.Shifts()
		}
	}

	b.params.Metrics.RecordPartition(b.band.Name, len(plan.assignments))
	b.params.Logger.Debug("processing region partitioned",
		"region", idx,
		"mode", b.Mode().String(),
		"band", b.band.Name,
		"fsps", len(plan.assignments),
		"start_freq", spec.StartFreq,
		"end_freq", req.EndFreq(),
		"channel_count", spec.ChannelCount,
	)

	return plan, nil
}

// regionReceptors resolves a region's receptor list against the subarray.
//
// An empty list selects the whole subarray. Otherwise every dish must belong
// to the subarray; the result keeps the caller's order.
func regionReceptors(idx int, run *buildRun, receptors []string) ([]string, error) {
	if len(receptors) == 0 {
		return slices.Clone(run.subarray), nil
	}

	out := make([]string, 0, len(receptors))
	for _, r := range receptors {
		if !slices.Contains(run.subarray, r) {
			return nil, invalidf("processing region %d: receptor %q is not assigned to the subarray", idx, r)
		}
		if slices.Contains(out, r) {
			return nil, invalidf("processing region %d: receptor %q is listed twice", idx, r)
		}
		out = append(out, r)
	}

	return out, nil
}

// common fills the mode-independent fields of one FSP record.
func (b *Builder) common(a types.ElementAssignment, spec types.Spectrum, receptors []string, plan regionPlan) types.ElementCommon {
	return types.ElementCommon{
		FspID:            a.FspID,
		FunctionMode:     b.Mode(),
		FrequencyBand:    b.band.Name,
		FrequencySliceID: a.SliceID,
		Receptors:        slices.Clone(receptors),
		StartFreq:        a.StartFrequency(spec.ChannelWidth),
		ChannelWidth:     spec.ChannelWidth,
		ChannelCount:     a.NumChannels,
		StartChannelID:   a.StartChannelID,
		StartCh:          a.StartCh,
		EndCh:            a.EndCh,
		SliceCenterCh:    a.SliceCenterCh,
		VCCShifts:        plan.shifts[a.FspID],
	}
}

// registryFor returns the registry view for one build.
func registryFor(reg types.DishRegistry) types.DishRegistry {
	if s, ok := reg.(types.Snapshotter); ok {
		return s.Snapshot()
	}

	return reg
}
