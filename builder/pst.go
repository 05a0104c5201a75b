package builder

import (
	"slices"

	"github.com/arloliu/fspscan/types"
)

type pst struct{}

var _ modeBuilder = pst{}

func (pst) mode() types.FunctionMode { return types.FunctionModePst }

func (p pst) build(b *Builder, run *buildRun, fc types.FunctionConfiguration) ([]types.ElementConfig, error) {
	var regions []types.PstProcessingRegion
	switch v := fc.(type) {
	case types.PstConfiguration:
		regions = v.ProcessingRegions
	case *types.PstConfiguration:
		regions = v.ProcessingRegions
	default:
		return nil, invalidf("PST-BF builder cannot build %T", fc)
	}

	var out []types.ElementConfig
	for i, region := range regions {
		elements, err := p.region(b, run, i, region)
		if err != nil {
			return nil, err
		}
		out = append(out, elements...)
	}

	return out, nil
}

func (pst) region(b *Builder, run *buildRun, idx int, region types.PstProcessingRegion) ([]types.ElementConfig, error) {
	receptors, err := beamReceptors(idx, run, region.TimingBeams)
	if err != nil {
		return nil, err
	}

	plan, err := b.planRegion(idx, run, region.Spectrum)
	if err != nil {
		return nil, err
	}

	out := make([]types.ElementConfig, 0, len(plan.assignments))
	for _, a := range plan.assignments {
		cfg := &types.PstConfig{
			ElementCommon:     b.common(a, region.Spectrum, receptors, plan),
			PstStartChannelID: region.PstStartChannelID,
			TimingBeams:       cloneBeams(region.TimingBeams),
		}
		cfg.ChannelOffset = types.NewChannelOffset(region.PstStartChannelID, a.StartChannelID, a.StartCh)
		out = append(out, cfg)
	}

	return out, nil
}

// beamReceptors returns the union of the timing beams' receptors in subarray
// order. A beam without receptors, or a region without beams, selects the
// whole subarray.
func beamReceptors(idx int, run *buildRun, beams []types.TimingBeam) ([]string, error) {
	if len(beams) == 0 {
		return slices.Clone(run.subarray), nil
	}

	used := make(map[string]struct{}, len(run.subarray))
	whole := false
	for _, beam := range beams {
		if len(beam.Receptors) == 0 {
			whole = true
		}
		for _, r := range beam.Receptors {
			if !slices.Contains(run.subarray, r) {
				return nil, invalidf("processing region %d: timing beam %d receptor %q is not assigned to the subarray",
					idx, beam.TimingBeamID, r)
			}
			used[r] = struct{}{}
		}
	}

	out := make([]string, 0, len(used))
	for _, id := range run.subarray {
		if _, ok := used[id]; ok || whole {
			out = append(out, id)
		}
	}

	return out, nil
}

func cloneBeams(beams []types.TimingBeam) []types.TimingBeam {
	if beams == nil {
		return nil
	}
	out := make([]types.TimingBeam, len(beams))
	for i, beam := range beams {
		out[i] = beam.Clone()
	}

	return out
}
