package builder

import (
	"github.com/arloliu/fspscan/channelmap"
	"github.com/arloliu/fspscan/types"
)

// defaultSliceGain is the gain correction of a slice without a configured value.
const defaultSliceGain = 1.0

type correlation struct{}

var _ modeBuilder = correlation{}

func (correlation) mode() types.FunctionMode { return types.FunctionModeCorr }

func (c correlation) build(b *Builder, run *buildRun, fc types.FunctionConfiguration) ([]types.ElementConfig, error) {
	var regions []types.CorrProcessingRegion
	switch v := fc.(type) {
	case types.CorrConfiguration:
		regions = v.ProcessingRegions
	case *types.CorrConfiguration:
		regions = v.ProcessingRegions
	default:
		return nil, invalidf("CORR builder cannot build %T", fc)
	}

	var out []types.ElementConfig
	for i, region := range regions {
		elements, err := c.region(b, run, i, region)
		if err != nil {
			return nil, err
		}
		out = append(out, elements...)
	}

	return out, nil
}

func (correlation) region(b *Builder, run *buildRun, idx int, region types.CorrProcessingRegion) ([]types.ElementConfig, error) {
	receptors, err := regionReceptors(idx, run, region.Receptors)
	if err != nil {
		return nil, err
	}
	if region.HasOutput() && (len(region.OutputHost) == 0 || len(region.OutputPort) == 0) {
		return nil, invalidf("processing region %d: output_host and output_port are both required when output routing is given", idx)
	}

	plan, err := b.planRegion(idx, run, region.Spectrum)
	if err != nil {
		return nil, err
	}

	routes, err := splitCorrRoutes(idx, region, plan)
	if err != nil {
		return nil, err
	}

	out := make([]types.ElementConfig, 0, len(plan.assignments))
	for i, a := range plan.assignments {
		cfg := &types.CorrConfig{
			ElementCommon:     b.common(a, region.Spectrum, receptors, plan),
			IntegrationFactor: region.IntegrationFactor,
			SdpStartChannelID: region.SdpStartChannelID,
			GainCorrections:   b.gainCorrections(run, a.SliceID),
		}
		cfg.ChannelOffset = types.NewChannelOffset(region.SdpStartChannelID, a.StartChannelID, a.StartCh)
		if routes.host != nil {
			cfg.OutputHost = routes.host[i]
			cfg.OutputPort = routes.port[i]
		}
		if routes.link != nil {
			cfg.OutputLinkMap = routes.link[i]
		}
		out = append(out, cfg)
	}

	return out, nil
}

// gainCorrections returns the slice's gain for every subarray VCC.
func (b *Builder) gainCorrections(run *buildRun, slice int) map[int]float64 {
	gain, ok := b.params.SliceGains[slice]
	if !ok {
		gain = defaultSliceGain
	}

	out := make(map[int]float64, len(run.dishes))
	for _, d := range run.dishes {
		out[d.VCCID] = gain
	}

	return out
}

type corrRoutes struct {
	host []types.ChannelMap[string]
	port []types.ChannelMap[int]
	link []types.ChannelMap[int]
}

// splitCorrRoutes splits the region's routing tables at the SDP channel IDs
// where each FSP's output starts.
func splitCorrRoutes(idx int, region types.CorrProcessingRegion, plan regionPlan) (corrRoutes, error) {
	var routes corrRoutes
	if !region.HasOutput() {
		return routes, nil
	}

	boundaries := channelmap.Boundaries(int(region.SdpStartChannelID), plan.startChannelIDs(), region.ChannelCount)

	var err error
	if routes.host, err = channelmap.Split(region.OutputHost, boundaries); err != nil {
		return corrRoutes{}, regionError(idx, "output_host", err)
	}
	if routes.port, err = channelmap.Split(region.OutputPort, boundaries); err != nil {
		return corrRoutes{}, regionError(idx, "output_port", err)
	}
	if len(region.OutputLinkMap) > 0 {
		if routes.link, err = channelmap.Split(region.OutputLinkMap, boundaries); err != nil {
			return corrRoutes{}, regionError(idx, "output_link_map", err)
		}
	}

	return routes, nil
}
