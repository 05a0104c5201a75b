package builder

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/fspscan/types"
)

func pstRegion() types.PstProcessingRegion {
	return types.PstProcessingRegion{
		Spectrum: types.Spectrum{
			FspIDs:       []int{5, 6},
			StartFreq:    150_000_000,
			ChannelWidth: types.PstChannelWidth,
			ChannelCount: 3_000,
		},
		PstStartChannelID: 1000,
		TimingBeams: []types.TimingBeam{
			{TimingBeamID: 1, Receptors: []string{"SKA036"}},
			{
				TimingBeamID: 2,
				Receptors:    []string{"SKA036", "SKA001"},
				OutputHost:   types.ChannelMap[string]{{Channel: 0, Value: "10.1.0.1"}},
				OutputPort:   types.ChannelMap[int]{{Channel: 0, Value: 7000}},
			},
		},
	}
}

func buildPst(t *testing.T, regions ...types.PstProcessingRegion) []*types.PstConfig {
	t.Helper()
	b, err := NewPst(testParams(t))
	require.NoError(t, err)

	elements, err := b.Build(types.PstConfiguration{ProcessingRegions: regions})
	require.NoError(t, err)

	out := make([]*types.PstConfig, 0, len(elements))
	for _, e := range elements {
		cfg, ok := e.(*types.PstConfig)
		require.True(t, ok, "unexpected element type %T", e)
		out = append(out, cfg)
	}

	return out
}

func TestPst_Build(t *testing.T) {
	region := pstRegion()

	elements := buildPst(t, region)

	require.Len(t, elements, 2)
	total := 0
	for i, cfg := range elements {
		require.Equal(t, region.FspIDs[i], cfg.FspID)
		require.Equal(t, types.FunctionModePst, cfg.FunctionMode)
		require.Equal(t, types.PstChannelWidth, cfg.ChannelWidth)
		require.Equal(t, uint32(1000), cfg.PstStartChannelID)
		require.Equal(t, total, cfg.StartChannelID)
		require.Equal(t, uint32(1000+cfg.StartChannelID), cfg.ChannelOffset.ChannelID(cfg.StartCh))
		require.Equal(t, []string{"SKA001", "SKA036"}, cfg.Receptors, "union in subarray order")
		require.Equal(t, region.TimingBeams, cfg.TimingBeams)
		require.Len(t, cfg.VCCShifts, 2)
		total += cfg.ChannelCount
	}
	require.Equal(t, 3_000, total)
	require.Equal(t, int64(150_000_000), elements[0].StartFreq)
}

func TestPst_TimingBeamsAreDeepCopied(t *testing.T) {
	region := pstRegion()

	elements := buildPst(t, region)
	elements[0].TimingBeams[1].Receptors[0] = "changed"
	elements[0].TimingBeams[1].OutputHost[0].Value = "changed"

	require.Equal(t, "SKA036", region.TimingBeams[1].Receptors[0])
	require.Equal(t, "10.1.0.1", region.TimingBeams[1].OutputHost[0].Value)
	require.Equal(t, "SKA036", elements[1].TimingBeams[1].Receptors[0])
}

func TestBeamReceptors(t *testing.T) {
	run := &buildRun{subarray: []string{"SKA001", "SKA036", "SKA063"}}

	t.Run("no beams selects the subarray", func(t *testing.T) {
		got, err := beamReceptors(0, run, nil)
		require.NoError(t, err)
		require.Equal(t, run.subarray, got)
	})

	t.Run("beam without receptors selects the subarray", func(t *testing.T) {
		got, err := beamReceptors(0, run, []types.TimingBeam{
			{TimingBeamID: 1, Receptors: []string{"SKA063"}},
			{TimingBeamID: 2},
		})
		require.NoError(t, err)
		require.Equal(t, run.subarray, got)
	})

	t.Run("union keeps subarray order", func(t *testing.T) {
		got, err := beamReceptors(0, run, []types.TimingBeam{
			{TimingBeamID: 1, Receptors: []string{"SKA063"}},
			{TimingBeamID: 2, Receptors: []string{"SKA063", "SKA001"}},
		})
		require.NoError(t, err)
		require.Equal(t, []string{"SKA001", "SKA063"}, got)
	})

	t.Run("unknown receptor in any beam", func(t *testing.T) {
		_, err := beamReceptors(2, run, []types.TimingBeam{
			{TimingBeamID: 1},
			{TimingBeamID: 7, Receptors: []string{"SKA100"}},
		})
		require.ErrorIs(t, err, types.ErrInvalidArgument)
		require.Contains(t, err.Error(), "timing beam 7")
		require.Contains(t, err.Error(), `"SKA100"`)
	})
}

func TestPst_RejectsCorrChannelWidth(t *testing.T) {
	b, err := NewPst(testParams(t))
	require.NoError(t, err)

	region := pstRegion()
	region.ChannelWidth = types.CorrChannelWidth

	_, err = b.Build(types.PstConfiguration{ProcessingRegions: []types.PstProcessingRegion{region}})

	require.ErrorIs(t, err, types.ErrInvalidArgument)
}
