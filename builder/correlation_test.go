package builder

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/fspscan/types"
)

func buildCorr(t *testing.T, p Params, regions ...types.CorrProcessingRegion) []*types.CorrConfig {
	t.Helper()
	b, err := NewCorrelation(p)
	require.NoError(t, err)

	elements, err := b.Build(types.CorrConfiguration{ProcessingRegions: regions})
	require.NoError(t, err)

	out := make([]*types.CorrConfig, 0, len(elements))
	for _, e := range elements {
		cfg, ok := e.(*types.CorrConfig)
		require.True(t, ok, "unexpected element type %T", e)
		out = append(out, cfg)
	}

	return out
}

func TestCorrelation_SingleSlice(t *testing.T) {
	elements := buildCorr(t, testParams(t), singleSliceRegion())

	require.Len(t, elements, 1)
	cfg := elements[0]
	require.Equal(t, 1, cfg.FspID)
	require.Equal(t, types.FunctionModeCorr, cfg.FunctionMode)
	require.Equal(t, "1", cfg.FrequencyBand)
	require.Equal(t, 2, cfg.FrequencySliceID)
	require.Equal(t, []string{"SKA001", "SKA036"}, cfg.Receptors)
	require.Equal(t, int64(350_000_000), cfg.StartFreq)
	require.Equal(t, 600, cfg.ChannelCount)
	require.Equal(t, 0, cfg.StartChannelID)
	require.Equal(t, 3940, cfg.StartCh)
	require.Equal(t, 4539, cfg.EndCh)
	require.Equal(t, 10, cfg.IntegrationFactor)

	// 0 + 0 - 3940 wraps around.
	require.Equal(t, types.ChannelOffset(math.MaxUint32-3940+1), cfg.ChannelOffset)
	require.Equal(t, uint32(0), cfg.ChannelOffset.ChannelID(cfg.StartCh))

	require.Equal(t, map[int]types.FreqShifts{
		1: {DownShift: 343_728, AlignShift: 6272},
		2: {DownShift: 181_728, AlignShift: 6272},
	}, cfg.VCCShifts)
	require.Equal(t, map[int]float64{1: 1.0, 2: 1.0}, cfg.GainCorrections)
	require.Nil(t, cfg.OutputHost)
	require.Nil(t, cfg.OutputPort)
	require.Nil(t, cfg.OutputLinkMap)
}

func TestCorrelation_ShiftsCoverWholeSubarray(t *testing.T) {
	region := singleSliceRegion()
	region.Receptors = []string{"SKA036"}

	elements := buildCorr(t, testParams(t), region)

	require.Equal(t, []string{"SKA036"}, elements[0].Receptors)
	require.Len(t, elements[0].VCCShifts, 2)
	require.Len(t, elements[0].GainCorrections, 2)
}

func twoSliceRegion() types.CorrProcessingRegion {
	return types.CorrProcessingRegion{
		Spectrum: types.Spectrum{
			FspIDs:       []int{8, 3},
			StartFreq:    0,
			ChannelWidth: types.CorrChannelWidth,
			ChannelCount: 14_000,
		},
		IntegrationFactor: 1,
		SdpStartChannelID: 100,
		OutputHost:        types.ChannelMap[string]{{Channel: 0, Value: "10.0.0.1"}, {Channel: 8000, Value: "10.0.0.2"}},
		OutputPort:        types.ChannelMap[int]{{Channel: 100, Value: 9000}},
		OutputLinkMap:     types.ChannelMap[int]{{Channel: 0, Value: 1}},
	}
}

func TestCorrelation_SplitsRouting(t *testing.T) {
	p := testParams(t)
	p.SliceGains = map[int]float64{1: 0.5}

	elements := buildCorr(t, p, twoSliceRegion())

	require.Len(t, elements, 2)
	first, second := elements[0], elements[1]

	require.Equal(t, 3, first.FspID)
	require.Equal(t, 0, first.FrequencySliceID)
	require.Equal(t, 7380, first.ChannelCount)
	require.Equal(t, types.ChannelMap[string]{{Channel: 100, Value: "10.0.0.1"}}, first.OutputHost)
	require.Equal(t, types.ChannelMap[int]{{Channel: 100, Value: 9000}}, first.OutputPort)
	require.Equal(t, types.ChannelMap[int]{{Channel: 100, Value: 1}}, first.OutputLinkMap)
	require.Equal(t, types.ChannelOffset(math.MaxUint32-7280+1), first.ChannelOffset)
	require.Equal(t, map[int]float64{1: 1.0, 2: 1.0}, first.GainCorrections)

	require.Equal(t, 8, second.FspID)
	require.Equal(t, 1, second.FrequencySliceID)
	require.Equal(t, 7380, second.StartChannelID)
	require.Equal(t, 6620, second.ChannelCount)
	require.Equal(t, 20, second.StartCh)
	require.Equal(t, types.ChannelMap[string]{
		{Channel: 7480, Value: "10.0.0.1"},
		{Channel: 8000, Value: "10.0.0.2"},
	}, second.OutputHost)
	require.Equal(t, types.ChannelMap[int]{{Channel: 7480, Value: 9000}}, second.OutputPort)
	require.Equal(t, types.ChannelOffset(7460), second.ChannelOffset)
	require.Equal(t, uint32(7480), second.ChannelOffset.ChannelID(second.StartCh))
	require.Equal(t, map[int]float64{1: 0.5, 2: 0.5}, second.GainCorrections)

	t.Run("link map is optional", func(t *testing.T) {
		region := twoSliceRegion()
		region.OutputLinkMap = nil

		elements := buildCorr(t, testParams(t), region)

		require.Nil(t, elements[0].OutputLinkMap)
		require.NotNil(t, elements[0].OutputHost)
	})
}

func TestCorrelation_RoutingRequiresHostAndPort(t *testing.T) {
	b, err := NewCorrelation(testParams(t))
	require.NoError(t, err)

	noPort := twoSliceRegion()
	noPort.OutputPort = nil
	_, err = b.Build(types.CorrConfiguration{ProcessingRegions: []types.CorrProcessingRegion{noPort}})
	require.ErrorIs(t, err, types.ErrInvalidArgument)

	linkOnly := twoSliceRegion()
	linkOnly.OutputHost, linkOnly.OutputPort = nil, nil
	_, err = b.Build(types.CorrConfiguration{ProcessingRegions: []types.CorrProcessingRegion{linkOnly}})
	require.ErrorIs(t, err, types.ErrInvalidArgument)

	dup := twoSliceRegion()
	dup.OutputPort = types.ChannelMap[int]{{Channel: 0, Value: 1}, {Channel: 0, Value: 2}}
	_, err = b.Build(types.CorrConfiguration{ProcessingRegions: []types.CorrProcessingRegion{dup}})
	require.ErrorIs(t, err, types.ErrInvalidArgument)
	require.Contains(t, err.Error(), "output_port")
}

func TestCorrelation_PartitionErrorsPropagate(t *testing.T) {
	b, err := NewCorrelation(testParams(t))
	require.NoError(t, err)

	good := singleSliceRegion()
	bad := singleSliceRegion()
	bad.ChannelCount = 610

	elements, err := b.Build(types.CorrConfiguration{ProcessingRegions: []types.CorrProcessingRegion{good, bad}})

	require.ErrorIs(t, err, types.ErrInvalidArgument)
	require.Contains(t, err.Error(), "processing region 1")
	require.Nil(t, elements, "no partial result")
}

func TestCorrelation_UnknownReceptor(t *testing.T) {
	b, err := NewCorrelation(testParams(t))
	require.NoError(t, err)

	region := singleSliceRegion()
	region.Receptors = []string{"SKA063"}

	_, err = b.Build(types.CorrConfiguration{ProcessingRegions: []types.CorrProcessingRegion{region}})

	require.True(t, errors.Is(err, types.ErrInvalidArgument))
	require.Contains(t, err.Error(), "SKA063")
}

func TestCorrelation_CrossRegionDuplicatesAreKept(t *testing.T) {
	first := singleSliceRegion()
	second := singleSliceRegion()
	second.StartFreq = 500_000_000

	elements := buildCorr(t, testParams(t), first, second)

	require.Len(t, elements, 2)
	require.Equal(t, 1, elements[0].FspID)
	require.Equal(t, 1, elements[1].FspID)
	require.Equal(t, int64(500_000_000), elements[1].StartFreq)
}

func TestCorrelation_InputNotModified(t *testing.T) {
	region := twoSliceRegion()
	hosts := region.OutputHost.Clone()
	ids := []int{8, 3}

	elements := buildCorr(t, testParams(t), region)
	elements[1].OutputHost[0].Value = "changed"
	elements[0].Receptors[0] = "changed"

	require.Equal(t, hosts, region.OutputHost)
	require.Equal(t, ids, region.FspIDs)
}

func TestCorrelation_AcceptsPointerConfiguration(t *testing.T) {
	b, err := NewCorrelation(testParams(t))
	require.NoError(t, err)

	elements, err := b.Build(&types.CorrConfiguration{ProcessingRegions: []types.CorrProcessingRegion{singleSliceRegion()}})

	require.NoError(t, err)
	require.Len(t, elements, 1)
}
