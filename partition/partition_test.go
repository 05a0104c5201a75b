package partition

import (
	"math"
	"slices"
	"testing"

	"github.com/arloliu/fspscan/types"
	"github.com/stretchr/testify/require"
)

func corrRequest(fspIDs []int, start int64, count int) Request {
	return Request{
		FspIDs:       fspIDs,
		StartFreq:    start,
		ChannelWidth: types.CorrChannelWidth,
		ChannelCount: count,
		K:            types.PlaceholderK,
		Band:         "1",
	}
}

func TestPartition_SingleSlice(t *testing.T) {
	req := corrRequest([]int{1}, 350_000_000, 600)

	result, err := Partition(req)

	require.NoError(t, err)
	require.Len(t, result, 1)
	a := result[1]
	require.Equal(t, 1, a.FspID)
	require.Equal(t, 2, a.SliceID)
	require.Equal(t, 600, a.NumChannels)
	require.Equal(t, 0, a.StartChannelID)
	require.Equal(t, 3940, a.StartCh)
	require.Equal(t, 4539, a.EndCh)
	require.Equal(t, 7390, a.SliceCenterCh)
	require.Equal(t, int64(6272), a.AlignmentShift)
	require.Equal(t, int64(181_728), a.DownShift)
	require.Equal(t, int64(0), a.WidebandShift)
	require.Equal(t, int64(350_000_000), a.StartFrequency(types.CorrChannelWidth))
	require.Equal(t, req.EndFreq(), a.EndFrequency(types.CorrChannelWidth))
	require.NoError(t, Verify(req, result))
}

func TestPartition_TenSlices(t *testing.T) {
	ids := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	req := corrRequest(ids, 0, 140_080)

	result, err := Partition(req)

	require.NoError(t, err)
	require.Len(t, result, 10)
	require.NoError(t, Verify(req, result))

	ordered := Ordered(result)
	sum := 0
	for i, a := range ordered {
		require.Equal(t, ids[i], a.FspID)
		require.Equal(t, i, a.SliceID)
		require.Equal(t, sum, a.StartChannelID)
		require.Zero(t, a.StartCh%types.ChannelGroupSize)
		require.Zero(t, (a.EndCh+1)%types.ChannelGroupSize)
		sum += a.NumChannels
	}
	require.Equal(t, 140_080, sum)

	t.Run("first slice starts at the slice centre", func(t *testing.T) {
		a := ordered[0]
		require.Equal(t, 7380, a.StartCh)
		require.Equal(t, 14759, a.EndCh)
		require.Equal(t, 7380, a.NumChannels)
		require.Equal(t, 7380, a.SliceCenterCh)
		require.Equal(t, int64(0), a.AlignmentShift)
		require.Equal(t, int64(0), a.DownShift)
	})

	t.Run("second slice is shifted onto the grid", func(t *testing.T) {
		a := ordered[1]
		require.Equal(t, 20, a.StartCh)
		require.Equal(t, 14759, a.EndCh)
		require.Equal(t, 14740, a.NumChannels)
		require.Equal(t, 7386, a.SliceCenterCh)
		require.Equal(t, int64(5376), a.AlignmentShift)
		require.Equal(t, int64(7380)*types.CorrChannelWidth, a.StartFrequency(types.CorrChannelWidth))
	})

	t.Run("last slice ends on the last channel", func(t *testing.T) {
		a := ordered[9]
		require.Equal(t, 125_340, a.StartChannelID)
		require.Equal(t, 14_740, a.NumChannels)
		require.Equal(t, req.EndFreq(), a.EndFrequency(types.CorrChannelWidth))
	})
}

func TestPartition_SortsFspIDs(t *testing.T) {
	req := corrRequest([]int{7, 3, 5}, 0, 30_000)

	result, err := Partition(req)

	require.NoError(t, err)
	require.Equal(t, 0, result[3].SliceID)
	require.Equal(t, 1, result[5].SliceID)
	require.Equal(t, 2, result[7].SliceID)
	require.Equal(t, []int{7, 3, 5}, req.FspIDs, "request must not be modified")
}

func TestPartition_InvalidArguments(t *testing.T) {
	valid := corrRequest([]int{1}, 350_000_000, 600)

	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{"nil fsp_ids", func(r *Request) { r.FspIDs = nil }},
		{"empty fsp_ids", func(r *Request) { r.FspIDs = []int{} }},
		{"too many fsp_ids", func(r *Request) { r.FspIDs = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11} }},
		{"duplicate fsp_id", func(r *Request) { r.FspIDs = []int{2, 2} }},
		{"non-positive fsp_id", func(r *Request) { r.FspIDs = []int{0} }},
		{"zero channel_width", func(r *Request) { r.ChannelWidth = 0 }},
		{"negative channel_width", func(r *Request) { r.ChannelWidth = -13_440 }},
		{"pst channel_width in corr mode", func(r *Request) { r.ChannelWidth = types.PstChannelWidth }},
		{"zero channel_count", func(r *Request) { r.ChannelCount = 0 }},
		{"negative channel_count", func(r *Request) { r.ChannelCount = -20 }},
		{"channel_count not a multiple of 20", func(r *Request) { r.ChannelCount = 610 }},
		{"k zero", func(r *Request) { r.K = 0 }},
		{"k above maximum", func(r *Request) { r.K = 2223 }},
		{"empty band", func(r *Request) { r.Band = "" }},
		{"unknown band", func(r *Request) { r.Band = "invalid" }},
		{"unknown mode", func(r *Request) { r.Mode = "VLBI" }},
		{"too few fsp_ids for the spectrum", func(r *Request) { r.ChannelCount = 20_000 }},
		{"fsp_ids left without channels", func(r *Request) { r.FspIDs = []int{1, 2} }},
		{"start below the band", func(r *Request) { r.StartFreq = -200_000_000 }},
		{"end above the band", func(r *Request) { r.StartFreq = 1_950_000_000 }},
		{"channel_count overflowing the frequency span", func(r *Request) { r.ChannelCount = 5<<57 + 20 }},
		{"start_freq far outside the band", func(r *Request) { r.StartFreq = 1 << 62 }},
		{"wideband shift far outside the band", func(r *Request) { r.WidebandShift = -(1 << 62) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			req.FspIDs = slices.Clone(valid.FspIDs)
			tt.mutate(&req)

			result, err := Partition(req)

			require.ErrorIs(t, err, types.ErrInvalidArgument)
			require.Nil(t, result)
		})
	}
}

func TestPartition_ChannelCountBound(t *testing.T) {
	band, ok := types.LookupBand("1")
	require.True(t, ok)
	limit := maxChannels(band, types.CorrChannelWidth)
	require.Equal(t, 147_650, limit)

	for _, count := range []int{limit + 10, 5<<57 + 20, math.MaxInt - math.MaxInt%20} {
		req := corrRequest([]int{1}, 350_000_000, count)

		result, err := Partition(req)

		require.ErrorIs(t, err, types.ErrInvalidArgument)
		require.ErrorContains(t, err, "exceeds")
		require.Nil(t, result)
	}
}

func TestPartition_BoundariesIndependentOfK(t *testing.T) {
	req := corrRequest([]int{1, 2, 3, 4}, 120_000_000, 44_000)

	reference, err := Partition(req)
	require.NoError(t, err)

	for _, k := range []int{types.MinK, 17, 1500, types.MaxK} {
		req.K = k
		result, err := Partition(req)
		require.NoError(t, err)

		for id, a := range result {
			require.True(t, a.SameBoundaries(reference[id]), "fsp %d differs for k=%d", id, k)
			require.Equal(t, DownShift(mustBand(t, "1"), a.SliceID, k), a.DownShift)
		}
	}
}

func TestPartition_Idempotent(t *testing.T) {
	req := corrRequest([]int{4, 1, 2}, 10_000_000, 30_000)

	first, err := Partition(req)
	require.NoError(t, err)
	second, err := Partition(req)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestPartition_Invariants(t *testing.T) {
	counts := []int{20, 600, 14_760, 30_000, 100_000}

	for i := range 40 {
		start := int64(300_000_000) + int64(i)*7_777_777
		for _, count := range counts {
			req := Request{
				StartFreq:    start,
				ChannelWidth: types.CorrChannelWidth,
				ChannelCount: count,
				K:            1 + i*50,
				Band:         "4",
			}
			needed := SlicesNeeded(req)
			for id := needed; id >= 1; id-- {
				req.FspIDs = append(req.FspIDs, id)
			}

			result, err := Partition(req)

			require.NoError(t, err, "start=%d count=%d", start, count)
			require.NoError(t, Verify(req, result), "start=%d count=%d", start, count)
		}
	}
}

func TestPartition_PstMode(t *testing.T) {
	req := Request{
		FspIDs:       []int{1, 2},
		StartFreq:    150_000_000,
		ChannelWidth: types.PstChannelWidth,
		ChannelCount: 3_000,
		K:            42,
		Band:         "1",
		Mode:         types.FunctionModePst,
	}

	result, err := Partition(req)

	require.NoError(t, err)
	require.NoError(t, Verify(req, result))

	t.Run("rejects corr channel width", func(t *testing.T) {
		req.ChannelWidth = types.CorrChannelWidth
		_, err := Partition(req)
		require.ErrorIs(t, err, types.ErrInvalidArgument)
	})
}

func TestPartition_WidebandShift(t *testing.T) {
	req := corrRequest([]int{1, 2}, 300_000_000, 14_000)
	req.WidebandShift = 52_000_000

	result, err := Partition(req)

	require.NoError(t, err)
	require.NoError(t, Verify(req, result))
	for _, a := range result {
		require.Equal(t, int64(52_000_000), a.WidebandShift)
	}
}

func TestVerify_ReportsViolations(t *testing.T) {
	req := corrRequest([]int{1}, 350_000_000, 600)
	result, err := Partition(req)
	require.NoError(t, err)

	broken := result[1]
	broken.StartCh++
	broken.NumChannels--
	result[1] = broken

	err = Verify(req, result)

	require.ErrorIs(t, err, ErrInconsistentAssignment)
	require.Contains(t, err.Error(), "start_ch")
	require.Contains(t, err.Error(), "cover 599 channels")
}

func TestVerify_ChecksLastChannelFrequency(t *testing.T) {
	req := corrRequest([]int{1}, 350_000_000, 600)
	result, err := Partition(req)
	require.NoError(t, err)

	// Same first channel frequency, one channel fewer, unchanged EndCh.
	broken := result[1]
	broken.SliceCenterCh--
	broken.StartCh--
	broken.NumChannels--
	result[1] = broken

	err = Verify(req, result)

	require.ErrorIs(t, err, ErrInconsistentAssignment)
	require.Contains(t, err.Error(), "last channel at")
	require.NotContains(t, err.Error(), "first channel at")
}

func TestSliceIndex(t *testing.T) {
	require.Equal(t, int64(0), SliceIndex(0, 0))
	require.Equal(t, int64(0), SliceIndex(types.HalfFSBandwidth-1, 0))
	require.Equal(t, int64(1), SliceIndex(types.HalfFSBandwidth, 0))
	require.Equal(t, int64(-1), SliceIndex(-types.HalfFSBandwidth-1, 0))
	require.Equal(t, int64(2), SliceIndex(350_000_000, 0))
	require.Equal(t, int64(1), SliceIndex(350_000_000, 100_000_000))
}

func mustBand(t *testing.T, name string) types.Band {
	t.Helper()
	b, ok := types.LookupBand(name)
	require.True(t, ok)

	return b
}
