package partition

import (
	"slices"

	"github.com/arloliu/fspscan/types"
)

// Partition assigns the requested channels to the given FSPs.
//
// Every FSP receives one coarse frequency slice; FSPs and slices are paired in
// ascending order. The returned assignments are keyed by FSP id and together
// cover exactly ChannelCount channels, each FSP a whole number of groups.
//
// Parameters:
//   - req: Spectral request and dish constants
//
// Returns:
//   - map[int]types.ElementAssignment: One assignment per FSP id
//   - error: wraps types.ErrInvalidArgument if the request cannot be partitioned
//
// Example:
//
//	result, err := partition.Partition(partition.Request{
//	    FspIDs:       []int{1},
//	    StartFreq:    350_000_000,
//	    ChannelWidth: types.CorrChannelWidth,
//	    ChannelCount: 600,
//	    K:            1000,
//	    Band:         "1",
//	})
func Partition(req Request) (map[int]types.ElementAssignment, error) {
	band, err := req.validate()
	if err != nil {
		return nil, err
	}

	first, err := firstSlice(req, band)
	if err != nil {
		return nil, err
	}

	ids := slices.Clone(req.FspIDs)
	slices.Sort(ids)

	out := make(map[int]types.ElementAssignment, len(ids))
	next := 0
	for i, id := range ids {
		a := assign(req, band, first+int64(i))
		a.FspID = id
		a.StartChannelID = next
		next += a.NumChannels
		out[id] = a
	}

	return out, nil
}

// Ordered returns the assignments sorted by FSP id.
func Ordered(result map[int]types.ElementAssignment) []types.ElementAssignment {
	out := make([]types.ElementAssignment, 0, len(result))
	for _, a := range result {
		out = append(out, a)
	}
	slices.SortFunc(out, func(a, b types.ElementAssignment) int {
		return a.FspID - b.FspID
	})

	return out
}

// SliceIndex returns the coarse slice containing freq.
//
// Slice s covers [s*FSBandwidth + wb - HalfFSBandwidth, s*FSBandwidth + wb + HalfFSBandwidth).
func SliceIndex(freq, widebandShift int64) int64 {
	return floorDiv(freq-widebandShift+types.HalfFSBandwidth, types.FSBandwidth)
}

// SlicesNeeded returns the number of FSPs a request needs. It applies the same
// slice arithmetic as Partition without validating the FSP list.
func SlicesNeeded(req Request) int {
	if req.ChannelCount < types.ChannelGroupSize {
		return 0
	}
	first := SliceIndex(req.StartFreq, req.WidebandShift)
	last := SliceIndex(req.lastGroupStart(), req.WidebandShift)

	return int(last - first + 1)
}

// firstSlice checks the request against the band and the FSP count and returns
// the slice of the first requested channel.
func firstSlice(req Request, band types.Band) (int64, error) {
	first := SliceIndex(req.StartFreq, req.WidebandShift)
	last := SliceIndex(req.lastGroupStart(), req.WidebandShift)
	top := SliceIndex(req.EndFreq(), req.WidebandShift)

	if first < 0 || top >= int64(band.NumSlices) {
		return 0, invalidf("requested channels %d..%d Hz fall outside band %s slices 0..%d",
			req.StartFreq, req.EndFreq(), band.Name, band.NumSlices-1)
	}

	needed := int(last - first + 1)
	switch {
	case needed > len(req.FspIDs):
		return 0, invalidf("requested spectrum spans %d frequency slices but only %d fsp_ids were given",
			needed, len(req.FspIDs))
	case needed < len(req.FspIDs):
		return 0, invalidf("requested spectrum spans %d frequency slices, %d fsp_ids would be left without channels",
			needed, len(req.FspIDs)-needed)
	}

	return first, nil
}

// assign computes the assignment of slice s. FspID and StartChannelID are filled by the caller.
func assign(req Request, band types.Band, s int64) types.ElementAssignment {
	cw := req.ChannelWidth
	count := int64(req.ChannelCount)
	group := int64(types.ChannelGroupSize)

	origin := s*types.FSBandwidth + req.WidebandShift
	lower := origin - types.HalfFSBandwidth

	// Requested channel indices inside this slice, rounded to whole groups.
	entry := ceilDiv(lower-req.StartFreq, cw)
	exit := ceilDiv(lower+types.FSBandwidth-req.StartFreq, cw)
	firstN := max(roundUp(entry, group), 0)
	endN := min(roundUp(exit, group), count)

	// Local index zero sits on a group boundary at or below the slice's lower edge.
	zero := floorDiv(entry, group) * group

	shift := alignmentShift(req.StartFreq, origin, cw)
	center := (origin+shift-req.StartFreq)/cw - zero

	return types.ElementAssignment{
		SliceID:        int(s),
		StartCh:        int(firstN - zero),
		EndCh:          int(endN - 1 - zero),
		SliceCenterCh:  int(center),
		NumChannels:    int(endN - firstN),
		AlignmentShift: shift,
		DownShift:      DownShift(band, int(s), req.K),
		WidebandShift:  req.WidebandShift,
	}
}

// alignmentShift returns the shift in (-cw/2, cw/2] that moves the slice
// centre onto the requested channel grid.
func alignmentShift(startFreq, origin, cw int64) int64 {
	r := mod(startFreq-origin, cw)
	if 2*r > cw {
		r -= cw
	}

	return r
}

// DownShift returns the VCC down shift (Hz) of slice s for a dish with scale constant k.
//
// The VCC produces slices spaced by the band's native spacing; the down shift
// moves slice s onto the common FSBandwidth grid.
func DownShift(band types.Band, s, k int) int64 {
	return int64(s) * (types.FSBandwidth - band.NativeSliceSpacing(k))
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}

	return q
}

func ceilDiv(a, b int64) int64 {
	return -floorDiv(-a, b)
}

func roundUp(a, m int64) int64 {
	return ceilDiv(a, m) * m
}

func mod(a, m int64) int64 {
	return a - floorDiv(a, m)*m
}
