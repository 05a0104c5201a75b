package channelmap

import (
	"fmt"
	"slices"

	"github.com/arloliu/fspscan/types"
)

// Split divides m into len(boundaries)-1 tables, one per channel range
// [boundaries[i], boundaries[i+1]).
//
// Each output table starts with an entry at its range's first channel carrying
// the value in effect there, followed by the entries that fall strictly inside
// the range. Before the first entry of m no value is in effect, so such a
// range holds only its own entries, if any.
// Entries at or beyond the last boundary are dropped. m is not modified.
//
// Parameters:
//   - m: Routing table in any order; channels must be unique
//   - boundaries: Strictly ascending range boundaries (at least two)
//
// Returns:
//   - []types.ChannelMap[T]: One table per range
//   - error: wraps types.ErrInvalidArgument for bad boundaries or duplicate channels
//
// Example:
//
//	hosts := types.ChannelMap[string]{{Channel: 0, Value: "10.0.0.1"}, {Channel: 400, Value: "10.0.0.2"}}
//	parts, _ := channelmap.Split(hosts, []int{0, 300, 600})
//	// parts[0] = [[0 "10.0.0.1"]]
//	// parts[1] = [[300 "10.0.0.1"] [400 "10.0.0.2"]]
func Split[T any](m types.ChannelMap[T], boundaries []int) ([]types.ChannelMap[T], error) {
	if len(boundaries) < 2 {
		return nil, fmt.Errorf("%w: channel map split needs at least two boundaries, got %d",
			types.ErrInvalidArgument, len(boundaries))
	}
	for i := 1; i < len(boundaries); i++ {
		if boundaries[i] <= boundaries[i-1] {
			return nil, fmt.Errorf("%w: channel map boundaries must be strictly ascending, %d follows %d",
				types.ErrInvalidArgument, boundaries[i], boundaries[i-1])
		}
	}

	entries, err := sorted(m)
	if err != nil {
		return nil, err
	}

	out := make([]types.ChannelMap[T], len(boundaries)-1)
	next := 0 // index of the first entry not yet consumed
	for i := range out {
		lo, hi := boundaries[i], boundaries[i+1]
		part := types.ChannelMap[T]{}

		// Skip every entry at or below lo; the last one skipped is in effect at lo.
		for next < len(entries) && entries[next].Channel <= lo {
			next++
		}
		if next > 0 {
			part = append(part, types.ChannelEntry[T]{Channel: lo, Value: entries[next-1].Value})
		}

		for next < len(entries) && entries[next].Channel < hi {
			part = append(part, entries[next])
			next++
		}
		out[i] = part
	}

	return out, nil
}

// Boundaries returns the split boundaries of a region whose FSPs start at the
// given offsets within a channel stream beginning at channel base.
//
// Parameters:
//   - base: Consumer channel ID of the region's first channel
//   - starts: Ascending per-FSP start offsets (the first is normally 0)
//   - count: Total channels in the region
//
// Returns:
//   - []int: len(starts)+1 boundaries
func Boundaries(base int, starts []int, count int) []int {
	out := make([]int, 0, len(starts)+1)
	for _, s := range starts {
		out = append(out, base+s)
	}

	return append(out, base+count)
}

func sorted[T any](m types.ChannelMap[T]) (types.ChannelMap[T], error) {
	entries := m.Clone()
	slices.SortStableFunc(entries, func(a, b types.ChannelEntry[T]) int {
		return a.Channel - b.Channel
	})
	for i := 1; i < len(entries); i++ {
		if entries[i].Channel == entries[i-1].Channel {
			return nil, fmt.Errorf("%w: channel map has duplicate channel %d",
				types.ErrInvalidArgument, entries[i].Channel)
		}
	}

	return entries, nil
}
