package partition

import (
	"errors"
	"fmt"
	"slices"

	"github.com/arloliu/fspscan/types"
)

// ErrInconsistentAssignment is returned by Verify when a result breaks one of
// the partitioning guarantees.
var ErrInconsistentAssignment = errors.New("inconsistent assignment")

// Verify checks that result is a valid partitioning of req.
//
// It checks coverage, group alignment, slice ordering, contiguous channel IDs,
// the alignment shift bound and that every FSP's first and last channels land
// on the requested frequency grid. All violations are reported together.
//
// Parameters:
//   - req: The request the result was computed for
//   - result: Assignments keyed by FSP id
//
// Returns:
//   - error: nil if consistent, otherwise joined errors wrapping ErrInconsistentAssignment
func Verify(req Request, result map[int]types.ElementAssignment) error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInconsistentAssignment, fmt.Sprintf(format, args...)))
	}

	ids := slices.Clone(req.FspIDs)
	slices.Sort(ids)
	if len(result) != len(ids) {
		fail("got %d assignments for %d fsp_ids", len(result), len(ids))
	}

	cw := req.ChannelWidth
	group := types.ChannelGroupSize
	total := 0
	prevSlice := -1
	for _, id := range ids {
		a, ok := result[id]
		if !ok {
			fail("fsp %d has no assignment", id)
			continue
		}
		if a.FspID != id {
			fail("fsp %d: assignment carries fsp_id %d", id, a.FspID)
		}
		if a.NumChannels <= 0 || a.NumChannels != a.EndCh-a.StartCh+1 {
			fail("fsp %d: num_channels %d does not match range %d..%d", id, a.NumChannels, a.StartCh, a.EndCh)
		}
		if a.StartCh%group != 0 {
			fail("fsp %d: start_ch %d is not a multiple of %d", id, a.StartCh, group)
		}
		if (a.EndCh+1)%group != 0 {
			fail("fsp %d: end_ch %d is not one below a multiple of %d", id, a.EndCh, group)
		}
		if a.SliceID <= prevSlice {
			fail("fsp %d: slice %d does not follow slice %d", id, a.SliceID, prevSlice)
		}
		prevSlice = a.SliceID
		if a.StartChannelID != total {
			fail("fsp %d: start_channel_id %d, expected %d", id, a.StartChannelID, total)
		}
		if 2*a.AlignmentShift > cw || 2*a.AlignmentShift <= -cw {
			fail("fsp %d: alignment shift %d exceeds half a channel", id, a.AlignmentShift)
		}
		want := req.StartFreq + int64(a.StartChannelID)*cw
		if got := a.StartFrequency(cw); got != want {
			fail("fsp %d: first channel at %d Hz, expected %d Hz", id, got, want)
		}
		want = req.StartFreq + int64(a.StartChannelID+a.NumChannels-1)*cw
		if got := a.EndFrequency(cw); got != want {
			fail("fsp %d: last channel at %d Hz, expected %d Hz", id, got, want)
		}
		total += a.NumChannels
	}

	if total != req.ChannelCount {
		fail("assignments cover %d channels, expected %d", total, req.ChannelCount)
	}

	return errors.Join(errs...)
}
