package partition

import (
	"fmt"

	"github.com/arloliu/fspscan/types"
)

// Request is the input of Partition.
//
// Zero values mean "not provided" and are rejected where the field is required.
type Request struct {
	// FspIDs lists the FSPs to assign. Sorted ascending before use.
	FspIDs []int

	// StartFreq is the centre frequency (Hz) of the first requested channel.
	StartFreq int64

	// ChannelWidth is the fine channel width (Hz). Must match the mode.
	ChannelWidth int64

	// ChannelCount is the number of requested channels.
	ChannelCount int

	// K is the dish scale constant used for the down shift.
	K int

	// WidebandShift is the band-wide frequency shift (Hz).
	WidebandShift int64

	// Band is the receiver band name.
	Band string

	// Mode selects the supported channel width. Defaults to CORR.
	Mode types.FunctionMode
}

// FunctionMode returns the request's mode, defaulting to CORR.
func (r Request) FunctionMode() types.FunctionMode {
	if r.Mode == "" {
		return types.FunctionModeCorr
	}

	return r.Mode
}

// EndFreq returns the centre frequency of the last requested channel.
func (r Request) EndFreq() int64 {
	return r.StartFreq + r.ChannelWidth*int64(r.ChannelCount-1)
}

// lastGroupStart returns the frequency of the first channel of the last output group.
func (r Request) lastGroupStart() int64 {
	return r.StartFreq + r.ChannelWidth*int64(r.ChannelCount-types.ChannelGroupSize)
}

// validate checks every field that does not depend on the slice arithmetic.
func (r Request) validate() (types.Band, error) {
	mode := r.FunctionMode()
	if !mode.Valid() {
		return types.Band{}, invalidf("unsupported function mode %q", mode)
	}

	if r.Band == "" {
		return types.Band{}, invalidf("band_name is required")
	}
	band, ok := types.LookupBand(r.Band)
	if !ok {
		return types.Band{}, invalidf("unsupported band_name %q", r.Band)
	}

	if len(r.FspIDs) == 0 {
		return types.Band{}, invalidf("fsp_ids must not be empty")
	}
	if len(r.FspIDs) > band.NumSlices {
		return types.Band{}, invalidf("fsp_ids has %d entries, band %s supports at most %d",
			len(r.FspIDs), band.Name, band.NumSlices)
	}
	seen := make(map[int]struct{}, len(r.FspIDs))
	for _, id := range r.FspIDs {
		if id <= 0 {
			return types.Band{}, invalidf("fsp_id %d must be positive", id)
		}
		if _, dup := seen[id]; dup {
			return types.Band{}, invalidf("fsp_ids contains duplicate id %d", id)
		}
		seen[id] = struct{}{}
	}

	if want := mode.ChannelWidth(); r.ChannelWidth != want {
		return types.Band{}, invalidf("channel_width %d is not supported in %s mode, expected %d",
			r.ChannelWidth, mode, want)
	}

	if r.ChannelCount <= 0 {
		return types.Band{}, invalidf("channel_count must be positive, got %d", r.ChannelCount)
	}
	if r.ChannelCount%types.ChannelGroupSize != 0 {
		return types.Band{}, invalidf("channel_count %d is not a multiple of %d",
			r.ChannelCount, types.ChannelGroupSize)
	}

	// Bound every input of the slice arithmetic so no product or sum can overflow int64.
	if limit := maxChannels(band, r.ChannelWidth); r.ChannelCount > limit {
		return types.Band{}, invalidf("channel_count %d exceeds the %d channels band %s can hold",
			r.ChannelCount, limit, band.Name)
	}
	span := int64(band.NumSlices) * types.FSBandwidth
	if r.StartFreq < -span || r.StartFreq > span {
		return types.Band{}, invalidf("start_freq %d Hz is outside band %s", r.StartFreq, band.Name)
	}
	if r.WidebandShift < -span || r.WidebandShift > span {
		return types.Band{}, invalidf("wideband shift %d Hz exceeds the width of band %s", r.WidebandShift, band.Name)
	}

	if r.K < types.MinK || r.K > types.MaxK {
		return types.Band{}, invalidf("k %d is outside [%d, %d]", r.K, types.MinK, types.MaxK)
	}

	return band, nil
}

// maxChannels returns the most channels of width cw that band's slices can
// carry, allowing one spare group per slice for group rounding.
func maxChannels(band types.Band, cw int64) int {
	return band.NumSlices * (int(types.FSBandwidth/cw) + types.ChannelGroupSize)
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", types.ErrInvalidArgument, fmt.Sprintf(format, args...))
}
