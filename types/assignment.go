package types

// ElementAssignment is the partitioning result for one FSP.
//
// Fine channel indices are local to the FSP's coarse frequency slice. The
// physical frequency of local channel ch is
//
//	SliceID*FSBandwidth + WidebandShift + AlignmentShift + (ch-SliceCenterCh)*channelWidth
//
// StartCh is a multiple of ChannelGroupSize and EndCh+1 is a multiple of
// ChannelGroupSize, so every FSP delivers whole output packets.
type ElementAssignment struct {
	// FspID is the processing element identifier.
	FspID int `json:"fsp_id"`

	// SliceID is the coarse frequency slice index the FSP processes.
	SliceID int `json:"fs_id"`

	// StartCh and EndCh are the first and last local fine channels (inclusive).
	StartCh int `json:"start_ch"`
	EndCh   int `json:"end_ch"`

	// SliceCenterCh is the local fine channel whose frequency is the slice
	// centre plus AlignmentShift.
	SliceCenterCh int `json:"slice_center_ch"`

	// NumChannels is EndCh - StartCh + 1.
	NumChannels int `json:"num_channels"`

	// StartChannelID is the offset of this FSP's first channel within the
	// processing region's channel stream.
	StartChannelID int `json:"start_channel_id"`

	// AlignmentShift is the sub-channel shift (Hz, |shift| < channel width)
	// aligning the slice's fine channel grid with the requested channels.
	AlignmentShift int64 `json:"alignment_shift_freq"`

	// DownShift is the dish-dependent shift (Hz) moving the VCC's native slice
	// centre onto the common slice grid.
	DownShift int64 `json:"vcc_downshift_freq"`

	// WidebandShift is the band-wide shift (Hz) applied before slicing.
	WidebandShift int64 `json:"wideband_shift_freq"`
}

// SliceCenter returns the physical centre frequency (Hz) of the assigned slice.
func (a ElementAssignment) SliceCenter() int64 {
	return int64(a.SliceID)*FSBandwidth + a.WidebandShift
}

// ChannelFrequency returns the physical frequency (Hz) of local fine channel ch.
func (a ElementAssignment) ChannelFrequency(ch int, channelWidth int64) int64 {
	return a.SliceCenter() + a.AlignmentShift + int64(ch-a.SliceCenterCh)*channelWidth
}

// StartFrequency returns the frequency of the first channel the FSP delivers.
func (a ElementAssignment) StartFrequency(channelWidth int64) int64 {
	return a.ChannelFrequency(a.StartCh, channelWidth)
}

// EndFrequency returns the frequency of the last channel the FSP delivers.
func (a ElementAssignment) EndFrequency(channelWidth int64) int64 {
	return a.ChannelFrequency(a.EndCh, channelWidth)
}

// Shifts returns the frequency shifts the FSP applies for the dish this
// assignment was computed with.
func (a ElementAssignment) Shifts() FreqShifts {
	return FreqShifts{
		DownShift:     a.DownShift,
		AlignShift:    a.AlignmentShift,
		WidebandShift: a.WidebandShift,
	}
}

// SameBoundaries reports whether a and b describe the same channel range of the
// same slice, ignoring the dish-dependent down shift.
func (a ElementAssignment) SameBoundaries(b ElementAssignment) bool {
	a.DownShift, b.DownShift = 0, 0

	return a == b
}

// FreqShifts holds the per-dish frequency shifts published to an FSP.
type FreqShifts struct {
	DownShift     int64 `json:"freq_down_shift"`
	AlignShift    int64 `json:"freq_align_shift"`
	WidebandShift int64 `json:"freq_wb_shift"`
}

// Total returns the sum of all shifts.
func (s FreqShifts) Total() int64 {
	return s.DownShift + s.AlignShift + s.WidebandShift
}
