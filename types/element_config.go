package types

// ElementConfig is the configuration record of one FSP.
//
// It is implemented only by *CorrConfig and *PstConfig; use a type switch to
// reach the mode-specific fields.
type ElementConfig interface {
	// Common returns the mode-independent part of the record.
	Common() *ElementCommon

	isElementConfig()
}

var (
	_ ElementConfig = (*CorrConfig)(nil)
	_ ElementConfig = (*PstConfig)(nil)
)

// ElementCommon holds the fields every FSP record carries.
type ElementCommon struct {
	FspID            int          `json:"fsp_id"`
	FunctionMode     FunctionMode `json:"function_mode"`
	FrequencyBand    string       `json:"frequency_band"`
	FrequencySliceID int          `json:"frequency_slice_id"`

	// Receptors are the dishes the region uses, in subarray order.
	Receptors []string `json:"receptors"`

	StartFreq      int64 `json:"start_freq"`
	ChannelWidth   int64 `json:"channel_width"`
	ChannelCount   int   `json:"channel_count"`
	StartChannelID int   `json:"start_channel_id"`

	// Local fine channel range of the FSP's slice.
	StartCh       int `json:"start_ch"`
	EndCh         int `json:"end_ch"`
	SliceCenterCh int `json:"slice_center_ch"`

	ChannelOffset ChannelOffset `json:"channel_offset"`

	// VCCShifts holds the shifts for every dish of the subarray, keyed by VCC ID.
	VCCShifts map[int]FreqShifts `json:"vcc_id_to_freq_shifts"`
}

// Common returns the embedded common record.
func (c *ElementCommon) Common() *ElementCommon { return c }

// CorrConfig is the CORR configuration of one FSP.
type CorrConfig struct {
	ElementCommon

	IntegrationFactor int    `json:"integration_factor"`
	SdpStartChannelID uint32 `json:"sdp_start_channel_id"`

	// GainCorrections is the coarse-slice gain correction per VCC ID.
	GainCorrections map[int]float64 `json:"vcc_id_to_gain_correction"`

	// Routing tables restricted to this FSP's channels.
	OutputHost    ChannelMap[string] `json:"output_host,omitempty"`
	OutputPort    ChannelMap[int]    `json:"output_port,omitempty"`
	OutputLinkMap ChannelMap[int]    `json:"output_link_map,omitempty"`
}

func (*CorrConfig) isElementConfig() {}

// PstConfig is the PST-BF configuration of one FSP.
type PstConfig struct {
	ElementCommon

	PstStartChannelID uint32       `json:"pst_start_channel_id"`
	TimingBeams       []TimingBeam `json:"timing_beams"`
}

func (*PstConfig) isElementConfig() {}
