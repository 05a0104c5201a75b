package types

import "slices"

// FunctionConfiguration is the mode-specific part of a scan request.
//
// It is implemented only by CorrConfiguration and PstConfiguration.
type FunctionConfiguration interface {
	// FunctionMode returns the mode the configuration targets.
	FunctionMode() FunctionMode

	// RegionCount returns the number of processing regions.
	RegionCount() int

	isFunctionConfiguration()
}

// CorrConfiguration is the CORR function configuration of a scan.
type CorrConfiguration struct {
	ProcessingRegions []CorrProcessingRegion `json:"processing_regions"`
}

// PstConfiguration is the PST-BF function configuration of a scan.
type PstConfiguration struct {
	ProcessingRegions []PstProcessingRegion `json:"processing_regions"`
}

var (
	_ FunctionConfiguration = CorrConfiguration{}
	_ FunctionConfiguration = PstConfiguration{}
)

// FunctionMode returns FunctionModeCorr.
func (CorrConfiguration) FunctionMode() FunctionMode { return FunctionModeCorr }

// RegionCount returns the number of processing regions.
func (c CorrConfiguration) RegionCount() int { return len(c.ProcessingRegions) }

func (CorrConfiguration) isFunctionConfiguration() {}

// FunctionMode returns FunctionModePst.
func (PstConfiguration) FunctionMode() FunctionMode { return FunctionModePst }

// RegionCount returns the number of processing regions.
func (c PstConfiguration) RegionCount() int { return len(c.ProcessingRegions) }

func (PstConfiguration) isFunctionConfiguration() {}

// Spectrum is the spectral request shared by every processing region.
type Spectrum struct {
	// FspIDs lists the FSPs to use. Order does not matter; ids are sorted before use.
	FspIDs []int `json:"fsp_ids"`

	// StartFreq is the centre frequency (Hz) of the first requested channel.
	StartFreq int64 `json:"start_freq"`

	// ChannelWidth is the fine channel width (Hz).
	ChannelWidth int64 `json:"channel_width"`

	// ChannelCount is the number of requested channels (multiple of ChannelGroupSize).
	ChannelCount int `json:"channel_count"`
}

// SortedFspIDs returns a sorted copy of the FSP ids.
func (s Spectrum) SortedFspIDs() []int {
	ids := slices.Clone(s.FspIDs)
	slices.Sort(ids)

	return ids
}

// CorrProcessingRegion is one contiguous CORR spectral request.
type CorrProcessingRegion struct {
	Spectrum

	// Receptors restricts the region to a subset of the subarray's dishes.
	// Empty means all dishes of the subarray.
	Receptors []string `json:"receptors,omitempty"`

	// IntegrationFactor is the correlator integration time in units of the
	// minimum integration period.
	IntegrationFactor int `json:"integration_factor"`

	// SdpStartChannelID is the SDP channel ID of the region's first channel.
	SdpStartChannelID uint32 `json:"sdp_start_channel_id"`

	// Output routing tables indexed by SDP channel ID.
	OutputHost    ChannelMap[string] `json:"output_host,omitempty"`
	OutputPort    ChannelMap[int]    `json:"output_port,omitempty"`
	OutputLinkMap ChannelMap[int]    `json:"output_link_map,omitempty"`
}

// HasOutput reports whether any routing table is present.
func (r CorrProcessingRegion) HasOutput() bool {
	return len(r.OutputHost) > 0 || len(r.OutputPort) > 0 || len(r.OutputLinkMap) > 0
}

// PstProcessingRegion is one contiguous PST-BF spectral request.
type PstProcessingRegion struct {
	Spectrum

	// PstStartChannelID is the PST channel ID of the region's first channel.
	PstStartChannelID uint32 `json:"pst_start_channel_id"`

	// TimingBeams are copied verbatim into every FSP of the region.
	TimingBeams []TimingBeam `json:"timing_beams"`
}

// TimingBeam is one PST timing beam of a processing region.
type TimingBeam struct {
	TimingBeamID int `json:"timing_beam_id"`

	// Receptors lists the dishes forming the beam. Empty means all dishes of
	// the subarray.
	Receptors []string `json:"receptors,omitempty"`

	// Output routing is carried for the downstream PST pipeline and is not
	// split across FSPs.
	OutputHost    ChannelMap[string] `json:"output_host,omitempty"`
	OutputPort    ChannelMap[int]    `json:"output_port,omitempty"`
	OutputLinkMap ChannelMap[int]    `json:"output_link_map,omitempty"`
}

// Clone returns a deep copy of the beam.
func (b TimingBeam) Clone() TimingBeam {
	b.Receptors = slices.Clone(b.Receptors)
	b.OutputHost = b.OutputHost.Clone()
	b.OutputPort = b.OutputPort.Clone()
	b.OutputLinkMap = b.OutputLinkMap.Clone()

	return b
}
