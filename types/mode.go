package types

// FunctionMode identifies the FSP processing function.
type FunctionMode string

const (
	// FunctionModeCorr is the imaging correlator function.
	FunctionModeCorr FunctionMode = "CORR"

	// FunctionModePst is the pulsar-timing beamformer function.
	FunctionModePst FunctionMode = "PST-BF"
)

// String returns the mode name as published to the FSP.
func (m FunctionMode) String() string {
	return string(m)
}

// ChannelWidth returns the fine channel width (Hz) the mode supports, or 0 for
// an unknown mode.
func (m FunctionMode) ChannelWidth() int64 {
	switch m {
	case FunctionModeCorr:
		return CorrChannelWidth
	case FunctionModePst:
		return PstChannelWidth
	default:
		return 0
	}
}

// Valid reports whether m is a known function mode.
func (m FunctionMode) Valid() bool {
	return m.ChannelWidth() != 0
}
