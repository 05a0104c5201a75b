package fspscan

import "github.com/arloliu/fspscan/types"

// Re-export types from the types package.
//
// The aliases give callers fspscan.CorrConfiguration, fspscan.Logger and so on
// while internal packages depend only on types.
type (
	FunctionMode          = types.FunctionMode
	Band                  = types.Band
	FunctionConfiguration = types.FunctionConfiguration
	CorrConfiguration     = types.CorrConfiguration
	PstConfiguration      = types.PstConfiguration
	Spectrum              = types.Spectrum
	CorrProcessingRegion  = types.CorrProcessingRegion
	PstProcessingRegion   = types.PstProcessingRegion
	TimingBeam            = types.TimingBeam
	ElementConfig         = types.ElementConfig
	ElementCommon         = types.ElementCommon
	CorrConfig            = types.CorrConfig
	PstConfig             = types.PstConfig
	ElementAssignment     = types.ElementAssignment
	FreqShifts            = types.FreqShifts
	ChannelOffset         = types.ChannelOffset
)

// Re-export interfaces from the types package.
type (
	DishRegistry     = types.DishRegistry
	Snapshotter      = types.Snapshotter
	Logger           = types.Logger
	MetricsCollector = types.MetricsCollector
)

// Re-export function modes.
const (
	FunctionModeCorr = types.FunctionModeCorr
	FunctionModePst  = types.FunctionModePst
)
