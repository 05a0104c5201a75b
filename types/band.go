package types

import "strings"

// Physical constants of the Mid.CBF signal chain.
//
// All frequencies are in Hz. Every VCC resamples its coarse frequency slices to
// CommonSampleRate; the usable slice bandwidth is the common rate divided by the
// VCC oversampling factor (10/9).
const (
	// CommonSampleRate is the sample rate of every resampled frequency slice.
	CommonSampleRate int64 = 220_200_960

	// FSBandwidth is the width of one coarse frequency slice (CommonSampleRate * 9 / 10).
	FSBandwidth int64 = CommonSampleRate * 9 / 10

	// HalfFSBandwidth is half of FSBandwidth.
	HalfFSBandwidth int64 = FSBandwidth / 2

	// ChannelGroupSize is the number of fine channels carried in one output packet.
	// Every FSP must deliver a whole number of groups.
	ChannelGroupSize = 20

	// CorrChannelWidth is the only fine channel width supported in CORR mode.
	CorrChannelWidth int64 = 13_440

	// PstChannelWidth is the only fine channel width supported in PST-BF mode.
	PstChannelWidth int64 = 53_760

	// DeltaF is the frequency offset step scaled by a dish's k value.
	DeltaF int64 = 1_800

	// MinK and MaxK bound the dish scale constant (inclusive).
	MinK = 1
	MaxK = 2222

	// PlaceholderK is the k value used when only the k-invariant channel
	// boundaries of a processing region are needed.
	PlaceholderK = 1000
)

// Band describes one receiver band.
//
// A dish digitises a band at BaseSampleRate + k*DeltaF*SampleRateNum/SampleRateDen
// and its VCC channelises it into NativeSlices coarse slices. Every band yields a
// native slice spacing of 198 MHz + 90*k Hz, which differs from FSBandwidth and
// is compensated per dish by the VCC down shift.
type Band struct {
	// Name is the operator-facing band name ("1", "2", "3", "4", "5a", "5b").
	Name string

	// Index is the zero-based band index used by the firmware.
	Index int

	// BaseSampleRate is the dish sample rate for k = 0 (Hz).
	BaseSampleRate int64

	// SampleRateNum and SampleRateDen form the rational sample rate constant
	// multiplying k*DeltaF.
	SampleRateNum int64
	SampleRateDen int64

	// NativeSlices is the number of coarse slices the VCC produces per digitised band.
	NativeSlices int64

	// NumSlices is the number of coarse frequency slices an FSP can be assigned
	// in this band. It is also the maximum number of FSPs a processing region
	// may request.
	NumSlices int
}

var bands = map[string]Band{
	"1":  {Name: "1", Index: 0, BaseSampleRate: 3_960_000_000, SampleRateNum: 1, SampleRateDen: 1, NativeSlices: 20, NumSlices: 10},
	"2":  {Name: "2", Index: 1, BaseSampleRate: 3_960_000_000, SampleRateNum: 1, SampleRateDen: 1, NativeSlices: 20, NumSlices: 10},
	"3":  {Name: "3", Index: 2, BaseSampleRate: 3_168_000_000, SampleRateNum: 4, SampleRateDen: 5, NativeSlices: 16, NumSlices: 16},
	"4":  {Name: "4", Index: 3, BaseSampleRate: 5_940_000_000, SampleRateNum: 3, SampleRateDen: 2, NativeSlices: 30, NumSlices: 27},
	"5a": {Name: "5a", Index: 4, BaseSampleRate: 5_940_000_000, SampleRateNum: 3, SampleRateDen: 2, NativeSlices: 30, NumSlices: 27},
	"5b": {Name: "5b", Index: 5, BaseSampleRate: 5_940_000_000, SampleRateNum: 3, SampleRateDen: 2, NativeSlices: 30, NumSlices: 27},
}

// LookupBand returns the band with the given name.
//
// Band names are case-insensitive ("5A" and "5a" are the same band).
//
// Returns:
//   - Band: The band descriptor
//   - bool: false if the name is not a supported band
func LookupBand(name string) (Band, bool) {
	b, ok := bands[strings.ToLower(strings.TrimSpace(name))]

	return b, ok
}

// BandNames returns the supported band names in firmware index order.
func BandNames() []string {
	return []string{"1", "2", "3", "4", "5a", "5b"}
}

// DishSampleRate returns the sample rate (Hz) of a dish with scale constant k.
func (b Band) DishSampleRate(k int) int64 {
	return b.BaseSampleRate + int64(k)*DeltaF*b.SampleRateNum/b.SampleRateDen
}

// NativeSliceSpacing returns the centre-to-centre spacing (Hz) of the coarse
// slices produced by a dish with scale constant k, before resampling.
func (b Band) NativeSliceSpacing(k int) int64 {
	num := b.BaseSampleRate*b.SampleRateDen + int64(k)*DeltaF*b.SampleRateNum

	return num / (b.SampleRateDen * b.NativeSlices)
}
