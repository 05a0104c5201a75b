package types

// ChannelOffset maps an FSP's local fine channel index to the channel ID seen
// by the consumer (SDP or PST): consumerID = localCh + offset (mod 2^32).
//
// The firmware consumes the value as an unsigned 32-bit integer, so negative
// offsets are carried in two's complement.
type ChannelOffset uint32

// NewChannelOffset computes startChannelID + assignedStartChannelID - localStartCh
// with unsigned 32-bit wraparound.
func NewChannelOffset(startChannelID uint32, assignedStartChannelID, localStartCh int) ChannelOffset {
	return ChannelOffset(startChannelID + uint32(assignedStartChannelID) - uint32(localStartCh)) //nolint:gosec // wraparound is the firmware contract
}

// ChannelID returns the consumer channel ID of local fine channel ch.
func (o ChannelOffset) ChannelID(ch int) uint32 {
	return uint32(ch) + uint32(o) //nolint:gosec // wraparound is the firmware contract
}
