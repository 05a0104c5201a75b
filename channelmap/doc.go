// Package channelmap splits channel-indexed routing tables across the channel
// ranges of individual FSPs.
//
// A routing table is a sparse list of (channel, value) entries: each value
// applies from its channel up to the next entry. Splitting keeps that
// meaning intact inside every range, so the value in effect at a range's first
// channel is always stated explicitly.
package channelmap
