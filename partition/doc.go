// Package partition divides a requested band into coarse frequency slices and
// assigns each slice's fine channels to one FSP.
//
// The partitioner is a pure function. Given the same Request it always returns
// the same assignments, and it never returns a partial result: every input
// problem is reported as types.ErrInvalidArgument before any channel is
// distributed.
//
// # Channel layout
//
// The requested channels are start_freq + n*channel_width for n in
// [0, channel_count). They are handled in output groups of
// types.ChannelGroupSize channels, and a group belongs to the coarse slice
// that contains its first channel. FSPs are matched to slices in ascending
// id and slice order, so the number of FSPs must equal the number of slices
// the groups span.
//
// Within a slice, the FSP's fine channel grid is shifted by a sub-channel
// alignment shift so that the requested channel centres fall on fine channel
// centres. Local channel indices are numbered so that group boundaries fall on
// multiples of the group size.
//
// # Dish dependence
//
// Only DownShift depends on the dish scale constant k. Channel boundaries,
// alignment shifts and slice indices are identical for every k, which lets a
// builder compute them once with types.PlaceholderK.
package partition
