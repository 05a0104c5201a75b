// Package builder turns a scan's function configuration into one
// configuration record per FSP.
//
// A Builder is created for one function mode (NewCorrelation or NewPst) from
// an immutable Params value. Build walks every processing region in order,
// partitions it with package partition, resolves per-dish constants from the
// dish registry and splits routing tables with package channelmap.
//
// Build never returns a partial result. All validation failures wrap
// types.ErrInvalidArgument.
package builder
