// Package registry provides dish registries: the lookup from a dish id to its
// VCC id and frequency offset scale constant k.
//
// Three sources are available:
//
//   - Static: an in-memory registry, updated explicitly
//   - File: a YAML file, reloaded on change between Start and Stop
//   - KV: a NATS JetStream KV bucket, kept current by a watcher
//
// Every registry implements types.DishRegistry and types.Snapshotter, so a
// scan builder sees one consistent view for a whole build.
package registry
