// Package types provides core type definitions and interfaces for the flexgp splitter.
//
// Shared types live here so that the root flexgp package and its internal
// implementations (aggregator, partitioner, sources) can depend on them without
// import cycles.
//
// Key types:
//   - Record, RecordMeta: A labeled record and the metadata a Resolver returns for it
//   - Group: Records sharing a group key, with their aggregate sort value
//   - Target: Requested split size, as a fraction or a count
//   - Seed: Optional seed making a run reproducible
//   - Partition, Result: Output of a split
//   - Resolver, SelectionStrategy: Pluggable lookup and selection behavior
//   - Logger, MetricsCollector, Hooks: Observability interfaces
package types
