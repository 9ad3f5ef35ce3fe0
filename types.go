package flexgp

import "github.com/flexgp/flexgp/types"

// Re-export types from the types package.
//
// Internal packages depend on types rather than on the root package, which
// avoids import cycles while still offering flexgp.Target, flexgp.Logger, etc.
type (
	Record           = types.Record
	RecordMeta       = types.RecordMeta
	Group            = types.Group
	Partition        = types.Partition
	Target           = types.Target
	Seed             = types.Seed
	Stats            = types.Stats
	Result           = types.Result
	Allocation       = types.Allocation
	AllocationResult = types.AllocationResult
)

// Re-export interfaces from the types package for convenience.
type (
	Resolver          = types.Resolver
	SelectionStrategy = types.SelectionStrategy
	MetricsCollector  = types.MetricsCollector
	Logger            = types.Logger
	Hooks             = types.Hooks
)

// Re-export constructors from the types package.
var (
	Fraction       = types.Fraction
	Count          = types.Count
	ParseTarget    = types.ParseTarget
	SeedFromInt    = types.SeedFromInt
	SeedFromString = types.SeedFromString
	ParseSeed      = types.ParseSeed
)
