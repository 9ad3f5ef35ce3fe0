package flexgp

import "github.com/flexgp/flexgp/types"

// Sentinel errors returned by the Splitter. Match them with errors.Is.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = types.ErrInvalidConfig

	// ErrResolverRequired is returned by SplitGrouped when the Splitter has no resolver.
	ErrResolverRequired = types.ErrResolverRequired

	// ErrSelectionStrategyRequired is returned when the selection strategy is nil.
	ErrSelectionStrategyRequired = types.ErrSelectionStrategyRequired

	// ErrInvalidTarget is returned for fractions outside (0,1), non-positive
	// counts, NaN, and counts larger than the available records.
	ErrInvalidTarget = types.ErrInvalidTarget

	// ErrConstraintViolation is returned when allocation sizes exceed the input.
	ErrConstraintViolation = types.ErrConstraintViolation

	// ErrInvalidAllocation is returned for empty or duplicate allocation destinations.
	ErrInvalidAllocation = types.ErrInvalidAllocation

	// ErrLookupFailure wraps resolver errors.
	ErrLookupFailure = types.ErrLookupFailure

	// ErrConnectivity marks transient backend failures.
	ErrConnectivity = types.ErrConnectivity

	// ErrWriteFailed is returned when outputs cannot be written.
	ErrWriteFailed = types.ErrWriteFailed
)
