package types

import "errors"

// Sentinel errors for the flexgp library.
//
// Components wrap these with context using fmt.Errorf("...: %w", err) so that
// callers can match them with errors.Is regardless of the wrapping depth.

// Splitter errors - Public API errors returned by the Splitter.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrResolverRequired is returned when a grouped split is requested without a resolver.
	ErrResolverRequired = errors.New("record resolver is required")

	// ErrSelectionStrategyRequired is returned when the selection strategy is nil.
	ErrSelectionStrategyRequired = errors.New("selection strategy is required")
)

// Target and allocation errors.
var (
	// ErrInvalidTarget is returned when a split target is outside (0,1) as a
	// fraction, non-positive as a count, or larger than the available total.
	ErrInvalidTarget = errors.New("invalid split target")

	// ErrConstraintViolation is returned when the requested output sizes exceed
	// the number of available records. No output is produced.
	ErrConstraintViolation = errors.New("requested sizes exceed available records")

	// ErrInvalidAllocation is returned when an output allocation is malformed
	// (empty or duplicate destination).
	ErrInvalidAllocation = errors.New("invalid allocation")
)

// Lookup errors.
var (
	// ErrLookupFailure wraps errors returned by a Resolver. The resolver's own
	// error stays reachable through errors.Is and errors.As.
	ErrLookupFailure = errors.New("record lookup failed")

	// ErrConnectivity indicates the lookup backend could not be reached.
	// Retrying resolvers treat it as transient.
	ErrConnectivity = errors.New("connectivity issue")

	// ErrInvalidRecordMeta is returned by sources when stored metadata cannot be decoded.
	ErrInvalidRecordMeta = errors.New("invalid record metadata")
)

// Output errors.
var (
	// ErrWriteFailed is returned when output files cannot be written.
	ErrWriteFailed = errors.New("failed to write outputs")
)
