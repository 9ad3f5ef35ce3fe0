package types

import "context"

// RecordMeta is the metadata a Resolver knows about a record.
type RecordMeta struct {
	// GroupID identifies the group the record belongs to (e.g. an artist id).
	GroupID string `json:"group_id"`

	// SortKey is the numeric value groups are ordered by (e.g. release year).
	SortKey float64 `json:"sort_key"`
}

// Record is a labeled record with its resolved metadata.
type Record struct {
	ID      string
	GroupID string
	SortKey float64
}

// Resolver looks up the group and sort key of a record.
//
// Implementations can query various backends:
//   - SQLite: the track metadata database
//   - NATS KV: metadata published to a JetStream key-value bucket
//   - Static: fixed map for testing
//
// The aggregator calls Resolve exactly once per distinct record id, in input order.
type Resolver interface {
	// Resolve returns the metadata for a record.
	//
	// Implementations should:
	//   - Return found=false (and a nil error) for records that must be excluded,
	//     such as missing metadata or sentinel sort keys
	//   - Return an error only for lookup failures (backend unavailable, corrupt data)
	//   - Handle context cancellation
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//   - recordID: Record identifier
	//
	// Returns:
	//   - RecordMeta: Group and sort key (zero value when not found)
	//   - bool: true if the record is known and eligible
	//   - error: Lookup error (nil on success or not found)
	Resolve(ctx context.Context, recordID string) (RecordMeta, bool, error)
}
