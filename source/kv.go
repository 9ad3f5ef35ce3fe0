package source

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/flexgp/flexgp/internal/natsutil"
	"github.com/flexgp/flexgp/types"
)

// KV resolves records from a NATS JetStream key-value bucket.
//
// Each key is a record id and each value a JSON object
// {"group_id": "...", "sort_key": 1994}. A missing or deleted key means the
// record is excluded, and so does a sort key <= 0 (an unknown year), matching
// the year > 0 filter of DefaultSQLiteQuery.
type KV struct {
	kv jetstream.KeyValue
}

var _ types.Resolver = (*KV)(nil)

// NewKV creates a resolver over an opened bucket.
//
// Example:
//
//	js, _ := jetstream.New(nc)
//	bucket, _ := js.KeyValue(ctx, "tracks")
//	src := source.NewKV(bucket)
func NewKV(kv jetstream.KeyValue) *KV {
	return &KV{kv: kv}
}

// Resolve fetches and decodes the metadata stored under recordID.
//
// Returns:
//   - types.RecordMeta: Decoded metadata
//   - bool: false when the key does not exist or its sort key is <= 0
//   - error: Transport errors (types.ErrConnectivity wrapped when transient),
//     or types.ErrInvalidRecordMeta for undecodable values
func (s *KV) Resolve(ctx context.Context, recordID string) (types.RecordMeta, bool, error) {
	entry, err := s.kv.Get(ctx, recordID)
	if natsutil.IsKeyNotFound(err) {
		return types.RecordMeta{}, false, nil
	}
	if err != nil {
		if natsutil.IsConnectivityError(err) {
			return types.RecordMeta{}, false, fmt.Errorf("%w: get %s: %w", types.ErrConnectivity, recordID, err)
		}

		return types.RecordMeta{}, false, fmt.Errorf("get %s: %w", recordID, err)
	}

	var meta types.RecordMeta
	if err := json.Unmarshal(entry.Value(), &meta); err != nil {
		return types.RecordMeta{}, false, fmt.Errorf("%w: key %s: %w", types.ErrInvalidRecordMeta, recordID, err)
	}
	if meta.GroupID == "" {
		return types.RecordMeta{}, false, fmt.Errorf("%w: key %s: empty group_id", types.ErrInvalidRecordMeta, recordID)
	}
	if meta.SortKey <= 0 {
		return types.RecordMeta{}, false, nil
	}

	return meta, true, nil
}

// LoadKV publishes records into a bucket in the format KV reads.
//
// Parameters:
//   - ctx: Context for the puts
//   - kv: Target bucket
//   - records: Records to store; each is keyed by its ID
//
// Returns:
//   - int: Number of records written before any error
//   - error: First put failure
func LoadKV(ctx context.Context, kv jetstream.KeyValue, records []types.Record) (int, error) {
	for i, rec := range records {
		data, err := json.Marshal(types.RecordMeta{GroupID: rec.GroupID, SortKey: rec.SortKey})
		if err != nil {
			return i, fmt.Errorf("encode %s: %w", rec.ID, err)
		}
		if _, err := kv.Put(ctx, rec.ID, data); err != nil {
			return i, fmt.Errorf("put %s: %w", rec.ID, err)
		}
	}

	return len(records), nil
}
