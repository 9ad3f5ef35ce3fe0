package source

import (
	"context"
	"maps"
	"sync"

	"github.com/flexgp/flexgp/types"
)

// Static implements a resolver over a fixed map of record metadata.
type Static struct {
	mu      sync.RWMutex
	records map[string]types.RecordMeta
}

var _ types.Resolver = (*Static)(nil)

// NewStatic creates a new static resolver.
//
// Parameters:
//   - records: Record metadata keyed by record id (copied)
//
// Returns:
//   - *Static: Initialized static resolver
//
// Example:
//
//	src := source.NewStatic(map[string]types.RecordMeta{
//	    "TRAAAAW128F429D538": {GroupID: "ARD7TVE1187B99BFB1", SortKey: 2003},
//	})
//	splitter, err := flexgp.NewSplitter(src)
func NewStatic(records map[string]types.RecordMeta) *Static {
	s := &Static{}
	s.Update(records)

	return s
}

// Resolve returns the stored metadata for recordID.
//
// Returns:
//   - types.RecordMeta: Stored metadata
//   - bool: false when the record is unknown
//   - error: ctx.Err() when the context is done, nil otherwise
func (s *Static) Resolve(ctx context.Context, recordID string) (types.RecordMeta, bool, error) {
	if err := ctx.Err(); err != nil {
		return types.RecordMeta{}, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	meta, ok := s.records[recordID]

	return meta, ok, nil
}

// Update replaces the record map.
//
// Parameters:
//   - records: New record metadata keyed by record id (copied)
func (s *Static) Update(records map[string]types.RecordMeta) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[string]types.RecordMeta, len(records))
	maps.Copy(s.records, records)
}

// Len returns the number of known records.
func (s *Static) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}
