package source

import (
	"context"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/flexgp/flexgp/types"
)

type cachedEntry struct {
	meta  types.RecordMeta
	found bool
}

// Cached memoizes a resolver's successful answers, including not-found ones.
//
// Errors are never cached, so a failed lookup is attempted again next time.
// Safe for concurrent use; one Cached can back several splitters.
type Cached struct {
	next    types.Resolver
	entries *xsync.Map[string, cachedEntry]
}

var _ types.Resolver = (*Cached)(nil)

// NewCached wraps next with an unbounded in-memory cache.
//
// Example:
//
//	sqlite, _ := source.OpenSQLite(ctx, "track_metadata.db", "")
//	src := source.NewCached(sqlite)
func NewCached(next types.Resolver) *Cached {
	return &Cached{
		next:    next,
		entries: xsync.NewMap[string, cachedEntry](),
	}
}

// Resolve returns the cached answer for recordID or asks the wrapped resolver.
func (c *Cached) Resolve(ctx context.Context, recordID string) (types.RecordMeta, bool, error) {
	if e, ok := c.entries.Load(recordID); ok {
		return e.meta, e.found, nil
	}

	meta, found, err := c.next.Resolve(ctx, recordID)
	if err != nil {
		return types.RecordMeta{}, false, err
	}
	c.entries.Store(recordID, cachedEntry{meta: meta, found: found})

	return meta, found, nil
}

// Len returns the number of cached answers.
func (c *Cached) Len() int {
	return c.entries.Size()
}

// Invalidate drops every cached answer.
func (c *Cached) Invalidate() {
	c.entries.Clear()
}
