// Package aggregate resolves records and groups them by group key.
package aggregate

import (
	"context"
	"fmt"
	"time"

	"github.com/flexgp/flexgp/internal/hooks"
	"github.com/flexgp/flexgp/internal/logger"
	"github.com/flexgp/flexgp/internal/metrics"
	"github.com/flexgp/flexgp/types"
)

// Lookup result labels reported to metrics.
const (
	lookupFound    = "found"
	lookupNotFound = "not_found"
	lookupError    = "error"
)

// Stats counts the records an aggregation saw.
type Stats struct {
	// Input is the number of distinct record ids.
	Input int

	// Kept is the number of records assigned to a group.
	Kept int

	// Excluded is the number of records the resolver did not find.
	Excluded int
}

// Aggregator groups records using an injected resolver.
type Aggregator struct {
	resolver types.Resolver
	logger   types.Logger
	metrics  types.MetricsCollector
	hooks    types.Hooks
}

// Config holds the Aggregator's collaborators. Nil fields fall back to no-op implementations.
type Config struct {
	Resolver types.Resolver
	Logger   types.Logger
	Metrics  types.MetricsCollector
	Hooks    *types.Hooks
}

// New creates an aggregator.
//
// Parameters:
//   - cfg: Collaborators (Resolver is required)
//
// Returns:
//   - *Aggregator: Initialized aggregator
//   - error: types.ErrResolverRequired when cfg.Resolver is nil
func New(cfg Config) (*Aggregator, error) {
	if cfg.Resolver == nil {
		return nil, types.ErrResolverRequired
	}

	a := &Aggregator{
		resolver: cfg.Resolver,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
		hooks:    hooks.Fill(cfg.Hooks),
	}
	if a.logger == nil {
		a.logger = logger.NewNop()
	}
	if a.metrics == nil {
		a.metrics = metrics.NewNop()
	}

	return a, nil
}

// Aggregate resolves every record id and groups the found records.
//
// The resolver is called exactly once per distinct id, in input order. Repeated
// ids are skipped. Records the resolver does not find are excluded without error.
// Resolver errors abort the run and are returned wrapped in types.ErrLookupFailure;
// no retry is attempted here.
//
// Parameters:
//   - ctx: Context passed to the resolver
//   - ids: Ordered record ids
//
// Returns:
//   - []types.Group: Groups sorted by (mean sort key, group id)
//   - Stats: Record counts
//   - error: Wrapped lookup failure
func (a *Aggregator) Aggregate(ctx context.Context, ids []string) ([]types.Group, Stats, error) {
	builder := NewBuilder()
	var stats Stats

	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		stats.Input++

		start := time.Now()
		meta, found, err := a.resolver.Resolve(ctx, id)
		elapsed := time.Since(start).Seconds()

		if err != nil {
			a.metrics.RecordLookup(lookupError, elapsed)
			return nil, Stats{}, fmt.Errorf("%w: record %q: %w", types.ErrLookupFailure, id, err)
		}

		if !found {
			a.metrics.RecordLookup(lookupNotFound, elapsed)
			stats.Excluded++
			a.logger.Debug("record excluded", "record", id)
			if hookErr := a.hooks.OnRecordExcluded(ctx, id); hookErr != nil {
				a.logger.Warn("OnRecordExcluded hook failed", "record", id, "error", hookErr)
			}

			continue
		}

		a.metrics.RecordLookup(lookupFound, elapsed)
		if err := builder.Add(id, meta); err != nil {
			return nil, Stats{}, err
		}
	}

	groups := builder.Build()
	stats.Kept = builder.Records()

	a.metrics.RecordExcluded(stats.Excluded)
	a.metrics.RecordGroupCount(len(groups))
	a.logger.Debug("records aggregated",
		"input", stats.Input,
		"kept", stats.Kept,
		"excluded", stats.Excluded,
		"groups", len(groups),
	)

	return groups, stats, nil
}
