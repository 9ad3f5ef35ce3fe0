package flexgp

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/flexgp/flexgp/internal/aggregate"
	"github.com/flexgp/flexgp/internal/hooks"
	"github.com/flexgp/flexgp/internal/logger"
	"github.com/flexgp/flexgp/internal/metrics"
	"github.com/flexgp/flexgp/internal/partition"
	"github.com/flexgp/flexgp/strategy"
	"github.com/flexgp/flexgp/types"
)

// Run modes reported to metrics and logs.
const (
	modeGrouped  = "grouped"
	modeLines    = "lines"
	modeAllocate = "allocate"
)

// Splitter partitions records into a split side and a rest side.
//
// A Splitter holds no per-run state: every run builds its own random source
// from the run seed, so one Splitter may serve concurrent runs as long as its
// resolver is safe for concurrent use.
type Splitter struct {
	aggregator  *aggregate.Aggregator
	partitioner *partition.Partitioner
	hooks       types.Hooks
	metrics     MetricsCollector
	logger      Logger
}

// NewSplitter creates a new Splitter.
//
// The resolver is only needed for SplitGrouped; pass nil when only ungrouped
// splits or allocations are run.
//
// Parameters:
//   - resolver: Record metadata lookup (may be nil)
//   - opts: Optional configuration (strategy, logger, metrics, hooks)
//
// Returns:
//   - *Splitter: Initialized splitter
//   - error: Setup error
//
// Example:
//
//	src := source.NewStatic(records)
//	splitter, err := flexgp.NewSplitter(src, flexgp.WithLogger(logger))
//	if err != nil { /* handle */ }
//	res, err := splitter.SplitGrouped(ctx, ids, flexgp.Fraction(0.3), flexgp.SeedFromInt(7))
func NewSplitter(resolver Resolver, opts ...Option) (*Splitter, error) {
	options := &splitterOptions{}
	for _, opt := range opts {
		opt(options)
	}

	// Safe defaults for optional dependencies to avoid nil checks everywhere
	selection := options.strategy
	if selection == nil {
		selection = strategy.NewWindowed()
	}

	metricsCollector := options.metrics
	if metricsCollector == nil {
		metricsCollector = metrics.NewNop()
	}

	loggerInstance := options.logger
	if loggerInstance == nil {
		loggerInstance = logger.NewNop()
	}

	s := &Splitter{
		partitioner: partition.New(selection),
		hooks:       hooks.Fill(options.hooks),
		metrics:     metricsCollector,
		logger:      loggerInstance,
	}

	if resolver != nil {
		agg, err := aggregate.New(aggregate.Config{
			Resolver: resolver,
			Logger:   loggerInstance,
			Metrics:  metricsCollector,
			Hooks:    options.hooks,
		})
		if err != nil {
			return nil, fmt.Errorf("create aggregator: %w", err)
		}
		s.aggregator = agg
	}

	return s, nil
}

// SplitGrouped splits record ids so that every group lands on one side.
//
// Records are resolved once per distinct id; unknown records are excluded.
// Groups are ordered by mean sort key (then group id) and partitioned with
// the selection strategy. The output lists records group by group in that
// order, members in input order.
//
// Count targets refer to the distinct input ids, including records later
// excluded by the resolver.
//
// Parameters:
//   - ctx: Context passed to the resolver
//   - ids: Record ids
//   - target: Fraction in (0,1) or record count of the split side
//   - seed: Run seed (unset means a fresh random split)
//
// Returns:
//   - Result: Disjoint split and rest record ids with run statistics
//   - error: ErrResolverRequired, ErrInvalidTarget or ErrLookupFailure (wrapped)
func (s *Splitter) SplitGrouped(ctx context.Context, ids []string, target Target, seed Seed) (Result, error) {
	start := time.Now()
	defer func() { s.metrics.RecordSplitDuration(modeGrouped, time.Since(start).Seconds()) }()

	if s.aggregator == nil {
		return Result{}, s.fail(modeGrouped, ErrResolverRequired)
	}
	if err := target.Validate(); err != nil {
		return Result{}, s.fail(modeGrouped, err)
	}

	groups, aggStats, err := s.aggregator.Aggregate(ctx, ids)
	if err != nil {
		return Result{}, s.fail(modeGrouped, err)
	}

	plan, err := partition.NewPlan(target, len(groups), aggStats.Input)
	if err != nil {
		return Result{}, s.fail(modeGrouped, err)
	}

	part, err := s.partitioner.Split(types.GroupIDs(groups), plan, seed.NewRand())
	if err != nil {
		return Result{}, s.fail(modeGrouped, err)
	}

	onSplit := make(map[string]struct{}, len(part.Split))
	for _, id := range part.Split {
		onSplit[id] = struct{}{}
	}

	res := Result{Split: []string{}, Rest: []string{}}
	for _, g := range groups {
		if _, ok := onSplit[g.ID]; ok {
			res.Split = append(res.Split, g.RecordIDs...)
		} else {
			res.Rest = append(res.Rest, g.RecordIDs...)
		}
	}

	res.Stats = Stats{
		InputRecords: aggStats.Input,
		Records:      aggStats.Kept,
		Excluded:     aggStats.Excluded,
		Groups:       len(groups),
		SplitGroups:  len(part.Split),
		RestGroups:   len(part.Rest),
		SplitRecords: len(res.Split),
		RestRecords:  len(res.Rest),
		Fraction:     plan.Fraction,
		Requested:    requestedRecords(plan.Fraction, aggStats.Kept),
	}
	s.complete(ctx, modeGrouped, &res.Stats)

	return res, nil
}

// SplitLines splits lines without grouping: each line is its own group and no
// lookups are made. Both sides keep the input order.
//
// Parameters:
//   - ctx: Context passed to hooks
//   - lines: Input lines (duplicates are treated as distinct lines)
//   - target: Fraction in (0,1) or line count of the split side
//   - seed: Run seed
//
// Returns:
//   - Result: Disjoint split and rest lines with run statistics
//   - error: ErrInvalidTarget (wrapped)
func (s *Splitter) SplitLines(ctx context.Context, lines []string, target Target, seed Seed) (Result, error) {
	start := time.Now()
	defer func() { s.metrics.RecordSplitDuration(modeLines, time.Since(start).Seconds()) }()

	plan, err := partition.NewPlan(target, len(lines), len(lines))
	if err != nil {
		return Result{}, s.fail(modeLines, err)
	}

	part, err := s.partitioner.Split(lines, plan, seed.NewRand())
	if err != nil {
		return Result{}, s.fail(modeLines, err)
	}

	res := Result{
		Split: part.Split,
		Rest:  part.Rest,
		Stats: Stats{
			InputRecords: len(lines),
			Records:      len(lines),
			Groups:       len(lines),
			SplitGroups:  len(part.Split),
			RestGroups:   len(part.Rest),
			SplitRecords: len(part.Split),
			RestRecords:  len(part.Rest),
			Fraction:     plan.Fraction,
			Requested:    requestedRecords(plan.Fraction, len(lines)),
		},
	}
	s.complete(ctx, modeLines, &res.Stats)

	return res, nil
}

// Allocate draws lines for several destinations without replacement.
//
// All allocations are validated before anything is drawn: destinations must
// be non-empty and unique, and the sizes must fit in the input. Fraction
// sizes become floor(len(lines) * fraction). Destinations draw uniformly from
// the lines still available, in allocation order; each destination's lines
// are in draw order.
//
// Parameters:
//   - ctx: Context passed to hooks
//   - lines: Input lines
//   - allocs: Destinations and sizes
//   - seed: Run seed
//
// Returns:
//   - []AllocationResult: One result per allocation, in allocation order
//   - error: ErrInvalidAllocation, ErrInvalidTarget or ErrConstraintViolation (wrapped)
//
// Example:
//
//	out, err := splitter.Allocate(ctx, lines, []flexgp.Allocation{
//	    {Destination: "a.txt", Size: flexgp.Count(3)},
//	    {Destination: "b.txt", Size: flexgp.Count(7)},
//	}, flexgp.SeedFromInt(1))
func (s *Splitter) Allocate(ctx context.Context, lines []string, allocs []Allocation, seed Seed) ([]AllocationResult, error) {
	start := time.Now()
	defer func() { s.metrics.RecordSplitDuration(modeAllocate, time.Since(start).Seconds()) }()

	sizes, total, err := allocationSizes(len(lines), allocs)
	if err != nil {
		return nil, s.fail(modeAllocate, err)
	}

	rng := seed.NewRand()
	pool := make([]int, len(lines))
	for i := range pool {
		pool[i] = i
	}

	out := make([]AllocationResult, len(allocs))
	for i, alloc := range allocs {
		k := sizes[i]
		// Partial Fisher-Yates: the first k slots become a uniform sample of the pool.
		for j := range k {
			r := j + rng.IntN(len(pool)-j)
			pool[j], pool[r] = pool[r], pool[j]
		}

		drawn := make([]string, k)
		for j, idx := range pool[:k] {
			drawn[j] = lines[idx]
		}
		pool = pool[k:]

		out[i] = AllocationResult{Destination: alloc.Destination, Lines: drawn}
	}

	s.complete(ctx, modeAllocate, &Stats{
		InputRecords: len(lines),
		Records:      len(lines),
		Groups:       len(lines),
		SplitRecords: total,
		RestRecords:  len(lines) - total,
		Requested:    total,
	})

	return out, nil
}

// allocationSizes validates allocations against n input lines and returns
// the line count of each along with their sum.
func allocationSizes(n int, allocs []Allocation) ([]int, int, error) {
	if len(allocs) == 0 {
		return nil, 0, fmt.Errorf("%w: no destinations", ErrInvalidAllocation)
	}

	sizes := make([]int, len(allocs))
	seen := make(map[string]struct{}, len(allocs))
	total := 0
	for i, alloc := range allocs {
		if alloc.Destination == "" {
			return nil, 0, fmt.Errorf("%w: allocation %d has no destination", ErrInvalidAllocation, i)
		}
		if _, dup := seen[alloc.Destination]; dup {
			return nil, 0, fmt.Errorf("%w: duplicate destination %q", ErrInvalidAllocation, alloc.Destination)
		}
		seen[alloc.Destination] = struct{}{}

		if err := alloc.Size.Validate(); err != nil {
			return nil, 0, fmt.Errorf("allocation %q: %w", alloc.Destination, err)
		}

		if alloc.Size.IsCount() {
			sizes[i] = alloc.Size.CountValue()
		} else {
			sizes[i] = int(math.Floor(float64(n) * alloc.Size.Value()))
		}
		total += sizes[i]
	}

	if total > n {
		return nil, 0, fmt.Errorf("%w: %d lines requested, %d available", ErrConstraintViolation, total, n)
	}

	return sizes, total, nil
}

// requestedRecords is the split size the target asks for out of n records.
func requestedRecords(fraction float64, n int) int {
	return int(math.Round(fraction * float64(n)))
}

// complete stamps the run id and reports a finished run to metrics, hooks and the log.
func (s *Splitter) complete(ctx context.Context, mode string, stats *Stats) {
	stats.RunID = uuid.NewString()
	s.metrics.RecordSplit(mode, stats.SplitRecords, stats.RestRecords, stats.Deviation())

	if err := s.hooks.OnSplitCompleted(ctx, *stats); err != nil {
		s.logger.Warn("OnSplitCompleted hook failed", "run", stats.RunID, "mode", mode, "error", err)
	}

	s.logger.Info("split completed",
		"run", stats.RunID,
		"mode", mode,
		"records", stats.Records,
		"excluded", stats.Excluded,
		"groups", stats.Groups,
		"split", stats.SplitRecords,
		"rest", stats.RestRecords,
		"requested", stats.Requested,
		"deviation", stats.Deviation(),
	)
}

// fail records a failed run and returns err unchanged.
func (s *Splitter) fail(mode string, err error) error {
	reason := failureReason(err)
	s.metrics.RecordSplitFailure(mode, reason)
	s.logger.Error("split failed", "mode", mode, "reason", reason, "error", err)

	return err
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidTarget):
		return "invalid_target"
	case errors.Is(err, ErrConstraintViolation):
		return "constraint"
	case errors.Is(err, ErrInvalidAllocation):
		return "invalid_allocation"
	case errors.Is(err, ErrLookupFailure):
		return "lookup"
	case errors.Is(err, ErrResolverRequired):
		return "no_resolver"
	default:
		return "other"
	}
}
