// Package partition splits an ordered item sequence into two disjoint sides
// according to a target fraction or count.
package partition

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/flexgp/flexgp/types"
)

// Plan is a target resolved against a concrete sequence.
type Plan struct {
	// Fraction is the normalized target p.
	Fraction float64

	// Select is the number of items the strategy picks: floor(n * min(p, 1-p)).
	Select int

	// SelectedIsSplit is true when p <= 0.5, i.e. the selected items form the split side.
	SelectedIsSplit bool
}

// selectTolerance absorbs floating point error in n*min(p, 1-p) before flooring.
const selectTolerance = 1e-9

// NewPlan resolves a target for n items.
//
// Count targets are normalized against total, which is the number of records
// the count refers to (n for ungrouped sequences, the record count for groups).
// When the count and the sequence share a universe, the selection size is
// computed in integers to avoid floating point rounding at exact boundaries.
//
// Parameters:
//   - target: Requested split size
//   - n: Number of items to partition
//   - total: Number of records the target refers to
//
// Returns:
//   - Plan: Resolved plan
//   - error: ErrInvalidTarget (wrapped) for invalid targets
func NewPlan(target types.Target, n, total int) (Plan, error) {
	p, err := target.Normalize(total)
	if err != nil {
		return Plan{}, err
	}
	plan := Plan{Fraction: p, SelectedIsSplit: p <= 0.5}
	if n == 0 {
		return plan, nil
	}

	if target.IsCount() && total == n {
		c := target.CountValue()
		plan.Select = min(c, n-c)

		return plan, nil
	}

	// 1-p is inexact for most p (1-0.8 is 0.19999999999999996), so the floor
	// is taken with a tolerance to keep p and 1-p selecting the same count.
	smaller := math.Min(p, 1-p)
	plan.Select = int(math.Floor(float64(n)*smaller + selectTolerance))
	plan.Select = max(0, min(plan.Select, n))

	return plan, nil
}

// Partitioner applies a selection strategy to produce split and rest sides.
type Partitioner struct {
	strategy types.SelectionStrategy
}

// New creates a partitioner.
//
// Parameters:
//   - strategy: Selection strategy used for the smaller side
//
// Returns:
//   - *Partitioner: Initialized partitioner
func New(strategy types.SelectionStrategy) *Partitioner {
	return &Partitioner{strategy: strategy}
}

// Split partitions items according to plan.
//
// The strategy always selects the smaller side. Selected items become the
// split side when the target is at most one half, the rest side otherwise.
//
// Parameters:
//   - items: Ordered, distinct items
//   - plan: Plan built by NewPlan for len(items)
//   - rng: Per-run random source
//
// Returns:
//   - types.Partition: Disjoint sides covering all items, each in input order
//   - error: Strategy error
func (p *Partitioner) Split(items []string, plan Plan, rng *rand.Rand) (types.Partition, error) {
	if p.strategy == nil {
		return types.Partition{}, types.ErrSelectionStrategyRequired
	}
	if len(items) == 0 {
		return types.Partition{Split: []string{}, Rest: []string{}}, nil
	}

	selected, unselected, err := p.strategy.Select(items, plan.Select, rng)
	if err != nil {
		return types.Partition{}, fmt.Errorf("select %d of %d items: %w", plan.Select, len(items), err)
	}

	if plan.SelectedIsSplit {
		return types.Partition{Split: selected, Rest: unselected}, nil
	}

	return types.Partition{Split: unselected, Rest: selected}, nil
}
