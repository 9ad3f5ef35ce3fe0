package types

import "math/rand/v2"

// Partition is a pair of disjoint item sequences covering every input item.
//
// Split holds the side the target refers to (the "train" set), Rest the
// remainder (the "test" set).
type Partition struct {
	Split []string `json:"split"`
	Rest  []string `json:"rest"`
}

// Len returns the total number of items across both sides.
func (p Partition) Len() int {
	return len(p.Split) + len(p.Rest)
}

// SelectionStrategy picks a fixed number of items out of an ordered sequence.
//
// Strategies implement different sampling algorithms:
//   - Windowed: one item per contiguous window (stratified along the order)
//   - HashRank: items with the smallest seeded hash
//   - Custom: User-defined algorithms
//
// The partitioner always asks for the smaller side of a split, so count is at
// most half of len(items).
//
// Strategy implementations should:
//   - Be deterministic for a given rng state
//   - Preserve input order within both returned slices
//   - Return every item exactly once across selected and unselected
type SelectionStrategy interface {
	// Select chooses count items.
	//
	// Parameters:
	//   - items: Ordered, distinct items
	//   - count: Number of items to select (0 <= count <= len(items))
	//   - rng: Per-run random source
	//
	// Returns:
	//   - []string: Selected items
	//   - []string: Unselected items
	//   - error: Selection error (e.g., count out of range)
	Select(items []string, count int, rng *rand.Rand) (selected, unselected []string, err error)
}
