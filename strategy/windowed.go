package strategy

import (
	"fmt"
	"math/rand/v2"

	"github.com/flexgp/flexgp/types"
)

// Windowed implements stratified windowed sampling.
type Windowed struct{}

var _ types.SelectionStrategy = (*Windowed)(nil)

// NewWindowed creates a new windowed sampling strategy.
//
// The strategy walks the sequence in contiguous, non-overlapping windows and
// picks exactly one item per window uniformly at random. Because the input is
// sorted along the scoring dimension, the selection is spread evenly along it.
//
// Returns:
//   - *Windowed: Initialized windowed strategy
//
// Example:
//
//	splitter := flexgp.NewSplitter(resolver, flexgp.WithStrategy(strategy.NewWindowed()))
func NewWindowed() *Windowed {
	return &Windowed{}
}

// Select chooses count items, one per window.
//
// The algorithm:
//  1. remaining = len(items), i = count
//  2. While i > 0: window size w = remaining / i (integer division, always >= 1)
//  3. Pick one item of the next w items uniformly at random; the others are unselected
//  4. Advance past the window, i--, remaining -= w
//  5. Items after the last window are unselected
//
// Window sizes drift downward when remaining is not a multiple of i. This is
// kept as is so that seeded runs stay reproducible across versions.
//
// Parameters:
//   - items: Ordered, distinct items
//   - count: Number of items to select
//   - rng: Per-run random source (may be nil when count is 0)
//
// Returns:
//   - []string: Selected items in input order
//   - []string: Unselected items in input order
//   - error: ErrCountOutOfRange or ErrNilRand
func (w *Windowed) Select(items []string, count int, rng *rand.Rand) ([]string, []string, error) {
	if count < 0 || count > len(items) {
		return nil, nil, fmt.Errorf("%w: count %d for %d items", ErrCountOutOfRange, count, len(items))
	}
	if count > 0 && rng == nil {
		return nil, nil, ErrNilRand
	}

	selected := make([]string, 0, count)
	unselected := make([]string, 0, len(items)-count)

	remaining := len(items)
	idx := 0
	for i := count; i > 0; i-- {
		size := remaining / i
		pick := rng.IntN(size)

		for j, item := range items[idx : idx+size] {
			if j == pick {
				selected = append(selected, item)
			} else {
				unselected = append(unselected, item)
			}
		}

		idx += size
		remaining -= size
	}

	// Tail left over when count is 0
	unselected = append(unselected, items[idx:]...)

	return selected, unselected, nil
}

// WindowSizes returns the window sizes Select uses for n items and count selections.
//
// Parameters:
//   - n: Number of items
//   - count: Number of selections (0 <= count <= n)
//
// Returns:
//   - []int: Window sizes in walk order (empty when count is 0)
func WindowSizes(n, count int) []int {
	if count <= 0 || count > n {
		return nil
	}

	sizes := make([]int, 0, count)
	remaining := n
	for i := count; i > 0; i-- {
		size := remaining / i
		sizes = append(sizes, size)
		remaining -= size
	}

	return sizes
}
