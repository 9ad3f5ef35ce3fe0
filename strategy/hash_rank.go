package strategy

import (
	"fmt"
	"math/rand/v2"

	"github.com/flexgp/flexgp/internal/hash"
	"github.com/flexgp/flexgp/types"
)

// HashRank selects the items with the smallest seeded XXH3 hash.
type HashRank struct {
	hashSeed uint64
}

var _ types.SelectionStrategy = (*HashRank)(nil)

// HashRankOption configures a HashRank strategy.
type HashRankOption func(*HashRank)

// NewHashRank creates a new hash-rank strategy.
//
// Each item is hashed independently, so an item's side only depends on its own
// key and the seed: adding or removing other items moves few existing items
// across the boundary. Input order is ignored.
//
// Parameters:
//   - opts: Optional configuration (WithHashSeed)
//
// Returns:
//   - *HashRank: Initialized hash-rank strategy
//
// Example:
//
//	s := strategy.NewHashRank(strategy.WithHashSeed(2013))
//	splitter := flexgp.NewSplitter(resolver, flexgp.WithStrategy(s))
func NewHashRank(opts ...HashRankOption) *HashRank {
	hr := &HashRank{}
	for _, opt := range opts {
		opt(hr)
	}

	return hr
}

// WithHashSeed fixes the hash seed.
//
// Without it the seed is drawn from the run's random source, so the run seed
// still controls the outcome.
//
// Parameters:
//   - seed: Hash seed value (non-zero)
//
// Returns:
//   - HashRankOption: Configuration option
func WithHashSeed(seed uint64) HashRankOption {
	return func(hr *HashRank) {
		hr.hashSeed = seed
	}
}

// Select chooses the count items with the lowest hash.
//
// Parameters:
//   - items: Distinct items
//   - count: Number of items to select
//   - rng: Per-run random source, used only when no hash seed is configured
//
// Returns:
//   - []string: Selected items in input order
//   - []string: Unselected items in input order
//   - error: ErrCountOutOfRange or ErrNilRand
func (hr *HashRank) Select(items []string, count int, rng *rand.Rand) ([]string, []string, error) {
	if count < 0 || count > len(items) {
		return nil, nil, fmt.Errorf("%w: count %d for %d items", ErrCountOutOfRange, count, len(items))
	}

	if count == 0 {
		return []string{}, append([]string(nil), items...), nil
	}

	seed := hr.hashSeed
	if seed == 0 {
		if rng == nil {
			return nil, nil, ErrNilRand
		}
		seed = rng.Uint64()
	}

	chosen := make([]bool, len(items))
	for _, idx := range hash.New(seed).Rank(items)[:count] {
		chosen[idx] = true
	}

	selected := make([]string, 0, count)
	unselected := make([]string, 0, len(items)-count)
	for i, item := range items {
		if chosen[i] {
			selected = append(selected, item)
		} else {
			unselected = append(unselected, item)
		}
	}

	return selected, unselected, nil
}
