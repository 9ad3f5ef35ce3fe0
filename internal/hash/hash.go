// Package hash provides seeded XXH3 hashing of item keys.
package hash

import (
	"slices"

	"github.com/zeebo/xxh3"
)

// Hasher computes stable 64-bit hashes for item keys.
type Hasher struct {
	// seed for hash function (0 means unseeded XXH3)
	seed uint64
}

// New creates a hasher.
//
// Parameters:
//   - seed: Hash seed (0 for plain XXH3, non-zero for a seeded variant)
//
// Returns:
//   - Hasher: Initialized hasher
func New(seed uint64) Hasher {
	return Hasher{seed: seed}
}

// Sum returns the 64-bit hash of key.
func (h Hasher) Sum(key string) uint64 {
	if h.seed != 0 {
		return xxh3.HashStringSeed(key, h.seed)
	}

	return xxh3.HashString(key)
}

// Rank returns the indexes of items ordered by ascending hash.
//
// Equal hashes fall back to index order, so the ranking is total and
// reproducible for a given seed.
//
// Parameters:
//   - items: Keys to rank
//
// Returns:
//   - []int: Permutation of [0, len(items))
func (h Hasher) Rank(items []string) []int {
	type entry struct {
		hash uint64
		idx  int
	}

	entries := make([]entry, len(items))
	for i, item := range items {
		entries[i] = entry{hash: h.Sum(item), idx: i}
	}

	slices.SortFunc(entries, func(a, b entry) int {
		if a.hash < b.hash {
			return -1
		}
		if a.hash > b.hash {
			return 1
		}

		return a.idx - b.idx
	})

	order := make([]int, len(entries))
	for i, e := range entries {
		order[i] = e.idx
	}

	return order
}
