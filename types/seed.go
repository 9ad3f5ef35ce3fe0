package types

import (
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/zeebo/xxh3"
	"gopkg.in/yaml.v3"
)

// pcgStream is the fixed second PCG word; the seed alone selects the sequence.
const pcgStream = 0x9e3779b97f4a7c15

// Seed makes a split reproducible. The zero value is unseeded: every run draws
// fresh entropy.
type Seed struct {
	value uint64
	text  string
	set   bool
}

// SeedFromInt creates a seed from an integer.
func SeedFromInt(v int64) Seed {
	return Seed{value: uint64(v), text: strconv.FormatInt(v, 10), set: true} //nolint:gosec // bit reinterpretation
}

// SeedFromString creates a seed from arbitrary text by folding it to 64 bits with XXH3.
func SeedFromString(s string) Seed {
	return Seed{value: xxh3.HashString(s), text: s, set: true}
}

// ParseSeed interprets s as an integer seed when it parses as one, otherwise as
// a string seed. An empty string yields an unseeded Seed.
func ParseSeed(s string) Seed {
	if s == "" {
		return Seed{}
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return SeedFromInt(v)
	}

	return SeedFromString(s)
}

// IsSet reports whether the seed was provided.
func (s Seed) IsSet() bool {
	return s.set
}

// Uint64 returns the 64-bit seed value.
func (s Seed) Uint64() uint64 {
	return s.value
}

// String returns the seed as it was given ("" when unseeded).
func (s Seed) String() string {
	return s.text
}

// NewRand returns a fresh random source for one run.
//
// A set seed always yields the same sequence. An unset seed draws from
// process entropy, so repeated runs differ.
func (s Seed) NewRand() *rand.Rand {
	if !s.set {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec // sampling, not crypto
	}

	return rand.New(rand.NewPCG(s.value, pcgStream)) //nolint:gosec // sampling, not crypto
}

// MarshalYAML encodes the seed as given.
func (s Seed) MarshalYAML() (any, error) {
	if !s.set {
		return nil, nil
	}

	return s.text, nil
}

// UnmarshalYAML decodes integer or string seeds.
func (s *Seed) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("seed must be a scalar at line %d", node.Line)
	}
	*s = ParseSeed(node.Value)

	return nil
}
