package types

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func draw(s Seed, n int) []uint64 {
	rng := s.NewRand()
	out := make([]uint64, n)
	for i := range out {
		out[i] = rng.Uint64()
	}

	return out
}

func TestSeed(t *testing.T) {
	t.Run("same seed yields same sequence", func(t *testing.T) {
		require.Equal(t, draw(SeedFromInt(7), 16), draw(SeedFromInt(7), 16))
		require.Equal(t, draw(SeedFromString("msd"), 16), draw(SeedFromString("msd"), 16))
	})

	t.Run("different seeds diverge", func(t *testing.T) {
		require.NotEqual(t, draw(SeedFromInt(7), 16), draw(SeedFromInt(8), 16))
		require.NotEqual(t, draw(SeedFromString("a"), 16), draw(SeedFromString("b"), 16))
	})

	t.Run("unseeded runs differ", func(t *testing.T) {
		var s Seed
		require.False(t, s.IsSet())
		require.NotEqual(t, draw(s, 16), draw(s, 16))
	})

	t.Run("ParseSeed", func(t *testing.T) {
		require.Equal(t, SeedFromInt(42), ParseSeed("42"))
		require.Equal(t, SeedFromString("run-1"), ParseSeed("run-1"))
		require.False(t, ParseSeed("").IsSet())
		require.Equal(t, "run-1", ParseSeed("run-1").String())
	})
}

func TestSeed_YAML(t *testing.T) {
	var doc struct {
		Seed Seed `yaml:"seed"`
	}

	require.NoError(t, yaml.Unmarshal([]byte("seed: 1234\n"), &doc))
	require.Equal(t, SeedFromInt(1234), doc.Seed)

	require.NoError(t, yaml.Unmarshal([]byte("seed: holdout\n"), &doc))
	require.Equal(t, SeedFromString("holdout"), doc.Seed)
}
