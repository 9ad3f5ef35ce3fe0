package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseTarget(t *testing.T) {
	tests := []struct {
		in      string
		isCount bool
		value   float64
	}{
		{"0.7", false, 0.7},
		{"0.25", false, 0.25},
		{" 0.5 ", false, 0.5},
		{"1e-1", false, 0.1},
		{"250", true, 250},
		{"1", true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTarget(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.isCount, got.IsCount())
			require.InDelta(t, tt.value, got.Value(), 1e-12)
		})
	}

	t.Run("rejects invalid input", func(t *testing.T) {
		for _, in := range []string{"", "abc", "0", "-3", "1.0", "1.5", "0.0", "NaN", "2.5e3"} {
			_, err := ParseTarget(in)
			require.ErrorIs(t, err, ErrInvalidTarget, "input %q", in)
		}
	})
}

func TestTarget_Validate(t *testing.T) {
	require.NoError(t, Fraction(0.3).Validate())
	require.NoError(t, Count(3).Validate())

	require.ErrorIs(t, Fraction(0).Validate(), ErrInvalidTarget)
	require.ErrorIs(t, Fraction(1).Validate(), ErrInvalidTarget)
	require.ErrorIs(t, Fraction(-0.2).Validate(), ErrInvalidTarget)
	require.ErrorIs(t, Fraction(math.NaN()).Validate(), ErrInvalidTarget)
	require.ErrorIs(t, Count(0).Validate(), ErrInvalidTarget)
	require.ErrorIs(t, Count(-4).Validate(), ErrInvalidTarget)
	require.ErrorIs(t, Target{}.Validate(), ErrInvalidTarget)
}

func TestTarget_Normalize(t *testing.T) {
	t.Run("fraction is unchanged", func(t *testing.T) {
		p, err := Fraction(0.4).Normalize(10)
		require.NoError(t, err)
		require.Equal(t, 0.4, p)
	})

	t.Run("count is divided by total", func(t *testing.T) {
		p, err := Count(3).Normalize(12)
		require.NoError(t, err)
		require.Equal(t, 0.25, p)
	})

	t.Run("count equal to total", func(t *testing.T) {
		p, err := Count(5).Normalize(5)
		require.NoError(t, err)
		require.Equal(t, 1.0, p)
	})

	t.Run("count above total is rejected", func(t *testing.T) {
		_, err := Count(6).Normalize(5)
		require.ErrorIs(t, err, ErrInvalidTarget)
	})

	t.Run("empty total normalizes to zero", func(t *testing.T) {
		p, err := Count(6).Normalize(0)
		require.NoError(t, err)
		require.Zero(t, p)
	})

	t.Run("invalid target is rejected before total checks", func(t *testing.T) {
		_, err := Fraction(1.2).Normalize(0)
		require.ErrorIs(t, err, ErrInvalidTarget)
	})
}

func TestTarget_String(t *testing.T) {
	require.Equal(t, "0.3", Fraction(0.3).String())
	require.Equal(t, "42", Count(42).String())
	require.Equal(t, 42, Count(42).CountValue())
	require.Zero(t, Fraction(0.3).CountValue())
}

func TestTarget_YAML(t *testing.T) {
	var doc struct {
		A Target `yaml:"a"`
		B Target `yaml:"b"`
	}

	err := yaml.Unmarshal([]byte("a: 0.2\nb: 150\n"), &doc)
	require.NoError(t, err)
	require.False(t, doc.A.IsCount())
	require.Equal(t, 0.2, doc.A.Value())
	require.True(t, doc.B.IsCount())
	require.Equal(t, 150, doc.B.CountValue())

	out, err := yaml.Marshal(doc)
	require.NoError(t, err)

	var back struct {
		A Target `yaml:"a"`
		B Target `yaml:"b"`
	}
	require.NoError(t, yaml.Unmarshal(out, &back))
	require.Equal(t, doc, back)

	err = yaml.Unmarshal([]byte("a: 3.5\n"), &doc)
	require.ErrorIs(t, err, ErrInvalidTarget)
}
