package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Target is a requested split size, either a fraction of the records or an
// absolute record count.
//
// The zero value is not a valid target.
type Target struct {
	value   float64
	isCount bool
}

// Fraction creates a fractional target. Valid fractions lie in (0, 1).
func Fraction(p float64) Target {
	return Target{value: p}
}

// Count creates an absolute target of n records. Valid counts are positive.
func Count(n int) Target {
	return Target{value: float64(n), isCount: true}
}

// ParseTarget parses a target from its textual form.
//
// A value containing a decimal point or exponent, or any value below 1, is a
// fraction ("0.7", "1e-1"). Any other value is a record count ("250").
//
// Parameters:
//   - s: Textual target
//
// Returns:
//   - Target: Parsed target (already validated)
//   - error: ErrInvalidTarget if s is malformed or out of range
func ParseTarget(s string) (Target, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Target{}, fmt.Errorf("%w: %q is not a number", ErrInvalidTarget, s)
	}

	var t Target
	if strings.ContainsAny(s, ".eE") || v < 1 {
		t = Fraction(v)
	} else {
		if v != math.Trunc(v) || v > math.MaxInt32 {
			return Target{}, fmt.Errorf("%w: %q is not a valid count", ErrInvalidTarget, s)
		}
		t = Count(int(v))
	}

	if err := t.Validate(); err != nil {
		return Target{}, err
	}

	return t, nil
}

// IsCount reports whether the target is an absolute record count.
func (t Target) IsCount() bool {
	return t.isCount
}

// IsZero reports whether the target was never set.
func (t Target) IsZero() bool {
	return t == Target{}
}

// Value returns the fraction, or the count as a float64.
func (t Target) Value() float64 {
	return t.value
}

// CountValue returns the count for count targets and 0 otherwise.
func (t Target) CountValue() int {
	if !t.isCount {
		return 0
	}

	return int(t.value)
}

// String returns the textual form accepted by ParseTarget.
func (t Target) String() string {
	if t.isCount {
		return strconv.Itoa(int(t.value))
	}

	s := strconv.FormatFloat(t.value, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}

	return s
}

// Validate checks the target range without reference to a record total.
//
// Returns:
//   - error: ErrInvalidTarget when a fraction is outside (0,1) or a count is not positive
func (t Target) Validate() error {
	if t.isCount {
		if t.value <= 0 {
			return fmt.Errorf("%w: count must be positive, got %d", ErrInvalidTarget, int(t.value))
		}

		return nil
	}

	if math.IsNaN(t.value) || t.value <= 0 || t.value >= 1 {
		return fmt.Errorf("%w: fraction must be in (0,1), got %v", ErrInvalidTarget, t.value)
	}

	return nil
}

// Normalize converts the target to a fraction of total.
//
// Counts are divided by total. A total of zero yields 0 for any valid target,
// since there is nothing to split.
//
// Parameters:
//   - total: Number of records the target refers to
//
// Returns:
//   - float64: Fraction in (0, 1] (0 when total is 0)
//   - error: ErrInvalidTarget if the target is invalid or a count exceeds total
func (t Target) Normalize(total int) (float64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	if total <= 0 {
		return 0, nil
	}
	if !t.isCount {
		return t.value, nil
	}
	if int(t.value) > total {
		return 0, fmt.Errorf("%w: count %d exceeds %d available records", ErrInvalidTarget, int(t.value), total)
	}

	return t.value / float64(total), nil
}

// MarshalYAML encodes the target in its textual form.
func (t Target) MarshalYAML() (any, error) {
	if t.IsZero() {
		return nil, nil
	}

	return t.String(), nil
}

// UnmarshalYAML decodes a target from a scalar node using ParseTarget rules.
func (t *Target) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: expected scalar at line %d", ErrInvalidTarget, node.Line)
	}

	parsed, err := ParseTarget(node.Value)
	if err != nil {
		return err
	}
	*t = parsed

	return nil
}
