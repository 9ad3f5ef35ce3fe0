package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	t.Run("errors.Is works through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("split tracks: %w", ErrConstraintViolation)
		require.True(t, errors.Is(wrapped, ErrConstraintViolation))
		require.False(t, errors.Is(wrapped, ErrInvalidTarget))
	})

	t.Run("lookup failure keeps the resolver error reachable", func(t *testing.T) {
		cause := errors.New("database is locked")
		wrapped := fmt.Errorf("%w: record %q: %w", ErrLookupFailure, "TR1", cause)

		require.ErrorIs(t, wrapped, ErrLookupFailure)
		require.ErrorIs(t, wrapped, cause)
	})

	t.Run("all errors are distinct", func(t *testing.T) {
		allErrors := []error{
			ErrInvalidConfig,
			ErrResolverRequired,
			ErrSelectionStrategyRequired,
			ErrInvalidTarget,
			ErrConstraintViolation,
			ErrInvalidAllocation,
			ErrLookupFailure,
			ErrConnectivity,
			ErrInvalidRecordMeta,
			ErrWriteFailed,
		}

		for i, a := range allErrors {
			for j, b := range allErrors {
				if i == j {
					continue
				}
				require.False(t, errors.Is(a, b), "%v should not match %v", a, b)
			}
		}
	})
}
