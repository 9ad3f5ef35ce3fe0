package hooks

import (
	"context"
	"errors"
	"testing"

	"github.com/flexgp/flexgp/types"
	"github.com/stretchr/testify/require"
)

func TestNewNop(t *testing.T) {
	hooks := NewNop()

	require.NotNil(t, hooks.OnRecordExcluded)
	require.NotNil(t, hooks.OnSplitCompleted)
	require.NoError(t, hooks.OnRecordExcluded(context.Background(), "TR0001"))
	require.NoError(t, hooks.OnSplitCompleted(context.Background(), types.Stats{Records: 3}))
}

func TestFill(t *testing.T) {
	t.Run("nil hooks", func(t *testing.T) {
		hooks := Fill(nil)

		require.NotNil(t, hooks.OnRecordExcluded)
		require.NotNil(t, hooks.OnSplitCompleted)
	})

	t.Run("keeps user callbacks", func(t *testing.T) {
		errBoom := errors.New("boom")
		var excluded []string
		hooks := Fill(&types.Hooks{
			OnRecordExcluded: func(_ context.Context, id string) error {
				excluded = append(excluded, id)
				return errBoom
			},
		})

		err := hooks.OnRecordExcluded(context.Background(), "TR0002")
		require.ErrorIs(t, err, errBoom)
		require.Equal(t, []string{"TR0002"}, excluded)
		require.NoError(t, hooks.OnSplitCompleted(context.Background(), types.Stats{}))
	})
}
