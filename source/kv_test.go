package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	flexgptest "github.com/flexgp/flexgp/testing"
	"github.com/flexgp/flexgp/types"
)

func TestKV_Resolve(t *testing.T) {
	_, nc := flexgptest.StartEmbeddedNATS(t)
	ctx := context.Background()

	bucket := flexgptest.CreateRecordBucket(t, nc, "tracks", map[string]types.RecordMeta{
		"TR01": {GroupID: "AR1", SortKey: 1994},
		"TR02": {GroupID: "AR2", SortKey: 2001},
	})
	src := NewKV(bucket)

	t.Run("known record", func(t *testing.T) {
		meta, found, err := src.Resolve(ctx, "TR01")
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, types.RecordMeta{GroupID: "AR1", SortKey: 1994}, meta)
	})

	t.Run("missing key is excluded", func(t *testing.T) {
		_, found, err := src.Resolve(ctx, "TR99")
		require.NoError(t, err)
		require.False(t, found)
	})

	t.Run("deleted key is excluded", func(t *testing.T) {
		require.NoError(t, bucket.Delete(ctx, "TR02"))

		_, found, err := src.Resolve(ctx, "TR02")
		require.NoError(t, err)
		require.False(t, found)
	})

	t.Run("corrupt value", func(t *testing.T) {
		_, err := bucket.Put(ctx, "TR03", []byte("not json"))
		require.NoError(t, err)

		_, _, err = src.Resolve(ctx, "TR03")
		require.ErrorIs(t, err, types.ErrInvalidRecordMeta)
	})

	t.Run("empty group", func(t *testing.T) {
		_, err := bucket.Put(ctx, "TR04", []byte(`{"sort_key":2000}`))
		require.NoError(t, err)

		_, _, err = src.Resolve(ctx, "TR04")
		require.ErrorIs(t, err, types.ErrInvalidRecordMeta)
	})

	t.Run("unknown year is excluded", func(t *testing.T) {
		for key, value := range map[string]string{
			"TR05": `{"group_id":"A","sort_key":0}`,
			"TR06": `{"group_id":"A","sort_key":-1}`,
			"TR07": `{"group_id":"A"}`,
		} {
			_, err := bucket.Put(ctx, key, []byte(value))
			require.NoError(t, err)

			_, found, err := src.Resolve(ctx, key)
			require.NoError(t, err, key)
			require.False(t, found, key)
		}
	})
}

func TestLoadKV(t *testing.T) {
	_, nc := flexgptest.StartEmbeddedNATS(t)
	ctx := context.Background()
	bucket := flexgptest.CreateJetStreamKV(t, nc, "loaded")

	n, err := LoadKV(ctx, bucket, []types.Record{
		{ID: "TR01", GroupID: "AR1", SortKey: 1994},
		{ID: "TR02", GroupID: "AR1", SortKey: 1998},
	})
	require.NoError(t, err)
	require.Equal(t, 2, n)

	meta, found, err := NewKV(bucket).Resolve(ctx, "TR02")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, types.RecordMeta{GroupID: "AR1", SortKey: 1998}, meta)
}
