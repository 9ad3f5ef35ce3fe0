package kvutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/require"

	flexgptest "github.com/flexgp/flexgp/testing"
)

func TestOpenBucket(t *testing.T) {
	_, nc := flexgptest.StartEmbeddedNATS(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	js, err := jetstream.New(nc)
	require.NoError(t, err)

	t.Run("missing bucket without create", func(t *testing.T) {
		_, err := OpenBucket(ctx, js, jetstream.KeyValueConfig{Bucket: "absent"}, false, 3)
		require.ErrorIs(t, err, jetstream.ErrBucketNotFound)
	})

	t.Run("creates then reopens", func(t *testing.T) {
		cfg := jetstream.KeyValueConfig{Bucket: "tracks", Storage: jetstream.MemoryStorage}

		kv, err := OpenBucket(ctx, js, cfg, true, 3)
		require.NoError(t, err)
		_, err = kv.Put(ctx, "TR01", []byte(`{"group_id":"AR1","sort_key":1994}`))
		require.NoError(t, err)

		reopened, err := OpenBucket(ctx, js, cfg, false, 3)
		require.NoError(t, err)
		entry, err := reopened.Get(ctx, "TR01")
		require.NoError(t, err)
		require.Contains(t, string(entry.Value()), "AR1")
	})

	t.Run("concurrent creates of the same bucket", func(t *testing.T) {
		const numLoaders = 8
		cfg := jetstream.KeyValueConfig{Bucket: "shared", Storage: jetstream.MemoryStorage}

		var wg sync.WaitGroup
		errs := make([]error, numLoaders)
		for i := range numLoaders {
			wg.Add(1) //nolint:revive // Standard pattern for concurrent operations
			go func() {
				defer wg.Done()
				_, errs[i] = OpenBucket(ctx, js, cfg, true, 5)
			}()
		}
		wg.Wait()

		for i, err := range errs {
			require.NoError(t, err, "loader %d", i)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancelNow := context.WithCancel(context.Background())
		cancelNow()

		_, err := OpenBucket(cancelled, js, jetstream.KeyValueConfig{Bucket: "tracks"}, false, 3)
		require.Error(t, err)
	})
}
