// Package kvutil provides utilities for working with NATS JetStream KeyValue stores.
package kvutil

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/flexgp/flexgp/internal/natsutil"
)

const (
	defaultMaxAttempts = 3
	baseBackoff        = 10 * time.Millisecond
)

// OpenBucket opens an existing record bucket, or creates it when create is
// true and the bucket does not exist yet.
//
// Creation races with other loaders are tolerated: ErrBucketExists falls back
// to opening the bucket. Connectivity failures are retried with exponential
// backoff (10ms, 20ms, 40ms...); any other error is returned immediately.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - js: JetStream context
//   - config: KV bucket configuration (only Bucket is used when create is false)
//   - create: Create the bucket if it is missing
//   - maxAttempts: Maximum number of attempts (default: 3)
//
// Returns:
//   - jetstream.KeyValue: The KV bucket instance
//   - error: Last error after all attempts
//
// Example:
//
//	kv, err := kvutil.OpenBucket(ctx, js, jetstream.KeyValueConfig{Bucket: "tracks"}, false, 3)
func OpenBucket(
	ctx context.Context,
	js jetstream.JetStream,
	config jetstream.KeyValueConfig,
	create bool,
	maxAttempts int,
) (jetstream.KeyValue, error) {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}

	var lastErr error
	for attempt := range maxAttempts {
		kv, err := openOnce(ctx, js, config, create)
		if err == nil {
			return kv, nil
		}
		lastErr = err

		if !natsutil.IsConnectivityError(err) {
			return nil, fmt.Errorf("open KV bucket %s: %w", config.Bucket, err)
		}

		if attempt < maxAttempts-1 {
			backoff := baseBackoff << uint(attempt) //nolint:gosec // attempt is bounded by maxAttempts
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("open KV bucket %s: %w", config.Bucket, ctx.Err())
			case <-time.After(backoff):
			}
		}
	}

	return nil, fmt.Errorf("open KV bucket %s after %d attempts: %w", config.Bucket, maxAttempts, lastErr)
}

func openOnce(ctx context.Context, js jetstream.JetStream, config jetstream.KeyValueConfig, create bool) (jetstream.KeyValue, error) {
	kv, err := js.KeyValue(ctx, config.Bucket)
	if err == nil || !create || !errors.Is(err, jetstream.ErrBucketNotFound) {
		return kv, err
	}

	kv, err = js.CreateKeyValue(ctx, config)
	if errors.Is(err, jetstream.ErrBucketExists) {
		return js.KeyValue(ctx, config.Bucket)
	}

	return kv, err
}
