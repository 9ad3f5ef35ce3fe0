package source

import (
	"context"
	"fmt"
	"time"

	"github.com/flexgp/flexgp/internal/logger"
	"github.com/flexgp/flexgp/internal/natsutil"
	"github.com/flexgp/flexgp/types"
)

// Retrying wraps a resolver and retries transient failures.
//
// Only errors accepted by the retry predicate (natsutil.IsConnectivityError by
// default) are retried. Not-found results and other errors are returned as is.
type Retrying struct {
	next        types.Resolver
	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
	retryable   func(error) bool
	logger      types.Logger
}

var _ types.Resolver = (*Retrying)(nil)

// RetryOption configures a Retrying resolver.
type RetryOption func(*Retrying)

// WithMaxAttempts sets the total number of attempts per lookup (default: 3).
func WithMaxAttempts(n int) RetryOption {
	return func(r *Retrying) {
		if n > 0 {
			r.maxAttempts = n
		}
	}
}

// WithBackoff sets the first retry delay and the delay cap (defaults: 50ms, 2s).
func WithBackoff(base, maxDelay time.Duration) RetryOption {
	return func(r *Retrying) {
		if base > 0 {
			r.baseDelay = base
		}
		if maxDelay > 0 {
			r.maxDelay = maxDelay
		}
	}
}

// WithRetryable replaces the predicate deciding which errors are retried.
func WithRetryable(fn func(error) bool) RetryOption {
	return func(r *Retrying) {
		if fn != nil {
			r.retryable = fn
		}
	}
}

// WithRetryLogger sets the logger used to report retries.
func WithRetryLogger(l types.Logger) RetryOption {
	return func(r *Retrying) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRetrying wraps next with retry behavior.
//
// Parameters:
//   - next: Resolver to call
//   - opts: Optional configuration
//
// Returns:
//   - *Retrying: Decorated resolver
//
// Example:
//
//	kv := source.NewKV(bucket)
//	src := source.NewRetrying(kv, source.WithMaxAttempts(5))
func NewRetrying(next types.Resolver, opts ...RetryOption) *Retrying {
	r := &Retrying{
		next:        next,
		maxAttempts: 3,
		baseDelay:   50 * time.Millisecond,
		maxDelay:    2 * time.Second,
		retryable:   natsutil.IsConnectivityError,
		logger:      logger.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Resolve calls the wrapped resolver, retrying transient errors.
func (r *Retrying) Resolve(ctx context.Context, recordID string) (types.RecordMeta, bool, error) {
	delay := r.baseDelay

	for attempt := 1; ; attempt++ {
		meta, found, err := r.next.Resolve(ctx, recordID)
		if err == nil || !r.retryable(err) {
			return meta, found, err
		}
		if attempt >= r.maxAttempts {
			return types.RecordMeta{}, false, fmt.Errorf("resolve %s after %d attempts: %w", recordID, attempt, err)
		}

		r.logger.Warn("lookup failed, retrying",
			"record", recordID,
			"attempt", attempt,
			"backoff", delay,
			"error", err,
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return types.RecordMeta{}, false, fmt.Errorf("resolve %s: %w", recordID, ctx.Err())
		case <-timer.C:
		}

		delay = min(delay*2, r.maxDelay)
	}
}
