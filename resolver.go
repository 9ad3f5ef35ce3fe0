package flexgp

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/flexgp/flexgp/internal/kvutil"
	"github.com/flexgp/flexgp/internal/logger"
	"github.com/flexgp/flexgp/source"
)

// CloseFunc releases the resources behind a resolver.
type CloseFunc func() error

func nopClose() error { return nil }

// OpenResolver builds the resolver described by cfg.
//
// The backend is wrapped in source.Retrying when cfg.Lookup.MaxAttempts > 1
// and in source.Cached when cfg.Lookup.Cache is set. Resolver "none" yields a
// nil resolver, which only supports ungrouped runs.
//
// Parameters:
//   - ctx: Context for connecting to the backend
//   - cfg: Validated configuration
//   - log: Logger for retry warnings (may be nil)
//
// Returns:
//   - Resolver: Configured resolver (nil for "none")
//   - CloseFunc: Releases the backend; always non-nil
//   - error: Connection or setup error
//
// Example:
//
//	res, closeFn, err := flexgp.OpenResolver(ctx, &cfg, logger)
//	if err != nil { /* handle */ }
//	defer closeFn()
//	splitter, err := flexgp.NewSplitter(res, flexgp.WithLogger(logger))
func OpenResolver(ctx context.Context, cfg *Config, log Logger) (Resolver, CloseFunc, error) {
	if log == nil {
		log = logger.NewNop()
	}

	var (
		backend Resolver
		closeFn CloseFunc = nopClose
	)

	switch cfg.Resolver {
	case ResolverNone, "":
		return nil, nopClose, nil

	case ResolverSQLite:
		src, err := source.OpenSQLite(ctx, cfg.SQLite.Path, cfg.SQLite.Query)
		if err != nil {
			return nil, nopClose, err
		}
		backend, closeFn = src, src.Close
		log.Debug("sqlite resolver opened", "path", cfg.SQLite.Path)

	case ResolverKV:
		bucket, nc, err := OpenRecordBucket(ctx, cfg)
		if err != nil {
			return nil, nopClose, err
		}
		backend = source.NewKV(bucket)
		closeFn = func() error {
			nc.Close()
			return nil
		}
		log.Debug("kv resolver opened", "url", cfg.KV.URL, "bucket", cfg.KV.Bucket)

	default:
		return nil, nopClose, fmt.Errorf("%w: unknown resolver %q", ErrInvalidConfig, cfg.Resolver)
	}

	resolver := backend
	if cfg.Lookup.MaxAttempts > 1 {
		resolver = source.NewRetrying(resolver,
			source.WithMaxAttempts(cfg.Lookup.MaxAttempts),
			source.WithBackoff(cfg.Lookup.BaseBackoff, cfg.Lookup.MaxBackoff),
			source.WithRetryLogger(log),
		)
	}
	if cfg.Lookup.Cache {
		resolver = source.NewCached(resolver)
	}

	return resolver, closeFn, nil
}

// OpenRecordBucket connects to NATS and opens (or, with cfg.KV.Create,
// creates) the record metadata bucket.
//
// Parameters:
//   - ctx: Parent context; cfg.KV.OperationTimeout bounds the bucket open
//   - cfg: Configuration with a filled-in KV section
//
// Returns:
//   - jetstream.KeyValue: Record bucket
//   - *nats.Conn: Connection the caller must close
//   - error: Connection or bucket error (ErrConnectivity wrapped when unreachable)
func OpenRecordBucket(ctx context.Context, cfg *Config) (jetstream.KeyValue, *nats.Conn, error) {
	nc, err := nats.Connect(cfg.KV.URL,
		nats.Name("flexgp"),
		nats.Timeout(cfg.KV.ConnectTimeout),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: connect %s: %w", ErrConnectivity, cfg.KV.URL, err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("jetstream: %w", err)
	}

	opCtx := ctx
	if cfg.KV.OperationTimeout > 0 {
		var cancel context.CancelFunc
		opCtx, cancel = context.WithTimeout(ctx, cfg.KV.OperationTimeout)
		defer cancel()
	}

	bucket, err := kvutil.OpenBucket(opCtx, js, jetstream.KeyValueConfig{
		Bucket:      cfg.KV.Bucket,
		Description: "flexgp record metadata",
		History:     1,
	}, cfg.KV.Create, cfg.Lookup.MaxAttempts)
	if err != nil {
		nc.Close()
		return nil, nil, err
	}

	return bucket, nc, nil
}
