// Package testing provides test utilities for the flexgp library.
//
// This package offers helpers for setting up resolver backends in tests: an
// embedded NATS server with a record metadata bucket, and a throwaway SQLite
// track database shaped like the one the grouped split reads from. It follows
// Go's convention of providing testing utilities in a dedicated package
// (similar to net/http/httptest).
//
// Key utilities:
//   - StartEmbeddedNATS: Single NATS server with JetStream
//   - CreateRecordBucket: KV bucket pre-loaded with record metadata
//   - CreateSongsDB: SQLite database with a populated songs table
//   - NewTestLogger: types.Logger writing to t.Logf
//
// Example usage:
//
//	import (
//	    "testing"
//	    flexgptest "github.com/flexgp/flexgp/testing"
//	)
//
//	func TestMyResolver(t *testing.T) {
//	    _, nc := flexgptest.StartEmbeddedNATS(t)
//	    kv := flexgptest.CreateRecordBucket(t, nc, "tracks", records)
//	    // Use kv for your tests
//	}
package testing
