// Package source provides record resolver implementations.
//
// A resolver maps a record id to its group and sort key. The grouped split
// calls it once per distinct record; records it does not know are excluded.
//
// Backends:
//   - Static: in-memory map, for tests and small datasets
//   - SQLite: the track metadata database (songs table)
//   - KV: JSON metadata in a NATS JetStream key-value bucket
//
// Decorators:
//   - Retrying: retries transient backend failures with exponential backoff
//   - Cached: memoizes lookups so repeated runs do not hit the backend again
package source
