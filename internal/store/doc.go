// Package store caches observed protocol events in SQLite.
//
// The cache is append-only: events are immutable and content-addressed, so
// writes are idempotent (ON CONFLICT DO NOTHING on the event ID) and there
// is no update path. Reconciliation of replaceable entities happens above
// this package over whatever subset the cache holds.
//
// The store answers nostr.Filter queries by compiling them to
// parameterized SQL. Every query carries an explicit ORDER BY with an
// event-ID tie break so identical caches produce identical result orders.
//
// Database configuration:
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: event_tags rows cannot outlive their event
package store
