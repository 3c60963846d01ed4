// Package relay defines the two narrow contracts between the core and the
// network, and a fan-out pool that merges best-effort results from many
// independent sources.
//
// The core never talks to a relay directly and never holds a default relay
// list; sources are injected from configuration.
package relay

import (
	"context"

	"github.com/suretylabs/surety/internal/nostr"
)

// Querier returns events matching a filter, best-effort. A source that
// cannot answer in time returns an error or a subset; both are treated as
// "zero additional evidence" by the pool, never as a failure of the
// overall computation.
type Querier interface {
	Query(ctx context.Context, filter nostr.Filter) ([]nostr.Event, error)
}

// Publisher accepts a signed event for propagation. Success means the
// event will eventually be discoverable by queries.
type Publisher interface {
	Publish(ctx context.Context, ev nostr.Event) error
}

// Signer turns an unsigned template into a signed, timestamped event.
// Key custody lives entirely behind this interface.
type Signer interface {
	Sign(ctx context.Context, tmpl nostr.EventTemplate) (nostr.Event, error)
}
