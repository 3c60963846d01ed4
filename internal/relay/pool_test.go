package relay

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suretylabs/surety/internal/nostr"
)

// querierFunc adapts a closure to the Querier contract.
type querierFunc func(ctx context.Context, filter nostr.Filter) ([]nostr.Event, error)

func (f querierFunc) Query(ctx context.Context, filter nostr.Filter) ([]nostr.Event, error) {
	return f(ctx, filter)
}

func fixed(events ...nostr.Event) Querier {
	return querierFunc(func(context.Context, nostr.Filter) ([]nostr.Event, error) {
		return events, nil
	})
}

func ev(id string, createdAt int64) nostr.Event {
	return nostr.Event{ID: id, CreatedAt: createdAt, Kind: nostr.KindTaskProposal}
}

func TestPoolFetchMergesAndDeduplicates(t *testing.T) {
	// Both sources saw event b; it must count once.
	pool := NewPool([]Querier{
		fixed(ev("a", 100), ev("b", 200)),
		fixed(ev("b", 200), ev("c", 300)),
	}, time.Second, nil)

	events := pool.Fetch(context.Background(), nostr.Filter{})

	require.Len(t, events, 3)
	assert.Equal(t, "c", events[0].ID)
	assert.Equal(t, "b", events[1].ID)
	assert.Equal(t, "a", events[2].ID)
}

func TestPoolFetchOrdersDeterministically(t *testing.T) {
	// Same timestamp: event ID ascending breaks the tie regardless of
	// which source answers first.
	pool := NewPool([]Querier{
		fixed(ev("zz", 100), ev("aa", 100)),
	}, time.Second, nil)

	events := pool.Fetch(context.Background(), nostr.Filter{})

	require.Len(t, events, 2)
	assert.Equal(t, "aa", events[0].ID)
	assert.Equal(t, "zz", events[1].ID)
}

func TestPoolFetchRunsEveryFilterAgainstEverySource(t *testing.T) {
	var calls atomic.Int64
	counting := querierFunc(func(context.Context, nostr.Filter) ([]nostr.Event, error) {
		calls.Add(1)
		return nil, nil
	})

	pool := NewPool([]Querier{counting, counting, counting}, time.Second, nil)
	pool.Fetch(context.Background(), nostr.Filter{Kinds: []int{33400}}, nostr.Filter{Kinds: []int{33401}})

	assert.Equal(t, int64(6), calls.Load())
}

func TestPoolFetchToleratesFailingSources(t *testing.T) {
	failing := querierFunc(func(context.Context, nostr.Filter) ([]nostr.Event, error) {
		return nil, errors.New("connection refused")
	})

	pool := NewPool([]Querier{failing, fixed(ev("a", 100))}, time.Second, nil)
	events := pool.Fetch(context.Background(), nostr.Filter{})

	require.Len(t, events, 1, "a failing source contributes nothing, never fails the fetch")
	assert.Equal(t, "a", events[0].ID)
}

func TestPoolFetchEnforcesBudget(t *testing.T) {
	slow := querierFunc(func(ctx context.Context, _ nostr.Filter) ([]nostr.Event, error) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(5 * time.Second):
			return []nostr.Event{ev("late", 100)}, nil
		}
	})

	pool := NewPool([]Querier{slow, fixed(ev("a", 100))}, 20*time.Millisecond, nil)

	start := time.Now()
	events := pool.Fetch(context.Background(), nostr.Filter{})
	elapsed := time.Since(start)

	require.Len(t, events, 1)
	assert.Equal(t, "a", events[0].ID)
	assert.Less(t, elapsed, time.Second, "the slow source must be cut off at the budget")
}

func TestPoolFetchDropsEventsWithoutID(t *testing.T) {
	pool := NewPool([]Querier{fixed(nostr.Event{CreatedAt: 100}, ev("a", 50))}, time.Second, nil)
	events := pool.Fetch(context.Background(), nostr.Filter{})

	require.Len(t, events, 1)
	assert.Equal(t, "a", events[0].ID)
}

func TestPoolFetchNoSources(t *testing.T) {
	pool := NewPool(nil, time.Second, nil)
	assert.Empty(t, pool.Fetch(context.Background(), nostr.Filter{}))
}
