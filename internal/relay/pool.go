package relay

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/suretylabs/surety/internal/nostr"
)

// Pool fans a filter set out across every source concurrently and merges
// the results by set union with event-ID dedup.
//
// Each (source, filter) query runs under its own timeout budget. A source
// that errors or times out contributes an empty set; cancellation of one
// in-flight query leaves the merged result incomplete, not corrupted.
type Pool struct {
	sources []Querier
	budget  time.Duration
	logger  *slog.Logger
}

// NewPool builds a pool over the given sources. budget bounds each
// individual query; logger may be nil for the default.
func NewPool(sources []Querier, budget time.Duration, logger *slog.Logger) *Pool {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pool{sources: sources, budget: budget, logger: logger}
}

// Fetch runs every filter against every source and returns the merged,
// deduplicated event set, ordered newest-first with event ID as the tie
// break so repeated fetches over the same evidence render identically.
func (p *Pool) Fetch(ctx context.Context, filters ...nostr.Filter) []nostr.Event {
	type batch struct {
		events []nostr.Event
	}

	results := make(chan batch)
	var wg sync.WaitGroup
	for _, source := range p.sources {
		for _, filter := range filters {
			wg.Add(1)
			go func(q Querier, f nostr.Filter) {
				defer wg.Done()
				// Correlates the log lines of one fan-out query.
				queryID := uuid.NewString()

				qctx, cancel := context.WithTimeout(ctx, p.budget)
				defer cancel()

				events, err := q.Query(qctx, f)
				if err != nil {
					p.logger.Debug("query contributed nothing",
						"query_id", queryID, "err", err)
					return
				}
				p.logger.Debug("query returned",
					"query_id", queryID, "events", len(events))
				results <- batch{events: events}
			}(source, filter)
		}
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	seen := make(map[string]bool)
	var merged []nostr.Event
	for b := range results {
		for _, ev := range b.events {
			if ev.ID == "" || seen[ev.ID] {
				continue
			}
			seen[ev.ID] = true
			merged = append(merged, ev)
		}
	}

	sort.Slice(merged, func(i, j int) bool {
		if merged[i].CreatedAt != merged[j].CreatedAt {
			return merged[i].CreatedAt > merged[j].CreatedAt
		}
		return merged[i].ID < merged[j].ID
	})
	return merged
}
