package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/suretylabs/surety/internal/nostr"
)

// Query answers a filter from the cache, implementing relay.Querier so the
// cache slots into a pool like any other event source.
func (s *Store) Query(ctx context.Context, filter nostr.Filter) ([]nostr.Event, error) {
	query, params := compileFilter(filter)

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []nostr.Event
	for rows.Next() {
		var ev nostr.Event
		var tagsJSON string
		if err := rows.Scan(&ev.ID, &ev.PubKey, &ev.CreatedAt, &ev.Kind, &tagsJSON, &ev.Content, &ev.Sig); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if err := json.Unmarshal([]byte(tagsJSON), &ev.Tags); err != nil {
			return nil, fmt.Errorf("decode tags of %s: %w", ev.ID, err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	return events, nil
}

// compileFilter turns a nostr.Filter into parameterized SQL. Values are
// always bound, never interpolated, and the ORDER BY carries an event-ID
// tie break for deterministic result order.
func compileFilter(f nostr.Filter) (string, []any) {
	var (
		where  []string
		params []any
	)

	if len(f.IDs) > 0 {
		where = append(where, "id IN ("+placeholders(len(f.IDs))+")")
		params = appendStrings(params, f.IDs)
	}
	if len(f.Kinds) > 0 {
		where = append(where, "kind IN ("+placeholders(len(f.Kinds))+")")
		for _, k := range f.Kinds {
			params = append(params, k)
		}
	}
	if len(f.Authors) > 0 {
		where = append(where, "pubkey IN ("+placeholders(len(f.Authors))+")")
		params = appendStrings(params, f.Authors)
	}
	if f.Since > 0 {
		where = append(where, "created_at >= ?")
		params = append(params, f.Since)
	}
	if f.Until > 0 {
		where = append(where, "created_at <= ?")
		params = append(params, f.Until)
	}

	// Tag names sorted so the same filter always compiles to the same SQL.
	tagNames := make([]string, 0, len(f.Tags))
	for name := range f.Tags {
		tagNames = append(tagNames, name)
	}
	sort.Strings(tagNames)
	for _, name := range tagNames {
		accepted := f.Tags[name]
		if len(accepted) == 0 {
			continue
		}
		where = append(where,
			"id IN (SELECT event_id FROM event_tags WHERE name = ? AND value IN ("+placeholders(len(accepted))+"))")
		params = append(params, name)
		params = appendStrings(params, accepted)
	}

	query := "SELECT id, pubkey, created_at, kind, tags, content, sig FROM events"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id ASC"
	if f.Limit > 0 {
		query += " LIMIT ?"
		params = append(params, f.Limit)
	}
	return query, params
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func appendStrings(params []any, values []string) []any {
	for _, v := range values {
		params = append(params, v)
	}
	return params
}
