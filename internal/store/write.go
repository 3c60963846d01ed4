package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/suretylabs/surety/internal/nostr"
)

// SaveEvent caches one event. Duplicate IDs are silently ignored, so
// re-ingesting overlapping relay dumps is safe. Events without an ID are
// rejected: identity is the only dedup key this cache has.
func (s *Store) SaveEvent(ctx context.Context, ev nostr.Event) error {
	if ev.ID == "" {
		return fmt.Errorf("save event: missing id")
	}
	tags := ev.Tags
	if tags == nil {
		tags = nostr.Tags{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("save event %s: marshal tags: %w", ev.ID, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save event %s: %w", ev.ID, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO events (id, pubkey, created_at, kind, tags, content, sig)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, ev.ID, ev.PubKey, ev.CreatedAt, ev.Kind, string(tagsJSON), ev.Content, ev.Sig)
	if err != nil {
		return fmt.Errorf("save event %s: %w", ev.ID, err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save event %s: %w", ev.ID, err)
	}
	if inserted > 0 {
		for _, t := range tags {
			if t.Name() == "" || t.Value() == "" {
				continue
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO event_tags (event_id, name, value) VALUES (?, ?, ?)
			`, ev.ID, t.Name(), t.Value()); err != nil {
				return fmt.Errorf("save event %s: index tag %s: %w", ev.ID, t.Name(), err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save event %s: %w", ev.ID, err)
	}
	return nil
}

// CountEvents reports the cache size; used by ingest reporting and tests.
func (s *Store) CountEvents(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}
