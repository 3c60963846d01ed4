package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suretylabs/surety/internal/nostr"
	"github.com/suretylabs/surety/internal/testutil"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.SaveEvent(context.Background(),
		testutil.TaskEvent(testutil.PatronKey, 100, "docs-fix", []string{testutil.PatronKey}, 5000, "proposed", "Fix the docs")))
	require.NoError(t, s1.Close())

	// Reopening applies schema and pragmas again without clobbering data.
	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	n, err := s2.CountEvents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestSaveEventDeduplicatesByID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	ev := testutil.TaskEvent(testutil.PatronKey, 100, "docs-fix", []string{testutil.PatronKey}, 5000, "proposed", "Fix the docs")

	require.NoError(t, s.SaveEvent(ctx, ev))
	require.NoError(t, s.SaveEvent(ctx, ev), "re-ingesting the same event is not an error")

	n, err := s.CountEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestSaveEventRejectsMissingID(t *testing.T) {
	s := openTestStore(t)
	err := s.SaveEvent(context.Background(), nostr.Event{Kind: nostr.KindTaskProposal})
	assert.Error(t, err)
}

func TestQueryRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	ev := testutil.TaskEvent(testutil.PatronKey, 100, "docs-fix",
		[]string{testutil.PatronKey, testutil.ArbiterKey}, 5000, "proposed", "Fix the docs")
	require.NoError(t, s.SaveEvent(ctx, ev))

	events, err := s.Query(ctx, nostr.Filter{IDs: []string{ev.ID}})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, ev, events[0], "the cached event survives byte-for-byte")
}

func TestQueryFilters(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	task := testutil.TaskEvent(testutil.PatronKey, 100, "docs-fix", []string{testutil.PatronKey}, 5000, "proposed", "Fix the docs")
	announcement := testutil.AnnouncementEvent(testutil.ArbiterKey, 200, "dispute-desk", "flat", "500")
	goal := testutil.GoalEvent(testutil.PatronKey, 300, 4_000_000, "33400:"+testutil.PatronKey+":docs-fix")
	receipt := testutil.ZapReceipt(testutil.FunderAKey, 400, 1_000_000, goal.ID)
	for _, ev := range []nostr.Event{task, announcement, goal, receipt} {
		require.NoError(t, s.SaveEvent(ctx, ev))
	}

	tests := []struct {
		name   string
		filter nostr.Filter
		want   []string
	}{
		{name: "by kind", filter: nostr.Filter{Kinds: []int{nostr.KindTaskProposal}}, want: []string{task.ID}},
		{name: "by author", filter: nostr.Filter{Authors: []string{testutil.ArbiterKey}}, want: []string{announcement.ID}},
		{name: "by identity tag", filter: nostr.Filter{Tags: map[string][]string{"d": {"docs-fix"}}}, want: []string{task.ID}},
		{name: "by event reference tag", filter: nostr.Filter{Kinds: []int{nostr.KindZapReceipt}, Tags: map[string][]string{"e": {goal.ID}}}, want: []string{receipt.ID}},
		{name: "by time window", filter: nostr.Filter{Since: 150, Until: 350}, want: []string{goal.ID, announcement.ID}},
		{name: "no match", filter: nostr.Filter{Kinds: []int{nostr.KindTaskConclusion}}, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := s.Query(ctx, tt.filter)
			require.NoError(t, err)
			ids := make([]string, 0, len(events))
			for _, ev := range events {
				ids = append(ids, ev.ID)
			}
			if tt.want == nil {
				assert.Empty(t, ids)
			} else {
				assert.Equal(t, tt.want, ids)
			}
		})
	}
}

func TestQueryOrderAndLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// Three versions of the same task at distinct timestamps.
	var saved []nostr.Event
	for i, status := range []string{"proposed", "in_progress", "submitted"} {
		ev := testutil.TaskEvent(testutil.PatronKey, int64(100+i*100), "docs-fix",
			[]string{testutil.PatronKey}, 5000, status, "Fix the docs")
		require.NoError(t, s.SaveEvent(ctx, ev))
		saved = append(saved, ev)
	}

	events, err := s.Query(ctx, nostr.Filter{Kinds: []int{nostr.KindTaskProposal}})
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, saved[2].ID, events[0].ID, "newest first")
	assert.Equal(t, saved[0].ID, events[2].ID)

	limited, err := s.Query(ctx, nostr.Filter{Kinds: []int{nostr.KindTaskProposal}, Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, saved[2].ID, limited[0].ID)
}

func TestCompileFilterIsDeterministic(t *testing.T) {
	f := nostr.Filter{
		Kinds: []int{33400},
		Tags:  map[string][]string{"p": {"x"}, "d": {"y"}, "a": {"z"}},
	}
	q1, _ := compileFilter(f)
	for i := 0; i < 10; i++ {
		q2, _ := compileFilter(f)
		require.Equal(t, q1, q2, "map iteration order must not leak into the SQL")
	}
}
