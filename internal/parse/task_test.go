package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suretylabs/surety/internal/escrow"
	"github.com/suretylabs/surety/internal/nostr"
	"github.com/suretylabs/surety/internal/testutil"
)

func TestTask(t *testing.T) {
	ev := testutil.TaskEvent(testutil.PatronKey, 100, "docs-fix",
		[]string{testutil.PatronKey, testutil.ArbiterKey, testutil.WorkerKey},
		5000, "in_progress", "Fix the docs",
		nostr.Tag{"a", testutil.ServiceAddr},
		nostr.Tag{"t", " Design "},
		nostr.Tag{"t", "BACKEND"},
	)

	task, err := Task(ev)
	require.NoError(t, err)

	assert.Equal(t, ev.ID, task.EventID)
	assert.Equal(t, testutil.PatronKey, task.AuthoredBy)
	assert.Equal(t, int64(100), task.CreatedAt)
	assert.Equal(t, "docs-fix", task.TaskID)
	assert.Equal(t, testutil.PatronKey, task.Patron)
	assert.Equal(t, testutil.ArbiterKey, task.Arbiter)
	assert.Equal(t, testutil.WorkerKey, task.Worker)
	assert.Equal(t, "Fix the docs", task.Title)
	assert.Equal(t, int64(5000), task.AmountSats)
	assert.Equal(t, escrow.StatusInProgress, task.Status)
	assert.Equal(t, escrow.FundingSingle, task.Funding, "funding defaults to single")
	assert.Equal(t, testutil.ServiceAddr, task.ServiceRef)
	assert.Equal(t, []string{"design", "backend"}, task.Categories)
	assert.Equal(t, testutil.PatronKey+":docs-fix", task.Identity())
}

func TestTaskPartialParties(t *testing.T) {
	ev := testutil.TaskEvent(testutil.PatronKey, 100, "docs-fix",
		[]string{testutil.PatronKey}, 5000, "proposed", "Fix the docs")

	task, err := Task(ev)
	require.NoError(t, err)
	assert.Empty(t, task.Arbiter)
	assert.Empty(t, task.Worker)
	assert.Equal(t, []string{testutil.PatronKey}, task.Parties())
}

func TestTaskCrowdfunded(t *testing.T) {
	ev := testutil.TaskEvent(testutil.PatronKey, 100, "docs-fix",
		[]string{testutil.PatronKey}, 5000, "proposed", "Fix the docs",
		nostr.Tag{"funding", "crowdfunding"},
		nostr.Tag{"goal", "goal-event-id"},
	)

	task, err := Task(ev)
	require.NoError(t, err)
	assert.True(t, task.Crowdfunded())
	assert.Equal(t, "goal-event-id", task.GoalID)
}

func TestTaskZapReceiptRef(t *testing.T) {
	ev := testutil.TaskEvent(testutil.PatronKey, 100, "docs-fix",
		[]string{testutil.PatronKey}, 5000, "concluded", "Fix the docs",
		nostr.Tag{"e", "some-other-ref"},
		nostr.Tag{"e", "receipt-id", "wss://relay", "zap"},
	)

	task, err := Task(ev)
	require.NoError(t, err)
	assert.Equal(t, "receipt-id", task.ReceiptID, "only the zap-marked reference is the payment proof")
}

func TestTaskInvalid(t *testing.T) {
	valid := func() nostr.Tags {
		return nostr.Tags{
			{"d", "docs-fix"},
			{"p", testutil.PatronKey},
			{"amount", "5000"},
			{"status", "proposed"},
		}
	}
	drop := func(name string) nostr.Tags {
		var out nostr.Tags
		for _, tag := range valid() {
			if tag.Name() != name {
				out = append(out, tag)
			}
		}
		return out
	}
	replace := func(name, value string) nostr.Tags {
		out := drop(name)
		return append(out, nostr.Tag{name, value})
	}

	tests := []struct {
		name    string
		kind    int
		tags    nostr.Tags
		content string
	}{
		{name: "wrong kind", kind: nostr.KindFundingGoal, tags: valid(), content: `{"title":"x"}`},
		{name: "missing identity", kind: nostr.KindTaskProposal, tags: drop("d"), content: `{"title":"x"}`},
		{name: "missing party", kind: nostr.KindTaskProposal, tags: drop("p"), content: `{"title":"x"}`},
		{name: "missing amount", kind: nostr.KindTaskProposal, tags: drop("amount"), content: `{"title":"x"}`},
		{name: "negative amount", kind: nostr.KindTaskProposal, tags: replace("amount", "-1"), content: `{"title":"x"}`},
		{name: "non-numeric amount", kind: nostr.KindTaskProposal, tags: replace("amount", "lots"), content: `{"title":"x"}`},
		{name: "missing status", kind: nostr.KindTaskProposal, tags: drop("status"), content: `{"title":"x"}`},
		{name: "unknown status", kind: nostr.KindTaskProposal, tags: replace("status", "paused"), content: `{"title":"x"}`},
		{name: "unknown funding type", kind: nostr.KindTaskProposal, tags: append(valid(), nostr.Tag{"funding", "matched"}), content: `{"title":"x"}`},
		{name: "crowdfunding without goal", kind: nostr.KindTaskProposal, tags: append(valid(), nostr.Tag{"funding", "crowdfunding"}), content: `{"title":"x"}`},
		{name: "content not json", kind: nostr.KindTaskProposal, tags: valid(), content: `not json`},
		{name: "content missing title", kind: nostr.KindTaskProposal, tags: valid(), content: `{}`},
		{name: "content empty title", kind: nostr.KindTaskProposal, tags: valid(), content: `{"title":""}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := testutil.SignedEvent(testutil.PatronKey, 100, tt.kind, tt.content, tt.tags)
			_, err := Task(ev)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidEvent)
		})
	}
}
