package nostr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagAccessors(t *testing.T) {
	tests := []struct {
		name   string
		tag    Tag
		wantN  string
		wantV  string
		wantMk string
	}{
		{name: "full reference tag", tag: Tag{"e", "abc", "wss://relay", "zap"}, wantN: "e", wantV: "abc", wantMk: "zap"},
		{name: "name and value only", tag: Tag{"d", "task-1"}, wantN: "d", wantV: "task-1"},
		{name: "bare name", tag: Tag{"t"}, wantN: "t"},
		{name: "empty tag", tag: Tag{}},
		{name: "nil tag", tag: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantN, tt.tag.Name())
			assert.Equal(t, tt.wantV, tt.tag.Value())
			assert.Equal(t, tt.wantMk, tt.tag.Marker())
		})
	}
}

func TestTagsLookup(t *testing.T) {
	tags := Tags{
		{"d", "task-1"},
		{"p", "alice"},
		{"p", "bob"},
		{"t", "design"},
	}

	first, ok := tags.First("p")
	require.True(t, ok)
	assert.Equal(t, "alice", first.Value())

	_, ok = tags.First("amount")
	assert.False(t, ok)

	assert.Equal(t, "task-1", tags.Value("d"))
	assert.Equal(t, "", tags.Value("missing"))

	assert.Equal(t, []string{"alice", "bob"}, tags.Values("p"))
	assert.Len(t, tags.All("p"), 2)
	assert.Empty(t, tags.All("e"))
}

func TestEventAddress(t *testing.T) {
	ev := Event{
		PubKey: "feedface",
		Kind:   33400,
		Tags:   Tags{{"d", "task-1"}},
	}
	assert.Equal(t, "33400:feedface:task-1", ev.Address())
	assert.Equal(t, "task-1", ev.D())

	// Replaceable events without an identity tag address the empty identity.
	ev.Tags = nil
	assert.Equal(t, "33400:feedface:", ev.Address())
}

func TestIsParamReplaceable(t *testing.T) {
	assert.True(t, IsParamReplaceable(KindTaskProposal))
	assert.True(t, IsParamReplaceable(KindArbiterAnnouncement))
	assert.True(t, IsParamReplaceable(30000))
	assert.True(t, IsParamReplaceable(39999))
	assert.False(t, IsParamReplaceable(KindZapReceipt))
	assert.False(t, IsParamReplaceable(KindFundingGoal))
	assert.False(t, IsParamReplaceable(29999))
	assert.False(t, IsParamReplaceable(40000))
}

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Design", "design"},
		{"  translation  ", "translation"},
		{"BACKEND", "backend"},
		// Decomposed e + combining acute composes to the same label as
		// the precomposed form.
		{"cafe\u0301", "caf\u00e9"},
		{"CAF\u00c9", "caf\u00e9"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeCategory(tt.in), "input %q", tt.in)
	}
}
