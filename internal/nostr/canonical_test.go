package nostr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeCanonical(t *testing.T) {
	ev := Event{
		PubKey:    "abcd",
		CreatedAt: 1700000000,
		Kind:      33400,
		Tags:      Tags{{"d", "task-1"}, {"p", "ef01"}},
		Content:   `{"title":"Fix <the> docs & more"}`,
	}

	data, err := SerializeCanonical(ev)
	require.NoError(t, err)

	want := `[0,"abcd",1700000000,33400,[["d","task-1"],["p","ef01"]],"{\"title\":\"Fix <the> docs & more\"}"]`
	assert.Equal(t, want, string(data), "content bytes must be hashed literally, without HTML escaping")
}

func TestSerializeCanonicalNilTags(t *testing.T) {
	data, err := SerializeCanonical(Event{PubKey: "abcd", Kind: 1341})
	require.NoError(t, err)
	assert.Contains(t, string(data), "[]", "nil tags serialize as an empty array, not null")
}

func TestComputeID(t *testing.T) {
	ev := Event{
		PubKey:    "abcd",
		CreatedAt: 1700000000,
		Kind:      9041,
		Tags:      Tags{{"amount", "21000000"}},
	}

	id, err := ComputeID(ev)
	require.NoError(t, err)
	assert.Len(t, id, 64)

	// Identity is a pure function of the canonical fields.
	again, err := ComputeID(ev)
	require.NoError(t, err)
	assert.Equal(t, id, again)

	// Sig and any preset ID do not participate.
	ev.ID = "already-set"
	ev.Sig = "deadbeef"
	withSig, err := ComputeID(ev)
	require.NoError(t, err)
	assert.Equal(t, id, withSig)

	// Any canonical field change moves the identity.
	ev.CreatedAt++
	moved, err := ComputeID(ev)
	require.NoError(t, err)
	assert.NotEqual(t, id, moved)
}
