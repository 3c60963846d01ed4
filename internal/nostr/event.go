package nostr

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Tag is a single event tag: a name followed by positional values.
// The protocol enforces no schema; consumers must treat missing positions
// as absent, not as errors.
type Tag []string

// Name returns the tag name, or "" for a malformed empty tag.
func (t Tag) Name() string {
	if len(t) == 0 {
		return ""
	}
	return t[0]
}

// Value returns the first positional value, or "".
func (t Tag) Value() string {
	if len(t) < 2 {
		return ""
	}
	return t[1]
}

// Marker returns the fourth element of a reference tag ("e" tags use
// position 3 for a marker such as "zap"), or "".
func (t Tag) Marker() string {
	if len(t) < 4 {
		return ""
	}
	return t[3]
}

// Tags is an ordered tag list. Order is meaningful for positional party
// tags on task events.
type Tags []Tag

// First returns the first tag with the given name.
func (ts Tags) First(name string) (Tag, bool) {
	for _, t := range ts {
		if t.Name() == name {
			return t, true
		}
	}
	return nil, false
}

// Value returns the first value of the first tag with the given name, or "".
func (ts Tags) Value(name string) string {
	t, ok := ts.First(name)
	if !ok {
		return ""
	}
	return t.Value()
}

// All returns every tag with the given name, preserving order.
func (ts Tags) All(name string) []Tag {
	var out []Tag
	for _, t := range ts {
		if t.Name() == name {
			out = append(out, t)
		}
	}
	return out
}

// Values returns the first value of every tag with the given name.
func (ts Tags) Values(name string) []string {
	var out []string
	for _, t := range ts.All(name) {
		out = append(out, t.Value())
	}
	return out
}

// Event is one protocol event as received from or handed to a relay.
// Sig is opaque here; verification is the transport layer's concern.
type Event struct {
	ID        string `json:"id"`
	PubKey    string `json:"pubkey"`
	CreatedAt int64  `json:"created_at"`
	Kind      int    `json:"kind"`
	Tags      Tags   `json:"tags"`
	Content   string `json:"content"`
	Sig       string `json:"sig"`
}

// D returns the event's identity ("d") tag value, or "".
func (e Event) D() string {
	return e.Tags.Value("d")
}

// Address returns the addressable reference "kind:pubkey:d" used by "a"
// tags to point at the current version of a replaceable entity.
func (e Event) Address() string {
	return strconv.Itoa(e.Kind) + ":" + e.PubKey + ":" + e.D()
}

// EventTemplate is an unsigned event. The signing collaborator stamps it
// with pubkey, created_at, id and sig at publish time.
type EventTemplate struct {
	Kind    int    `json:"kind"`
	Content string `json:"content"`
	Tags    Tags   `json:"tags"`
}

// NormalizeCategory canonicalizes a category ("t") tag value so that
// visually identical labels from different writers compare equal.
func NormalizeCategory(s string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(s)))
}
