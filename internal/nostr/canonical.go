package nostr

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// canonicalForm is the array shape hashed for event identity:
// [0, pubkey, created_at, kind, tags, content].
// The leading 0 is the serialization version.
func canonicalForm(e Event) []any {
	tags := e.Tags
	if tags == nil {
		tags = Tags{}
	}
	return []any{0, e.PubKey, e.CreatedAt, e.Kind, tags, e.Content}
}

// SerializeCanonical produces the byte string whose SHA-256 is the event ID.
// HTML escaping is disabled: the hash must be computed over the literal
// content bytes, and writers that escape '<' or '&' would derive a
// different identity for the same event.
func SerializeCanonical(e Event) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(canonicalForm(e)); err != nil {
		return nil, fmt.Errorf("serialize event: %w", err)
	}
	// Encoder appends a trailing newline; it is not part of the hash input.
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// ComputeID returns the content-addressed identity of an event: the hex
// SHA-256 of its canonical serialization. Sig and any preset ID are ignored.
func ComputeID(e Event) (string, error) {
	data, err := SerializeCanonical(e)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
