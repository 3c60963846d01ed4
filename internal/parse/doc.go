// Package parse maps raw protocol events to typed escrow records and back.
//
// Parsing is pure and total: a malformed event yields ErrInvalidEvent, never
// a panic and never a partial record. The protocol has no schema enforcement,
// so a hostile or buggy writer can publish anything; callers discard invalid
// events and keep going, because one bad writer must not break reconciliation
// for everyone else.
//
// Structured content (the JSON in an event's content field) is validated
// against the CUE schemas embedded in schema.cue before decoding.
package parse
