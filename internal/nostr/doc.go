// Package nostr provides the wire-level event model for the escrow protocol.
//
// Events are immutable, signed, timestamped records replicated across
// independent relays. No relay is authoritative; the same logical entity is
// observed as many event copies in arbitrary order. Everything above this
// package works on batches of events and must be deterministic given a fixed
// input set.
//
// Identity rules:
//   - Event identity is content-addressed: SHA-256 over the canonical
//     serialization (see ComputeID).
//   - Parameterized replaceable kinds carry a "d" tag; the pair
//     (primary party, d) names the current version of an entity.
//
// This package holds no network code. Transports and signature verification
// live behind the relay.Querier and relay.Signer contracts.
package nostr
