// Package escrow defines the typed records the reconciliation core works
// on: task proposals, arbiter announcements, funding goals and task
// conclusions, plus the fee policy and settlement vocabulary shared by the
// funding and settle packages.
//
// Records are produced only by internal/parse; a record in hand is already
// structurally valid. Records carry the authorization surface the
// reconciler needs (identity, declared author, timestamp, parties) and
// nothing else about the wire format.
package escrow
