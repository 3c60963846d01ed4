// Package reconcile collapses a multi-writer batch of replaceable records
// into one current record per identity.
//
// The fold is a pure function of its input batch. Two observers with
// different event subsets may legitimately disagree; what this package
// guarantees is determinism over a fixed input, idempotence under re-runs,
// and that growing the input can only change an identity's outcome by
// introducing a newer, authorized version.
package reconcile

import (
	"log/slog"
	"sort"
)

// Record is the authorization surface of one observed version of a
// replaceable entity. Implemented by escrow.Task and escrow.Announcement.
type Record interface {
	// Identity names the entity this record is a version of.
	Identity() string
	// Author is the pubkey that signed this version.
	Author() string
	// Timestamp is the version's created_at.
	Timestamp() int64
	// Parties are the pubkeys allowed to publish the next version.
	Parties() []string
}

// Latest folds records into the current version per identity.
//
// A candidate supersedes the held record only if its timestamp is strictly
// greater and its author is one of the HELD record's parties. Checking
// against the held record, never the candidate's own claimed parties, is
// what stops an update from installing a new worker that then
// self-authorizes further changes.
//
// Records fold oldest-first regardless of arrival order: event sources
// return newest-first, and a hostile newest version must not slip past
// the authorization check by arriving at the front of the batch. An
// identity's oldest record bootstraps it unconditionally: there is no
// prior state to authorize against. On equal timestamps the held record
// wins, so input order matters only for exact ties.
func Latest[R Record](records []R) map[string]R {
	ordered := make([]R, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp() < ordered[j].Timestamp()
	})

	current := make(map[string]R, len(records))
	for _, candidate := range ordered {
		id := candidate.Identity()
		held, ok := current[id]
		if !ok {
			current[id] = candidate
			continue
		}
		if candidate.Timestamp() <= held.Timestamp() {
			continue
		}
		if !authorized(candidate.Author(), held) {
			slog.Debug("unauthorized supersede attempt ignored",
				"identity", id,
				"author", candidate.Author(),
				"held_timestamp", held.Timestamp(),
				"candidate_timestamp", candidate.Timestamp())
			continue
		}
		current[id] = candidate
	}
	return current
}

// One returns the current record for a single identity, if any survived.
func One[R Record](records []R, identity string) (R, bool) {
	rec, ok := Latest(records)[identity]
	return rec, ok
}

func authorized(author string, held Record) bool {
	for _, p := range held.Parties() {
		if p == author {
			return true
		}
	}
	return false
}
