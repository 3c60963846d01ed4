// Package testutil provides deterministic fixtures for tests: fixed
// identities and event builders that produce real content-addressed IDs,
// so the same test inputs always hash to the same event identities.
package testutil

import "strings"

// Key derives a fixed 32-byte hex pubkey from a single byte pattern.
func Key(b string) string {
	return strings.Repeat(b, 32)
}

// Fixed identities used across tests and harness scenarios.
var (
	PatronKey   = Key("01")
	ArbiterKey  = Key("02")
	WorkerKey   = Key("03")
	FunderAKey  = Key("0a")
	FunderBKey  = Key("0b")
	FunderCKey  = Key("0c")
	MalloryKey  = Key("ee")
	ServiceAddr = "33401:" + Key("02") + ":dispute-desk"
)
