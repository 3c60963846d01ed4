package nostr

// Event kinds understood by this client. Task proposals and arbiter
// announcements are parameterized replaceable (30000-39999 range); funding
// goals, zap receipts and conclusions are immutable one-off facts.
const (
	KindTaskConclusion      = 1341
	KindFundingGoal         = 9041
	KindZapReceipt          = 9735
	KindTaskProposal        = 33400
	KindArbiterAnnouncement = 33401
)

// IsParamReplaceable reports whether events of this kind are versions of a
// (party, "d" tag) entity rather than standalone facts.
func IsParamReplaceable(kind int) bool {
	return kind >= 30000 && kind < 40000
}
