package escrow

// FundingGoal is a crowdfunding target. Immutable: identity is the event
// ID and there is no party surface because goals are never superseded.
type FundingGoal struct {
	EventID    string
	AuthoredBy string
	CreatedAt  int64

	TargetMsat       int64
	TaskAddr         string   // addressable reference to the funded task
	Relays           []string // relay hints for contributors
	DefaultRecipient string   // suggested default fee recipient, may be empty
}

// TargetSats converts the goal target to whole satoshis, flooring.
func (g *FundingGoal) TargetSats() int64 { return g.TargetMsat / 1000 }
