package parse

import (
	"strconv"

	"github.com/suretylabs/surety/internal/escrow"
	"github.com/suretylabs/surety/internal/nostr"
)

// Goal parses a funding goal. Required: target amount tag in millisats.
// Goals are immutable, so there is no identity or party surface to check.
func Goal(ev nostr.Event) (*escrow.FundingGoal, error) {
	if ev.Kind != nostr.KindFundingGoal {
		return nil, invalidf("kind %d is not a funding goal", ev.Kind)
	}

	amountTag, ok := ev.Tags.First(tagAmount)
	if !ok {
		return nil, invalidf("goal missing target amount tag")
	}
	target, err := strconv.ParseInt(amountTag.Value(), 10, 64)
	if err != nil || target < 0 {
		return nil, invalidf("goal target %q is not a millisat figure", amountTag.Value())
	}

	g := &escrow.FundingGoal{
		EventID:    ev.ID,
		AuthoredBy: ev.PubKey,
		CreatedAt:  ev.CreatedAt,

		TargetMsat:       target,
		TaskAddr:         ev.Tags.Value(tagAddress),
		DefaultRecipient: ev.Tags.Value(tagZap),
	}

	if relays, ok := ev.Tags.First(tagRelays); ok && len(relays) > 1 {
		g.Relays = append(g.Relays, relays[1:]...)
	}
	return g, nil
}
