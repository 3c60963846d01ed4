package parse

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/suretylabs/surety/internal/escrow"
	"github.com/suretylabs/surety/internal/nostr"
)

// The encode direction builds unsigned event templates for the publish
// collaborator. Encoding is strict where parsing is lenient: a record that
// would not round-trip through its own parser is a caller bug and returns
// an error instead of producing a malformed event.

// TaskEvent builds the event template for a task proposal version.
func TaskEvent(t *escrow.Task) (nostr.EventTemplate, error) {
	if t.TaskID == "" || t.Patron == "" {
		return nostr.EventTemplate{}, fmt.Errorf("task needs identity and patron")
	}
	if t.Worker != "" && t.Arbiter == "" {
		// Party tags are positional; a worker cannot be encoded without
		// the arbiter slot in front of it.
		return nostr.EventTemplate{}, fmt.Errorf("task has worker %s but no arbiter", t.Worker)
	}
	if !escrow.ValidStatus(t.Status) {
		return nostr.EventTemplate{}, fmt.Errorf("task status %q unknown", t.Status)
	}
	if t.Crowdfunded() && t.GoalID == "" {
		return nostr.EventTemplate{}, fmt.Errorf("crowdfunded task needs a goal reference")
	}

	content, err := json.Marshal(taskContent{
		Title:        t.Title,
		Description:  t.Description,
		Requirements: t.Requirements,
		Deadline:     t.Deadline,
	})
	if err != nil {
		return nostr.EventTemplate{}, fmt.Errorf("encode task content: %w", err)
	}

	tags := nostr.Tags{
		{tagIdentity, t.TaskID},
		{tagParty, t.Patron},
	}
	if t.Arbiter != "" {
		tags = append(tags, nostr.Tag{tagParty, t.Arbiter})
	}
	if t.Worker != "" {
		tags = append(tags, nostr.Tag{tagParty, t.Worker})
	}
	tags = append(tags,
		nostr.Tag{tagAmount, strconv.FormatInt(t.AmountSats, 10)},
		nostr.Tag{tagStatus, string(t.Status)},
		nostr.Tag{tagFunding, string(fundingOrDefault(t.Funding))},
	)
	if t.GoalID != "" {
		tags = append(tags, nostr.Tag{tagGoal, t.GoalID})
	}
	if t.ServiceRef != "" {
		tags = append(tags, nostr.Tag{tagAddress, t.ServiceRef})
	}
	if t.ReceiptID != "" {
		tags = append(tags, nostr.Tag{tagEvent, t.ReceiptID, "", markerZap})
	}
	tags = appendCategories(tags, t.Categories)

	return nostr.EventTemplate{
		Kind:    nostr.KindTaskProposal,
		Content: string(content),
		Tags:    tags,
	}, nil
}

// AnnouncementEvent builds the event template for an arbiter listing.
func AnnouncementEvent(a *escrow.Announcement) (nostr.EventTemplate, error) {
	if a.ServiceID == "" || a.Arbiter == "" {
		return nostr.EventTemplate{}, fmt.Errorf("announcement needs identity and arbiter")
	}
	if a.Fee.Type != escrow.FeeFlat && a.Fee.Type != escrow.FeePercentage {
		return nostr.EventTemplate{}, fmt.Errorf("announcement fee type %q unknown", a.Fee.Type)
	}

	content, err := json.Marshal(announcementContent{Name: a.Name, About: a.About})
	if err != nil {
		return nostr.EventTemplate{}, fmt.Errorf("encode announcement content: %w", err)
	}

	tags := nostr.Tags{
		{tagIdentity, a.ServiceID},
		{tagParty, a.Arbiter},
		{tagFeeType, string(a.Fee.Type)},
		{tagFeeAmount, strconv.FormatFloat(a.Fee.Amount, 'f', -1, 64)},
	}
	if a.MinAmountSats > 0 {
		tags = append(tags, nostr.Tag{tagMinAmount, strconv.FormatInt(a.MinAmountSats, 10)})
	}
	if a.MaxAmountSats > 0 {
		tags = append(tags, nostr.Tag{tagMaxAmount, strconv.FormatInt(a.MaxAmountSats, 10)})
	}
	tags = appendCategories(tags, a.Categories)

	return nostr.EventTemplate{
		Kind:    nostr.KindArbiterAnnouncement,
		Content: string(content),
		Tags:    tags,
	}, nil
}

// ConclusionEvent builds the event template for a task conclusion.
func ConclusionEvent(c *escrow.Conclusion) (nostr.EventTemplate, error) {
	if !escrow.ValidResolution(c.Resolution) {
		return nostr.EventTemplate{}, fmt.Errorf("conclusion resolution %q unknown", c.Resolution)
	}

	content, err := json.Marshal(conclusionContent{Narrative: c.Narrative})
	if err != nil {
		return nostr.EventTemplate{}, fmt.Errorf("encode conclusion content: %w", err)
	}

	tags := nostr.Tags{{tagResolution, string(c.Resolution)}}
	if c.TaskAddr != "" {
		tags = append(tags, nostr.Tag{tagAddress, c.TaskAddr})
	}
	if c.ReceiptID != "" {
		tags = append(tags, nostr.Tag{tagEvent, c.ReceiptID, "", markerZap})
	}
	for _, p := range c.Parties {
		tags = append(tags, nostr.Tag{tagParty, p})
	}

	return nostr.EventTemplate{
		Kind:    nostr.KindTaskConclusion,
		Content: string(content),
		Tags:    tags,
	}, nil
}

// GoalEvent builds the event template for a funding goal.
func GoalEvent(g *escrow.FundingGoal) (nostr.EventTemplate, error) {
	if g.TargetMsat <= 0 {
		return nostr.EventTemplate{}, fmt.Errorf("goal needs a positive target")
	}

	tags := nostr.Tags{{tagAmount, strconv.FormatInt(g.TargetMsat, 10)}}
	if g.TaskAddr != "" {
		tags = append(tags, nostr.Tag{tagAddress, g.TaskAddr})
	}
	if len(g.Relays) > 0 {
		tags = append(tags, append(nostr.Tag{tagRelays}, g.Relays...))
	}
	if g.DefaultRecipient != "" {
		tags = append(tags, nostr.Tag{tagZap, g.DefaultRecipient})
	}

	return nostr.EventTemplate{Kind: nostr.KindFundingGoal, Tags: tags}, nil
}

func fundingOrDefault(f escrow.FundingType) escrow.FundingType {
	if f == "" {
		return escrow.FundingSingle
	}
	return f
}

func appendCategories(tags nostr.Tags, categories []string) nostr.Tags {
	for _, c := range categories {
		if n := nostr.NormalizeCategory(c); n != "" {
			tags = append(tags, nostr.Tag{tagCategory, n})
		}
	}
	return tags
}
