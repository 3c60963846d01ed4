package testutil

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/suretylabs/surety/internal/nostr"
)

// SignedEvent assembles an event, stamps its real content-addressed ID
// and a fake signature. Signature verification is out of scope for the
// core, so tests only need the ID to be honest.
func SignedEvent(author string, createdAt int64, kind int, content string, tags nostr.Tags) nostr.Event {
	ev := nostr.Event{
		PubKey:    author,
		CreatedAt: createdAt,
		Kind:      kind,
		Tags:      tags,
		Content:   content,
	}
	id, err := nostr.ComputeID(ev)
	if err != nil {
		panic(fmt.Sprintf("testutil: compute event id: %v", err))
	}
	ev.ID = id
	ev.Sig = "sig-" + id[:16]
	return ev
}

// TaskEvent builds a task proposal version. parties are positional:
// patron, arbiter, worker.
func TaskEvent(author string, createdAt int64, taskID string, parties []string, amountSats int64, status, title string, extra ...nostr.Tag) nostr.Event {
	tags := nostr.Tags{{"d", taskID}}
	for _, p := range parties {
		tags = append(tags, nostr.Tag{"p", p})
	}
	tags = append(tags,
		nostr.Tag{"amount", strconv.FormatInt(amountSats, 10)},
		nostr.Tag{"status", status},
	)
	tags = append(tags, extra...)
	content := fmt.Sprintf(`{"title":%q}`, title)
	return SignedEvent(author, createdAt, nostr.KindTaskProposal, content, tags)
}

// AnnouncementEvent builds an arbiter listing version.
func AnnouncementEvent(arbiter string, createdAt int64, serviceID, feeType, feeAmount string, extra ...nostr.Tag) nostr.Event {
	tags := nostr.Tags{
		{"d", serviceID},
		{"p", arbiter},
		{"fee_type", feeType},
		{"fee_amount", feeAmount},
	}
	tags = append(tags, extra...)
	return SignedEvent(arbiter, createdAt, nostr.KindArbiterAnnouncement, "", tags)
}

// GoalEvent builds a funding goal.
func GoalEvent(author string, createdAt int64, targetMsat int64, taskAddr string, extra ...nostr.Tag) nostr.Event {
	tags := nostr.Tags{{"amount", strconv.FormatInt(targetMsat, 10)}}
	if taskAddr != "" {
		tags = append(tags, nostr.Tag{"a", taskAddr})
	}
	tags = append(tags, extra...)
	return SignedEvent(author, createdAt, nostr.KindFundingGoal, "", tags)
}

// ZapRequestJSON encodes the payment request a wallet embeds in a
// receipt's description tag.
func ZapRequestJSON(payer string, amountMsat int64) string {
	req := nostr.Event{
		PubKey: payer,
		Kind:   9734,
		Tags:   nostr.Tags{{"amount", strconv.FormatInt(amountMsat, 10)}},
	}
	data, err := json.Marshal(req)
	if err != nil {
		panic(fmt.Sprintf("testutil: marshal zap request: %v", err))
	}
	return string(data)
}

// ZapReceipt builds a receipt whose amount and sender decode from the
// embedded payment request (the second fallback tier).
func ZapReceipt(payer string, createdAt int64, amountMsat int64, goalID string, extra ...nostr.Tag) nostr.Event {
	tags := nostr.Tags{
		{"description", ZapRequestJSON(payer, amountMsat)},
	}
	if goalID != "" {
		tags = append(tags, nostr.Tag{"e", goalID})
	}
	tags = append(tags, extra...)
	// Receipt author is the payee's lightning service, not the payer.
	return SignedEvent(Key("77"), createdAt, nostr.KindZapReceipt, "", tags)
}
