package parse

import (
	"encoding/json"

	"github.com/suretylabs/surety/internal/escrow"
	"github.com/suretylabs/surety/internal/nostr"
)

type conclusionContent struct {
	Narrative string `json:"narrative,omitempty"`
}

// Conclusion parses a task conclusion. Required: resolution tag.
// References to the task and the payout receipt are carried when present;
// display-layer concerns like ranking multiple conclusions are not decided
// here.
func Conclusion(ev nostr.Event) (*escrow.Conclusion, error) {
	if ev.Kind != nostr.KindTaskConclusion {
		return nil, invalidf("kind %d is not a task conclusion", ev.Kind)
	}

	resolution := escrow.Resolution(ev.Tags.Value(tagResolution))
	if !escrow.ValidResolution(resolution) {
		return nil, invalidf("conclusion resolution %q unknown", resolution)
	}

	c := &escrow.Conclusion{
		EventID:    ev.ID,
		AuthoredBy: ev.PubKey,
		CreatedAt:  ev.CreatedAt,

		Resolution: resolution,
		TaskAddr:   ev.Tags.Value(tagAddress),
		ReceiptID:  zapReceiptRef(ev.Tags),
		Parties:    ev.Tags.Values(tagParty),
	}

	if ev.Content != "" {
		raw := []byte(ev.Content)
		if err := validateContent("#ConclusionContent", raw); err != nil {
			return nil, err
		}
		var content conclusionContent
		if err := json.Unmarshal(raw, &content); err != nil {
			return nil, invalidf("conclusion content: %v", err)
		}
		c.Narrative = content.Narrative
	}
	return c, nil
}
