package parse

import (
	"encoding/json"
	"strconv"

	"github.com/suretylabs/surety/internal/escrow"
	"github.com/suretylabs/surety/internal/nostr"
)

type announcementContent struct {
	Name  string `json:"name,omitempty"`
	About string `json:"about,omitempty"`
}

// Announcement parses an arbiter service listing. Required: identity tag,
// party tag, fee-type tag, fee-amount tag.
func Announcement(ev nostr.Event) (*escrow.Announcement, error) {
	if ev.Kind != nostr.KindArbiterAnnouncement {
		return nil, invalidf("kind %d is not an arbiter announcement", ev.Kind)
	}

	serviceID := ev.Tags.Value(tagIdentity)
	if serviceID == "" {
		return nil, invalidf("announcement missing identity tag")
	}
	arbiter := ev.Tags.Value(tagParty)
	if arbiter == "" {
		return nil, invalidf("announcement missing party tag")
	}

	feeType := escrow.FeeType(ev.Tags.Value(tagFeeType))
	if feeType != escrow.FeeFlat && feeType != escrow.FeePercentage {
		return nil, invalidf("announcement fee type %q unknown", feeType)
	}
	feeTag, ok := ev.Tags.First(tagFeeAmount)
	if !ok {
		return nil, invalidf("announcement missing fee amount tag")
	}
	feeAmount, err := strconv.ParseFloat(feeTag.Value(), 64)
	if err != nil || feeAmount < 0 {
		return nil, invalidf("announcement fee amount %q unparsable", feeTag.Value())
	}

	ann := &escrow.Announcement{
		EventID:    ev.ID,
		AuthoredBy: ev.PubKey,
		CreatedAt:  ev.CreatedAt,

		ServiceID: serviceID,
		Arbiter:   arbiter,
		Fee:       escrow.FeePolicy{Type: feeType, Amount: feeAmount},

		Categories: categories(ev.Tags),
	}

	if ann.MinAmountSats, err = optionalSats(ev.Tags, tagMinAmount); err != nil {
		return nil, err
	}
	if ann.MaxAmountSats, err = optionalSats(ev.Tags, tagMaxAmount); err != nil {
		return nil, err
	}

	if ev.Content != "" {
		raw := []byte(ev.Content)
		if err := validateContent("#AnnouncementContent", raw); err != nil {
			return nil, err
		}
		var content announcementContent
		if err := json.Unmarshal(raw, &content); err != nil {
			return nil, invalidf("announcement content: %v", err)
		}
		ann.Name = content.Name
		ann.About = content.About
	}
	return ann, nil
}

// optionalSats parses an optional integer tag. Absent is fine; present but
// unparsable makes the whole event invalid.
func optionalSats(tags nostr.Tags, name string) (int64, error) {
	t, ok := tags.First(name)
	if !ok {
		return 0, nil
	}
	n, err := strconv.ParseInt(t.Value(), 10, 64)
	if err != nil || n < 0 {
		return 0, invalidf("%s tag %q is not a satoshi figure", name, t.Value())
	}
	return n, nil
}
