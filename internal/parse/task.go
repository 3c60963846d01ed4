package parse

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/suretylabs/surety/internal/escrow"
	"github.com/suretylabs/surety/internal/nostr"
)

type taskContent struct {
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	Requirements string `json:"requirements,omitempty"`
	Deadline     string `json:"deadline,omitempty"`
}

// Task parses a task proposal event. Required: identity tag, primary party
// tag, amount tag, status tag, and content conforming to #TaskContent.
// The funding type defaults to "single"; a goal reference is required iff
// the funding type is "crowdfunding".
func Task(ev nostr.Event) (*escrow.Task, error) {
	if ev.Kind != nostr.KindTaskProposal {
		return nil, invalidf("kind %d is not a task proposal", ev.Kind)
	}

	taskID := ev.Tags.Value(tagIdentity)
	if taskID == "" {
		return nil, invalidf("task missing identity tag")
	}

	parties := ev.Tags.Values(tagParty)
	if len(parties) == 0 || parties[0] == "" {
		return nil, invalidf("task missing primary party tag")
	}

	amountTag, ok := ev.Tags.First(tagAmount)
	if !ok {
		return nil, invalidf("task missing amount tag")
	}
	amount, err := strconv.ParseInt(amountTag.Value(), 10, 64)
	if err != nil || amount < 0 {
		return nil, invalidf("task amount %q is not a satoshi figure", amountTag.Value())
	}

	status := escrow.Status(ev.Tags.Value(tagStatus))
	if !escrow.ValidStatus(status) {
		return nil, invalidf("task status %q unknown", status)
	}

	funding := escrow.FundingType(ev.Tags.Value(tagFunding))
	if funding == "" {
		funding = escrow.FundingSingle
	}
	if funding != escrow.FundingSingle && funding != escrow.FundingCrowdfunding {
		return nil, invalidf("task funding type %q unknown", funding)
	}
	goalID := ev.Tags.Value(tagGoal)
	if funding == escrow.FundingCrowdfunding && goalID == "" {
		return nil, invalidf("crowdfunded task missing goal reference")
	}

	raw := []byte(ev.Content)
	if err := validateContent("#TaskContent", raw); err != nil {
		return nil, err
	}
	var content taskContent
	if err := json.Unmarshal(raw, &content); err != nil {
		return nil, invalidf("task content: %v", err)
	}

	task := &escrow.Task{
		EventID:    ev.ID,
		AuthoredBy: ev.PubKey,
		CreatedAt:  ev.CreatedAt,

		TaskID: taskID,
		Patron: parties[0],

		Title:        content.Title,
		Description:  content.Description,
		Requirements: content.Requirements,
		Deadline:     content.Deadline,

		ServiceRef: serviceRef(ev.Tags),
		AmountSats: amount,
		Status:     status,
		Funding:    funding,
		GoalID:     goalID,
		ReceiptID:  zapReceiptRef(ev.Tags),
		Categories: categories(ev.Tags),
	}
	if len(parties) > 1 {
		task.Arbiter = parties[1]
	}
	if len(parties) > 2 {
		task.Worker = parties[2]
	}
	return task, nil
}

// serviceRef finds the first address tag pointing at an arbiter
// announcement. Other address tags are left alone.
func serviceRef(tags nostr.Tags) string {
	prefix := strconv.Itoa(nostr.KindArbiterAnnouncement) + ":"
	for _, t := range tags.All(tagAddress) {
		if strings.HasPrefix(t.Value(), prefix) {
			return t.Value()
		}
	}
	return ""
}

// zapReceiptRef finds the event reference marked as a payment proof.
func zapReceiptRef(tags nostr.Tags) string {
	for _, t := range tags.All(tagEvent) {
		if t.Marker() == markerZap {
			return t.Value()
		}
	}
	return ""
}

func categories(tags nostr.Tags) []string {
	var out []string
	for _, v := range tags.Values(tagCategory) {
		if c := nostr.NormalizeCategory(v); c != "" {
			out = append(out, c)
		}
	}
	return out
}
