// Package funding aggregates zap receipts into a goal progress view.
//
// Aggregation is a pure function of the goal and the receipt batch.
// Receipts are deduplicated by event ID first: the same receipt is
// routinely discovered twice, once via the goal-ID reference and once via
// the task's addressable reference, and must count once. Running totals
// stay in millisats; flooring to whole sats happens exactly once, at the
// per-contributor boundary, so the raised total is the exact sum of the
// contributor figures.
package funding

import (
	"sort"

	"github.com/suretylabs/surety/internal/escrow"
	"github.com/suretylabs/surety/internal/nostr"
	"github.com/suretylabs/surety/internal/zap"
)

// Contributor is a derived, never-persisted view of one payer's total.
type Contributor struct {
	PubKey     string  `json:"pubkey"`
	AmountSats int64   `json:"amount_sats"`
	Percentage float64 `json:"percentage"` // fraction of raised, 0..1
	LatestAt   int64   `json:"latest_at"`  // created_at of the latest receipt
}

// Progress is the funding state of one goal at one observation point.
type Progress struct {
	TargetSats      int64         `json:"target_sats"`
	RaisedSats      int64         `json:"raised_sats"`
	PercentComplete float64       `json:"percent_complete"` // 0..100, capped
	GoalMet         bool          `json:"goal_met"`
	Contributors    []Contributor `json:"contributors"`
}

// ForGoal aggregates receipts against a goal.
//
// A receipt counts only if its amount decodes positive and its sender
// resolves; anything else contributes zero evidence. An empty or partial
// receipt set is a valid input: relay coverage is never total and callers
// re-run as more events propagate.
func ForGoal(goal *escrow.FundingGoal, receipts []nostr.Event) Progress {
	type running struct {
		msat     int64
		latestAt int64
	}

	seen := make(map[string]bool, len(receipts))
	totals := make(map[string]*running)
	for _, receipt := range receipts {
		if receipt.Kind != nostr.KindZapReceipt || seen[receipt.ID] {
			continue
		}
		seen[receipt.ID] = true

		msat := zap.AmountMsat(receipt)
		if msat <= 0 {
			continue
		}
		sender := zap.Sender(receipt)
		if sender == "" {
			continue
		}

		r := totals[sender]
		if r == nil {
			r = &running{}
			totals[sender] = r
		}
		r.msat += msat
		if receipt.CreatedAt > r.latestAt {
			r.latestAt = receipt.CreatedAt
		}
	}

	progress := Progress{TargetSats: goal.TargetSats()}
	for pubkey, r := range totals {
		sats := r.msat / 1000
		progress.Contributors = append(progress.Contributors, Contributor{
			PubKey:     pubkey,
			AmountSats: sats,
			LatestAt:   r.latestAt,
		})
		progress.RaisedSats += sats
	}

	// Descending by amount; pubkey breaks ties so repeated runs over the
	// same batch render identically.
	sort.Slice(progress.Contributors, func(i, j int) bool {
		a, b := progress.Contributors[i], progress.Contributors[j]
		if a.AmountSats != b.AmountSats {
			return a.AmountSats > b.AmountSats
		}
		return a.PubKey < b.PubKey
	})

	if progress.RaisedSats > 0 {
		for i := range progress.Contributors {
			c := &progress.Contributors[i]
			c.Percentage = float64(c.AmountSats) / float64(progress.RaisedSats)
		}
	}

	if progress.TargetSats > 0 {
		pct := float64(progress.RaisedSats) / float64(progress.TargetSats) * 100
		if pct > 100 {
			pct = 100
		}
		progress.PercentComplete = pct
	}
	progress.GoalMet = progress.RaisedSats >= progress.TargetSats

	return progress
}
