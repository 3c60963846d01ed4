// Package settle computes fee-aware payout and refund splits.
//
// All arithmetic floors: fractional sats never leave this package. Splits
// are derived values handed to the payment layer, never persisted.
package settle

import (
	"github.com/suretylabs/surety/internal/escrow"
	"github.com/suretylabs/surety/internal/funding"
)

// PayoutKind names who the principal line item pays.
type PayoutKind string

const (
	PayoutWorker PayoutKind = "worker" // successful completion
	PayoutPatron PayoutKind = "patron" // single-funder refund
)

// RefundReason distinguishes refunds the arbiter worked for from ones
// they waive.
type RefundReason string

const (
	RefundRejected  RefundReason = "rejected"  // arbiter judged; fee applies
	RefundCancelled RefundReason = "cancelled" // patron-harmless; fee waived
)

// Split is one independently payable line item of a settlement.
type Split struct {
	Recipient  string `json:"recipient"`
	AmountSats int64  `json:"amount_sats"`
	Label      string `json:"label"` // "worker", "patron" or "arbiter_fee"
}

// RefundSplit is one contributor's share of a crowdfunding refund, with
// the provenance needed to audit the proportion.
type RefundSplit struct {
	Recipient        string  `json:"recipient"`
	AmountSats       int64   `json:"amount_sats"`
	ContributionSats int64   `json:"contribution_sats"`
	Share            float64 `json:"share"` // contribution / total raised
}

// ArbiterFee prices the arbiter's cut of a task. Flat policies return the
// configured figure; percentage policies floor the product.
func ArbiterFee(taskAmountSats int64, policy escrow.FeePolicy) int64 {
	switch policy.Type {
	case escrow.FeePercentage:
		return int64(float64(taskAmountSats) * policy.Amount)
	default:
		return int64(policy.Amount)
	}
}

// PaymentSplit produces the line items settling a task: the full task
// amount to the named recipient, plus the arbiter fee as a separate,
// independently payable item when it is non-zero. A task with no arbiter
// party has nobody to route a fee to, so no fee item is emitted even if
// the policy prices one.
func PaymentSplit(task *escrow.Task, policy escrow.FeePolicy, recipient string, kind PayoutKind) []Split {
	splits := []Split{{
		Recipient:  recipient,
		AmountSats: task.AmountSats,
		Label:      string(kind),
	}}
	if fee := ArbiterFee(task.AmountSats, policy); fee > 0 && task.Arbiter != "" {
		splits = append(splits, Split{
			Recipient:  task.Arbiter,
			AmountSats: fee,
			Label:      "arbiter_fee",
		})
	}
	return splits
}

// CrowdfundingRefund splits the raised pool back to contributors in
// proportion to what each paid in.
//
// A cancelled task waives the arbiter fee; a rejected one prices it
// normally. Each share is floored individually, so the paid-out total can
// undershoot the pool by up to contributors-1 sats. That residual is a
// consequence of the flooring policy, left unallocated on purpose.
func CrowdfundingRefund(contributors []funding.Contributor, policy escrow.FeePolicy, taskAmountSats int64, reason RefundReason) []RefundSplit {
	var totalRaised int64
	for _, c := range contributors {
		totalRaised += c.AmountSats
	}
	if totalRaised <= 0 {
		return nil
	}

	var fee int64
	if reason == RefundRejected {
		fee = ArbiterFee(taskAmountSats, policy)
	}
	refundPool := totalRaised - fee
	if refundPool < 0 {
		refundPool = 0
	}

	splits := make([]RefundSplit, 0, len(contributors))
	for _, c := range contributors {
		share := float64(c.AmountSats) / float64(totalRaised)
		splits = append(splits, RefundSplit{
			Recipient:        c.PubKey,
			AmountSats:       int64(float64(refundPool) * share),
			ContributionSats: c.AmountSats,
			Share:            share,
		})
	}
	return splits
}
