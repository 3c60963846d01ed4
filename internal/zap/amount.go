// Package zap decodes Lightning payment receipts ("zap receipts").
//
// A receipt's monetary amount may live in up to three partially-redundant
// places; decoding tries them as an ordered fallback chain and each tier is
// independently testable. A receipt no tier can decode contributes zero and
// is excluded from aggregation. Undecodable is a data condition, not an
// error: receipts are written by wallets this client does not control.
package zap

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/suretylabs/surety/internal/nostr"
)

const (
	tagAmount      = "amount"
	tagDescription = "description"
	tagBolt11      = "bolt11"
)

// AmountMsat extracts a receipt's amount in millisatoshis.
//
// Fallback order:
//  1. explicit amount tag on the receipt
//  2. amount tag inside the embedded payment request
//  3. the bolt11 invoice's human-readable part
//
// Returns 0 when no tier yields a positive value.
func AmountMsat(receipt nostr.Event) int64 {
	if msat := tagAmountMsat(receipt.Tags); msat > 0 {
		return msat
	}
	if req, ok := paymentRequest(receipt); ok {
		if msat := tagAmountMsat(req.Tags); msat > 0 {
			return msat
		}
	}
	if msat := InvoiceAmountMsat(receipt.Tags.Value(tagBolt11)); msat > 0 {
		return msat
	}
	return 0
}

// Sender resolves the paying identity: the author of the embedded payment
// request. Returns "" when the request is absent or malformed; such a
// receipt cannot be attributed and is excluded from aggregation.
func Sender(receipt nostr.Event) string {
	req, ok := paymentRequest(receipt)
	if !ok {
		return ""
	}
	return req.PubKey
}

// paymentRequest decodes the original payment request event carried
// JSON-encoded in the receipt's description tag.
func paymentRequest(receipt nostr.Event) (nostr.Event, bool) {
	desc := receipt.Tags.Value(tagDescription)
	if desc == "" {
		return nostr.Event{}, false
	}
	var req nostr.Event
	if err := json.Unmarshal([]byte(desc), &req); err != nil {
		return nostr.Event{}, false
	}
	return req, true
}

func tagAmountMsat(tags nostr.Tags) int64 {
	v := tags.Value(tagAmount)
	if v == "" {
		return 0
	}
	msat, err := strconv.ParseInt(v, 10, 64)
	if err != nil || msat < 0 {
		return 0
	}
	return msat
}

// invoiceHRP matches the human-readable part of an amount-carrying bolt11
// invoice: "lnbc", amount digits, optional multiplier, then the bech32
// separator. A digit run directly followed by '1' with no letter means no
// multiplier; the multiplier letter counts only when the separator follows
// it immediately.
var invoiceHRP = regexp.MustCompile(`^lnbc([0-9]+)([munp]?)1`)

// Millisats per amount unit for each multiplier. The pico multiplier is
// handled separately because one pico-bitcoin is a tenth of a millisat.
var multiplierMsat = map[string]int64{
	"":  100_000_000_000, // whole bitcoin
	"m": 100_000_000,     // milli
	"u": 100_000,         // micro
	"n": 100,             // nano
}

// InvoiceAmountMsat decodes the amount encoded in a bolt11 invoice string.
// Returns 0 for invoices without an amount or with an unparsable one.
func InvoiceAmountMsat(invoice string) int64 {
	m := invoiceHRP.FindStringSubmatch(strings.ToLower(strings.TrimSpace(invoice)))
	if m == nil {
		return 0
	}
	digits, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || digits < 0 {
		return 0
	}
	if m[2] == "p" {
		return digits / 10
	}
	scale := multiplierMsat[m[2]]
	if digits > 0 && scale > (1<<62)/digits {
		return 0 // would overflow; treat as undecodable
	}
	return digits * scale
}
