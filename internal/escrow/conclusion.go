package escrow

// Resolution is the terminal outcome a conclusion declares for a task.
type Resolution string

const (
	ResolutionSuccessful Resolution = "successful"
	ResolutionRejected   Resolution = "rejected"
	ResolutionCancelled  Resolution = "cancelled"
	ResolutionAbandoned  Resolution = "abandoned"
)

// ValidResolution reports whether r is a known outcome.
func ValidResolution(r Resolution) bool {
	switch r {
	case ResolutionSuccessful, ResolutionRejected, ResolutionCancelled, ResolutionAbandoned:
		return true
	}
	return false
}

// Conclusion records that a task reached a terminal outcome. Immutable;
// more than one may exist per task and this core does not rank them.
type Conclusion struct {
	EventID    string
	AuthoredBy string
	CreatedAt  int64

	Resolution Resolution
	Narrative  string
	TaskAddr   string   // addressable reference to the concluded task
	ReceiptID  string   // payout or refund receipt, optional
	Parties    []string // party tags carried for display
}
