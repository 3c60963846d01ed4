package escrow

// FeeType selects how an arbiter prices escrow service.
type FeeType string

const (
	FeeFlat       FeeType = "flat"
	FeePercentage FeeType = "percentage"
)

// FeePolicy is an arbiter's advertised pricing. For FeeFlat, Amount is a
// satoshi figure; for FeePercentage it is a fraction of the task amount
// (0.1 means 10%).
type FeePolicy struct {
	Type   FeeType
	Amount float64
}

// ZeroFee is the policy applied when no arbiter service is attached.
var ZeroFee = FeePolicy{Type: FeeFlat, Amount: 0}

// Announcement is one observed version of an arbiter's service listing.
type Announcement struct {
	EventID    string
	AuthoredBy string
	CreatedAt  int64

	ServiceID string // "d" tag
	Arbiter   string // party tag, carried for display; identity keys off the author

	Name  string
	About string

	Fee           FeePolicy
	MinAmountSats int64 // 0 = no lower bound
	MaxAmountSats int64 // 0 = no upper bound
	Categories    []string
}

// Identity names the replaceable entity: (author, service id). Keying off
// the signing pubkey rather than the party tag means a writer can only
// ever supersede their own listing, whatever their tags claim.
func (a *Announcement) Identity() string { return a.AuthoredBy + ":" + a.ServiceID }

// Author is the pubkey that signed this version.
func (a *Announcement) Author() string { return a.AuthoredBy }

// Timestamp is the version's created_at.
func (a *Announcement) Timestamp() int64 { return a.CreatedAt }

// Parties is the sole author: only the arbiter replaces their listing.
func (a *Announcement) Parties() []string { return []string{a.AuthoredBy} }

// AcceptsAmount reports whether a task bounty falls inside the arbiter's
// advertised min/max bounds.
func (a *Announcement) AcceptsAmount(sats int64) bool {
	if a.MinAmountSats > 0 && sats < a.MinAmountSats {
		return false
	}
	if a.MaxAmountSats > 0 && sats > a.MaxAmountSats {
		return false
	}
	return true
}
