package escrow

// Status is the task lifecycle state. Terminal state is StatusConcluded.
type Status string

const (
	StatusProposed   Status = "proposed"
	StatusFunded     Status = "funded"
	StatusInProgress Status = "in_progress"
	StatusSubmitted  Status = "submitted"
	StatusConcluded  Status = "concluded"
)

// ValidStatus reports whether s is a known lifecycle state.
func ValidStatus(s Status) bool {
	switch s {
	case StatusProposed, StatusFunded, StatusInProgress, StatusSubmitted, StatusConcluded:
		return true
	}
	return false
}

// FundingType distinguishes single-funder tasks from crowdfunded ones.
type FundingType string

const (
	FundingSingle       FundingType = "single"
	FundingCrowdfunding FundingType = "crowdfunding"
)

// Task is one observed version of a task proposal. Many versions with the
// same Identity coexist in the wild; reconcile.Latest picks the current one.
type Task struct {
	EventID    string
	AuthoredBy string // event author, not necessarily the patron
	CreatedAt  int64

	TaskID  string // "d" tag
	Patron  string // primary party; half of the logical identity
	Arbiter string // secondary party, may be empty
	Worker  string // tertiary party, may be empty

	Title        string
	Description  string
	Requirements string
	Deadline     string

	ServiceRef string // address of the arbiter announcement backing this task
	AmountSats int64
	Status     Status
	Funding    FundingType
	GoalID     string // funding goal event, set iff Funding is crowdfunding
	ReceiptID  string // payment-proof zap receipt, optional
	Categories []string
}

// Identity names the replaceable entity this record is a version of.
// The patron half comes from the primary party tag, not the event author:
// arbiters and workers republish under the same identity.
func (t *Task) Identity() string { return t.Patron + ":" + t.TaskID }

// Author is the pubkey that signed this version.
func (t *Task) Author() string { return t.AuthoredBy }

// Timestamp is the version's created_at.
func (t *Task) Timestamp() int64 { return t.CreatedAt }

// Parties lists who may supersede this record: patron, arbiter, worker,
// in that order, skipping unset roles.
func (t *Task) Parties() []string {
	parties := make([]string, 0, 3)
	for _, p := range []string{t.Patron, t.Arbiter, t.Worker} {
		if p != "" {
			parties = append(parties, p)
		}
	}
	return parties
}

// Crowdfunded reports whether contributions are aggregated against a goal.
func (t *Task) Crowdfunded() bool { return t.Funding == FundingCrowdfunding }
