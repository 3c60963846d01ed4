package harness

import (
	"sort"

	"github.com/suretylabs/surety/internal/escrow"
	"github.com/suretylabs/surety/internal/parse"
	"github.com/suretylabs/surety/internal/reconcile"
)

// Snapshot is the reconciled state after a scenario's batch, rendered
// with role aliases so golden files read as prose.
type Snapshot struct {
	Scenario    string              `json:"scenario"`
	Description string              `json:"description,omitempty"`
	Tasks       []TaskState         `json:"tasks"`
	Arbiters    []AnnouncementState `json:"arbiters,omitempty"`
	Dropped     []string            `json:"dropped,omitempty"`
}

// TaskState is one surviving task record.
type TaskState struct {
	Identity   string   `json:"identity"`
	Author     string   `json:"author"`
	CreatedAt  int64    `json:"created_at"`
	Status     string   `json:"status"`
	AmountSats int64    `json:"amount_sats"`
	Title      string   `json:"title"`
	Parties    []string `json:"parties"`
}

// AnnouncementState is one surviving arbiter listing.
type AnnouncementState struct {
	Identity  string  `json:"identity"`
	CreatedAt int64   `json:"created_at"`
	FeeType   string  `json:"fee_type"`
	FeeAmount float64 `json:"fee_amount"`
}

// Run builds the scenario's events, parses and reconciles them the way
// production code does, and snapshots what survived.
func Run(s *Scenario) (*Snapshot, error) {
	var (
		tasks   []*escrow.Task
		listing []*escrow.Announcement
		dropped []string
	)
	for _, step := range s.Events {
		ev, err := buildEvent(step)
		if err != nil {
			return nil, err
		}
		switch step.Kind {
		case "task":
			task, err := parse.Task(ev)
			if err != nil {
				dropped = append(dropped, step.Author+": "+err.Error())
				continue
			}
			tasks = append(tasks, task)
		case "announcement":
			ann, err := parse.Announcement(ev)
			if err != nil {
				dropped = append(dropped, step.Author+": "+err.Error())
				continue
			}
			listing = append(listing, ann)
		}
	}

	snap := &Snapshot{
		Scenario:    s.Name,
		Description: s.Description,
		Dropped:     dropped,
	}
	for _, task := range reconcile.Latest(tasks) {
		parties := task.Parties()
		aliased := make([]string, len(parties))
		for i, p := range parties {
			aliased[i] = alias(p)
		}
		snap.Tasks = append(snap.Tasks, TaskState{
			Identity:   alias(task.Patron) + ":" + task.TaskID,
			Author:     alias(task.AuthoredBy),
			CreatedAt:  task.CreatedAt,
			Status:     string(task.Status),
			AmountSats: task.AmountSats,
			Title:      task.Title,
			Parties:    aliased,
		})
	}
	for _, ann := range reconcile.Latest(listing) {
		snap.Arbiters = append(snap.Arbiters, AnnouncementState{
			Identity:  alias(ann.AuthoredBy) + ":" + ann.ServiceID,
			CreatedAt: ann.CreatedAt,
			FeeType:   string(ann.Fee.Type),
			FeeAmount: ann.Fee.Amount,
		})
	}
	sort.Slice(snap.Tasks, func(i, j int) bool { return snap.Tasks[i].Identity < snap.Tasks[j].Identity })
	sort.Slice(snap.Arbiters, func(i, j int) bool { return snap.Arbiters[i].Identity < snap.Arbiters[j].Identity })
	return snap, nil
}
