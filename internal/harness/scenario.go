// Package harness runs conformance scenarios for the reconciliation core.
//
// A scenario is a YAML file describing an observed event batch in terms
// of role aliases (patron, arbiter, worker, mallory, ...) instead of raw
// pubkeys. The harness builds real events from the steps, runs them
// through parsing and reconciliation exactly as production code does, and
// snapshots the surviving state with the aliases restored so golden files
// stay readable.
package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/suretylabs/surety/internal/nostr"
	"github.com/suretylabs/surety/internal/testutil"
)

// Scenario is one conformance case.
type Scenario struct {
	// Name uniquely identifies the scenario; the golden file shares it.
	Name string `yaml:"name"`

	// Description explains what the scenario validates.
	Description string `yaml:"description"`

	// Events is the observed batch, in arrival order. Arrival order only
	// matters for exact timestamp ties.
	Events []EventStep `yaml:"events"`
}

// EventStep describes one observed event in role-alias terms.
type EventStep struct {
	// Kind is "task" or "announcement".
	Kind string `yaml:"kind"`

	// Author is the alias of the pubkey signing this version.
	Author string `yaml:"author"`

	CreatedAt int64 `yaml:"created_at"`

	// Task fields.
	TaskID  string   `yaml:"task_id,omitempty"`
	Parties []string `yaml:"parties,omitempty"` // positional aliases
	Amount  int64    `yaml:"amount,omitempty"`
	Status  string   `yaml:"status,omitempty"`
	Title   string   `yaml:"title,omitempty"`

	// Announcement fields.
	ServiceID string `yaml:"service_id,omitempty"`
	FeeType   string `yaml:"fee_type,omitempty"`
	FeeAmount string `yaml:"fee_amount,omitempty"`

	// Broken marks a deliberately malformed event (amount and status tags
	// withheld) that parsing must drop without disturbing the rest of the
	// batch.
	Broken bool `yaml:"broken,omitempty"`
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s: name is required", path)
	}
	for i, step := range s.Events {
		if step.Kind != "task" && step.Kind != "announcement" {
			return nil, fmt.Errorf("scenario %s: event %d: kind %q unknown", path, i, step.Kind)
		}
		if _, ok := roleKeys[step.Author]; !ok {
			return nil, fmt.Errorf("scenario %s: event %d: author alias %q unknown", path, i, step.Author)
		}
	}
	return &s, nil
}

// roleKeys maps scenario aliases to the fixed test identities.
var roleKeys = map[string]string{
	"patron":  testutil.PatronKey,
	"arbiter": testutil.ArbiterKey,
	"worker":  testutil.WorkerKey,
	"mallory": testutil.MalloryKey,
}

// roleAliases is the reverse map used when rendering snapshots.
var roleAliases = func() map[string]string {
	m := make(map[string]string, len(roleKeys))
	for alias, key := range roleKeys {
		m[key] = alias
	}
	return m
}()

func alias(pubkey string) string {
	if a, ok := roleAliases[pubkey]; ok {
		return a
	}
	return pubkey
}

// buildEvent turns a step into a real signed event.
func buildEvent(step EventStep) (nostr.Event, error) {
	author := roleKeys[step.Author]
	switch step.Kind {
	case "task":
		parties := make([]string, 0, len(step.Parties))
		for _, p := range step.Parties {
			key, ok := roleKeys[p]
			if !ok {
				return nostr.Event{}, fmt.Errorf("party alias %q unknown", p)
			}
			parties = append(parties, key)
		}
		if step.Broken {
			// Withhold amount and status: structurally invalid on purpose.
			tags := nostr.Tags{{"d", step.TaskID}}
			for _, p := range parties {
				tags = append(tags, nostr.Tag{"p", p})
			}
			ev := testutil.SignedEvent(author, step.CreatedAt, nostr.KindTaskProposal,
				fmt.Sprintf(`{"title":%q}`, step.Title), tags)
			return ev, nil
		}
		return testutil.TaskEvent(author, step.CreatedAt, step.TaskID, parties, step.Amount, step.Status, step.Title), nil
	case "announcement":
		return testutil.AnnouncementEvent(author, step.CreatedAt, step.ServiceID, step.FeeType, step.FeeAmount), nil
	default:
		return nostr.Event{}, fmt.Errorf("kind %q unknown", step.Kind)
	}
}
