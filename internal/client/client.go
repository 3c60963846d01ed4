// Package client composes the pure core over the relay contracts: fetch a
// batch of evidence, parse it, reconcile it, derive funding and settlement
// figures from the survivors.
//
// Every read here is best-effort over whatever subset of events the
// sources returned. "Not found" is a normal outcome, reported as
// ErrNotFound, never as a failure of the computation itself.
package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/suretylabs/surety/internal/escrow"
	"github.com/suretylabs/surety/internal/funding"
	"github.com/suretylabs/surety/internal/nostr"
	"github.com/suretylabs/surety/internal/parse"
	"github.com/suretylabs/surety/internal/reconcile"
	"github.com/suretylabs/surety/internal/relay"
	"github.com/suretylabs/surety/internal/settle"
)

// ErrNotFound reports that no authoritative record survived
// reconciliation for the requested identity. A valid outcome: the entity
// may not exist, or its events have not propagated to our sources yet.
var ErrNotFound = errors.New("no authoritative record found")

// Fetcher merges best-effort results for a filter set. Implemented by
// relay.Pool.
type Fetcher interface {
	Fetch(ctx context.Context, filters ...nostr.Filter) []nostr.Event
}

// Client is the read/write surface the presentation layer talks to.
type Client struct {
	events    Fetcher
	signer    relay.Signer
	publisher relay.Publisher
	logger    *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithSigner attaches the signing collaborator, enabling the publish path.
func WithSigner(s relay.Signer) Option {
	return func(c *Client) { c.signer = s }
}

// WithPublisher attaches the publish collaborator.
func WithPublisher(p relay.Publisher) Option {
	return func(c *Client) { c.publisher = p }
}

// WithLogger overrides the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New builds a Client over an event source.
func New(events Fetcher, opts ...Option) *Client {
	c := &Client{events: events, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CurrentTask resolves the authoritative state of one task identity.
func (c *Client) CurrentTask(ctx context.Context, patron, taskID string) (*escrow.Task, error) {
	events := c.events.Fetch(ctx, nostr.Filter{
		Kinds: []int{nostr.KindTaskProposal},
		Tags:  map[string][]string{"d": {taskID}, "p": {patron}},
	})
	task, ok := reconcile.One(c.parseTasks(events), patron+":"+taskID)
	if !ok {
		return nil, fmt.Errorf("task %s by %s: %w", taskID, patron, ErrNotFound)
	}
	return task, nil
}

// Tasks reconciles every observed task into its current version, sorted
// by identity for stable rendering.
func (c *Client) Tasks(ctx context.Context) []*escrow.Task {
	events := c.events.Fetch(ctx, nostr.Filter{Kinds: []int{nostr.KindTaskProposal}})
	return sortedByIdentity(reconcile.Latest(c.parseTasks(events)))
}

// Announcements reconciles every observed arbiter listing.
func (c *Client) Announcements(ctx context.Context) []*escrow.Announcement {
	events := c.events.Fetch(ctx, nostr.Filter{Kinds: []int{nostr.KindArbiterAnnouncement}})
	return sortedByIdentity(reconcile.Latest(c.parseAnnouncements(events)))
}

// Announcement resolves an arbiter listing by its addressable reference.
func (c *Client) Announcement(ctx context.Context, addr string) (*escrow.Announcement, error) {
	kind, pubkey, serviceID, err := splitAddr(addr)
	if err != nil {
		return nil, err
	}
	if kind != nostr.KindArbiterAnnouncement {
		return nil, fmt.Errorf("address %s is not an arbiter announcement", addr)
	}
	events := c.events.Fetch(ctx, nostr.Filter{
		Kinds:   []int{nostr.KindArbiterAnnouncement},
		Authors: []string{pubkey},
		Tags:    map[string][]string{"d": {serviceID}},
	})
	ann, ok := reconcile.One(c.parseAnnouncements(events), pubkey+":"+serviceID)
	if !ok {
		return nil, fmt.Errorf("announcement %s: %w", addr, ErrNotFound)
	}
	return ann, nil
}

// Goal resolves an immutable funding goal by event ID.
func (c *Client) Goal(ctx context.Context, goalID string) (*escrow.FundingGoal, error) {
	events := c.events.Fetch(ctx, nostr.Filter{
		IDs:   []string{goalID},
		Kinds: []int{nostr.KindFundingGoal},
	})
	for _, ev := range events {
		goal, err := parse.Goal(ev)
		if err != nil {
			continue
		}
		return goal, nil
	}
	return nil, fmt.Errorf("goal %s: %w", goalID, ErrNotFound)
}

// GoalProgress aggregates every discoverable receipt against a goal.
// Receipts are searched by goal ID and, when the goal links a task, by the
// task's addressable reference; the aggregator dedups the overlap.
func (c *Client) GoalProgress(ctx context.Context, goalID string) (*escrow.FundingGoal, funding.Progress, error) {
	goal, err := c.Goal(ctx, goalID)
	if err != nil {
		return nil, funding.Progress{}, err
	}

	filters := []nostr.Filter{{
		Kinds: []int{nostr.KindZapReceipt},
		Tags:  map[string][]string{"e": {goal.EventID}},
	}}
	if goal.TaskAddr != "" {
		filters = append(filters, nostr.Filter{
			Kinds: []int{nostr.KindZapReceipt},
			Tags:  map[string][]string{"a": {goal.TaskAddr}},
		})
	}
	receipts := c.events.Fetch(ctx, filters...)
	return goal, funding.ForGoal(goal, receipts), nil
}

// Conclusions lists every observed conclusion for a task, newest first.
// Ranking conflicting conclusions is the display layer's call, not ours.
func (c *Client) Conclusions(ctx context.Context, taskAddr string) []*escrow.Conclusion {
	events := c.events.Fetch(ctx, nostr.Filter{
		Kinds: []int{nostr.KindTaskConclusion},
		Tags:  map[string][]string{"a": {taskAddr}},
	})
	var out []*escrow.Conclusion
	for _, ev := range events {
		conclusion, err := parse.Conclusion(ev)
		if err != nil {
			c.discard(ev, err)
			continue
		}
		out = append(out, conclusion)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].EventID < out[j].EventID
	})
	return out
}

// ArbiterPolicy resolves the fee policy backing a task. A task without a
// service reference escrows fee-free; a dangling reference is reported so
// the caller does not silently settle without the arbiter's cut.
func (c *Client) ArbiterPolicy(ctx context.Context, task *escrow.Task) (escrow.FeePolicy, error) {
	if task.ServiceRef == "" {
		return escrow.ZeroFee, nil
	}
	ann, err := c.Announcement(ctx, task.ServiceRef)
	if err != nil {
		return escrow.FeePolicy{}, err
	}
	return ann.Fee, nil
}

// PayoutSplits computes the settlement line items for a task.
func (c *Client) PayoutSplits(ctx context.Context, patron, taskID string, kind settle.PayoutKind) ([]settle.Split, error) {
	task, err := c.CurrentTask(ctx, patron, taskID)
	if err != nil {
		return nil, err
	}
	var recipient string
	switch kind {
	case settle.PayoutWorker:
		recipient = task.Worker
	case settle.PayoutPatron:
		recipient = task.Patron
	default:
		return nil, fmt.Errorf("payout kind %q unknown", kind)
	}
	if recipient == "" {
		return nil, fmt.Errorf("task %s has no %s to pay", taskID, kind)
	}
	policy, err := c.ArbiterPolicy(ctx, task)
	if err != nil {
		return nil, err
	}
	return settle.PaymentSplit(task, policy, recipient, kind), nil
}

// RefundSplits computes per-contributor refunds for a crowdfunded task.
func (c *Client) RefundSplits(ctx context.Context, patron, taskID string, reason settle.RefundReason) ([]settle.RefundSplit, error) {
	task, err := c.CurrentTask(ctx, patron, taskID)
	if err != nil {
		return nil, err
	}
	if !task.Crowdfunded() {
		return nil, fmt.Errorf("task %s is not crowdfunded", taskID)
	}
	_, progress, err := c.GoalProgress(ctx, task.GoalID)
	if err != nil {
		return nil, err
	}
	policy, err := c.ArbiterPolicy(ctx, task)
	if err != nil {
		return nil, err
	}
	return settle.CrowdfundingRefund(progress.Contributors, policy, task.AmountSats, reason), nil
}

func (c *Client) parseTasks(events []nostr.Event) []*escrow.Task {
	var out []*escrow.Task
	for _, ev := range events {
		task, err := parse.Task(ev)
		if err != nil {
			c.discard(ev, err)
			continue
		}
		out = append(out, task)
	}
	return out
}

func (c *Client) parseAnnouncements(events []nostr.Event) []*escrow.Announcement {
	var out []*escrow.Announcement
	for _, ev := range events {
		ann, err := parse.Announcement(ev)
		if err != nil {
			c.discard(ev, err)
			continue
		}
		out = append(out, ann)
	}
	return out
}

// discard logs a dropped event for diagnostics. Dropping is the whole
// recovery: a malformed event from one writer never fails the batch.
func (c *Client) discard(ev nostr.Event, err error) {
	c.logger.Debug("discarding event", "id", ev.ID, "kind", ev.Kind, "err", err)
}

func sortedByIdentity[R reconcile.Record](current map[string]R) []R {
	ids := make([]string, 0, len(current))
	for id := range current {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]R, 0, len(ids))
	for _, id := range ids {
		out = append(out, current[id])
	}
	return out
}

func splitAddr(addr string) (kind int, pubkey, d string, err error) {
	parts := strings.SplitN(addr, ":", 3)
	if len(parts) != 3 {
		return 0, "", "", fmt.Errorf("address %q malformed", addr)
	}
	kind, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, "", "", fmt.Errorf("address %q malformed: %w", addr, err)
	}
	return kind, parts[1], parts[2], nil
}
