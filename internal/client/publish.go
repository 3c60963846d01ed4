package client

import (
	"context"
	"fmt"

	"github.com/suretylabs/surety/internal/escrow"
	"github.com/suretylabs/surety/internal/nostr"
	"github.com/suretylabs/surety/internal/parse"
)

// PublishTemplate signs and publishes an unsigned event template.
// Requires both the signer and publisher collaborators.
func (c *Client) PublishTemplate(ctx context.Context, tmpl nostr.EventTemplate) (nostr.Event, error) {
	if c.signer == nil || c.publisher == nil {
		return nostr.Event{}, fmt.Errorf("publish path not configured")
	}
	ev, err := c.signer.Sign(ctx, tmpl)
	if err != nil {
		return nostr.Event{}, fmt.Errorf("sign event: %w", err)
	}
	if err := c.publisher.Publish(ctx, ev); err != nil {
		return nostr.Event{}, fmt.Errorf("publish event %s: %w", ev.ID, err)
	}
	return ev, nil
}

// ProposeTask publishes a task proposal version.
func (c *Client) ProposeTask(ctx context.Context, task *escrow.Task) (nostr.Event, error) {
	tmpl, err := parse.TaskEvent(task)
	if err != nil {
		return nostr.Event{}, err
	}
	return c.PublishTemplate(ctx, tmpl)
}

// AnnounceService publishes an arbiter listing version.
func (c *Client) AnnounceService(ctx context.Context, ann *escrow.Announcement) (nostr.Event, error) {
	tmpl, err := parse.AnnouncementEvent(ann)
	if err != nil {
		return nostr.Event{}, err
	}
	return c.PublishTemplate(ctx, tmpl)
}

// ConcludeTask publishes a conclusion for a task.
func (c *Client) ConcludeTask(ctx context.Context, conclusion *escrow.Conclusion) (nostr.Event, error) {
	tmpl, err := parse.ConclusionEvent(conclusion)
	if err != nil {
		return nostr.Event{}, err
	}
	return c.PublishTemplate(ctx, tmpl)
}
