package notify

import (
	"context"
	"fmt"

	slackapi "github.com/slack-go/slack"
)

// slackPoster abstracts the webhook call, enabling test fakes.
type slackPoster func(ctx context.Context, url string, msg *slackapi.WebhookMessage) error

// Slack delivers events through an incoming webhook.
type Slack struct {
	webhookURL string
	post       slackPoster
}

// SlackOpts holds parameters for creating a Slack notifier.
type SlackOpts struct {
	WebhookURL string
	// For testing: inject a fake poster instead of the real webhook call.
	Poster slackPoster
}

// NewSlack creates a Slack webhook notifier.
func NewSlack(opts SlackOpts) (*Slack, error) {
	if opts.WebhookURL == "" {
		return nil, fmt.Errorf("notify: slack webhook URL is required")
	}
	post := opts.Poster
	if post == nil {
		post = slackapi.PostWebhookContext
	}
	return &Slack{webhookURL: opts.WebhookURL, post: post}, nil
}

// Send posts the event as a single-attachment webhook message.
func (s *Slack) Send(ctx context.Context, ev Event) error {
	msg := &slackapi.WebhookMessage{
		Attachments: []slackapi.Attachment{{
			Title: ev.Title,
			Text:  ev.Body,
			Color: severityColor(ev.Severity),
		}},
	}
	if err := s.post(ctx, s.webhookURL, msg); err != nil {
		return fmt.Errorf("notify: slack post: %w", err)
	}
	return nil
}

// Close is a no-op; webhooks hold no connection state.
func (s *Slack) Close() error { return nil }
