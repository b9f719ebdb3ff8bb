// Package notify pushes shop events (completed work orders, daily digests)
// to chat platforms.
package notify

import (
	"context"
	"fmt"

	"github.com/rekins/garage/internal/config"
)

// Event is one notification to be delivered to the shop's channel.
type Event struct {
	Title    string
	Body     string
	Severity string // "info" or "success"
}

// Notifier is the interface platform adapters implement. Send is
// best-effort from the caller's perspective: delivery failures are logged
// at the call site, never surfaced to HTTP clients.
type Notifier interface {
	Send(ctx context.Context, ev Event) error
	Close() error
}

// severityColor maps an event severity to a sidebar color hint.
func severityColor(severity string) string {
	if severity == "success" {
		return "#36a64f"
	}
	return "#439fe0"
}

// Noop discards all events. Used when notifications are disabled.
type Noop struct{}

func (Noop) Send(ctx context.Context, ev Event) error { return nil }
func (Noop) Close() error                             { return nil }

// FromConfig builds the configured notifier. Platform "none" yields a Noop.
func FromConfig(cfg config.NotifyConfig) (Notifier, error) {
	switch cfg.Platform {
	case "none":
		return Noop{}, nil
	case "slack":
		return NewSlack(SlackOpts{WebhookURL: cfg.SlackWebhookURL})
	case "discord":
		return NewDiscord(DiscordOpts{Token: cfg.DiscordToken, ChannelID: cfg.DiscordChannel})
	default:
		return nil, fmt.Errorf("notify: unsupported platform %q", cfg.Platform)
	}
}
