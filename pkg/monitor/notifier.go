package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/varycache/pkg/webhook"
)

// Status classifies an alert.
type Status string

const (
	// StatusDown means the connection transitioned from healthy to failing.
	StatusDown Status = "down"
	// StatusRecovered means the connection is healthy again.
	StatusRecovered Status = "recovered"
)

// Alert describes a health transition of the monitored connection.
type Alert struct {
	Status   Status
	Target   string
	Failures int
	Reason   string
	At       time.Time
}

func (a Alert) String() string {
	if a.Status == StatusRecovered {
		return fmt.Sprintf("connection to %s recovered", a.Target)
	}
	return fmt.Sprintf("connection to %s is down (%d failed checks): %s", a.Target, a.Failures, a.Reason)
}

// Notifier delivers alerts. Implementations must tolerate being called
// from the monitor loop goroutine.
type Notifier interface {
	Notify(ctx context.Context, alert Alert) error
}

// LogNotifier writes alerts to the structured log. It is the default when
// no other notifier is configured.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(ctx context.Context, alert Alert) error {
	n.log.ErrorContext(ctx, alert.String(),
		slog.String("target", alert.Target),
		slog.String("status", string(alert.Status)),
		slog.Int("failures", alert.Failures),
	)
	return nil
}

// WebhookNotifier pushes alerts to a chat integration endpoint as a
// Slack-compatible {"text": ...} payload.
type WebhookNotifier struct {
	sender *webhook.Sender
	url    string
}

func NewWebhookNotifier(sender *webhook.Sender, url string) *WebhookNotifier {
	if sender == nil {
		sender = webhook.NewSender()
	}
	return &WebhookNotifier{sender: sender, url: url}
}

func (n *WebhookNotifier) Notify(ctx context.Context, alert Alert) error {
	return n.sender.Send(ctx, n.url, map[string]string{"text": alert.String()})
}
