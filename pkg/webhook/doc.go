// Package webhook delivers JSON payloads to HTTP endpoints with retries
// and backoff. The monitor package uses it to push connection alerts to
// chat integrations (Slack-style incoming webhooks).
//
// # Usage
//
//	sender := webhook.NewSender()
//	err := sender.Send(ctx, alertURL, map[string]string{"text": "cache backend down"},
//		webhook.WithMaxRetries(5),
//		webhook.WithTimeout(5*time.Second),
//	)
//
// Transient failures (network errors, 5xx) are retried with exponential
// backoff; 4xx responses fail immediately with ErrPermanentFailure.
package webhook
