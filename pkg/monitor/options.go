package monitor

import (
	"context"
	"log/slog"
	"time"
)

// Option configures a Monitor.
type Option func(*Monitor)

// WithInterval sets the time between check cycles.
func WithInterval(d time.Duration) Option {
	return func(m *Monitor) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithRetry sets how many probe attempts a single cycle makes and the
// delay between them.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(m *Monitor) {
		if attempts > 0 {
			m.retryAttempts = attempts
		}
		if delay >= 0 {
			m.retryDelay = delay
		}
	}
}

// WithNotifier sets the alert destination.
func WithNotifier(n Notifier) Option {
	return func(m *Monitor) {
		if n != nil {
			m.notifier = n
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(log *slog.Logger) Option {
	return func(m *Monitor) {
		if log != nil {
			m.log = log
		}
	}
}

// WithShouldRun overrides the decision whether a cycle executes.
func WithShouldRun(fn func() bool) Option {
	return func(m *Monitor) {
		if fn != nil {
			m.shouldRun = fn
		}
	}
}

// WithShouldReconnect overrides the decision whether a failing cycle may
// attempt reconnection. The argument is the consecutive failure count.
func WithShouldReconnect(fn func(failures int) bool) Option {
	return func(m *Monitor) {
		if fn != nil {
			m.shouldReconnect = fn
		}
	}
}

// WithReconnect installs a reconnection hook invoked after a failed cycle
// when ShouldReconnect allows it.
func WithReconnect(fn func(ctx context.Context) error) Option {
	return func(m *Monitor) {
		m.reconnect = fn
	}
}
