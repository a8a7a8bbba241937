package monitor

import (
	"context"
	"log/slog"
	"time"
)

// Checker probes the monitored connection. It returns nil when the
// connection is healthy.
type Checker func(ctx context.Context) error

// Monitor runs a periodic health check against a single connection,
// retries transient failures within a cycle, optionally attempts a
// reconnection, and raises alerts on health transitions.
//
// Two caller-supplied overrides gate the loop: ShouldRun decides whether a
// cycle executes at all (maintenance windows, peak-hour suppression), and
// ShouldReconnect decides whether a failing cycle may attempt the
// Reconnect hook. Both default to permissive functions.
type Monitor struct {
	target string
	check  Checker

	interval      time.Duration
	retryAttempts int
	retryDelay    time.Duration

	shouldRun       func() bool
	shouldReconnect func(failures int) bool
	reconnect       func(ctx context.Context) error

	notifier Notifier
	log      *slog.Logger

	healthy  bool
	failures int
}

// New creates a Monitor for the named target. The target string appears in
// alerts and logs only.
func New(target string, check Checker, opts ...Option) *Monitor {
	m := &Monitor{
		target:          target,
		check:           check,
		interval:        time.Minute,
		retryAttempts:   3,
		retryDelay:      2 * time.Second,
		shouldRun:       func() bool { return true },
		shouldReconnect: func(int) bool { return true },
		healthy:         true,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.log == nil {
		m.log = slog.New(slog.DiscardHandler)
	}
	if m.notifier == nil {
		m.notifier = NewLogNotifier(m.log)
	}
	return m
}

// Healthy reports the result of the last completed cycle.
func (m *Monitor) Healthy() bool { return m.healthy }

// Run executes the check loop until the context is canceled. The first
// cycle runs immediately rather than waiting a full interval.
func (m *Monitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.cycle(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.cycle(ctx)
		}
	}
}

// cycle runs one health-check pass: probe with retries, track the health
// transition, attempt reconnection when allowed, and alert on changes.
func (m *Monitor) cycle(ctx context.Context) {
	if !m.shouldRun() {
		m.log.DebugContext(ctx, "health check skipped", slog.String("target", m.target))
		return
	}

	err := m.probe(ctx)
	if err == nil {
		if !m.healthy {
			m.notify(ctx, Alert{Status: StatusRecovered, Target: m.target, At: time.Now()})
			m.log.InfoContext(ctx, "connection recovered", slog.String("target", m.target))
		}
		m.healthy = true
		m.failures = 0
		return
	}

	m.failures++
	m.log.WarnContext(ctx, "health check failed",
		slog.String("target", m.target),
		slog.Int("failures", m.failures),
		slog.Any("error", err),
	)

	if m.healthy {
		m.notify(ctx, Alert{
			Status:   StatusDown,
			Target:   m.target,
			Failures: m.failures,
			Reason:   err.Error(),
			At:       time.Now(),
		})
	}
	m.healthy = false

	if m.reconnect != nil && m.shouldReconnect(m.failures) {
		if rerr := m.reconnect(ctx); rerr != nil {
			m.log.WarnContext(ctx, "reconnection attempt failed",
				slog.String("target", m.target),
				slog.Any("error", rerr),
			)
		}
	}
}

// probe retries the checker within a single cycle so one dropped packet
// does not page anyone.
func (m *Monitor) probe(ctx context.Context) error {
	var err error
	for attempt := 0; attempt < m.retryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(m.retryDelay):
			}
		}
		if err = m.check(ctx); err == nil {
			return nil
		}
	}
	return err
}

func (m *Monitor) notify(ctx context.Context, alert Alert) {
	if err := m.notifier.Notify(ctx, alert); err != nil {
		m.log.ErrorContext(ctx, "alert delivery failed",
			slog.String("target", m.target),
			slog.Any("error", err),
		)
	}
}
