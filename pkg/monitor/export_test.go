package monitor

import "context"

// Cycle exposes one check pass for deterministic tests.
func (m *Monitor) Cycle(ctx context.Context) {
	m.cycle(ctx)
}
