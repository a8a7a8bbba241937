package varycache

// Test-only accessors for internal state and the codec, so tests verify
// behavior without reflection.

const (
	ValueSeparator = valueSeparator
	GroupSeparator = groupSeparator
	NoCacheToken   = noCacheToken
)

var (
	Serialize     = serialize
	Parse         = parse
	ValidateToken = validateToken
	DeriveKey     = deriveKey
	Decrypt       = decrypt
)

// NewControllerFromValue bypasses http.Request plumbing for codec-level
// round-trip tests.
func (m *Manager) NewControllerFromValue(raw string) *Controller {
	return m.newController(raw)
}

// PendingFlags exposes the two pending-write flags.
func (c *Controller) PendingFlags() (groupsChanged, noCacheChanged bool) {
	return c.groupsChanged, c.noCacheChanged
}

// GroupOrder exposes the registration order backing cookie serialization.
func (c *Controller) GroupOrder() []string {
	return append([]string(nil), c.names...)
}
