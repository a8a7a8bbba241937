package varycache

import (
	"log/slog"
	"net/http"
)

// Default wire names. The cookie name is deliberately unbranded so a
// front-line cache config can refer to it without coupling to this module.
const (
	DefaultCookieName    = "segmentation-state"
	DefaultSegmentHeader = "X-Cache-Segment"
	DefaultAuthHeader    = "X-Cache-Auth"
)

// Manager holds the process-wide segmentation configuration: cookie name
// and attributes, the two Vary tokens, and the optional encryption key.
// It is immutable after New and safe for concurrent use; all per-request
// state lives in the Controller.
type Manager struct {
	cookieName    string
	segmentHeader string
	authHeader    string
	cookieOpts    CookieOptions
	aeadKey       []byte // nil means plaintext cookies
	log           *slog.Logger
}

// New returns a configured Manager. Misconfiguration (an encryption option
// with empty secrets) panics inside the offending option.
func New(opts ...Option) *Manager {
	m := &Manager{
		cookieName:    DefaultCookieName,
		segmentHeader: DefaultSegmentHeader,
		authHeader:    DefaultAuthHeader,
		cookieOpts: CookieOptions{
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.log == nil {
		m.log = slog.New(slog.DiscardHandler)
	}
	return m
}

// CookieName returns the name of the segmentation cookie.
func (m *Manager) CookieName() string { return m.cookieName }

// EncryptionEnabled reports whether cookie payloads are encrypted.
func (m *Manager) EncryptionEnabled() bool { return m.aeadKey != nil }

// NewController builds the per-request segmentation state from the inbound
// request. A missing, malformed, or (when encryption is on) tampered cookie
// yields an empty registry with the no-cache flag off; client input never
// produces an error here.
func (m *Manager) NewController(r *http.Request) *Controller {
	raw := ""
	if r != nil {
		if cookie, err := r.Cookie(m.cookieName); err == nil {
			raw = cookie.Value
		}
	}
	return m.newController(raw)
}

func (m *Manager) newController(raw string) *Controller {
	if m.aeadKey != nil && raw != "" {
		plaintext, ok := decrypt(m.aeadKey, raw)
		if !ok {
			raw = ""
		} else {
			raw = plaintext
		}
	}

	names, segments, noCache := parse(raw)
	return &Controller{
		m:        m,
		names:    names,
		segments: segments,
		noCache:  noCache,
	}
}

// encode runs the codec and, when enabled, the encryption layer. The error
// can only come from the encryption path (entropy exhaustion); callers log
// it and skip the cookie write for this response.
func (m *Manager) encode(names []string, segments map[string]string, noCache bool) (string, error) {
	payload := serialize(names, segments, noCache)
	if m.aeadKey == nil {
		return payload, nil
	}
	return encrypt(m.aeadKey, payload)
}

// buildCookie applies the configured attributes to a fresh cookie value.
func (m *Manager) buildCookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     m.cookieName,
		Value:    value,
		Path:     m.cookieOpts.Path,
		Domain:   m.cookieOpts.Domain,
		MaxAge:   m.cookieOpts.MaxAge,
		Secure:   m.cookieOpts.Secure,
		HttpOnly: m.cookieOpts.HttpOnly,
		SameSite: m.cookieOpts.SameSite,
	}
}
