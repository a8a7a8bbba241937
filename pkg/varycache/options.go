package varycache

import (
	"fmt"
	"log/slog"
	"net/http"
)

// CookieOptions control the attributes applied to the segmentation cookie
// whenever it is (re)issued.
type CookieOptions struct {
	Path     string
	Domain   string
	MaxAge   int
	Secure   bool
	HttpOnly bool
	SameSite http.SameSite
}

// Option configures a Manager.
type Option func(*Manager)

// WithCookieName overrides the segmentation cookie name.
func WithCookieName(name string) Option {
	return func(m *Manager) {
		if name != "" {
			m.cookieName = name
		}
	}
}

// WithCookieOptions overrides the attributes of the issued cookie.
// Zero-value fields fall back to the defaults.
func WithCookieOptions(opts CookieOptions) Option {
	return func(m *Manager) {
		if opts.Path == "" {
			opts.Path = m.cookieOpts.Path
		}
		if opts.SameSite == 0 {
			opts.SameSite = m.cookieOpts.SameSite
		}
		m.cookieOpts = opts
	}
}

// WithSegmentVaryHeader overrides the Vary token announced when
// segmentation groups are present and encryption is off.
func WithSegmentVaryHeader(header string) Option {
	return func(m *Manager) {
		if header != "" {
			m.segmentHeader = header
		}
	}
}

// WithAuthVaryHeader overrides the Vary token announced when encryption is
// on and the cookie carries group or no-cache state.
func WithAuthVaryHeader(header string) Option {
	return func(m *Manager) {
		if header != "" {
			m.authHeader = header
		}
	}
}

// WithEncryption enables authenticated encryption of the cookie payload
// using the two externally supplied secrets.
//
// Panics when either secret is empty: asking for encryption without key
// material is a misconfiguration that must stop startup rather than fall
// back to a plaintext cookie at request time.
func WithEncryption(key, iv string) Option {
	return func(m *Manager) {
		if key == "" || iv == "" {
			panic(fmt.Errorf("varycache: encryption requested with empty key or IV"))
		}
		m.aeadKey = deriveKey(key, iv)
	}
}

// WithLogger sets the logger used for diagnostic warnings (rejected group
// registrations, failed cookie encryption). Nil is ignored.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}
