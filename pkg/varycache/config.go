package varycache

import (
	"fmt"
	"net/http"
)

// Config holds segmentation configuration loadable from the environment.
type Config struct {
	CookieName     string        `env:"VARYCACHE_COOKIE_NAME" envDefault:"segmentation-state"`
	SegmentHeader  string        `env:"VARYCACHE_SEGMENT_HEADER" envDefault:"X-Cache-Segment"`
	AuthHeader     string        `env:"VARYCACHE_AUTH_HEADER" envDefault:"X-Cache-Auth"`
	EncryptionKey  string        `env:"VARYCACHE_ENCRYPTION_KEY" envDefault:""`
	EncryptionIV   string        `env:"VARYCACHE_ENCRYPTION_IV" envDefault:""`
	CookiePath     string        `env:"VARYCACHE_COOKIE_PATH" envDefault:"/"`
	CookieDomain   string        `env:"VARYCACHE_COOKIE_DOMAIN" envDefault:""`
	CookieMaxAge   int           `env:"VARYCACHE_COOKIE_MAX_AGE" envDefault:"0"`
	CookieSecure   bool          `env:"VARYCACHE_COOKIE_SECURE" envDefault:"false"`
	CookieHTTPOnly bool          `env:"VARYCACHE_COOKIE_HTTP_ONLY" envDefault:"true"`
	CookieSameSite http.SameSite `env:"VARYCACHE_COOKIE_SAME_SITE" envDefault:"2"` // 2 = SameSiteLaxMode
}

// DefaultConfig returns the default segmentation configuration.
func DefaultConfig() Config {
	return Config{
		CookieName:     DefaultCookieName,
		SegmentHeader:  DefaultSegmentHeader,
		AuthHeader:     DefaultAuthHeader,
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSameSite: http.SameSiteLaxMode,
	}
}

// NewFromConfig creates a Manager from the provided Config. Encryption is
// enabled when both secrets are present; setting only one of them is a
// misconfiguration and panics, the same as calling WithEncryption with an
// empty secret.
func NewFromConfig(cfg Config, opts ...Option) *Manager {
	configOpts := make([]Option, 0, len(opts)+5)

	configOpts = append(configOpts,
		WithCookieName(cfg.CookieName),
		WithSegmentVaryHeader(cfg.SegmentHeader),
		WithAuthVaryHeader(cfg.AuthHeader),
		WithCookieOptions(CookieOptions{
			Path:     cfg.CookiePath,
			Domain:   cfg.CookieDomain,
			MaxAge:   cfg.CookieMaxAge,
			Secure:   cfg.CookieSecure,
			HttpOnly: cfg.CookieHTTPOnly,
			SameSite: cfg.CookieSameSite,
		}),
	)

	if cfg.EncryptionKey != "" || cfg.EncryptionIV != "" {
		if cfg.EncryptionKey == "" || cfg.EncryptionIV == "" {
			panic(fmt.Errorf("varycache: encryption requires both key and IV to be configured"))
		}
		configOpts = append(configOpts, WithEncryption(cfg.EncryptionKey, cfg.EncryptionIV))
	}

	configOpts = append(configOpts, opts...)
	return New(configOpts...)
}
