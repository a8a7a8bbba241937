package monitor

import "time"

// Config holds monitor settings loadable from the environment.
type Config struct {
	Interval      time.Duration `env:"MONITOR_INTERVAL" envDefault:"1m"`
	RetryAttempts int           `env:"MONITOR_RETRY_ATTEMPTS" envDefault:"3"`
	RetryDelay    time.Duration `env:"MONITOR_RETRY_DELAY" envDefault:"2s"`
	AlertURL      string        `env:"MONITOR_ALERT_URL" envDefault:""`
}

// Options converts the config into functional options. The alert URL is
// handled by the caller because it needs a webhook sender.
func (c Config) Options() []Option {
	return []Option{
		WithInterval(c.Interval),
		WithRetry(c.RetryAttempts, c.RetryDelay),
	}
}
