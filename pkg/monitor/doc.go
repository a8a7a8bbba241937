// Package monitor runs a periodic health check against an external
// connection (typically the Redis instance backing the front-line cache)
// with per-cycle retries, optional reconnection, and alerting on health
// transitions.
//
// Alerts fire only on health transitions: once when the connection goes
// down, once when it recovers. A long outage produces two notifications,
// not one per cycle.
//
// The host decides policy through two injected overrides: ShouldRun gates
// whole cycles, ShouldReconnect gates reconnection attempts based on the
// consecutive failure count. Both default to "always yes".
//
// # Usage
//
//	client, _ := redis.Connect(ctx, redisCfg)
//	m := monitor.New("cache-redis", redis.Healthcheck(client),
//		monitor.WithInterval(30*time.Second),
//		monitor.WithNotifier(monitor.NewWebhookNotifier(nil, alertURL)),
//		monitor.WithShouldReconnect(func(failures int) bool { return failures >= 3 }),
//	)
//	go m.Run(ctx)
package monitor
