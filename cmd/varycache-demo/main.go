// Command varycache-demo runs a small origin server behind an imaginary
// front-line cache. It wires the segmentation middleware, request-ID
// correlation, and the Redis connection monitor into one process.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/varycache/pkg/config"
	"github.com/dmitrymomot/varycache/pkg/httpserver"
	"github.com/dmitrymomot/varycache/pkg/logger"
	"github.com/dmitrymomot/varycache/pkg/monitor"
	"github.com/dmitrymomot/varycache/pkg/redis"
	"github.com/dmitrymomot/varycache/pkg/requestid"
	"github.com/dmitrymomot/varycache/pkg/varycache"
	"github.com/dmitrymomot/varycache/pkg/webhook"
)

type appConfig struct {
	Env          string `env:"APP_ENV" envDefault:"development"`
	MonitorRedis bool   `env:"MONITOR_REDIS" envDefault:"false"`

	Server    httpserver.Config
	VaryCache varycache.Config
	Monitor   monitor.Config
	Redis     redis.Config
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var cfg appConfig
	config.MustLoad(&cfg)

	logOpt := logger.WithProduction("varycache-demo")
	if cfg.Env == "development" {
		logOpt = logger.WithDevelopment("varycache-demo")
	}
	log := logger.New(logOpt, logger.WithContextExtractors(requestid.LoggerExtractor()))

	ctx := context.Background()
	vc := varycache.NewFromConfig(cfg.VaryCache, varycache.WithLogger(log))

	if cfg.MonitorRedis {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()

		opts := append(cfg.Monitor.Options(), monitor.WithLogger(log))
		if cfg.Monitor.AlertURL != "" {
			opts = append(opts, monitor.WithNotifier(
				monitor.NewWebhookNotifier(webhook.NewSender(), cfg.Monitor.AlertURL),
			))
		}
		go func() {
			if err := monitor.New("cache-redis", redis.Healthcheck(client), opts...).Run(ctx); err != nil {
				log.Error("monitor stopped", slog.Any("error", err))
			}
		}()
	}

	return httpserver.New(cfg.Server, log).Run(ctx, router(vc))
}

func router(vc *varycache.Manager) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(varycache.Middleware(vc))

	// Reads the segment assigned by a previous visit, announcing the
	// variant dimension to the cache via Vary.
	r.Get("/pricing", func(w http.ResponseWriter, r *http.Request) {
		c := varycache.FromContext(r.Context())
		_ = c.RegisterGroup("pricing-experiment")

		variant := "control"
		if c.IsUserInGroupSegment("pricing-experiment", "b") {
			variant = "b"
		}
		fmt.Fprintf(w, "pricing page, variant %s\n", variant)
	})

	// Assigns the client to a segment; the cookie is rewritten on the
	// way out.
	r.Post("/experiment/{segment}", func(w http.ResponseWriter, r *http.Request) {
		c := varycache.FromContext(r.Context())
		if err := c.SetGroupForUser("pricing-experiment", chi.URLParam(r, "segment")); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	// Opts the client out of the shared cache entirely.
	r.Post("/cache/bypass", func(w http.ResponseWriter, r *http.Request) {
		c := varycache.FromContext(r.Context())
		if err := c.SetNoCacheForUser(); err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	return r
}
