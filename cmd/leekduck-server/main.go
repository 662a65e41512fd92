package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/use-agent/leekduck/api"
	"github.com/use-agent/leekduck/app"
	"github.com/use-agent/leekduck/cache"
	"github.com/use-agent/leekduck/config"
	"github.com/use-agent/leekduck/models"
	"github.com/use-agent/leekduck/webhook"
)

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	slog.SetDefault(app.NewLogger(cfg.Log, os.Stdout))
	slog.Info("leekduck starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"source", cfg.Source.Host,
		"locale", cfg.Data.Locale,
	)

	// ── 3. Build the pipeline (tables, source, engines) ─────────────
	a, err := app.Build(cfg)
	if err != nil {
		slog.Error("failed to build pipeline", "error", err)
		os.Exit(1)
	}

	// ── 4. Response cache ───────────────────────────────────────────
	var cc *cache.Cache
	if cfg.Server.CacheTTL > 0 {
		cc = cache.New(cfg.Server.CacheEntries, cfg.Server.CacheTTL)
	}

	// ── 5. Setup router ─────────────────────────────────────────────
	router := api.NewRouter(api.Deps{
		Lister:   a.Scraper,
		Stats:    a.Extractor.Stats(),
		Version:  app.Version,
		Cache:    cc,
		OnResult: driftAlerts(cfg.Output),
	}, cfg, time.Now())

	// ── 6. Start HTTP server ────────────────────────────────────────
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// ── 7. Graceful shutdown ────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	// Listings can take a full source timeout to finish.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Source.Timeout+5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}
	slog.Info("leekduck stopped")
}

// driftAlerts posts a layout.drifted event for each drifted listing the
// API serves. Nil when no webhook is configured.
func driftAlerts(out config.OutputConfig) func(*models.ListResponse) {
	if out.WebhookURL == "" {
		return nil
	}
	return func(resp *models.ListResponse) {
		for _, r := range webhook.Drifted(resp) {
			webhook.DeliverAsync(out.WebhookURL, out.WebhookSecret,
				webhook.NewEvent(webhook.EventLayoutDrifted, webhook.Summarize(r)[0]))
		}
	}
}
