// Package app assembles the pipeline from configuration. The CLI and the
// HTTP server share it.
package app

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/use-agent/leekduck/config"
	"github.com/use-agent/leekduck/drift"
	"github.com/use-agent/leekduck/engine"
	"github.com/use-agent/leekduck/extract"
	"github.com/use-agent/leekduck/pokedex"
	"github.com/use-agent/leekduck/scraper"
	"github.com/use-agent/leekduck/tables"
)

// Version is reported by the health endpoint and the CLI.
const Version = "0.3.0"

// App is the assembled pipeline.
type App struct {
	Config    *config.Config
	Extractor *extract.Extractor
	Scraper   *scraper.Scraper
}

// Build loads the tables and wires source, extractor and drift detector.
func Build(cfg *config.Config) (*App, error) {
	tb, err := tables.Load(cfg.Data.Dir)
	if err != nil {
		return nil, err
	}
	dex, err := pokedex.Load(cfg.Data.Dir, tb.Forms, cfg.Data.Locale)
	if err != nil {
		return nil, err
	}
	x, err := extract.New(tb, dex, extract.Options{
		Locale:   cfg.Data.Locale,
		Location: cfg.Data.Location(),
	})
	if err != nil {
		return nil, err
	}

	src, err := NewSource(cfg)
	if err != nil {
		return nil, err
	}

	// Kinds without a baseline still get a fingerprint in the report.
	detector, err := drift.NewDetector(cfg.Drift.Threshold, cfg.Drift.Baselines)
	if err != nil {
		return nil, fmt.Errorf("app: drift baselines: %w", err)
	}

	slog.Info("pipeline ready",
		"species", dex.Len(),
		"locale", cfg.Data.Locale,
		"timezone", cfg.Data.Timezone,
		"offline", cfg.Source.OfflineDir != "",
	)
	return &App{
		Config:    cfg,
		Extractor: x,
		Scraper:   scraper.New(src, x, detector),
	}, nil
}

// NewSource returns a directory source when an offline dir is configured,
// otherwise a remote source behind the engine dispatcher.
func NewSource(cfg *config.Config) (scraper.Source, error) {
	if cfg.Source.OfflineDir != "" {
		src, err := scraper.NewDirSource(cfg.Source.OfflineDir, cfg.Source.Host)
		if err != nil {
			return nil, err
		}
		return src, nil
	}
	src, err := scraper.NewRemoteSource(cfg.Source.Host, NewDispatcher(cfg.Engine, cfg.Source.Proxy), cfg.Source.Timeout)
	if err != nil {
		return nil, err
	}
	return src, nil
}

// NewDispatcher builds the fetch engines. The resty engine is only added
// in multi-engine mode.
func NewDispatcher(cfg config.EngineConfig, proxy string) *engine.Dispatcher {
	engines := []engine.Engine{engine.NewHTTPEngine(cfg.HTTPTimeout)}
	if cfg.EnableMultiEngine {
		engines = append(engines, engine.NewRestyEngine(cfg.HTTPTimeout, proxy))
	}
	d := engine.NewDispatcher(engines, cfg.EscalationDelays, engine.NewHostMemory(24*time.Hour))
	slog.Info("fetch dispatcher ready",
		"engines", d.Engines(),
		"delays", cfg.EscalationDelays,
	)
	return d
}

// NewLogger builds the slog handler described by cfg, writing to w.
func NewLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
}
