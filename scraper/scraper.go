// Package scraper runs listings end to end: load the page, check its
// layout fingerprint, build records, merge cross-listed events and apply
// caller filters.
package scraper

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/use-agent/leekduck/drift"
	"github.com/use-agent/leekduck/extract"
	"github.com/use-agent/leekduck/merge"
	"github.com/use-agent/leekduck/metrics"
	"github.com/use-agent/leekduck/models"
)

// Scraper is safe for concurrent use.
type Scraper struct {
	source    Source
	extractor *extract.Extractor
	detector  *drift.Detector
}

// New creates a Scraper. detector may be nil to skip drift checks.
func New(source Source, x *extract.Extractor, detector *drift.Detector) *Scraper {
	return &Scraper{source: source, extractor: x, detector: detector}
}

// Run scrapes every kind, in the given order in the result. An empty list
// means all kinds. With concurrent set each kind runs in its own
// goroutine. A failing kind never stops the others.
func (s *Scraper) Run(ctx context.Context, kinds []models.Kind, q models.ListQuery, concurrent bool) []*models.ListResponse {
	if len(kinds) == 0 {
		kinds = models.AllKinds
	}
	out := make([]*models.ListResponse, len(kinds))
	if !concurrent {
		for i, k := range kinds {
			out[i] = s.Scrape(ctx, k, q)
		}
		return out
	}

	var wg sync.WaitGroup
	for i, k := range kinds {
		wg.Add(1)
		go func(i int, k models.Kind) {
			defer wg.Done()
			out[i] = s.Scrape(ctx, k, q)
		}(i, k)
	}
	wg.Wait()
	return out
}

// Scrape runs one listing. Failures are reported in the response, never
// returned.
func (s *Scraper) Scrape(ctx context.Context, kind models.Kind, q models.ListQuery) *models.ListResponse {
	start := time.Now()
	q.Defaults()
	resp := &models.ListResponse{Kind: kind}

	page, err := s.source.Load(ctx, kind)
	resp.Timing.FetchMs = time.Since(start).Milliseconds()
	if err != nil {
		fail(resp, err)
		resp.Timing.TotalMs = time.Since(start).Milliseconds()
		return resp
	}
	resp.SourceURL = page.Base.String()
	resp.EngineUsed = page.EngineUsed

	if s.detector != nil && len(page.Doc.Nodes) > 0 {
		resp.Drift = s.detector.Check(kind, drift.FingerprintNode(page.Doc.Nodes[0]))
		metrics.LayoutDistance.WithLabelValues(string(kind)).Set(float64(resp.Drift.Distance))
		if resp.Drift.Drifted {
			metrics.LayoutDrifted.WithLabelValues(string(kind)).Inc()
		}
	}

	extractStart := time.Now()
	records, failures := s.build(page, q)
	extractTime := time.Since(extractStart)
	metrics.ExtractDuration.WithLabelValues(string(kind)).Observe(extractTime.Seconds())

	for _, f := range failures {
		slog.Warn("listing item skipped", "kind", kind, "index", f.Index, "code", f.Code, "error", f.Message)
	}
	metrics.ItemFailures.WithLabelValues(string(kind)).Add(float64(len(failures)))

	resp.Success = true
	resp.Records = records
	resp.Count = count(records)
	resp.Failures = failures
	metrics.RecordsExtracted.WithLabelValues(string(kind)).Add(float64(resp.Count))

	resp.Timing.ExtractMs = extractTime.Milliseconds()
	resp.Timing.TotalMs = time.Since(start).Milliseconds()
	slog.Info("listing scraped",
		"kind", kind,
		"records", resp.Count,
		"failures", len(failures),
		"engine", page.EngineUsed,
		"total_ms", resp.Timing.TotalMs,
	)
	return resp
}

func (s *Scraper) build(page *Page, q models.ListQuery) (any, []*models.ItemError) {
	switch page.Kind {
	case models.KindRaids:
		res := s.extractor.Raids(page.Doc, page.Base)
		return FilterRaids(res.Records, q), res.Failures
	case models.KindEvents:
		res := s.extractor.Events(page.Doc, page.Base)
		events := res.Records
		if q.Merge == nil || *q.Merge {
			events = merge.Events(events)
		}
		return FilterEvents(events, q), res.Failures
	case models.KindResearch:
		res := s.extractor.Research(page.Doc, page.Base)
		return FilterResearch(res.Records, q), res.Failures
	case models.KindEggs:
		res := s.extractor.Eggs(page.Doc, page.Base)
		return FilterEggs(res.Records, q), res.Failures
	}
	return []any{}, nil
}

func fail(resp *models.ListResponse, err error) {
	var se *models.ScrapeError
	if !errors.As(err, &se) {
		se = models.NewScrapeError(models.ErrCodeInternal, "scrape failed", err)
	}
	resp.Success = false
	resp.Error = se.ToDetail()
	metrics.ListingFailures.WithLabelValues(string(resp.Kind), se.Code).Inc()
	slog.Error("listing failed", "kind", resp.Kind, "code", se.Code, "error", err)
}

func count(records any) int {
	switch r := records.(type) {
	case []models.RaidBoss:
		return len(r)
	case []models.Event:
		return len(r)
	case []models.ResearchTask:
		return len(r)
	case []models.EggEntry:
		return len(r)
	case []any:
		return len(r)
	}
	return 0
}
