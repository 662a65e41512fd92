package scraper

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/use-agent/leekduck/drift"
	"github.com/use-agent/leekduck/extract"
	"github.com/use-agent/leekduck/models"
	"github.com/use-agent/leekduck/pokedex"
	"github.com/use-agent/leekduck/tables"
)

const savedRaids = `<html><body>
<h2 class="header" data-tier="1">Tier 1</h2>
<div class="grid">
  <div class="card"><div class="boss-img"><img src="/i/pm4.icon.png"></div><p class="name">Charmander</p></div>
</div>
<h2 class="header" data-tier="5">Tier 5</h2>
<div class="grid">
  <div class="card"><div class="boss-img"><img src="/i/pm150.icon.png"></div><p class="name">Mewtwo</p></div>
  <div class="card"><div class="boss-img"></div><p class="name">Broken</p></div>
</div>
</body></html>`

const savedEvents = `<html><body>
<div class="events-list current-events">
  <a class="event-item-link" href="/events/cd/">
    <div class="event-item-wrapper community-day"><h2>Community Day</h2>
    <div class="event-countdown" data-countdown-to="start" data-countdown="1715500800000"></div></div>
  </a>
</div>
<div class="events-list upcoming-events">
  <a class="event-item-link" href="/events/cd/">
    <div class="event-item-wrapper community-day"><h2>Community Day</h2>
    <div class="event-countdown" data-countdown-to="end" data-countdown="1715511600000"></div></div>
  </a>
</div>
</body></html>`

func newTestScraper(t *testing.T, detector *drift.Detector) *Scraper {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "raid-bosses.html"), []byte(savedRaids), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "events.html"), []byte(savedEvents), 0o644))

	src, err := NewDirSource(dir, "https://leekduck.com")
	require.NoError(t, err)

	tb := tables.Default()
	dex, err := pokedex.Load("", tb.Forms, "zh-TW")
	require.NoError(t, err)
	x, err := extract.New(tb, dex, extract.Options{Locale: "zh-TW", Location: time.UTC})
	require.NoError(t, err)
	return New(src, x, detector)
}

func TestScrapeRaids(t *testing.T) {
	s := newTestScraper(t, nil)

	resp := s.Scrape(context.Background(), models.KindRaids, models.ListQuery{})
	require.True(t, resp.Success)
	assert.Equal(t, "https://leekduck.com/raid-bosses/", resp.SourceURL)
	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Failures, 1)
	assert.Nil(t, resp.Drift)

	bosses, ok := resp.Records.([]models.RaidBoss)
	require.True(t, ok)
	assert.Equal(t, "1", bosses[0].Tier)
	assert.Equal(t, "5", bosses[1].Tier)
}

func TestScrapeRaidsTierFilter(t *testing.T) {
	s := newTestScraper(t, nil)

	resp := s.Scrape(context.Background(), models.KindRaids, models.ListQuery{Tier: "5"})
	require.True(t, resp.Success)
	bosses := resp.Records.([]models.RaidBoss)
	require.Len(t, bosses, 1)
	assert.Equal(t, 150, bosses[0].Species.No)
}

func TestScrapeEventsMerged(t *testing.T) {
	s := newTestScraper(t, nil)

	resp := s.Scrape(context.Background(), models.KindEvents, models.ListQuery{})
	require.True(t, resp.Success)
	events := resp.Records.([]models.Event)
	require.Len(t, events, 2)
	for _, ev := range events {
		require.NotNil(t, ev.StartTime)
		require.NotNil(t, ev.EndTime)
		assert.True(t, ev.StartTime.Equal(time.UnixMilli(1715500800000)))
		assert.True(t, ev.EndTime.Equal(time.UnixMilli(1715511600000)))
	}

	noMerge := false
	resp = s.Scrape(context.Background(), models.KindEvents, models.ListQuery{Merge: &noMerge, Label: models.LabelUpcoming})
	events = resp.Records.([]models.Event)
	require.Len(t, events, 1)
	assert.Nil(t, events[0].StartTime)
}

func TestRunKeepsGoingAfterFailure(t *testing.T) {
	s := newTestScraper(t, nil)

	out := s.Run(context.Background(), []models.Kind{models.KindEggs, models.KindRaids}, models.ListQuery{}, true)
	require.Len(t, out, 2)

	assert.Equal(t, models.KindEggs, out[0].Kind)
	assert.False(t, out[0].Success)
	require.NotNil(t, out[0].Error)
	assert.Equal(t, models.ErrCodeFetch, out[0].Error.Code)

	assert.Equal(t, models.KindRaids, out[1].Kind)
	assert.True(t, out[1].Success)
}

func TestScrapeReportsDrift(t *testing.T) {
	det, err := drift.NewDetector(0, map[string]string{"raids": "ffffffffffffffff"})
	require.NoError(t, err)
	s := newTestScraper(t, det)

	resp := s.Scrape(context.Background(), models.KindRaids, models.ListQuery{})
	require.NotNil(t, resp.Drift)
	assert.Equal(t, "ffffffffffffffff", resp.Drift.Baseline)
	assert.NotEmpty(t, resp.Drift.Fingerprint)
	assert.True(t, resp.Drift.Drifted)
	assert.True(t, resp.Success, "drift is reported, not fatal")
}

func TestNewDirSourceRejectsRelativeHost(t *testing.T) {
	_, err := NewDirSource(t.TempDir(), "leekduck.com")
	require.Error(t, err)
}
