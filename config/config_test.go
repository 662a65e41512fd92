package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "https://leekduck.com", cfg.Source.Host)
	assert.Equal(t, 20*time.Second, cfg.Source.Timeout)
	assert.Equal(t, "zh-TW", cfg.Data.Locale)
	assert.Equal(t, []time.Duration{0, 3 * time.Second}, cfg.Engine.EscalationDelays)
	assert.Equal(t, 12, cfg.Drift.Threshold)
	assert.Nil(t, cfg.Drift.Baselines)
}

func TestLoad_ResponseCacheDisabledByDefault(t *testing.T) {
	assert.Zero(t, Load().Server.CacheTTL)

	t.Setenv("LEEKDUCK_CACHE_TTL", "30s")
	assert.Equal(t, 30*time.Second, Load().Server.CacheTTL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("LEEKDUCK_SOURCE_HOST", "http://127.0.0.1:9000")
	t.Setenv("LEEKDUCK_ESCALATION_DELAYS", "0s, 1s, bogus, 2s")
	t.Setenv("LEEKDUCK_API_KEYS", "a, ,b")
	t.Setenv("LEEKDUCK_DRIFT_BASELINES", "raids=00ff,junk,eggs = 0a")
	t.Setenv("LEEKDUCK_PORT", "not-a-number")

	cfg := Load()

	assert.Equal(t, "http://127.0.0.1:9000", cfg.Source.Host)
	assert.Equal(t, []time.Duration{0, time.Second, 2 * time.Second}, cfg.Engine.EscalationDelays)
	assert.Equal(t, []string{"a", "b"}, cfg.Auth.APIKeys)
	assert.Equal(t, map[string]string{"raids": "00ff", "eggs": "0a"}, cfg.Drift.Baselines)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestDataConfig_Location(t *testing.T) {
	loc := DataConfig{Timezone: "Asia/Taipei"}.Location()
	require.NotNil(t, loc)
	assert.Equal(t, "Asia/Taipei", loc.String())

	assert.Equal(t, time.UTC, DataConfig{Timezone: "Nowhere/Atlantis"}.Location())
}
