package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Source    SourceConfig
	Engine    EngineConfig
	Data      DataConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Log       LogConfig
	Output    OutputConfig
	Drift     DriftConfig
}

// SourceConfig controls where listing pages come from.
type SourceConfig struct {
	// Host is the site root every listing path is joined to.
	Host string // default: "https://leekduck.com"

	// Timeout is the per-page fetch deadline.
	Timeout time.Duration // default: 20s

	// Proxy is an optional proxy URL for all fetches.
	Proxy string

	// OfflineDir, when set, makes the source read <kind>.html files from
	// this directory instead of fetching.
	OfflineDir string
}

// EngineConfig controls the multi-engine fetch dispatcher.
type EngineConfig struct {
	// EnableMultiEngine toggles the fallback engine. When false only the
	// TLS-fingerprinted HTTP engine is used.
	EnableMultiEngine bool // default: true

	// EscalationDelays is the staged start delay for each engine tier.
	EscalationDelays []time.Duration // default: [0s, 3s]

	// HTTPTimeout is the deadline for the fingerprinted HTTP engine.
	HTTPTimeout time.Duration // default: 10s
}

// DataConfig locates the static lookup tables.
type DataConfig struct {
	// Dir optionally overrides embedded tables with <name>.json and
	// <name>.local.json files.
	Dir string

	// Locale selects which species/type names are used for display.
	Locale string // default: "zh-TW"

	// Timezone is used for event times printed without an offset.
	Timezone string // default: "America/Los_Angeles"
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"

	// CacheTTL is how long a listing response is served from memory.
	// Zero disables the response cache.
	CacheTTL time.Duration // default: 0 (disabled)

	// CacheEntries bounds the response cache.
	CacheEntries int // default: 64
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: false

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 1

	// Burst is the maximum burst size per API key.
	Burst int // default: 4
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// OutputConfig controls where finished runs go.
type OutputConfig struct {
	// Dir receives <kind>.json files. Empty means stdout.
	Dir string

	// Format is "json" or "table"; default: "json".
	Format string

	// WebhookURL receives a signed POST per finished run when set.
	WebhookURL string

	// WebhookSecret signs webhook bodies with HMAC-SHA256.
	WebhookSecret string
}

// DriftConfig controls layout-drift detection.
type DriftConfig struct {
	// Threshold is the maximum Hamming distance still considered the
	// same layout.
	Threshold int // default: 12

	// Baselines maps kind to a hex fingerprint, e.g. "raids=9f3c...".
	Baselines map[string]string
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("LEEKDUCK_HOST", "0.0.0.0"),
			Port: envIntOr("LEEKDUCK_PORT", 8080),
			Mode: envOr("LEEKDUCK_MODE", "release"),

			CacheTTL:     envDurationOr("LEEKDUCK_CACHE_TTL", 0),
			CacheEntries: envIntOr("LEEKDUCK_CACHE_ENTRIES", 64),
		},
		Source: SourceConfig{
			Host:       envOr("LEEKDUCK_SOURCE_HOST", "https://leekduck.com"),
			Timeout:    envDurationOr("LEEKDUCK_SOURCE_TIMEOUT", 20*time.Second),
			Proxy:      os.Getenv("LEEKDUCK_PROXY"),
			OfflineDir: os.Getenv("LEEKDUCK_OFFLINE_DIR"),
		},
		Engine: EngineConfig{
			EnableMultiEngine: envBoolOr("LEEKDUCK_MULTI_ENGINE", true),
			EscalationDelays:  envDurationSliceOr("LEEKDUCK_ESCALATION_DELAYS", []time.Duration{0, 3 * time.Second}),
			HTTPTimeout:       envDurationOr("LEEKDUCK_HTTP_TIMEOUT", 10*time.Second),
		},
		Data: DataConfig{
			Dir:      os.Getenv("LEEKDUCK_DATA_DIR"),
			Locale:   envOr("LEEKDUCK_LOCALE", "zh-TW"),
			Timezone: envOr("LEEKDUCK_TIMEZONE", "America/Los_Angeles"),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("LEEKDUCK_AUTH_ENABLED", false),
			APIKeys: envSliceOr("LEEKDUCK_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("LEEKDUCK_RATE_RPS", 1.0),
			Burst:             envIntOr("LEEKDUCK_RATE_BURST", 4),
		},
		Log: LogConfig{
			Level:  envOr("LEEKDUCK_LOG_LEVEL", "info"),
			Format: envOr("LEEKDUCK_LOG_FORMAT", "json"),
		},
		Output: OutputConfig{
			Dir:           os.Getenv("LEEKDUCK_OUTPUT_DIR"),
			Format:        envOr("LEEKDUCK_OUTPUT_FORMAT", "json"),
			WebhookURL:    os.Getenv("LEEKDUCK_WEBHOOK_URL"),
			WebhookSecret: os.Getenv("LEEKDUCK_WEBHOOK_SECRET"),
		},
		Drift: DriftConfig{
			Threshold: envIntOr("LEEKDUCK_DRIFT_THRESHOLD", 12),
			Baselines: envMapOr("LEEKDUCK_DRIFT_BASELINES", nil),
		},
	}
}

// Location resolves the configured site timezone, falling back to UTC.
func (d DataConfig) Location() *time.Location {
	loc, err := time.LoadLocation(d.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func envDurationSliceOr(key string, fallback []time.Duration) []time.Duration {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]time.Duration, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				if d, err := time.ParseDuration(trimmed); err == nil {
					result = append(result, d)
				}
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}

// envMapOr parses "k1=v1,k2=v2". Pairs without '=' are skipped.
func envMapOr(key string, fallback map[string]string) map[string]string {
	pairs := envSliceOr(key, nil)
	if len(pairs) == 0 {
		return fallback
	}
	result := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok {
			continue
		}
		result[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return result
}
