// Package metrics provides Prometheus metrics for the scraper and API.
// Scrape these at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP API
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leekduck_http_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "leekduck_http_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Fetch engines
	FetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leekduck_fetch_total",
			Help: "Page fetches by engine and result",
		},
		[]string{"engine", "result"}, // result: "success" or "failed"
	)

	FetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "leekduck_fetch_duration_seconds",
			Help:    "Page fetch latency by engine",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		},
		[]string{"engine"},
	)

	// Extraction
	RecordsExtracted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leekduck_records_extracted_total",
			Help: "Records built per listing kind",
		},
		[]string{"kind"},
	)

	ItemFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leekduck_item_failures_total",
			Help: "Listing items skipped because a required node was missing",
		},
		[]string{"kind"},
	)

	ListingFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leekduck_listing_failures_total",
			Help: "Listings that could not be fetched or parsed",
		},
		[]string{"kind", "code"},
	)

	ExtractDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "leekduck_extract_duration_seconds",
			Help:    "Time spent building records from a fetched listing",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"kind"},
	)

	// Layout drift
	LayoutDistance = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "leekduck_layout_distance",
			Help: "Hamming distance of the listing structure from its baseline",
		},
		[]string{"kind"},
	)

	LayoutDrifted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leekduck_layout_drift_total",
			Help: "Runs whose listing structure exceeded the drift threshold",
		},
		[]string{"kind"},
	)

	// Webhooks
	WebhookDeliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leekduck_webhook_deliveries_total",
			Help: "Webhook deliveries by result",
		},
		[]string{"result"}, // "success" or "failed"
	)
)
