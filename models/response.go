package models

// ListResponse is the response for the GET /api/v1/<kind> endpoints.
type ListResponse struct {
	// Success indicates whether the listing was fetched and extracted.
	Success bool `json:"success"`

	// Kind is the entity listing this response covers.
	Kind Kind `json:"kind"`

	// SourceURL is the page the records were extracted from.
	SourceURL string `json:"source_url,omitempty"`

	// Count is len(Records).
	Count int `json:"count"`

	// Records holds the typed records ([]RaidBoss, []Event, ...).
	Records any `json:"records"`

	// Failures lists items that were skipped because a required node was
	// missing. The rest of the listing is still returned.
	Failures []*ItemError `json:"failures,omitempty"`

	// Drift is the layout fingerprint report for the listing.
	Drift *DriftReport `json:"drift,omitempty"`

	// Timing provides duration breakdowns for the operation.
	Timing TimingInfo `json:"timing"`

	// EngineUsed indicates which fetch engine produced the page
	// (e.g. "http", "resty"). Empty in offline mode.
	EngineUsed string `json:"engine_used,omitempty"`

	// Error is populated only when Success is false.
	Error *ErrorDetail `json:"error,omitempty"`
}

// DriftReport describes how far a listing's structure moved from its
// baseline fingerprint.
type DriftReport struct {
	Fingerprint string `json:"fingerprint"`
	Baseline    string `json:"baseline,omitempty"`
	Distance    int    `json:"distance"`
	Drifted     bool   `json:"drifted"`
}

// TimingInfo breaks down the time spent in each phase.
type TimingInfo struct {
	// TotalMs is the end-to-end duration in milliseconds.
	TotalMs int64 `json:"total_ms"`

	// FetchMs is the time spent retrieving the page.
	FetchMs int64 `json:"fetch_ms"`

	// ExtractMs is the time spent building and merging records.
	ExtractMs int64 `json:"extract_ms"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status  string      `json:"status"` // "healthy" or "degraded"
	Uptime  string      `json:"uptime"`
	Tables  TablesStats `json:"tables"`
	Version string      `json:"version"`
}

// TablesStats reports the size of the loaded lookup tables.
type TablesStats struct {
	Species       int `json:"species"`
	ResearchRules int `json:"research_rules"`
	EventRules    int `json:"event_rules"`
	Categories    int `json:"categories"`
}
