package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/jedib0t/go-pretty/v6/table"
)

// CLI flags
var (
	apiURL = flag.String("api-url", "http://localhost:8080", "leekduck API base URL")
	apiKey = flag.String("api-key", "", "API key for authenticated requests")
	runs   = flag.Int("runs", 3, "Number of runs per listing for averaging")
	output = flag.String("output", "benchmark-results.json", "JSON output file path")
)

var kinds = []string{"raids", "events", "research", "eggs"}

// listResponse mirrors the fields of the listing response the benchmark
// reads.
type listResponse struct {
	Success    bool              `json:"success"`
	Count      int               `json:"count"`
	Failures   []json.RawMessage `json:"failures"`
	EngineUsed string            `json:"engine_used"`
	Timing     struct {
		TotalMs   int64 `json:"total_ms"`
		FetchMs   int64 `json:"fetch_ms"`
		ExtractMs int64 `json:"extract_ms"`
	} `json:"timing"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type runResult struct {
	Run       int    `json:"run"`
	TotalMs   int64  `json:"total_ms"`
	FetchMs   int64  `json:"fetch_ms"`
	ExtractMs int64  `json:"extract_ms"`
	Records   int    `json:"records"`
	Failures  int    `json:"failures"`
	Engine    string `json:"engine"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}

type averages struct {
	TotalMs   float64 `json:"total_ms"`
	FetchMs   float64 `json:"fetch_ms"`
	ExtractMs float64 `json:"extract_ms"`
	Records   float64 `json:"records"`
}

type kindResult struct {
	Kind     string      `json:"kind"`
	Runs     []runResult `json:"runs"`
	Averages *averages   `json:"averages,omitempty"`
}

type benchmarkReport struct {
	Timestamp   string       `json:"timestamp"`
	APIURL      string       `json:"api_url"`
	RunsPerKind int          `json:"runs_per_kind"`
	Results     []kindResult `json:"results"`
}

func main() {
	flag.Parse()

	fmt.Println("=== leekduck Benchmark ===")
	fmt.Printf("API URL:   %s\n", *apiURL)
	fmt.Printf("Runs/kind: %d\n", *runs)
	fmt.Printf("Output:    %s\n", *output)
	fmt.Println()

	client := resty.New().SetBaseURL(*apiURL).SetTimeout(90 * time.Second)
	if *apiKey != "" {
		client.SetAuthToken(*apiKey)
	}

	if _, err := client.R().Get("/api/v1/health"); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot reach API at %s: %v\n", *apiURL, err)
		os.Exit(1)
	}

	report := benchmarkReport{
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		APIURL:      *apiURL,
		RunsPerKind: *runs,
	}

	for _, kind := range kinds {
		fmt.Printf("Benchmarking %s ...\n", kind)
		kr := kindResult{Kind: kind}
		for i := 1; i <= *runs; i++ {
			fmt.Printf("  Run %d/%d ... ", i, *runs)
			rr := benchmarkKind(client, kind, i)
			if rr.Success {
				fmt.Printf("OK  %dms  %d records\n", rr.TotalMs, rr.Records)
			} else {
				fmt.Printf("FAILED: %s\n", rr.Error)
			}
			kr.Runs = append(kr.Runs, rr)
		}
		kr.Averages = computeAverages(kr.Runs)
		report.Results = append(report.Results, kr)
		fmt.Println()
	}

	printTable(report.Results)

	if err := writeJSON(*output, report); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing JSON output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nDetailed results written to %s\n", *output)
}

// benchmarkKind runs one listing request. Cached responses carry the
// timings of the original run, so they are reported as failures.
func benchmarkKind(client *resty.Client, kind string, run int) runResult {
	rr := runResult{Run: run}

	var lr listResponse
	resp, err := client.R().SetResult(&lr).SetError(&lr).Get("/api/v1/" + kind)
	if err != nil {
		rr.Error = fmt.Sprintf("request failed: %v", err)
		return rr
	}
	if resp.Header().Get("X-Cache") == "hit" {
		rr.Error = "served from cache; set LEEKDUCK_CACHE_TTL=0 on the server"
		return rr
	}

	rr.Success = lr.Success
	rr.TotalMs = lr.Timing.TotalMs
	rr.FetchMs = lr.Timing.FetchMs
	rr.ExtractMs = lr.Timing.ExtractMs
	rr.Records = lr.Count
	rr.Failures = len(lr.Failures)
	rr.Engine = lr.EngineUsed
	if lr.Error != nil {
		rr.Error = fmt.Sprintf("[%s] %s", lr.Error.Code, lr.Error.Message)
	}
	return rr
}

func computeAverages(runs []runResult) *averages {
	var n int
	var avg averages
	for _, r := range runs {
		if !r.Success {
			continue
		}
		n++
		avg.TotalMs += float64(r.TotalMs)
		avg.FetchMs += float64(r.FetchMs)
		avg.ExtractMs += float64(r.ExtractMs)
		avg.Records += float64(r.Records)
	}
	if n == 0 {
		return nil
	}
	avg.TotalMs /= float64(n)
	avg.FetchMs /= float64(n)
	avg.ExtractMs /= float64(n)
	avg.Records /= float64(n)
	return &avg
}

func printTable(results []kindResult) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Kind", "Avg Total", "Avg Fetch", "Avg Extract", "Records", "Engine"})
	for _, r := range results {
		if r.Averages == nil {
			t.AppendRow(table.Row{r.Kind, "FAILED", "-", "-", "-", "-"})
			continue
		}
		t.AppendRow(table.Row{
			r.Kind,
			fmt.Sprintf("%dms", int64(r.Averages.TotalMs)),
			fmt.Sprintf("%dms", int64(r.Averages.FetchMs)),
			fmt.Sprintf("%dms", int64(r.Averages.ExtractMs)),
			fmt.Sprintf("%.0f", r.Averages.Records),
			lastEngine(r.Runs),
		})
	}
	t.Render()
}

func lastEngine(runs []runResult) string {
	for i := len(runs) - 1; i >= 0; i-- {
		if runs[i].Engine != "" {
			return runs[i].Engine
		}
	}
	return "-"
}

func writeJSON(path string, report benchmarkReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
