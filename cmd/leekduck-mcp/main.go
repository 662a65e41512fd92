package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// listResponse mirrors the listing API response.
type listResponse struct {
	Success   bool            `json:"success"`
	Kind      string          `json:"kind"`
	SourceURL string          `json:"source_url"`
	Count     int             `json:"count"`
	Records   json.RawMessage `json:"records"`
	Failures  []struct {
		Index   int    `json:"index"`
		Message string `json:"message"`
	} `json:"failures"`
	Drift *struct {
		Distance int  `json:"distance"`
		Drifted  bool `json:"drifted"`
	} `json:"drift"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func main() {
	apiURL := os.Getenv("LEEKDUCK_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}
	apiKey := os.Getenv("LEEKDUCK_API_KEY")

	client := resty.New().
		SetBaseURL(apiURL).
		SetTimeout(90 * time.Second).
		SetHeader("Accept", "application/json")
	if apiKey != "" {
		client.SetHeader("X-API-Key", apiKey)
	}

	s := server.NewMCPServer(
		"leekduck",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	s.AddTool(mcp.NewTool("get_raid_bosses",
		mcp.WithDescription("List current raid bosses with tier, types, CP ranges, weather boosts and shiny availability. Names are localized."),
		mcp.WithString("tier",
			mcp.Description("Only return bosses of this tier label, e.g. '5' or 'mega'"),
		),
	), handleList(client, "/api/v1/raids", "tier"))

	s.AddTool(mcp.NewTool("get_events",
		mcp.WithDescription("List current and upcoming in-game events with localized titles and start/end times. Events listed in both sections are merged by default."),
		mcp.WithString("label",
			mcp.Description("Only return 'current' or 'upcoming' events"),
			mcp.Enum("current", "upcoming"),
		),
		mcp.WithBoolean("merge",
			mcp.Description("Reconcile start/end times of events listed in both sections (default: true)"),
		),
	), handleList(client, "/api/v1/events", "label", "merge"))

	s.AddTool(mcp.NewTool("get_research",
		mcp.WithDescription("List field research tasks with localized descriptions, categories and rewards."),
		mcp.WithString("category",
			mcp.Description("Only return tasks in this localized category"),
		),
	), handleList(client, "/api/v1/research", "category"))

	s.AddTool(mcp.NewTool("get_eggs",
		mcp.WithDescription("List egg hatch pools grouped by egg category, with CP ranges and shiny/regional flags."),
		mcp.WithString("category",
			mcp.Description("Only return entries in this localized egg category"),
		),
	), handleList(client, "/api/v1/eggs", "category"))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

// handleList proxies a tool call to a listing endpoint, forwarding the
// named arguments as query parameters.
func handleList(client *resty.Client, path string, params ...string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := map[string]string{}
		args := request.GetArguments()
		for _, p := range params {
			switch v := args[p].(type) {
			case string:
				if v != "" {
					query[p] = v
				}
			case bool:
				query[p] = strconv.FormatBool(v)
			}
		}

		resp, err := client.R().
			SetContext(ctx).
			SetQueryParams(query).
			Get(path)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("API request failed: %v", err)), nil
		}

		var list listResponse
		if err := json.Unmarshal(resp.Body(), &list); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response (status %d): %v", resp.StatusCode(), err)), nil
		}

		if !list.Success {
			errMsg := "listing failed"
			if list.Error != nil {
				errMsg = fmt.Sprintf("[%s] %s", list.Error.Code, list.Error.Message)
			}
			return mcp.NewToolResultError(errMsg), nil
		}

		return mcp.NewToolResultText(format(&list)), nil
	}
}

func format(list *listResponse) string {
	var sb bytes.Buffer
	fmt.Fprintf(&sb, "%s: %d records\nSource: %s\n", list.Kind, list.Count, list.SourceURL)
	if len(list.Failures) > 0 {
		fmt.Fprintf(&sb, "Skipped: %d items\n", len(list.Failures))
	}
	if list.Drift != nil && list.Drift.Drifted {
		fmt.Fprintf(&sb, "Warning: page layout changed (distance %d), results may be incomplete\n", list.Drift.Distance)
	}
	sb.WriteString("\n")
	if err := json.Indent(&sb, list.Records, "", "  "); err != nil {
		sb.Write(list.Records)
	}
	return sb.String()
}
