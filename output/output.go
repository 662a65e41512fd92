// Package output writes finished listings as JSON files or console tables.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/use-agent/leekduck/models"
)

// Formats.
const (
	FormatJSON  = "json"
	FormatTable = "table"
)

// FileName returns the JSON file name for a kind.
func FileName(kind models.Kind) string {
	return string(kind) + ".json"
}

// WriteDir writes each successful listing's records to dir/<kind>.json.
// Failed listings are skipped so a previous good file is never clobbered.
// It returns the paths written.
func WriteDir(dir string, responses []*models.ListResponse) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("output: create %s: %w", dir, err)
	}
	var written []string
	for _, r := range responses {
		if r == nil || !r.Success {
			continue
		}
		path := filepath.Join(dir, FileName(r.Kind))
		data, err := json.MarshalIndent(r.Records, "", "  ")
		if err != nil {
			return written, fmt.Errorf("output: encode %s: %w", r.Kind, err)
		}
		tmp := path + ".tmp"
		if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
			return written, fmt.Errorf("output: write %s: %w", path, err)
		}
		if err := os.Rename(tmp, path); err != nil {
			return written, fmt.Errorf("output: rename %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// WriteJSON writes the full responses, failures included, as one JSON array.
func WriteJSON(w io.Writer, responses []*models.ListResponse) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(responses)
}

// WriteTables renders one table per listing.
func WriteTables(w io.Writer, responses []*models.ListResponse) {
	for _, r := range responses {
		if r == nil {
			continue
		}
		t := newTable(w)
		t.SetTitle(title(r))
		if !r.Success {
			t.AppendHeader(table.Row{"Code", "Message"})
			if r.Error != nil {
				t.AppendRow(table.Row{r.Error.Code, r.Error.Message})
			}
			t.Render()
			continue
		}
		switch records := r.Records.(type) {
		case []models.RaidBoss:
			raidRows(t, records)
		case []models.Event:
			eventRows(t, records)
		case []models.ResearchTask:
			researchRows(t, records)
		case []models.EggEntry:
			eggRows(t, records)
		}
		t.Render()
	}
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

func title(r *models.ListResponse) string {
	if !r.Success {
		return fmt.Sprintf("%s (failed)", r.Kind)
	}
	s := fmt.Sprintf("%s (%d)", r.Kind, r.Count)
	if len(r.Failures) > 0 {
		s += fmt.Sprintf(", %d skipped", len(r.Failures))
	}
	if r.Drift != nil && r.Drift.Drifted {
		s += fmt.Sprintf(", layout drift %d", r.Drift.Distance)
	}
	return s
}

func raidRows(t table.Writer, bosses []models.RaidBoss) {
	t.AppendHeader(table.Row{"Tier", "No", "Name", "Types", "CP", "Boosted CP", "Weather", "Shiny"})
	for _, b := range bosses {
		t.AppendRow(table.Row{
			b.Tier,
			b.Species.No,
			b.Species.Name,
			strings.Join(b.Types, "/"),
			cp(b.CP),
			cp(b.BoostedCP),
			strings.Join(b.BoostedWeathers, "/"),
			shiny(b.ShinyAvailable),
		})
	}
}

func eventRows(t table.Writer, events []models.Event) {
	t.AppendHeader(table.Row{"Label", "Type", "Title", "Start", "End"})
	for _, e := range events {
		t.AppendRow(table.Row{e.Label, e.Type, e.Title, when(e.StartTime, e.IsLocalTime), when(e.EndTime, e.IsLocalTime)})
	}
}

func researchRows(t table.Writer, tasks []models.ResearchTask) {
	t.AppendHeader(table.Row{"Category", "Task", "Rewards"})
	for _, task := range tasks {
		var rewards []string
		for _, s := range task.RewardSpecies {
			rewards = append(rewards, s.Name+shinyMark(s.ShinyAvailable))
		}
		for _, res := range task.RewardResources {
			rewards = append(rewards, fmt.Sprintf("%s %s x%d", res.Name, res.Kind, res.Count))
		}
		t.AppendRow(table.Row{task.Category, task.Description, strings.Join(rewards, ", ")})
	}
}

func eggRows(t table.Writer, eggs []models.EggEntry) {
	t.AppendHeader(table.Row{"Category", "No", "Name", "CP", "Shiny", "Regional"})
	for _, e := range eggs {
		regional := ""
		if e.Regional {
			regional = "yes"
		}
		t.AppendRow(table.Row{e.Category, e.Species.No, e.Species.Name, cp(e.CP), shiny(e.ShinyAvailable), regional})
	}
}

func cp(r *models.CPRange) string {
	if r == nil {
		return "-"
	}
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

func when(t *time.Time, local bool) string {
	if t == nil {
		return "-"
	}
	if local {
		return t.Format("2006-01-02 15:04") + " local"
	}
	return t.UTC().Format("2006-01-02 15:04Z")
}

func shiny(ok bool) string {
	if ok {
		return "yes"
	}
	return ""
}

func shinyMark(ok bool) string {
	if ok {
		return "*"
	}
	return ""
}
