// Package tables holds the static lookup tables the translators run on:
// research categories, pattern-rule dictionaries, event types, egg
// categories, form prefixes and type names.
//
// Defaults are embedded. A data directory may override any table with
// <name>.json and then <name>.local.json, merged in that order.
package tables

import (
	"embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

//go:embed data/*.json
var embedded embed.FS

// Table file names.
const (
	FileResearchCategories = "research-category-tags.json"
	FileResearchRules      = "research-description-dictionary.json"
	FileEventRules         = "event-title-dictionary.json"
	FileEventTypes         = "event-types.json"
	FileEggCategories      = "egg-categories.json"
	FileForms              = "forms.json"
	FileTypes              = "types.json"
)

// Named fallback entries returned when no category entry matches.
const (
	FallbackResearchCategory = "Miscellaneous Tasks"
	FallbackOthers           = "Others"
)

// Tag maps a site label (exact text or regular expression) to display text.
type Tag struct {
	Text        string `json:"text"`
	DisplayText string `json:"displayText"`
	Priority    int    `json:"priority,omitempty"`
}

// Rule is a pattern-rule record. Priority is optional; when present it
// orders output, never matching.
type Rule struct {
	Pattern     string `json:"pattern"`
	DisplayText string `json:"displayText"`
	Priority    *int   `json:"priority,omitempty"`
}

// Tables is the full set of read-only lookup tables. Load once at startup
// and share by pointer.
type Tables struct {
	ResearchCategories []Tag
	ResearchRules      []Rule
	EventRules         []Rule
	EventTypes         []Tag
	EggCategories      []Tag
	Forms              []Tag

	// Types maps a lowercase type key ("fire") to per-locale names.
	Types map[string]map[string]string
}

// Default returns the embedded tables. It panics only if the embedded data
// is malformed, which the package tests guard against.
func Default() *Tables {
	t, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("tables: embedded data: %v", err))
	}
	return t
}

// Load reads every table, applying overrides from dir when dir is non-empty.
func Load(dir string) (*Tables, error) {
	t := &Tables{}
	if err := readTable(dir, FileResearchCategories, &t.ResearchCategories); err != nil {
		return nil, loadErr(FileResearchCategories, err)
	}
	if err := readTable(dir, FileResearchRules, &t.ResearchRules); err != nil {
		return nil, loadErr(FileResearchRules, err)
	}
	if err := readTable(dir, FileEventRules, &t.EventRules); err != nil {
		return nil, loadErr(FileEventRules, err)
	}
	if err := readTable(dir, FileEventTypes, &t.EventTypes); err != nil {
		return nil, loadErr(FileEventTypes, err)
	}
	if err := readTable(dir, FileEggCategories, &t.EggCategories); err != nil {
		return nil, loadErr(FileEggCategories, err)
	}
	if err := readTable(dir, FileForms, &t.Forms); err != nil {
		return nil, loadErr(FileForms, err)
	}
	if err := readTable(dir, FileTypes, &t.Types); err != nil {
		return nil, loadErr(FileTypes, err)
	}
	return t, nil
}

func loadErr(name string, err error) error {
	return fmt.Errorf("tables: %s: %w", name, err)
}

// TypeName returns the localized name for a type key, falling back to
// en-US and then to the key itself.
func (t *Tables) TypeName(key, locale string) string {
	names, ok := t.Types[strings.ToLower(key)]
	if !ok {
		return key
	}
	if n := names[locale]; n != "" {
		return n
	}
	if n := names["en-US"]; n != "" {
		return n
	}
	return key
}

type overlay[T any] struct {
	Value T
}

// readTable decodes the embedded default, then merges <dir>/<name> and
// <dir>/<name-without-ext>.local.<ext> over it.
func readTable[T any](dir, name string, out *T) error {
	raw, err := embedded.ReadFile("data/" + name)
	if err != nil {
		return err
	}
	if err := json5.Unmarshal(raw, out); err != nil {
		return err
	}
	if dir == "" {
		return nil
	}

	ext := filepath.Ext(name)
	prefix := strings.TrimSuffix(name, ext)
	for _, path := range []string{
		filepath.Join(dir, name),
		filepath.Join(dir, prefix+".local"+ext),
	} {
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return err
		}
		var override T
		if err := json5.Unmarshal(data, &override); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		// mergo only merges structs and maps, so slices ride in a wrapper
		// and are replaced wholesale while maps merge key by key.
		dst := overlay[T]{Value: *out}
		if err := mergo.Merge(&dst, overlay[T]{Value: override}, mergo.WithOverride); err != nil {
			return err
		}
		*out = dst.Value
		slog.Info("merged table override", "table", name, "path", path)
	}
	return nil
}
