package tables

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_AllTablesPopulated(t *testing.T) {
	tb := Default()

	assert.NotEmpty(t, tb.ResearchCategories)
	assert.NotEmpty(t, tb.ResearchRules)
	assert.NotEmpty(t, tb.EventRules)
	assert.NotEmpty(t, tb.EventTypes)
	assert.NotEmpty(t, tb.EggCategories)
	assert.NotEmpty(t, tb.Forms)
	assert.Len(t, tb.Types, 18)
}

func TestDefault_PatternsCompile(t *testing.T) {
	tb := Default()
	for _, r := range append(tb.ResearchRules, tb.EventRules...) {
		_, err := regexp.Compile("(?i)" + r.Pattern)
		assert.NoError(t, err, r.Pattern)
	}
}

func TestDefault_FallbackEntriesPresent(t *testing.T) {
	tb := Default()

	has := func(tags []Tag, text string) bool {
		for _, tag := range tags {
			if tag.Text == text {
				return true
			}
		}
		return false
	}
	assert.True(t, has(tb.ResearchCategories, FallbackResearchCategory))
	assert.True(t, has(tb.EventTypes, FallbackOthers))
	assert.True(t, has(tb.EggCategories, FallbackOthers))
}

func TestTypeName(t *testing.T) {
	tb := Default()

	assert.Equal(t, "火", tb.TypeName("Fire", "zh-TW"))
	assert.Equal(t, "Fire", tb.TypeName("fire", "ja-JP"))
	assert.Equal(t, "shadow", tb.TypeName("shadow", "zh-TW"))
}

func TestLoad_LocalOverrideWins(t *testing.T) {
	dir := t.TempDir()
	base := `[{ text: "Event Tasks", displayText: "Base", priority: 1 }]`
	local := `[{ text: "Event Tasks", displayText: "Local", priority: 1 }]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileResearchCategories), []byte(base), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "research-category-tags.local.json"), []byte(local), 0o644))

	tb, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, tb.ResearchCategories, 1)
	assert.Equal(t, "Local", tb.ResearchCategories[0].DisplayText)

	// Untouched tables keep their embedded defaults.
	assert.Equal(t, Default().EventRules, tb.EventRules)
}

func TestLoad_TypesMergeByKey(t *testing.T) {
	dir := t.TempDir()
	override := `{ fire: { "ja-JP": "ほのお" } }`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileTypes), []byte(override), 0o644))

	tb, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "ほのお", tb.TypeName("fire", "ja-JP"))
	assert.Equal(t, "水", tb.TypeName("water", "zh-TW"))
}

func TestLoad_MalformedOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileForms), []byte("{not json"), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), FileForms)
}

func TestLoad_EveryTableTakesOverride(t *testing.T) {
	dir := t.TempDir()
	tag := `[{ text: "x", displayText: "X" }]`
	rule := `[{ pattern: "^x$", displayText: "X" }]`
	files := map[string]string{
		FileResearchCategories: tag,
		FileResearchRules:      rule,
		FileEventRules:         rule,
		FileEventTypes:         tag,
		FileEggCategories:      tag,
		FileForms:              tag,
		FileTypes:              `{ x: { "en-US": "X" } }`,
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}

	tb, err := Load(dir)
	require.NoError(t, err)
	for name, tags := range map[string][]Tag{
		FileResearchCategories: tb.ResearchCategories,
		FileEventTypes:         tb.EventTypes,
		FileEggCategories:      tb.EggCategories,
		FileForms:              tb.Forms,
	} {
		require.Len(t, tags, 1, name)
		assert.Equal(t, "X", tags[0].DisplayText, name)
	}
	require.Len(t, tb.ResearchRules, 1)
	require.Len(t, tb.EventRules, 1)
	assert.Equal(t, "X", tb.TypeName("x", "zh-TW"))
}
