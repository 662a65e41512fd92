package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/use-agent/leekduck/models"
)

func sampleResponses() []*models.ListResponse {
	start := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)
	return []*models.ListResponse{
		{
			Success: true,
			Kind:    models.KindRaids,
			Count:   1,
			Records: []models.RaidBoss{{
				Tier:           "5",
				Species:        models.SpeciesRef{No: 150, Name: "超夢"},
				Types:          []string{"超能力"},
				CP:             &models.CPRange{Min: 2203, Max: 2294},
				ShinyAvailable: true,
			}},
		},
		{
			Success: true,
			Kind:    models.KindEvents,
			Count:   1,
			Records: []models.Event{{Title: "小火龍 社群日", Label: models.LabelCurrent, StartTime: &start}},
		},
		{
			Success: false,
			Kind:    models.KindEggs,
			Error:   &models.ErrorDetail{Code: models.ErrCodeFetch, Message: "upstream returned 503"},
		},
	}
}

func TestWriteDirSkipsFailedListings(t *testing.T) {
	dir := t.TempDir()
	paths, err := WriteDir(dir, sampleResponses())
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "raids.json"),
		filepath.Join(dir, "events.json"),
	}, paths)

	_, err = os.Stat(filepath.Join(dir, "eggs.json"))
	assert.True(t, os.IsNotExist(err))

	data, err := os.ReadFile(filepath.Join(dir, "raids.json"))
	require.NoError(t, err)
	var bosses []models.RaidBoss
	require.NoError(t, json.Unmarshal(data, &bosses))
	require.Len(t, bosses, 1)
	assert.Equal(t, 150, bosses[0].Species.No)
	assert.Equal(t, &models.CPRange{Min: 2203, Max: 2294}, bosses[0].CP)
}

func TestWriteJSONKeepsUnescapedText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleResponses()))
	assert.Contains(t, buf.String(), "超夢")
	assert.Contains(t, buf.String(), `"code": "FETCH_FAILED"`)
}

func TestWriteTables(t *testing.T) {
	var buf bytes.Buffer
	WriteTables(&buf, sampleResponses())
	out := buf.String()
	assert.Contains(t, out, "raids (1)")
	assert.Contains(t, out, "2203-2294")
	assert.Contains(t, out, "小火龍 社群日")
	assert.Contains(t, out, "eggs (failed)")
	assert.Contains(t, out, "upstream returned 503")
}
