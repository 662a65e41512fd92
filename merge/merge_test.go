package merge

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/use-agent/leekduck/models"
)

func ts(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestEventsCommunityDay(t *testing.T) {
	t1 := ts("2024-05-12T14:00:00Z")
	t2 := ts("2024-05-12T17:00:00Z")
	in := []models.Event{
		{OriginalTitle: "Community Day", Link: "/x", Label: models.LabelCurrent, StartTime: t1},
		{OriginalTitle: "Community Day", Link: "/x", Label: models.LabelUpcoming, EndTime: t2},
	}

	got := Events(in)
	want := []models.Event{
		{OriginalTitle: "Community Day", Link: "/x", Label: models.LabelCurrent, StartTime: t1, EndTime: t2},
		{OriginalTitle: "Community Day", Link: "/x", Label: models.LabelUpcoming, StartTime: t1, EndTime: t2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("merged events mismatch (-want +got):\n%s", diff)
	}
}

func TestEventsKeepsExistingWhenPartnerEmpty(t *testing.T) {
	end := ts("2024-05-12T17:00:00Z")
	in := []models.Event{
		{OriginalTitle: "Community Day", Link: "/x", Label: models.LabelCurrent, EndTime: end},
		{OriginalTitle: "Community Day", Link: "/x", Label: models.LabelUpcoming},
	}
	got := Events(in)
	require.Len(t, got, 2)
	assert.Equal(t, end, got[0].EndTime)
	assert.Nil(t, got[1].StartTime)
}

func TestEventsFillsBoundaries(t *testing.T) {
	start := ts("2024-05-01T10:00:00Z")
	end := ts("2024-05-20T10:00:00Z")
	in := []models.Event{
		{OriginalTitle: "Season", Link: "/s", Label: models.LabelCurrent, StartTime: start},
		{OriginalTitle: "Other", Link: "/o", Label: models.LabelCurrent, EndTime: end},
		{OriginalTitle: "Season", Link: "/s", Label: models.LabelUpcoming, EndTime: end},
	}

	got := Events(in)
	require.Len(t, got, 3)

	assert.Equal(t, "Season", got[0].OriginalTitle)
	assert.Equal(t, models.LabelCurrent, got[0].Label)
	assert.Equal(t, start, got[0].StartTime)
	assert.Equal(t, end, got[0].EndTime)

	assert.Equal(t, "Season", got[1].OriginalTitle)
	assert.Equal(t, models.LabelUpcoming, got[1].Label)
	assert.Equal(t, start, got[1].StartTime)
	assert.Equal(t, end, got[1].EndTime)

	assert.Equal(t, "Other", got[2].OriginalTitle, "groups keep first-appearance order")

	assert.Nil(t, in[0].EndTime, "input is not modified")
}

func TestEventsSameTitleDifferentLink(t *testing.T) {
	in := []models.Event{
		{OriginalTitle: "Raid Hour", Link: "/a", Label: models.LabelCurrent, StartTime: ts("2024-05-01T10:00:00Z")},
		{OriginalTitle: "Raid Hour", Link: "/b", Label: models.LabelUpcoming},
	}
	got := Events(in)
	require.Len(t, got, 2)
	assert.Nil(t, got[1].StartTime)
}

func TestEventsUnevenPairs(t *testing.T) {
	end := ts("2024-06-01T00:00:00Z")
	in := []models.Event{
		{OriginalTitle: "Hour", Link: "/h", Label: models.LabelCurrent},
		{OriginalTitle: "Hour", Link: "/h", Label: models.LabelCurrent},
		{OriginalTitle: "Hour", Link: "/h", Label: models.LabelUpcoming, EndTime: end},
	}
	got := Events(in)
	require.Len(t, got, 3)
	assert.Equal(t, end, got[0].EndTime)
	assert.Nil(t, got[1].EndTime)
}

func TestEventsDropsZero(t *testing.T) {
	got := Events([]models.Event{{}, {OriginalTitle: "A", Label: models.LabelCurrent}})
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].OriginalTitle)
	assert.Empty(t, Events(nil))
}
