package group

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelAtDuplicateStartIndex(t *testing.T) {
	ix := NewIndex([]Marker{{"A", 0}, {"B", 0}, {"C", 4}})

	var got []string
	for i := 0; i < 6; i++ {
		got = append(got, ix.LabelAt(i))
	}
	want := []string{"B", "B", "B", "B", "C", "C"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestNewIndexSorts(t *testing.T) {
	ix := NewIndex([]Marker{{"late", 3}, {"early", 0}})
	assert.Equal(t, []Marker{{"early", 0}, {"late", 3}}, ix.Markers())
	assert.Equal(t, "early", ix.LabelAt(2))
	assert.Equal(t, "late", ix.LabelAt(3))
}

func TestLabelAtBeforeFirstMarker(t *testing.T) {
	ix := NewIndex([]Marker{{"A", 2}})
	assert.Empty(t, ix.LabelAt(0))
	assert.Empty(t, NewIndex(nil).LabelAt(0))
}

func TestFlat(t *testing.T) {
	nodes := []string{"#A", "a1", "a2", "#B", "#C", "c1"}
	items, markers := Flat(nodes, func(s string) (string, bool) {
		if strings.HasPrefix(s, "#") {
			return s[1:], true
		}
		return "", false
	})

	assert.Equal(t, []string{"a1", "a2", "c1"}, items)
	assert.Equal(t, []Marker{{"A", 0}, {"B", 2}, {"C", 2}}, markers)

	members := Assign(items, markers)
	require.Len(t, members, 3)
	assert.Equal(t, "A", members[1].Label)
	assert.Equal(t, "C", members[2].Label, "empty group B is superseded")
}

func TestBlocks(t *testing.T) {
	items, markers := Blocks([]Block[int]{
		{Label: "Tier 1", Items: []int{1, 2}},
		{Label: "Tier 3"},
		{Label: "Tier 5", Items: []int{5}},
	})
	assert.Equal(t, []int{1, 2, 5}, items)
	assert.Equal(t, []Marker{{"Tier 1", 0}, {"Tier 3", 2}, {"Tier 5", 2}}, markers)

	members := Assign(items, markers)
	assert.Equal(t, "Tier 5", members[2].Label)
}

func TestDisambiguate(t *testing.T) {
	got := Disambiguate([]string{"2 km", "5 km", "2 km", "10 km", "2 km"})
	assert.Equal(t, []string{"2 km", "5 km", "*2 km", "10 km", "**2 km"}, got)
}

func TestDisambiguateMarkers(t *testing.T) {
	got := DisambiguateMarkers([]Marker{{"5 km", 0}, {"5 km", 3}})
	assert.Equal(t, []Marker{{"5 km", 0}, {RepeatPrefix + "5 km", 3}}, got)
}

func TestPrecedingHeader(t *testing.T) {
	const page = `<div>
		<h2 class="header" data-tier="1">Tier 1</h2>
		<div class="grid" id="g1"></div>
		<p>note</p>
		<h2 class="header" data-tier="5">Tier 5</h2>
		<div class="grid" id="g2"></div>
	</div>`
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)

	h := PrecedingHeader(doc.Find("#g2"), "h2.header")
	assert.Equal(t, "Tier 5", h.Text())
	h = PrecedingHeader(doc.Find("#g1"), "h2.header")
	assert.Equal(t, "Tier 1", h.Text())
	assert.Zero(t, PrecedingHeader(doc.Find("h2").First(), "h2.header").Length())
}
