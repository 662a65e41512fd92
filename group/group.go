// Package group assigns list items to the header that introduces them.
//
// Listing pages come in two layouts. Flat pages interleave headers and
// items as siblings; block pages wrap each group's items in a container
// preceded by its header. Both reduce to a list of items plus markers
// holding the item index at which each group starts.
package group

import (
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// RepeatPrefix is prepended to a group label that was already used by an
// earlier group on the same page.
const RepeatPrefix = "*"

// Marker opens a group at StartIndex in item index space.
type Marker struct {
	Label      string
	StartIndex int
}

// Block is one container of items under a single header.
type Block[T any] struct {
	Label string
	Items []T
}

// Member is an item together with its group label.
type Member[T any] struct {
	Item  T
	Index int
	Label string
}

// Flat splits an interleaved sequence into items and markers. markerLabel
// reports whether a node is a header and, if so, its label. A marker's
// StartIndex is the number of items seen before it.
func Flat[T any](nodes []T, markerLabel func(T) (string, bool)) ([]T, []Marker) {
	var (
		items   []T
		markers []Marker
	)
	for _, n := range nodes {
		if label, ok := markerLabel(n); ok {
			markers = append(markers, Marker{Label: label, StartIndex: len(items)})
			continue
		}
		items = append(items, n)
	}
	return items, markers
}

// Blocks flattens block-grouped items, emitting one marker per block at
// the index of its first item.
func Blocks[T any](blocks []Block[T]) ([]T, []Marker) {
	var (
		items   []T
		markers []Marker
	)
	for _, b := range blocks {
		markers = append(markers, Marker{Label: b.Label, StartIndex: len(items)})
		items = append(items, b.Items...)
	}
	return items, markers
}

// PrecedingHeader returns the closest previous sibling of sel matching
// selector, or an empty selection.
func PrecedingHeader(sel *goquery.Selection, selector string) *goquery.Selection {
	return sel.PrevAllFiltered(selector).First()
}

// Index answers "which group does item i belong to".
type Index struct {
	markers []Marker
}

// NewIndex keeps the last marker declared for each StartIndex and sorts
// the survivors by StartIndex.
func NewIndex(markers []Marker) Index {
	last := make(map[int]int, len(markers))
	for i, m := range markers {
		last[m.StartIndex] = i
	}
	kept := make([]Marker, 0, len(last))
	for i, m := range markers {
		if last[m.StartIndex] == i {
			kept = append(kept, m)
		}
	}
	sort.SliceStable(kept, func(a, b int) bool {
		return kept[a].StartIndex < kept[b].StartIndex
	})
	return Index{markers: kept}
}

// Markers returns the effective markers in StartIndex order.
func (ix Index) Markers() []Marker {
	out := make([]Marker, len(ix.markers))
	copy(out, ix.markers)
	return out
}

// LabelAt returns the label of the marker with the largest StartIndex not
// greater than i, or "" when no marker precedes i.
func (ix Index) LabelAt(i int) string {
	n := sort.Search(len(ix.markers), func(k int) bool {
		return ix.markers[k].StartIndex > i
	})
	if n == 0 {
		return ""
	}
	return ix.markers[n-1].Label
}

// Assign labels every item with its group.
func Assign[T any](items []T, markers []Marker) []Member[T] {
	ix := NewIndex(markers)
	out := make([]Member[T], len(items))
	for i, it := range items {
		out[i] = Member[T]{Item: it, Index: i, Label: ix.LabelAt(i)}
	}
	return out
}

// Disambiguate prefixes labels already used by an earlier group with
// RepeatPrefix, once per earlier use, so every group label is unique. The
// first occurrence is left untouched.
func Disambiguate(labels []string) []string {
	seen := make(map[string]int, len(labels))
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = strings.Repeat(RepeatPrefix, seen[l]) + l
		seen[l]++
	}
	return out
}

// DisambiguateMarkers applies Disambiguate to marker labels in
// declaration order.
func DisambiguateMarkers(markers []Marker) []Marker {
	labels := make([]string, len(markers))
	for i, m := range markers {
		labels[i] = m.Label
	}
	labels = Disambiguate(labels)
	out := make([]Marker, len(markers))
	for i, m := range markers {
		out[i] = Marker{Label: labels[i], StartIndex: m.StartIndex}
	}
	return out
}
