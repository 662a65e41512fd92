// Package merge reconciles events listed in both the current and the
// upcoming sections of the events page.
//
// The site prints a running event's end in the current list and its start
// in the upcoming list, so neither entry alone carries both boundaries.
package merge

import "github.com/use-agent/leekduck/models"

type key struct {
	title string
	link  string
}

// Events groups entries by original title and link in first-appearance
// order. Within a group the i-th current entry and the i-th upcoming entry
// are paired: the current one takes the upcoming one's end time and the
// upcoming one takes the current one's start time, when the partner has
// one. Unpaired entries pass through unchanged and zero entries are
// dropped. The input slice is not modified.
func Events(events []models.Event) []models.Event {
	var order []key
	groups := make(map[key][]models.Event)
	for _, ev := range events {
		k := key{title: ev.OriginalTitle, link: ev.Link}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], ev)
	}

	out := make([]models.Event, 0, len(events))
	for _, k := range order {
		out = append(out, reconcile(groups[k])...)
	}

	kept := out[:0]
	for _, ev := range out {
		if !ev.IsZero() {
			kept = append(kept, ev)
		}
	}
	return kept
}

func reconcile(group []models.Event) []models.Event {
	var current, upcoming []models.Event
	var other []models.Event
	for _, ev := range group {
		switch ev.Label {
		case models.LabelCurrent:
			current = append(current, ev)
		case models.LabelUpcoming:
			upcoming = append(upcoming, ev)
		default:
			other = append(other, ev)
		}
	}
	if len(current) == 0 || len(upcoming) == 0 {
		return group
	}

	n := min(len(current), len(upcoming))
	for i := 0; i < n; i++ {
		c, u := &current[i], &upcoming[i]
		if u.EndTime != nil {
			c.EndTime = u.EndTime
		}
		if c.StartTime != nil {
			u.StartTime = c.StartTime
		}
	}

	out := make([]models.Event, 0, len(group))
	out = append(out, current...)
	out = append(out, upcoming...)
	return append(out, other...)
}
