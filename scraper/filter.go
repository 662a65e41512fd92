package scraper

import (
	"strings"

	"github.com/use-agent/leekduck/models"
)

// filter keeps the records matching keep and never returns nil, so empty
// listings encode as [].
func filter[T any](records []T, keep func(T) bool) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// FilterRaids applies the tier filter.
func FilterRaids(bosses []models.RaidBoss, q models.ListQuery) []models.RaidBoss {
	return filter(bosses, func(b models.RaidBoss) bool {
		return q.Tier == "" || strings.EqualFold(b.Tier, q.Tier)
	})
}

// FilterEvents applies the label filter.
func FilterEvents(events []models.Event, q models.ListQuery) []models.Event {
	return filter(events, func(e models.Event) bool {
		return q.Label == "" || e.Label == q.Label
	})
}

// FilterResearch applies the category filter.
func FilterResearch(tasks []models.ResearchTask, q models.ListQuery) []models.ResearchTask {
	return filter(tasks, func(t models.ResearchTask) bool {
		return q.Category == "" || t.Category == q.Category
	})
}

// FilterEggs applies the category filter.
func FilterEggs(eggs []models.EggEntry, q models.ListQuery) []models.EggEntry {
	return filter(eggs, func(e models.EggEntry) bool {
		return q.Category == "" || e.Category == q.Category
	})
}
