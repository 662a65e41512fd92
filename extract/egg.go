package extract

import (
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"github.com/use-agent/leekduck/group"
	"github.com/use-agent/leekduck/models"
	"github.com/use-agent/leekduck/species"
)

// Eggs builds hatch-pool entries. Headers and cards are siblings in
// document order; a category printed twice keeps both groups apart by
// prefixing the later label.
func (x *Extractor) Eggs(doc *goquery.Document, base *url.URL) Result[models.EggEntry] {
	cards, markers := group.Flat(selections(doc.FindMatcher(selEggFlat)), func(s *goquery.Selection) (string, bool) {
		if goquery.NodeName(s) != "h2" {
			return "", false
		}
		return x.eggCategories.Translate(text(s)), true
	})
	markers = group.DisambiguateMarkers(group.NewIndex(markers).Markers())

	r := species.NewResolver(base)
	var out Result[models.EggEntry]
	for _, m := range group.Assign(cards, markers) {
		src := attr(m.Item.FindMatcher(selEggIcon), "src")
		if src == "" {
			out.fail(models.MissingNode(models.KindEggs, m.Index, ".icon img"))
			continue
		}
		out.Records = append(out.Records, models.EggEntry{
			Species:        x.speciesRef(r.Resolve(src), leadingText(m.Item.FindMatcher(selEggName))),
			Category:       m.Label,
			CP:             ParseCP(text(m.Item.FindMatcher(selEggCP))),
			ShinyAvailable: m.Item.FindMatcher(selShiny).Length() > 0,
			Regional:       m.Item.FindMatcher(selEggRegional).Length() > 0,
		})
	}
	return out
}
