package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/use-agent/leekduck/group"
	"github.com/use-agent/leekduck/models"
	"github.com/use-agent/leekduck/species"
)

// Raids builds raid bosses from the raid-bosses page. Cards are grouped
// under their tier header; pages without tier grids fall back to the flat
// header/card sequence.
func (x *Extractor) Raids(doc *goquery.Document, base *url.URL) Result[models.RaidBoss] {
	var (
		cards   []*goquery.Selection
		markers []group.Marker
	)
	if grids := doc.FindMatcher(selRaidGrid); grids.Length() > 0 {
		var blocks []group.Block[*goquery.Selection]
		grids.Each(func(_ int, grid *goquery.Selection) {
			blocks = append(blocks, group.Block[*goquery.Selection]{
				Label: tierLabel(group.PrecedingHeader(grid, tierHeader)),
				Items: selections(grid.FindMatcher(selRaidCard)),
			})
		})
		cards, markers = group.Blocks(blocks)
	} else {
		cards, markers = group.Flat(selections(doc.FindMatcher(selRaidFlat)), func(s *goquery.Selection) (string, bool) {
			if goquery.NodeName(s) != "h2" {
				return "", false
			}
			return tierLabel(s), true
		})
	}

	r := species.NewResolver(base)
	var out Result[models.RaidBoss]
	for _, m := range group.Assign(cards, markers) {
		boss, err := x.raidBoss(r, m.Item, m.Index)
		if err != nil {
			out.fail(err)
			continue
		}
		boss.Tier = m.Label
		out.Records = append(out.Records, boss)
	}
	return out
}

func (x *Extractor) raidBoss(r *species.Resolver, card *goquery.Selection, i int) (models.RaidBoss, *models.ItemError) {
	src := attr(card.FindMatcher(selBossImg), "src")
	if src == "" {
		return models.RaidBoss{}, models.MissingNode(models.KindRaids, i, "div.boss-img img")
	}

	boss := models.RaidBoss{
		Species:        x.speciesRef(r.Resolve(src), leadingText(card.FindMatcher(selBossName))),
		ShinyAvailable: card.FindMatcher(selBossShiny).Length() > 0,
		CP:             ParseCP(text(card.FindMatcher(selCPRange))),
		BoostedCP:      ParseCP(text(card.FindMatcher(selBoostedCP))),
	}

	card.FindMatcher(selBossType).Each(func(_ int, img *goquery.Selection) {
		title := strings.ToLower(attr(img, "title"))
		if title == "" {
			return
		}
		boss.Types = append(boss.Types, title)
		if s := attr(img, "src"); s != "" {
			boss.TypeURLs = append(boss.TypeURLs, r.Absolute(s))
		}
	})

	box := card.FindMatcher(selWeatherBox)
	if box.Length() == 0 {
		box = card.FindMatcher(selWeatherBox3)
	}
	box.FindMatcher(selWeatherImg).Each(func(_ int, img *goquery.Selection) {
		s := attr(img, "src")
		stem, ok := iconStem(s)
		if !ok {
			return
		}
		boss.BoostedWeathers = append(boss.BoostedWeathers, stem)
		boss.BoostedWeatherURLs = append(boss.BoostedWeatherURLs, r.Absolute(s))
	})
	return boss, nil
}

// tierLabel prefers the data-tier attribute and falls back to the header
// text.
func tierLabel(h *goquery.Selection) string {
	if t := attr(h, "data-tier"); t != "" {
		return strings.ToLower(t)
	}
	return text(h)
}

func selections(sel *goquery.Selection) []*goquery.Selection {
	out := make([]*goquery.Selection, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, s)
	})
	return out
}
