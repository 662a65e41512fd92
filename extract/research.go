package extract

import (
	"net/url"
	"sort"

	"github.com/PuerkitoBio/goquery"

	"github.com/use-agent/leekduck/group"
	"github.com/use-agent/leekduck/models"
	"github.com/use-agent/leekduck/species"
)

// Research builds field-research tasks. Tasks carry their category's
// display text and are stably ordered by category priority.
func (x *Extractor) Research(doc *goquery.Document, base *url.URL) Result[models.ResearchTask] {
	var blocks []group.Block[*goquery.Selection]
	doc.FindMatcher(selTaskCategory).Each(func(_ int, cat *goquery.Selection) {
		blocks = append(blocks, group.Block[*goquery.Selection]{
			Label: x.researchCats.Translate(text(cat.FindMatcher(selTaskHeader))),
			Items: selections(cat.FindMatcher(selTaskItem)),
		})
	})
	items, markers := group.Blocks(blocks)

	r := species.NewResolver(base)
	var out Result[models.ResearchTask]
	for _, m := range group.Assign(items, markers) {
		task, err := x.researchTask(r, m.Item, m.Index)
		if err != nil {
			out.fail(err)
			continue
		}
		task.Category = m.Label
		out.Records = append(out.Records, task)
	}

	sort.SliceStable(out.Records, func(a, b int) bool {
		return x.researchCats.Priority(out.Records[a].Category) < x.researchCats.Priority(out.Records[b].Category)
	})
	return out
}

func (x *Extractor) researchTask(r *species.Resolver, item *goquery.Selection, i int) (models.ResearchTask, *models.ItemError) {
	desc := text(item.FindMatcher(selTaskText))
	if desc == "" {
		return models.ResearchTask{}, models.MissingNode(models.KindResearch, i, ".task-text")
	}

	task := models.ResearchTask{
		Description:         x.research.Translate(desc),
		OriginalDescription: desc,
		RewardSpecies:       []models.RewardSpecies{},
		RewardResources:     []models.RewardResource{},
	}

	item.FindMatcher(selRewardEncount).Each(func(_ int, rw *goquery.Selection) {
		src := attr(rw.FindMatcher(selRewardImg), "src")
		if src == "" {
			return
		}
		task.RewardSpecies = append(task.RewardSpecies, models.RewardSpecies{
			SpeciesRef:     x.speciesRef(r.Resolve(src), ""),
			CP:             parseCPPair(text(rw.FindMatcher(selMinCP)), text(rw.FindMatcher(selMaxCP))),
			ShinyAvailable: rw.FindMatcher(selShiny).Length() > 0,
		})
	})

	item.FindMatcher(selRewardResource).Each(func(_ int, rw *goquery.Selection) {
		src := attr(rw.FindMatcher(selResourceIcon), "src")
		if src == "" {
			return
		}
		res := models.RewardResource{
			SpeciesRef: x.speciesRef(r.Resolve(src), ""),
			Kind:       "resource",
		}
		if img := attr(rw.FindMatcher(selResourceImg), "src"); img != "" {
			res.ResourceImageURL = r.Absolute(img)
			if stem, ok := iconStem(img); ok {
				res.Kind = stem
			}
		}
		if n, ok := firstInt(text(rw.FindMatcher(selQuantity))); ok {
			res.Count = n
		}
		task.RewardResources = append(task.RewardResources, res)
	})
	return task, nil
}
