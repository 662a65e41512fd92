package extract

import (
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"github.com/use-agent/leekduck/models"
	"github.com/use-agent/leekduck/species"
)

const eventWrapperClass = "event-item-wrapper"

// Events builds events from the events page: current entries first, then
// upcoming ones, each in page order. Cross-listed entries are left for
// merge.Events to reconcile.
func (x *Extractor) Events(doc *goquery.Document, base *url.URL) Result[models.Event] {
	r := species.NewResolver(base)
	var out Result[models.Event]
	i := 0
	for _, section := range []struct {
		label string
		items *goquery.Selection
	}{
		{models.LabelCurrent, doc.FindMatcher(selCurrentEvents)},
		{models.LabelUpcoming, doc.FindMatcher(selUpcomingEvents)},
	} {
		section.items.Each(func(_ int, item *goquery.Selection) {
			ev, err := x.event(r, item, section.label, i)
			i++
			if err != nil {
				out.fail(err)
				return
			}
			out.Records = append(out.Records, ev)
		})
	}
	return out
}

func (x *Extractor) event(r *species.Resolver, item *goquery.Selection, label string, i int) (models.Event, *models.ItemError) {
	title := text(item.FindMatcher(selEventTitle))
	if title == "" {
		return models.Event{}, models.MissingNode(models.KindEvents, i, "h2")
	}

	ev := models.Event{
		Title:         x.eventTitles.Translate(title),
		OriginalTitle: title,
		Link:          r.Absolute(attr(item, "href")),
		Type:          x.eventTypes.Translate(eventTypeToken(item)),
		Label:         label,
	}
	if src := attr(item.FindMatcher(selEventImg), "src"); src != "" {
		ev.ImageURL = r.Absolute(src)
	}

	cd := item.FindMatcher(selEventCountdown)
	ev.StartTime, ev.EndTime, ev.IsLocalTime = ParseCountdown(
		attr(cd, "data-countdown-to"),
		attr(cd, "data-countdown"),
		x.loc,
	)
	return ev, nil
}

// eventTypeToken returns the class token naming the event type, e.g.
// "community-day" from class="event-item-wrapper community-day".
func eventTypeToken(item *goquery.Selection) string {
	for _, tok := range classTokens(item.FindMatcher(selEventWrapper)) {
		if tok != eventWrapperClass {
			return tok
		}
	}
	return ""
}
