// Package extract builds normalized records from listing pages.
//
// Each builder walks one page, resolves species from icon URLs, translates
// text through the static tables and assigns items to their groups. A
// malformed item is reported in Result.Failures and never stops the rest
// of the listing.
package extract

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/use-agent/leekduck/models"
	"github.com/use-agent/leekduck/pokedex"
	"github.com/use-agent/leekduck/species"
	"github.com/use-agent/leekduck/tables"
	"github.com/use-agent/leekduck/translate"
)

// Result is the outcome of one builder pass.
type Result[T any] struct {
	Records  []T
	Failures []*models.ItemError
}

func (r *Result[T]) fail(err *models.ItemError) {
	r.Failures = append(r.Failures, err)
}

// Options tune an Extractor.
type Options struct {
	// Locale is the display locale, e.g. "zh-TW".
	Locale string

	// Location is the timezone the site prints local event times in.
	Location *time.Location
}

// Extractor holds the compiled tables shared by every builder. It is
// read-only after New and safe for concurrent use.
type Extractor struct {
	tables *tables.Tables
	dex    *pokedex.Pokedex

	research      *translate.Translator
	eventTitles   *translate.Translator
	researchCats  *translate.CategoryTranslator
	eventTypes    *translate.CategoryTranslator
	eggCategories *translate.CategoryTranslator

	locale string
	loc    *time.Location
}

// New compiles every translator the builders need.
func New(tb *tables.Tables, dex *pokedex.Pokedex, opts Options) (*Extractor, error) {
	if opts.Locale == "" {
		opts.Locale = pokedex.BaseLocale
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	x := &Extractor{tables: tb, dex: dex, locale: opts.Locale, loc: opts.Location}

	var err error
	tOpts := translate.Options{Tables: tb, Species: dex, Locale: opts.Locale}
	if x.research, err = translate.New(tb.ResearchRules, tOpts); err != nil {
		return nil, fmt.Errorf("extract: research rules: %w", err)
	}
	if x.eventTitles, err = translate.New(tb.EventRules, translate.Options{Species: dex, Locale: opts.Locale}); err != nil {
		return nil, fmt.Errorf("extract: event rules: %w", err)
	}
	if x.researchCats, err = translate.NewCategory(tb.ResearchCategories, tables.FallbackResearchCategory); err != nil {
		return nil, fmt.Errorf("extract: research categories: %w", err)
	}
	if x.eventTypes, err = translate.NewCategory(tb.EventTypes, tables.FallbackOthers); err != nil {
		return nil, fmt.Errorf("extract: event types: %w", err)
	}
	if x.eggCategories, err = translate.NewCategory(tb.EggCategories, tables.FallbackOthers); err != nil {
		return nil, fmt.Errorf("extract: egg categories: %w", err)
	}
	return x, nil
}

// Stats reports the size of the loaded tables.
func (x *Extractor) Stats() models.TablesStats {
	return models.TablesStats{
		Species:       x.dex.Len(),
		ResearchRules: x.research.Len(),
		EventRules:    x.eventTitles.Len(),
		Categories:    len(x.tables.ResearchCategories) + len(x.tables.EventTypes) + len(x.tables.EggCategories),
	}
}

// speciesRef builds a species reference from an icon URL and the name the
// page prints. When the page prints no name, names come from the species
// table by number.
func (x *Extractor) speciesRef(res species.Resolution, original string) models.SpeciesRef {
	original = strings.TrimSpace(original)
	if original == "" && res.Known() {
		original = x.dex.NameByNo(res.No, pokedex.BaseLocale)
	}
	name := x.dex.TranslateName(original, res.No)
	return models.SpeciesRef{
		No:           res.No,
		Name:         name,
		OriginalName: original,
		ImageURL:     res.ImageURL,
	}
}

// attr returns a trimmed attribute of the first matched node.
func attr(sel *goquery.Selection, name string) string {
	v, _ := sel.First().Attr(name)
	return strings.TrimSpace(v)
}

func text(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.First().Text())
}

// leadingText returns the first child's text, which holds the bare name
// when the element also wraps badges or form labels.
func leadingText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	if n := sel.Get(0).FirstChild; n != nil {
		var s string
		switch n.Type {
		case html.TextNode:
			s = n.Data
		case html.ElementNode:
			s = goquery.NewDocumentFromNode(n).Text()
		}
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return text(sel)
}

func classTokens(sel *goquery.Selection) []string {
	return strings.Fields(attr(sel, "class"))
}

var pngStemRe = regexp.MustCompile(`(\w+)\.png$`)

// iconStem returns the file name of an icon without extension, e.g.
// "partly_cloudy" for ".../partly_cloudy.png".
func iconStem(src string) (string, bool) {
	if u, err := url.Parse(src); err == nil {
		src = u.Path
	}
	m := pngStemRe.FindStringSubmatch(path.Base(src))
	if m == nil {
		return "", false
	}
	return m[1], true
}
