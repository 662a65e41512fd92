// Package species maps species icon URLs to species numbers.
//
// The site has renamed its icon assets several times; every naming
// convention seen so far is kept in the pattern list so older pages and
// mirrors still resolve.
package species

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/use-agent/leekduck/models"
)

// Convention identifies which icon naming scheme matched.
type Convention int

const (
	ConventionNone Convention = iota
	ConventionIcon            // pokemon_icon_025_00.png
	ConventionIconPM          // pokemon_icon_pm0025_00_pgo_copy.png
	ConventionPM              // pm25.icon.png
	ConventionPMForm          // pm26.fALOLA.icon.png
)

func (c Convention) String() string {
	switch c {
	case ConventionIcon:
		return "pokemon_icon"
	case ConventionIconPM:
		return "pokemon_icon_pm"
	case ConventionPM:
		return "pm"
	case ConventionPMForm:
		return "pm_form"
	default:
		return "none"
	}
}

type pattern struct {
	convention Convention
	re         *regexp.Regexp
}

// Tried in order; the first match wins.
var patterns = []pattern{
	{ConventionIcon, regexp.MustCompile(`pokemon_icon_(\d+)_`)},
	{ConventionIconPM, regexp.MustCompile(`pokemon_icon_pm(\d+)_`)},
	// Convention 3 tolerates a non-form suffix such as a costume or shiny tag.
	{ConventionPM, regexp.MustCompile(`(?:^|/)pm(\d+)(?:\.[^f/.][^/]*?)?\.icon\.\w+(?:$|[?#])`)},
	{ConventionPMForm, regexp.MustCompile(`(?:^|/)pm(\d+)\.f([^/]+?)\.icon\.\w+`)},
}

// Resolution is the outcome of resolving one icon URL.
type Resolution struct {
	No         int
	Form       string
	Convention Convention
	ImageURL   string
}

// Known reports whether a naming convention matched.
func (r Resolution) Known() bool { return r.No != models.UnknownSpecies }

// Resolver resolves icon URLs relative to one page.
type Resolver struct {
	base *url.URL
}

// NewResolver returns a resolver for a page at base. A nil base leaves
// relative URLs as they are.
func NewResolver(base *url.URL) *Resolver {
	return &Resolver{base: base}
}

// Resolve never fails: an unrecognized URL yields models.UnknownSpecies.
func (r *Resolver) Resolve(raw string) Resolution {
	raw = strings.TrimSpace(raw)
	res := Resolution{
		No:       models.UnknownSpecies,
		ImageURL: r.Absolute(raw),
	}
	if raw == "" {
		return res
	}

	for _, p := range patterns {
		m := p.re.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		no, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		res.No = no
		res.Convention = p.convention
		if p.convention == ConventionPMForm {
			res.Form = m[2]
		}
		return res
	}
	return res
}

// Absolute resolves raw against the page base. Absolute URLs and
// unparseable input pass through unchanged.
func (r *Resolver) Absolute(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || r.base == nil {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if u.IsAbs() {
		return raw
	}
	return r.base.ResolveReference(u).String()
}
