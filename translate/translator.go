// Package translate turns site text into display text using ordered
// pattern rules, printf-style templates, a type-term pass and species
// name markers.
package translate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/use-agent/leekduck/pokedex"
	"github.com/use-agent/leekduck/tables"
)

// MarkerPrefix and MarkerSuffix delimit a species name inside a template.
const (
	MarkerPrefix = "##POKEMON_"
	MarkerSuffix = "##"
)

// maxMarkerPasses bounds recursive marker expansion.
const maxMarkerPasses = 4

var (
	markerRe   = regexp.MustCompile(`##POKEMON_([^#]*)##`)
	typeTermRe = regexp.MustCompile(`(?i)\b([a-z]+)-type\b`)
)

// Rule is a compiled pattern rule.
type Rule struct {
	Pattern  *regexp.Regexp
	Template string
	Priority int
}

// SpeciesLookup resolves loosely written species names to display names.
type SpeciesLookup interface {
	Fuzzy(name string) (pokedex.Entry, bool)
	TranslateName(original string, no int) string
	Locale() string
}

// Options configure the secondary passes. Zero values disable them.
type Options struct {
	Tables  *tables.Tables
	Species SpeciesLookup
	Locale  string
}

// Translator applies the first matching rule to a string.
type Translator struct {
	rules   []Rule
	tables  *tables.Tables
	species SpeciesLookup
	locale  string
}

// Compile compiles table rules case-insensitively, keeping their order.
func Compile(rules []tables.Rule) ([]Rule, error) {
	out := make([]Rule, 0, len(rules))
	for i, r := range rules {
		re, err := regexp.Compile("(?i)" + r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("translate: rule %d %q: %w", i, r.Pattern, err)
		}
		cr := Rule{Pattern: re, Template: r.DisplayText}
		if r.Priority != nil {
			cr.Priority = *r.Priority
		}
		out = append(out, cr)
	}
	return out, nil
}

// New compiles rules into a Translator.
func New(rules []tables.Rule, opts Options) (*Translator, error) {
	compiled, err := Compile(rules)
	if err != nil {
		return nil, err
	}
	return &Translator{
		rules:   compiled,
		tables:  opts.Tables,
		species: opts.Species,
		locale:  opts.Locale,
	}, nil
}

// Len returns the number of rules.
func (t *Translator) Len() int { return len(t.rules) }

// Match returns the first rule matching raw and its captures.
func (t *Translator) Match(raw string) (Rule, []string, bool) {
	for _, r := range t.rules {
		m := r.Pattern.FindStringSubmatch(raw)
		if m != nil {
			return r, m[1:], true
		}
	}
	return Rule{}, nil, false
}

// Translate applies the first matching rule. Text no rule matches is
// returned unchanged, so already-translated text is stable.
func (t *Translator) Translate(raw string) string {
	r, captures, ok := t.Match(strings.TrimSpace(raw))
	if !ok {
		return raw
	}
	out := Sprintf(r.Template, captures)
	out = t.translateTypes(out)
	return t.ExpandSpecies(out)
}

func (t *Translator) translateTypes(s string) string {
	if t.tables == nil || t.locale == "" {
		return s
	}
	return typeTermRe.ReplaceAllStringFunc(s, func(m string) string {
		key := strings.ToLower(typeTermRe.FindStringSubmatch(m)[1])
		if _, ok := t.tables.Types[key]; !ok {
			return m
		}
		return t.tables.TypeName(key, t.locale)
	})
}

// ExpandSpecies replaces every species marker with a display name. Names
// the species table cannot place are inserted as written.
func (t *Translator) ExpandSpecies(s string) string {
	for i := 0; i < maxMarkerPasses && strings.Contains(s, MarkerPrefix); i++ {
		s = markerRe.ReplaceAllStringFunc(s, func(m string) string {
			return t.speciesName(markerRe.FindStringSubmatch(m)[1])
		})
	}
	return s
}

func (t *Translator) speciesName(raw string) string {
	name := strings.TrimSpace(raw)
	if t.species == nil || name == "" {
		return name
	}
	e, ok := t.species.Fuzzy(name)
	if !ok {
		return name
	}
	if out := t.species.TranslateName(name, e.No); out != name {
		return out
	}
	return e.Name(t.species.Locale())
}

// Sprintf fills a printf-style template from string captures. It
// understands %s, %d, positional %N$s / %N$d and %%. Missing arguments
// become empty strings.
func Sprintf(template string, args []string) string {
	var b strings.Builder
	next := 0
	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '%' || i+1 >= len(template) {
			b.WriteByte(c)
			continue
		}

		j := i + 1
		if template[j] == '%' {
			b.WriteByte('%')
			i = j
			continue
		}

		argIdx := -1
		k := j
		for k < len(template) && template[k] >= '0' && template[k] <= '9' {
			k++
		}
		if k > j && k < len(template) && template[k] == '$' {
			n, _ := strconv.Atoi(template[j:k])
			argIdx = n - 1
			j = k + 1
		}
		if j >= len(template) || (template[j] != 's' && template[j] != 'd') {
			b.WriteByte(c)
			continue
		}
		if argIdx < 0 {
			argIdx = next
			next++
		}

		var arg string
		if argIdx >= 0 && argIdx < len(args) {
			arg = args[argIdx]
		}
		if template[j] == 'd' {
			if n, err := strconv.Atoi(strings.TrimSpace(arg)); err == nil {
				arg = strconv.Itoa(n)
			}
		}
		b.WriteString(arg)
		i = j
	}
	return b.String()
}
