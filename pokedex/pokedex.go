// Package pokedex is the species name table: numeric id to per-locale
// names, with exact, form-aware and fuzzy lookups.
package pokedex

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/antzucaro/matchr"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/titanous/json5"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/use-agent/leekduck/tables"
)

//go:embed data/pokedex.json
var embedded embed.FS

// FileName is the species table file name inside a data directory.
const FileName = "pokedex.json"

// BaseLocale is the locale the source site prints names in.
const BaseLocale = "en-US"

// minSimilarity is the Jaro-Winkler floor for a fuzzy hit.
const minSimilarity = 0.75

// Entry is one species.
type Entry struct {
	No    int               `json:"no"`
	Names map[string]string `json:"names"`
}

// Name returns the name in locale, falling back to BaseLocale.
func (e Entry) Name(locale string) string {
	if n := e.Names[locale]; n != "" {
		return n
	}
	return e.Names[BaseLocale]
}

type fuzzyHit struct {
	entry *Entry
	ok    bool
}

// Pokedex is read-only after construction and safe for concurrent use.
type Pokedex struct {
	entries []Entry
	byNo    map[int]*Entry
	byName  map[string]*Entry // normalized name in any locale
	words   map[string]*regexp.Regexp
	forms   []tables.Tag
	locale  string
	memo    *lru.Cache[string, fuzzyHit]
}

// Load reads the embedded species table, or <dir>/pokedex.json when it
// exists. forms supplies the form-prefix translations used by
// TranslateName.
func Load(dir string, forms []tables.Tag, locale string) (*Pokedex, error) {
	raw, err := embedded.ReadFile("data/" + FileName)
	if err != nil {
		return nil, err
	}
	if dir != "" {
		data, err := os.ReadFile(filepath.Join(dir, FileName))
		switch {
		case err == nil:
			raw = data
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("pokedex: read override: %w", err)
		}
	}

	var entries []Entry
	if err := json5.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("pokedex: decode: %w", err)
	}
	return New(entries, forms, locale), nil
}

// New indexes entries. Later entries win on duplicate numbers or names.
func New(entries []Entry, forms []tables.Tag, locale string) *Pokedex {
	memo, _ := lru.New[string, fuzzyHit](512)
	d := &Pokedex{
		entries: entries,
		byNo:    make(map[int]*Entry, len(entries)),
		byName:  make(map[string]*Entry, len(entries)*2),
		words:   make(map[string]*regexp.Regexp, len(entries)+len(forms)),
		forms:   forms,
		locale:  locale,
		memo:    memo,
	}
	for i := range d.entries {
		e := &d.entries[i]
		d.byNo[e.No] = e
		for _, n := range e.Names {
			if key := Normalize(n); key != "" {
				d.byName[key] = e
			}
		}
		if en := e.Names[BaseLocale]; en != "" {
			d.words[en] = wordRegexp(en)
		}
	}
	for _, f := range forms {
		if f.Text != "" {
			d.words[f.Text] = wordRegexp(f.Text)
		}
	}
	return d
}

// Len returns the number of species.
func (d *Pokedex) Len() int { return len(d.entries) }

// Locale returns the display locale.
func (d *Pokedex) Locale() string { return d.locale }

// ByNo returns the entry for a species number.
func (d *Pokedex) ByNo(no int) (Entry, bool) {
	e, ok := d.byNo[no]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// NameByNo returns the species name in locale, or "" when unknown.
func (d *Pokedex) NameByNo(no int, locale string) string {
	e, ok := d.byNo[no]
	if !ok {
		return ""
	}
	return e.Name(locale)
}

// Lookup finds a species by name in any locale, ignoring case, accents,
// spacing and punctuation.
func (d *Pokedex) Lookup(name string) (Entry, bool) {
	e, ok := d.byName[Normalize(name)]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Fuzzy resolves a loosely written species name: exact lookup first, then
// the longest base-locale name contained in (or containing) the query, then
// the closest name by Jaro-Winkler similarity.
func (d *Pokedex) Fuzzy(name string) (Entry, bool) {
	key := Normalize(name)
	if key == "" {
		return Entry{}, false
	}
	if hit, ok := d.memo.Get(key); ok {
		if !hit.ok {
			return Entry{}, false
		}
		return *hit.entry, true
	}

	hit := d.fuzzy(key)
	d.memo.Add(key, hit)
	if !hit.ok {
		return Entry{}, false
	}
	return *hit.entry, true
}

func (d *Pokedex) fuzzy(key string) fuzzyHit {
	if e, ok := d.byName[key]; ok {
		return fuzzyHit{entry: e, ok: true}
	}

	var partial *Entry
	partialLen := 0
	for i := range d.entries {
		e := &d.entries[i]
		n := Normalize(e.Names[BaseLocale])
		if n == "" {
			continue
		}
		if strings.Contains(key, n) || (len(key) >= 3 && strings.HasPrefix(n, key)) {
			if len(n) > partialLen {
				partial, partialLen = e, len(n)
			}
		}
	}
	if partial != nil {
		return fuzzyHit{entry: partial, ok: true}
	}

	var best *Entry
	bestScore := 0.0
	for i := range d.entries {
		e := &d.entries[i]
		score := matchr.JaroWinkler(key, Normalize(e.Names[BaseLocale]), false)
		if score > bestScore {
			best, bestScore = e, score
		}
	}
	if best == nil || bestScore < minSimilarity {
		return fuzzyHit{}
	}
	return fuzzyHit{entry: best, ok: true}
}

// TranslateName localizes a name as printed by the site. Exact matches map
// straight to the display locale. Otherwise the species is located by
// number (or by the longest contained base name), its base name is
// swapped for the localized one and form prefixes are translated. Names
// that cannot be placed are returned unchanged.
func (d *Pokedex) TranslateName(original string, no int) string {
	original = strings.TrimSpace(original)
	if original == "" {
		if name := d.NameByNo(no, d.locale); name != "" {
			return name
		}
		return original
	}
	if e, ok := d.Lookup(original); ok {
		return e.Name(d.locale)
	}

	base, ok := d.byNo[no]
	if !ok {
		base = d.containedBase(original)
	}
	if base == nil {
		return original
	}

	out := original
	if en := base.Names[BaseLocale]; en != "" {
		out = d.replaceWord(out, en, base.Name(d.locale))
	}
	if d.locale != BaseLocale {
		for _, f := range d.forms {
			out = d.replaceWord(out, f.Text, f.DisplayText)
		}
	}
	return out
}

func (d *Pokedex) containedBase(original string) *Entry {
	var found *Entry
	for i := range d.entries {
		e := &d.entries[i]
		en := e.Names[BaseLocale]
		if en == "" || !d.word(en).MatchString(original) {
			continue
		}
		if found == nil || len(en) > len(found.Names[BaseLocale]) {
			found = e
		}
	}
	return found
}

func wordRegexp(word string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(^|[^\pL])` + regexp.QuoteMeta(word) + `($|[^\pL])`)
}

func (d *Pokedex) word(w string) *regexp.Regexp {
	if re, ok := d.words[w]; ok {
		return re
	}
	return wordRegexp(w)
}

func (d *Pokedex) replaceWord(s, word, repl string) string {
	if word == "" || repl == "" {
		return s
	}
	return d.word(word).ReplaceAllStringFunc(s, func(m string) string {
		i := strings.Index(strings.ToLower(m), strings.ToLower(word))
		if i < 0 {
			return m
		}
		return m[:i] + repl + m[i+len(word):]
	})
}

// Normalize folds a name for comparison: accents removed, lowercased,
// everything but letters and digits dropped.
func Normalize(name string) string {
	stripMarks := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(stripMarks, name)
	if err != nil {
		folded = name
	}
	var b strings.Builder
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
