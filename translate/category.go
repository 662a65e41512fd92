package translate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/use-agent/leekduck/tables"
)

type category struct {
	tag tables.Tag
	re  *regexp.Regexp // nil when the text is not a valid pattern
}

// CategoryTranslator maps a site category label to display text. It never
// returns an empty string.
type CategoryTranslator struct {
	entries  []category
	fallback tables.Tag
	priority map[string]int
}

// NewCategory builds a translator over tags. fallbackText names the entry
// returned when nothing matches; it must be present in tags.
func NewCategory(tags []tables.Tag, fallbackText string) (*CategoryTranslator, error) {
	c := &CategoryTranslator{priority: make(map[string]int, len(tags))}
	found := false
	for _, tag := range tags {
		if tag.Text == fallbackText {
			c.fallback = tag
			found = true
		}
		re, err := regexp.Compile("(?i)" + tag.Text)
		if err != nil {
			re = nil
		}
		c.entries = append(c.entries, category{tag: tag, re: re})
		if p, ok := c.priority[tag.DisplayText]; !ok || tag.Priority < p {
			c.priority[tag.DisplayText] = tag.Priority
		}
	}
	if !found {
		return nil, fmt.Errorf("translate: fallback entry %q missing", fallbackText)
	}
	if c.fallback.DisplayText == "" {
		c.fallback.DisplayText = c.fallback.Text
	}
	return c, nil
}

// Translate returns the display text for raw: exact text match first, then
// case-insensitive pattern match, then the fallback entry.
func (c *CategoryTranslator) Translate(raw string) string {
	return c.Lookup(raw).DisplayText
}

// Lookup is Translate returning the whole entry.
func (c *CategoryTranslator) Lookup(raw string) tables.Tag {
	raw = strings.TrimSpace(raw)
	for _, e := range c.entries {
		if e.tag.Text == raw && e.tag.DisplayText != "" {
			return e.tag
		}
	}
	for _, e := range c.entries {
		if e.re != nil && e.tag.DisplayText != "" && e.re.MatchString(raw) {
			return e.tag
		}
	}
	return c.fallback
}

// Priority returns the ordering key of a display text. Unknown text sorts
// with the fallback.
func (c *CategoryTranslator) Priority(display string) int {
	if p, ok := c.priority[display]; ok {
		return p
	}
	return c.fallback.Priority
}
