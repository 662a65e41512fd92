package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/use-agent/leekduck/models"
)

var (
	cpPrefixRe = regexp.MustCompile(`(?i)^\s*(?:max\s+|min\s+)?CP\s*`)
	cpRangeRe  = regexp.MustCompile(`^(\d+)\D+(\d+)$`)
	digitsRe   = regexp.MustCompile(`\d+`)
)

// ParseCP parses "CP 1,234 - 1,456" style text. Anything else, including a
// range whose minimum exceeds its maximum, yields nil.
func ParseCP(text string) *models.CPRange {
	s := cpPrefixRe.ReplaceAllString(text, "")
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	m := cpRangeRe.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	lo, err1 := strconv.Atoi(m[1])
	hi, err2 := strconv.Atoi(m[2])
	if err1 != nil || err2 != nil || lo > hi {
		return nil
	}
	return &models.CPRange{Min: lo, Max: hi}
}

// parseCPPair builds a range from separately printed bounds.
func parseCPPair(minText, maxText string) *models.CPRange {
	lo, ok1 := firstInt(minText)
	hi, ok2 := firstInt(maxText)
	if !ok1 || !ok2 || lo > hi {
		return nil
	}
	return &models.CPRange{Min: lo, Max: hi}
}

func firstInt(text string) (int, bool) {
	m := digitsRe.FindString(strings.ReplaceAll(text, ",", ""))
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}
