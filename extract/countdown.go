package extract

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Countdown boundaries, from the data-countdown-to attribute.
const (
	CountdownStart = "start"
	CountdownEnd   = "end"
)

// ParseCountdown interprets an event countdown. A purely numeric raw
// value is Unix milliseconds; anything else is a date-time printed in the
// site's timezone, reported with local=true. Unparseable input and an
// unknown boundary yield nil times.
func ParseCountdown(to, raw string, loc *time.Location) (start, end *time.Time, local bool) {
	to = strings.ToLower(strings.TrimSpace(to))
	raw = strings.TrimSpace(raw)
	if raw == "" || (to != CountdownStart && to != CountdownEnd) {
		return nil, nil, false
	}
	if loc == nil {
		loc = time.UTC
	}

	var t time.Time
	if isDigits(raw) {
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, nil, false
		}
		t = time.UnixMilli(ms).UTC()
	} else {
		parsed, err := dateparse.ParseIn(raw, loc)
		if err != nil {
			return nil, nil, false
		}
		t = parsed
		local = true
	}

	if to == CountdownStart {
		return &t, nil, local
	}
	return nil, &t, local
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
