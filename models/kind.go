package models

import "fmt"

// Kind identifies one entity listing on the source site.
type Kind string

const (
	KindRaids    Kind = "raids"
	KindEvents   Kind = "events"
	KindResearch Kind = "research"
	KindEggs     Kind = "eggs"
)

// AllKinds lists every kind in the order a full run processes them.
var AllKinds = []Kind{KindRaids, KindEvents, KindResearch, KindEggs}

// Path returns the well-known page path for the kind, relative to the host.
func (k Kind) Path() string {
	switch k {
	case KindRaids:
		return "/raid-bosses/"
	case KindEvents:
		return "/events/"
	case KindResearch:
		return "/research/"
	case KindEggs:
		return "/eggs/"
	}
	return ""
}

// ParseKind accepts the canonical kind names plus a few aliases used on the
// command line ("raid-bosses", "raid", "event", "egg").
func ParseKind(s string) (Kind, error) {
	switch s {
	case "raids", "raid", "raid-bosses":
		return KindRaids, nil
	case "events", "event":
		return KindEvents, nil
	case "research", "researches":
		return KindResearch, nil
	case "eggs", "egg":
		return KindEggs, nil
	}
	return "", NewScrapeError(ErrCodeInvalidInput, fmt.Sprintf("unknown kind %q", s), nil)
}
