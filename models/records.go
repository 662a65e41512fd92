package models

import "time"

// UnknownSpecies is the species number reported when no icon filename
// convention matched.
const UnknownSpecies = -1

// Event labels.
const (
	LabelCurrent  = "current"
	LabelUpcoming = "upcoming"
)

// SpeciesRef identifies one creature shown on the page.
type SpeciesRef struct {
	// No is the national species number, or UnknownSpecies.
	No int `json:"no"`

	// Name is the localized display name.
	Name string `json:"name"`

	// OriginalName is the name as printed by the source site.
	OriginalName string `json:"originalName"`

	// ImageURL is the absolute icon URL.
	ImageURL string `json:"imageUrl"`
}

// Known reports whether the species number was resolved.
func (s SpeciesRef) Known() bool {
	return s.No != UnknownSpecies
}

// CPRange is an inclusive combat-power range. A nil *CPRange means the
// source did not provide a parsable range.
type CPRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// RaidBoss is one card from the raid-bosses listing.
type RaidBoss struct {
	Tier               string     `json:"tier"`
	Species            SpeciesRef `json:"species"`
	ShinyAvailable     bool       `json:"shinyAvailable"`
	Types              []string   `json:"types"`
	TypeURLs           []string   `json:"typeUrls"`
	CP                 *CPRange   `json:"cp"`
	BoostedCP          *CPRange   `json:"boostedCp"`
	BoostedWeathers    []string   `json:"boostedWeathers"`
	BoostedWeatherURLs []string   `json:"boostedWeatherUrls"`
}

// RewardSpecies is an encounter reward of a research task.
type RewardSpecies struct {
	SpeciesRef
	CP             *CPRange `json:"cp"`
	ShinyAvailable bool     `json:"shinyAvailable"`
}

// RewardResource is a non-encounter reward tied to a species, such as
// mega energy.
type RewardResource struct {
	SpeciesRef
	Kind             string `json:"kind"`
	Count            int    `json:"count"`
	ResourceImageURL string `json:"resourceImageUrl"`
}

// ResearchTask is one field-research task.
type ResearchTask struct {
	Description         string           `json:"description"`
	OriginalDescription string           `json:"originalDescription"`
	Category            string           `json:"category"`
	RewardSpecies       []RewardSpecies  `json:"rewardSpecies"`
	RewardResources     []RewardResource `json:"rewardResources"`
}

// EggEntry is one species in a hatch pool.
type EggEntry struct {
	Species        SpeciesRef `json:"species"`
	Category       string     `json:"category"`
	CP             *CPRange   `json:"cp"`
	ShinyAvailable bool       `json:"shinyAvailable"`
	Regional       bool       `json:"regional"`
}

// Event is one entry from the events listing. Nil times mean the page did
// not expose that boundary.
type Event struct {
	Title         string     `json:"title"`
	OriginalTitle string     `json:"originalTitle"`
	Link          string     `json:"link"`
	Type          string     `json:"type"`
	ImageURL      string     `json:"imageUrl"`
	Label         string     `json:"label"`
	StartTime     *time.Time `json:"startTime"`
	EndTime       *time.Time `json:"endTime"`
	IsLocalTime   bool       `json:"isLocalTime"`
}

// IsZero reports whether the event carries no identifying data.
func (e Event) IsZero() bool {
	return e.Title == "" && e.OriginalTitle == "" && e.Link == ""
}
