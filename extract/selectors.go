package extract

import "github.com/andybalholm/cascadia"

// Raids.
var (
	selRaidGrid    = cascadia.MustCompile("div.grid")
	selRaidFlat    = cascadia.MustCompile("h2.header, div.card")
	selRaidCard    = cascadia.MustCompile("div.card")
	selBossImg     = cascadia.MustCompile("div.boss-img img")
	selBossShiny   = cascadia.MustCompile("div.boss-img .shiny-icon")
	selBossName    = cascadia.MustCompile("p.name")
	selBossType    = cascadia.MustCompile("div.boss-type img")
	selCPRange     = cascadia.MustCompile("div.cp-range")
	selBoostedCP   = cascadia.MustCompile("div.boosted-cp-row span.boosted-cp")
	selWeatherBox  = cascadia.MustCompile("div.weather-boosted")
	selWeatherBox3 = cascadia.MustCompile("div.boss-3")
	selWeatherImg  = cascadia.MustCompile(".boss-weather img")
)

const tierHeader = "h2.header"

// Events.
var (
	selCurrentEvents  = cascadia.MustCompile("div.events-list.current-events a.event-item-link")
	selUpcomingEvents = cascadia.MustCompile("div.events-list.upcoming-events a.event-item-link")
	selEventTitle     = cascadia.MustCompile("h2")
	selEventImg       = cascadia.MustCompile(".event-img-wrapper img")
	selEventWrapper   = cascadia.MustCompile(".event-item-wrapper")
	selEventCountdown = cascadia.MustCompile(".event-countdown")
)

// Research.
var (
	selTaskCategory   = cascadia.MustCompile(".task-category")
	selTaskHeader     = cascadia.MustCompile("h2")
	selTaskItem       = cascadia.MustCompile(".task-item")
	selTaskText       = cascadia.MustCompile(".task-text")
	selRewardEncount  = cascadia.MustCompile(`.reward-list .reward[data-reward-type="encounter"]`)
	selRewardResource = cascadia.MustCompile(`.reward-list .reward[data-reward-type="resource"]`)
	selRewardImg      = cascadia.MustCompile("img")
	selMinCP          = cascadia.MustCompile(".cp-values .min-cp")
	selMaxCP          = cascadia.MustCompile(".cp-values .max-cp")
	selShiny          = cascadia.MustCompile(".shiny-icon")
	selResourceIcon   = cascadia.MustCompile(".resource-info img")
	selResourceImg    = cascadia.MustCompile("img.reward-image")
	selQuantity       = cascadia.MustCompile(".quantity")
)

// Eggs.
var (
	selEggFlat     = cascadia.MustCompile("h2, .egg-grid .pokemon-card")
	selEggIcon     = cascadia.MustCompile(".icon img")
	selEggName     = cascadia.MustCompile(".name")
	selEggCP       = cascadia.MustCompile(".cp-range")
	selEggRegional = cascadia.MustCompile(".regional-icon")
)
