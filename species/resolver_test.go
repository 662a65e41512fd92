package species

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/use-agent/leekduck/models"
)

func TestResolveConventions(t *testing.T) {
	base, err := url.Parse("https://leekduck.com/raid-bosses/")
	require.NoError(t, err)
	r := NewResolver(base)

	tests := []struct {
		name       string
		raw        string
		no         int
		form       string
		convention Convention
		imageURL   string
	}{
		{
			name:       "legacy pokemon_icon",
			raw:        "/assets/img/pokemon_icons/pokemon_icon_025_00.png",
			no:         25,
			convention: ConventionIcon,
			imageURL:   "https://leekduck.com/assets/img/pokemon_icons/pokemon_icon_025_00.png",
		},
		{
			name:       "pokemon_icon with pm prefix",
			raw:        "https://cdn.leekduck.com/pokemon_icon_pm0150_00_pgo_copy.png",
			no:         150,
			convention: ConventionIconPM,
			imageURL:   "https://cdn.leekduck.com/pokemon_icon_pm0150_00_pgo_copy.png",
		},
		{
			name:       "pm icon",
			raw:        "/assets/img/pokemon_icons_crop/pm129.icon.png",
			no:         129,
			convention: ConventionPM,
			imageURL:   "https://leekduck.com/assets/img/pokemon_icons_crop/pm129.icon.png",
		},
		{
			name:       "pm icon with query",
			raw:        "pm6.icon.png?v=2",
			no:         6,
			convention: ConventionPM,
			imageURL:   "https://leekduck.com/raid-bosses/pm6.icon.png?v=2",
		},
		{
			name:       "pm icon with costume suffix",
			raw:        "/assets/img/pokemon_icons_crop/pm25.cWINTER_2020.icon.png",
			no:         25,
			convention: ConventionPM,
			imageURL:   "https://leekduck.com/assets/img/pokemon_icons_crop/pm25.cWINTER_2020.icon.png",
		},
		{
			name:       "pm icon with shiny suffix",
			raw:        "/assets/img/pokemon_icons_crop/pm25.s.icon.png",
			no:         25,
			convention: ConventionPM,
			imageURL:   "https://leekduck.com/assets/img/pokemon_icons_crop/pm25.s.icon.png",
		},
		{
			name:       "pm icon with form",
			raw:        "/assets/img/pokemon_icons_crop/pm26.fALOLA.icon.png",
			no:         26,
			form:       "ALOLA",
			convention: ConventionPMForm,
			imageURL:   "https://leekduck.com/assets/img/pokemon_icons_crop/pm26.fALOLA.icon.png",
		},
		{
			name:       "no convention",
			raw:        "/assets/img/items/raid_pass.png",
			no:         models.UnknownSpecies,
			convention: ConventionNone,
			imageURL:   "https://leekduck.com/assets/img/items/raid_pass.png",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := r.Resolve(tc.raw)
			assert.Equal(t, tc.no, got.No)
			assert.Equal(t, tc.form, got.Form)
			assert.Equal(t, tc.convention, got.Convention)
			assert.Equal(t, tc.imageURL, got.ImageURL)
		})
	}
}

func TestResolveFirstMatchWins(t *testing.T) {
	// both the legacy and the pm convention appear; the legacy one is tried first
	got := NewResolver(nil).Resolve("/pokemon_icon_004_00/pm7.icon.png")
	assert.Equal(t, 4, got.No)
	assert.Equal(t, ConventionIcon, got.Convention)
}

func TestResolveEmpty(t *testing.T) {
	got := NewResolver(nil).Resolve("   ")
	assert.False(t, got.Known())
	assert.Empty(t, got.ImageURL)
}

func TestAbsoluteWithoutBase(t *testing.T) {
	r := NewResolver(nil)
	assert.Equal(t, "/a/b.png", r.Absolute("/a/b.png"))
}

func TestConventionString(t *testing.T) {
	assert.Equal(t, "pm_form", ConventionPMForm.String())
	assert.Equal(t, "none", Convention(42).String())
}
