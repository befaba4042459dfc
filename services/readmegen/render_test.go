package readmegen

import (
	"strings"
	"testing"
	"time"

	"moneyplatforms/services/platformstore/db"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func stored(p db.Platform) db.StoredPlatform {
	return db.StoredPlatform{ID: "id-" + p.Key(), Platform: p}
}

func sampleInput() map[string][]db.StoredPlatform {
	return map[string][]db.StoredPlatform{
		"Freelancing & Services": {
			stored(db.Platform{
				Name: "Fiverr", Url: "https://fiverr.com",
				Description: "gig marketplace", Importance: 4,
				KeyFeatures: db.StringList{"gigs", "levels"},
			}),
			stored(db.Platform{
				Name: "Upwork", Url: "https://upwork.com",
				Description: "freelance jobs", Importance: 5,
				PricingUrl: "https://upwork.com/pricing",
			}),
		},
		"Design": {
			stored(db.Platform{Name: "Canva", Url: "https://canva.com", Importance: 3}),
		},
	}
}

var renderTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestRenderIsDeterministic(t *testing.T) {
	first := Render(sampleInput(), renderTime)
	second := Render(sampleInput(), renderTime)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("render is not deterministic:\n%s", diff)
	}
}

func TestRenderEscapesPipes(t *testing.T) {
	input := map[string][]db.StoredPlatform{
		"Design": {
			stored(db.Platform{
				Name:        "Pipe",
				Url:         "https://pipe.example",
				Description: "before | after",
				Importance:  1,
			}),
		},
	}
	out := Render(input, renderTime)
	require.Contains(t, out, `before \| after`)
	require.NotContains(t, out, "before | after")
}

func TestRenderOrdersRowsByImportance(t *testing.T) {
	input := map[string][]db.StoredPlatform{
		"Design": {
			stored(db.Platform{Name: "MidRated", Url: "https://m.example", Importance: 3}),
			stored(db.Platform{Name: "Unrated", Url: "https://u.example"}),
			stored(db.Platform{Name: "TopRated", Url: "https://t.example", Importance: 5}),
		},
	}
	out := Render(input, renderTime)

	top := strings.Index(out, "TopRated")
	mid := strings.Index(out, "MidRated")
	unrated := strings.Index(out, "Unrated")
	require.True(t, top >= 0 && mid >= 0 && unrated >= 0)
	require.Less(t, top, mid)
	require.Less(t, mid, unrated)

	// unrated records render N/A, not a zero rating
	require.Contains(t, out, "N/A")
}

func TestRenderTocOrderAndAnchors(t *testing.T) {
	out := Render(sampleInput(), renderTime)

	// two freelancing platforms outrank one design platform
	freelancing := strings.Index(out, "Freelancing & Services (2)")
	design := strings.Index(out, "Design (1)")
	require.True(t, freelancing >= 0 && design >= 0)
	require.Less(t, freelancing, design)

	// ampersand categories keep the double-dash anchor
	require.Contains(t, out, "(#-freelancing--services)")
	require.Contains(t, out, "(#-design)")
}

func TestRenderCellContents(t *testing.T) {
	out := Render(sampleInput(), renderTime)

	require.Contains(t, out, "[Fiverr](https://fiverr.com)")
	require.Contains(t, out, "**1**")
	require.Contains(t, out, "<br>• gigs<br>• levels")
	require.Contains(t, out, "[(💰 pricing)](https://upwork.com/pricing)")
	require.Contains(t, out, "⭐⭐⭐⭐⭐ (5/5)")
	require.Contains(t, out, "Last updated: 2025-06-01 08:00:00 EST")
}

func TestRenderEscapesUrlAmpersands(t *testing.T) {
	input := map[string][]db.StoredPlatform{
		"Design": {
			stored(db.Platform{
				Name:       "Amp",
				Url:        "https://amp.example?a=1&b=2",
				Importance: 1,
			}),
		},
	}
	out := Render(input, renderTime)
	require.Contains(t, out, "https://amp.example?a=1&amp;b=2")
}
