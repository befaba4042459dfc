package readmegen

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"moneyplatforms/services/platformstore/db"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const repoPath = "awesome-money/awesome-money-platforms"

// the original list renders timestamps in US Eastern.
var eastern = func() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return time.UTC
	}
	return loc
}()

// Render produces the full README markdown from records grouped by
// category. It is pure: identical input and timestamp give
// byte-identical output.
func Render(byCategory map[string][]db.StoredPlatform, now time.Time) string {
	timestamp := now.In(eastern).Format("2006-01-02 15:04:05")

	order := categoryOrder(byCategory)
	total := 0
	for _, entry := range order {
		total += entry.count
	}
	totalRounded := total / 100 * 100

	var b strings.Builder
	writeHeader(&b, total, totalRounded)

	b.WriteString("\n")
	fmt.Fprintf(&b, "Last updated: %s EST\n", timestamp)
	b.WriteString("\n## 🔍 Table of Contents\n\n")
	for _, entry := range order {
		fmt.Fprintf(
			&b, "- [%s %s (%d)](#%s)\n",
			categoryEmoji(entry.name), entry.name, entry.count, anchor(entry.name),
		)
	}

	b.WriteString(`
## 📚 How to Use This List

1. **Browse by Category** - Find platforms that match your skills and interests
2. **Check Ratings** - Look at importance and monetization potential
3. **Review Details** - Read about the key features and monetization options

## ⭐ Top Categories

`)

	for _, entry := range order {
		platforms := byCategory[entry.name]
		if len(platforms) == 0 {
			continue
		}
		writeCategory(&b, entry.name, platforms)
	}

	writeFooter(&b, timestamp)
	return b.String()
}

type categoryCount struct {
	name  string
	count int
}

// TOC and section order: count descending, category name descending on
// ties.
func categoryOrder(byCategory map[string][]db.StoredPlatform) []categoryCount {
	order := make([]categoryCount, 0, len(byCategory))
	for name, platforms := range byCategory {
		order = append(order, categoryCount{name: name, count: len(platforms)})
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].count != order[j].count {
			return order[i].count > order[j].count
		}
		return order[i].name > order[j].name
	})
	return order
}

func writeHeader(b *strings.Builder, total, totalRounded int) {
	fmt.Fprintf(b, `
# 🚀 Awesome Money-Making Platforms
> Discover %d+ legitimate ways to earn money online

[![GitHub stars](https://img.shields.io/github/stars/%[2]s.svg?style=social&label=Star&maxAge=2592000)](https://github.com/%[2]s/stargazers/)
[![Awesome](https://awesome.re/badge.svg)](https://awesome.re)
[![Platforms](https://img.shields.io/badge/platforms-%[3]d+-brightgreen)](https://github.com/%[2]s)
[![Last Updated](https://img.shields.io/badge/updated-daily-blue)](https://github.com/%[2]s)

## 🌟 Why This List?
- ✅ **%[1]d+ Verified Platforms** - All tested and categorized
- 📊 **Detailed Comparisons** - Pricing, key features, monetization options, importance
- 🚀 **Quick Start Guides** - Get earning fast with direct links
- 💰 **Monetization Ratings** - Know your earning potential upfront
- 🔄 **Regularly Updated** - Fresh opportunities added daily
`, total, repoPath, totalRounded)
}

func writeCategory(b *strings.Builder, category string, platforms []db.StoredPlatform) {
	fmt.Fprintf(b, "## %s %s\n\n", categoryEmoji(category), category)
	fmt.Fprintf(b, "*%d platforms in this category*\n\n", len(platforms))

	sorted := make([]db.StoredPlatform, len(platforms))
	copy(sorted, platforms)
	// absent ratings are 0, so they sink to the bottom; ties keep input
	// order
	sort.SliceStable(sorted, func(i, j int) bool {
		a, z := sorted[i], sorted[j]
		if a.Importance != z.Importance {
			return a.Importance > z.Importance
		}
		if a.Usefulness != z.Usefulness {
			return a.Usefulness > z.Usefulness
		}
		return a.BeginnerFriendly > z.BeginnerFriendly
	})

	t := table.NewWriter()
	t.Style().Format.Header = text.FormatDefault
	t.AppendHeader(table.Row{
		"Rank", "Platform", "Description", "Free Tier",
		"Key Features", "Monetization", "Importance",
	})
	for rank, platform := range sorted {
		t.AppendRow(table.Row{
			fmt.Sprintf("**%d**", rank+1),
			fmt.Sprintf("[%s](%s)", platform.Name, escapeUrl(platform.Url)),
			describeCell(platform.Platform),
			platform.FreeTierDetails,
			bulletList(platform.KeyFeatures),
			platform.MonetizationOptions,
			formatRating(platform.Importance),
		})
	}
	b.WriteString(t.RenderMarkdown())
	b.WriteString("\n\n")
}

func writeFooter(b *strings.Builder, timestamp string) {
	fmt.Fprintf(b, `## 📈 Contributing

Found a great platform? [Submit a pull request](https://github.com/%[1]s/pulls) or [open an issue](https://github.com/%[1]s/issues) to suggest additions.

## 🔄 Updates

This list is automatically updated daily. Last update: %[2]s EST

## 📝 License

This project is licensed under the MIT License - see the [LICENSE](LICENSE) file for details.

## ⭐ Star History

[![Star History Chart](https://api.star-history.com/svg?repos=%[1]s&type=Date)](https://star-history.com/#%[1]s&Date)
`, repoPath, timestamp)
}

func describeCell(p db.Platform) string {
	var links []string
	if p.PricingUrl != "" {
		links = append(links, fmt.Sprintf("[(💰 pricing)](%s)", p.PricingUrl))
	}
	if p.QuickStartUrl != "" {
		links = append(links, fmt.Sprintf("[(🚀 quick start)](%s)", p.QuickStartUrl))
	}
	if len(links) == 0 {
		return p.Description
	}
	return p.Description + " " + strings.Join(links, " ")
}

// bulletList renders an ordered sequence as a line-broken bullet list
// inside a single table cell.
func bulletList(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return "<br>• " + strings.Join(items, "<br>• ")
}

func formatRating(rating int) string {
	if rating <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%s (%d/5)", strings.Repeat("⭐", rating), rating)
}

// url ampersands break markdown-in-html renderers.
func escapeUrl(url string) string {
	return strings.ReplaceAll(url, "&", "&amp;")
}

// anchor derives the github heading anchor for a category. The literal
// `_amp_` token keeps `&` from being swallowed by slugging; mapping its
// slugged form to `--` keeps anchors stable across renders.
func anchor(category string) string {
	slugged := slugify(strings.ReplaceAll(category, "&", "_amp_"))
	return "-" + strings.ReplaceAll(slugged, "-amp-", "--")
}

func slugify(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
