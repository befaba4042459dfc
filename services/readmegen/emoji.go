package readmegen

import "strings"

// ordered so lookups stay deterministic across renders.
var categoryEmojis = []struct {
	keyword string
	emoji   string
}{
	{"Freelancing", "💼"},
	{"Content Creation", "📝"},
	{"E-commerce", "🛍️"},
	{"AI Services", "🤖"},
	{"Digital Products", "📦"},
	{"Online Services", "🌐"},
	{"Education", "📚"},
	{"Investing", "💰"},
	{"Gaming", "🎮"},
	{"Social Media", "📱"},
	{"Development", "👨‍💻"},
	{"Design", "🎨"},
	{"Writing", "✍️"},
	{"Marketing", "📢"},
	{"Tutoring", "👨‍🏫"},
	{"Translation", "🌍"},
	{"Data Entry", "📊"},
	{"Virtual Assistant", "👩‍💼"},
	{"Customer Service", "🎯"},
	{"Research", "🔍"},
	{"Uncategorized", "📌"},
}

func categoryEmoji(category string) string {
	lower := strings.ToLower(category)
	for _, entry := range categoryEmojis {
		if strings.Contains(lower, strings.ToLower(entry.keyword)) {
			return entry.emoji
		}
	}
	return "📌"
}
