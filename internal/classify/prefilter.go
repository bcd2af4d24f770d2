package classify

import (
	"strings"

	"newsdigest/internal/article"
)

// IndiaMarkers flag articles whose link or source points at an
// India-affiliated outlet. A lookup table rather than inline literals so it
// can be tuned without touching control flow.
var IndiaMarkers = []string{
	"india", ".in", "timesofindia", "hindustantimes", "thehindu", "jagran", "ndtv", "livemint",
}

// ProbablyIndian is a cheap heuristic applied before any LLM call.
func ProbablyIndian(a article.Article) bool {
	link := strings.ToLower(a.Link)
	source := strings.ToLower(a.Source)
	for _, marker := range IndiaMarkers {
		if strings.Contains(link, marker) || strings.Contains(source, marker) {
			return true
		}
	}
	return false
}

// PrefilterByRegion restricts articles before batching: "india" keeps the
// probably-Indian ones, "global" keeps the complement, any other region
// disables the filter.
func PrefilterByRegion(articles []article.Article, region string) []article.Article {
	var keep func(article.Article) bool
	switch strings.ToLower(region) {
	case "india":
		keep = ProbablyIndian
	case "global":
		keep = func(a article.Article) bool { return !ProbablyIndian(a) }
	default:
		return articles
	}

	out := make([]article.Article, 0, len(articles))
	for _, a := range articles {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}
