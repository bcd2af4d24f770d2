// Package rank filters scored articles against the user's criteria and
// orders them for delivery.
package rank

import (
	"sort"
	"strings"

	"newsdigest/internal/article"
)

// Criteria is the user-supplied filter. Matches are case-insensitive exact.
type Criteria struct {
	Region      string
	ContentType string
}

// Rank keeps articles whose classification matches every criterion and is
// relevant, sorts by relevance score descending (stable, so ties keep input
// order) and truncates to maxCount. Articles without a classification never
// pass; upstream should have removed them already but that is not assumed.
func Rank(articles []article.Article, criteria Criteria, maxCount int) []article.Article {
	filtered := make([]article.Article, 0, len(articles))
	for _, a := range articles {
		if Matches(a, criteria) {
			filtered = append(filtered, a)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Classification.RelevanceScore > filtered[j].Classification.RelevanceScore
	})

	if maxCount >= 0 && len(filtered) > maxCount {
		filtered = filtered[:maxCount]
	}
	return filtered
}

// Matches reports whether one article passes the criteria.
func Matches(a article.Article, criteria Criteria) bool {
	c := a.Classification
	if c == nil {
		return false
	}
	if !strings.EqualFold(c.Region, criteria.Region) {
		return false
	}
	if !strings.EqualFold(c.ContentType, criteria.ContentType) {
		return false
	}
	return c.IsRelevant
}
