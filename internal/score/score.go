// Package score computes the deterministic relevance score from an article's
// classification. The score is independent of anything the model might claim.
package score

import (
	"strings"

	"newsdigest/internal/article"
)

const (
	relevantPoints    = 60
	regionPoints      = 10
	contentTypePoints = 10
)

// Score applies the fixed additive rule set and returns the 0-100 score plus
// a breakdown listing the rules that fired, in rule order.
func Score(c article.Classification, topic string) (int, string) {
	total := 0
	var reasons []string

	if c.IsRelevant {
		total += relevantPoints
		reasons = append(reasons, "Matched topic: "+topic)
	}
	if strings.EqualFold(c.Region, "india") {
		total += regionPoints
		reasons = append(reasons, "Region = India")
	}
	if strings.EqualFold(c.ContentType, "general") {
		total += contentTypePoints
		reasons = append(reasons, "Content Type = General")
	}

	return total, strings.Join(reasons, ", ")
}
