package gemini

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"newsdigest/internal/article"
)

// listPattern finds the first JSON-array-shaped substring in a response that
// is not itself valid JSON (markdown fences, prose around the list).
var listPattern = regexp.MustCompile(`(?s)\[\s*\{.*\}\s*\]`)

// ParseBatchResponse decodes the model's reply into one classification per
// article. The strict path parses the whole response as a JSON array; the
// fallback scans for the first bracket-delimited list. Both paths require
// exactly expected entries — a shorter or longer list would silently misalign
// classifications to articles, so the whole batch fails instead.
func ParseBatchResponse(text string, expected int) ([]article.Classification, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("empty response")
	}

	var parsed []article.Classification
	if err := json.Unmarshal([]byte(text), &parsed); err == nil {
		if len(parsed) == expected {
			return parsed, nil
		}
		return nil, fmt.Errorf("response has %d entries, expected %d", len(parsed), expected)
	}

	match := listPattern.FindString(text)
	if match == "" {
		return nil, fmt.Errorf("no JSON list found in response")
	}

	parsed = nil
	if err := json.Unmarshal([]byte(match), &parsed); err != nil {
		return nil, fmt.Errorf("parse extracted list: %w", err)
	}
	if len(parsed) != expected {
		return nil, fmt.Errorf("extracted list has %d entries, expected %d", len(parsed), expected)
	}
	return parsed, nil
}
