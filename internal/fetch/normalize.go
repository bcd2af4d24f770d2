package fetch

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// BoilerplateWords rejects titles that are site chrome rather than articles.
// Kept as a table so it can be tuned and tested on its own.
var BoilerplateWords = []string{
	"subscribe", "login", "register", "advertisement", "menu", "search", "newsletter",
}

const (
	titleMinLen = 10
	titleMaxLen = 200
)

// NormalizeTitle collapses whitespace and rejects titles outside [10,200]
// characters or containing a boilerplate word. Returns "" for rejects.
func NormalizeTitle(title string) string {
	title = strings.Join(strings.Fields(title), " ")
	// Length bounds are in characters; Hindi and other multibyte titles must
	// not be measured in bytes.
	if n := utf8.RuneCountInString(title); n < titleMinLen || n > titleMaxLen {
		return ""
	}
	lower := strings.ToLower(title)
	for _, word := range BoilerplateWords {
		if strings.Contains(lower, word) {
			return ""
		}
	}
	return title
}

var tagPattern = regexp.MustCompile(`<[^<]+?>`)

// StripMarkup turns an HTML fragment into plain text with collapsed
// whitespace. goquery handles nested/broken markup; the regex fallback covers
// fragments the HTML parser cannot read at all.
func StripMarkup(s string) string {
	if s == "" {
		return ""
	}
	unescaped := html.UnescapeString(s)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(unescaped))
	if err != nil {
		return strings.Join(strings.Fields(tagPattern.ReplaceAllString(unescaped, " ")), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
