package fetch

import (
	"html"
	"net/url"
	"regexp"
	"strings"

	"github.com/mmcdole/gofeed"
)

// ImageExtensions and ImagePathPatterns drive the URL validation heuristic:
// a candidate passes with a known extension or a recognizable media path
// segment, as long as the resolved URL has a host.
var ImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".svg"}

var ImagePathPatterns = []string{
	"images", "img", "photo", "pics", "media", "upload", "cdn", "static",
	"thumb", "resize", "crop", "avatar", "logo", "banner",
}

var imgScanPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<img[^>]+src=["']([^"']+)["']`),
	regexp.MustCompile(`(?i)<img[^>]+src=([^\s>"']+)`),
	regexp.MustCompile(`(?i)src=["']([^"']*\.(?:jpg|jpeg|png|gif|webp|bmp)(?:\?[^"']*)?)["']`),
	regexp.MustCompile(`(?i)background-image:\s*url\(["']?([^"')\s]+)["']?\)`),
	regexp.MustCompile(`(?i)data-src=["']([^"']+)["']`),
	regexp.MustCompile(`(?i)data-lazy-src=["']([^"']+)["']`),
}

// ValidImageURL reports whether a URL plausibly points at an image: query
// string stripped, known extension or media path pattern, parseable non-empty
// host.
func ValidImageURL(raw string) bool {
	if raw == "" {
		return false
	}

	clean := strings.ToLower(strings.SplitN(raw, "?", 2)[0])

	hasExtension := false
	for _, ext := range ImageExtensions {
		if strings.HasSuffix(clean, ext) {
			hasExtension = true
			break
		}
	}

	hasPattern := false
	lower := strings.ToLower(raw)
	for _, p := range ImagePathPatterns {
		if strings.Contains(lower, p) {
			hasPattern = true
			break
		}
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (hasExtension || hasPattern) && parsed.Host != ""
}

// ExtractImage walks the fallback chain for a representative image:
// media:thumbnail, media:content tagged as image, enclosures tagged as image,
// the feed's own item image, then a regex scan over summary/content/
// description. First valid candidate wins. Relative candidates are resolved
// against the feed origin before validation.
func ExtractImage(item *gofeed.Item, base *url.URL) string {
	if u := fromMediaExtension(item, "thumbnail", false); u != "" {
		return u
	}
	if u := fromMediaExtension(item, "content", true); u != "" {
		return u
	}

	for _, enc := range item.Enclosures {
		if enc == nil {
			continue
		}
		if strings.Contains(strings.ToLower(enc.Type), "image") && ValidImageURL(enc.URL) {
			return enc.URL
		}
	}

	if item.Image != nil && ValidImageURL(item.Image.URL) {
		return item.Image.URL
	}

	for _, content := range []string{item.Description, item.Content} {
		if content == "" {
			continue
		}
		content = html.UnescapeString(content)
		for _, pattern := range imgScanPatterns {
			for _, match := range pattern.FindAllStringSubmatch(content, -1) {
				candidate := resolveCandidate(strings.TrimSpace(match[1]), base)
				if ValidImageURL(candidate) {
					return candidate
				}
			}
		}
	}

	return ""
}

// resolveCandidate strips stray quotes and resolves relative URLs against the
// feed origin so the host check in ValidImageURL can apply.
func resolveCandidate(candidate string, base *url.URL) string {
	candidate = strings.Trim(candidate, `'"`)
	if candidate == "" {
		return ""
	}
	if strings.HasPrefix(candidate, "http://") || strings.HasPrefix(candidate, "https://") {
		return candidate
	}
	if base == nil {
		return candidate
	}
	ref, err := url.Parse(candidate)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// fromMediaExtension reads media RSS extension elements. requireImageType
// additionally checks the type/medium attribute, which media:content carries
// and media:thumbnail does not.
func fromMediaExtension(item *gofeed.Item, element string, requireImageType bool) string {
	media, ok := item.Extensions["media"]
	if !ok {
		return ""
	}
	for _, ext := range media[element] {
		u := ext.Attrs["url"]
		if u == "" {
			u = ext.Attrs["href"]
		}
		if requireImageType {
			kind := strings.ToLower(ext.Attrs["type"] + ext.Attrs["medium"])
			if !strings.Contains(kind, "image") {
				continue
			}
		}
		if ValidImageURL(u) {
			return u
		}
	}
	return ""
}
