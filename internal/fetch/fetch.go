// Package fetch pulls raw entries from RSS feeds and the news-search API and
// normalizes them into deduplicated article records.
package fetch

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"

	"newsdigest/internal/article"
	"newsdigest/internal/feeds"
	"newsdigest/internal/logger"
	"newsdigest/internal/metrics"
)

// Fetcher collects articles for one topic/region. Every feed and the API call
// are best-effort: a failing source contributes zero articles and the fetch
// continues.
type Fetcher struct {
	registry *feeds.Registry
	parser   *gofeed.Parser
	api      *NewsAPIClient // nil when no API key is configured
	entryCap int
}

func New(registry *feeds.Registry, api *NewsAPIClient, timeout time.Duration, entryCap int) *Fetcher {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}

	return &Fetcher{
		registry: registry,
		parser:   parser,
		api:      api,
		entryCap: entryCap,
	}
}

// Fetch returns deduplicated articles for the topic/region, RSS results
// (capped) first, API results after. Within one run no two retained articles
// share (title, link); first seen wins.
func (f *Fetcher) Fetch(ctx context.Context, topic, region string, names []string) []article.Article {
	sources := f.registry.List(topic, region, names)

	all := f.fetchRSS(ctx, sources)
	if len(all) > f.entryCap {
		all = all[:f.entryCap]
	}
	logger.Info("rss fetch complete", "articles", len(all), "feeds", len(sources))

	if f.api != nil {
		apiArticles, err := f.api.Search(ctx, topic)
		if err != nil {
			logger.Warn("news api fetch failed", "error", err)
		} else {
			logger.Info("news api fetch complete", "articles", len(apiArticles))
			all = append(all, apiArticles...)
		}
	}

	unique := dedupe(all)
	metrics.Global.AddArticlesFetched(len(unique))
	return unique
}

func (f *Fetcher) fetchRSS(ctx context.Context, sources []feeds.Source) []article.Article {
	var out []article.Article
	successCount := 0

	for _, src := range sources {
		feed, err := f.parser.ParseURLWithContext(src.URL, ctx)
		if err != nil {
			logger.Warn("feed parse failed", "feed", src.Name, "url", src.URL, "error", err)
			metrics.Global.IncrementFeedErrors()
			continue
		}
		successCount++

		base := feedOrigin(src.URL)
		for _, item := range feed.Items {
			a, ok := fromFeedItem(item, base)
			if !ok {
				continue
			}
			out = append(out, a)
		}
		logger.Debug("feed parsed", "feed", src.Name, "entries", len(feed.Items))
	}

	metrics.Global.AddFeedsFetched(successCount)
	logger.Info("rss feeds processed", "ok", successCount, "total", len(sources))
	return out
}

// fromFeedItem normalizes one feed entry. Entries whose title fails
// normalization are rejected.
func fromFeedItem(item *gofeed.Item, base *url.URL) (article.Article, bool) {
	title := NormalizeTitle(item.Title)
	if title == "" {
		return article.Article{}, false
	}

	raw := item.Content
	if raw == "" {
		raw = item.Description
	}

	sourceHost := "unknown"
	if base != nil {
		sourceHost = base.Host
	}

	return article.Article{
		Title:      title,
		Link:       item.Link,
		Summary:    StripMarkup(item.Description),
		RawContent: raw,
		ImageURL:   ExtractImage(item, base),
		Source:     "RSS Feed - " + sourceHost,
	}, true
}

func feedOrigin(feedURL string) *url.URL {
	u, err := url.Parse(feedURL)
	if err != nil || u.Host == "" {
		return nil
	}
	return &url.URL{Scheme: u.Scheme, Host: u.Host}
}

func dedupe(articles []article.Article) []article.Article {
	seen := make(map[string]struct{}, len(articles))
	out := make([]article.Article, 0, len(articles))
	for _, a := range articles {
		key := a.Key()
		if _, dup := seen[key]; dup {
			metrics.Global.IncrementDuplicatesFiltered()
			continue
		}
		seen[key] = struct{}{}
		out = append(out, a)
	}
	return out
}
