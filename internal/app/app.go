// Package app wires the pipeline stages into one digest run.
package app

import (
	"context"
	"fmt"
	"time"

	"newsdigest/internal/article"
	"newsdigest/internal/classify"
	"newsdigest/internal/config"
	"newsdigest/internal/feeds"
	"newsdigest/internal/fetch"
	"newsdigest/internal/logger"
	"newsdigest/internal/mailer"
	"newsdigest/internal/metrics"
	"newsdigest/internal/rank"
	"newsdigest/internal/ratelimit"
)

// Outcome distinguishes an empty digest from a crash: every empty stage has
// its own value so callers can present a proper "no results" message.
type Outcome string

const (
	OutcomeOK             Outcome = "ok"
	OutcomeNoArticles     Outcome = "no_articles_fetched"
	OutcomeNoneClassified Outcome = "none_classified"
	OutcomeNoMatches      Outcome = "no_matches"
)

// Report summarizes one run.
type Report struct {
	Outcome    Outcome
	Fetched    int
	Classified int
	Ranked     int
	Duration   time.Duration
	Articles   []article.Article
}

// Run executes fetch → classify → rank → deliver. The completer is injected
// so the LLM transport stays swappable; cfg is the only other input. An
// empty result at any stage is an outcome, not an error.
func Run(ctx context.Context, cfg *config.Config, completer classify.Completer) (*Report, error) {
	start := time.Now()
	report := &Report{}
	defer func() {
		report.Duration = time.Since(start)
		metrics.Global.RecordRun(report.Duration)
	}()

	registry, err := feeds.Load(cfg.FeedsConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load feed registry: %w", err)
	}

	promptTemplate, err := classify.LoadPromptTemplate(cfg.PromptPath)
	if err != nil {
		return nil, fmt.Errorf("load prompt template: %w", err)
	}

	var api *fetch.NewsAPIClient
	if cfg.NewsAPIKey != "" {
		api = fetch.NewNewsAPIClient(cfg.NewsAPIBaseURL, cfg.NewsAPIKey, cfg.NewsAPIPageSize, cfg.RequestTimeout)
	}

	fetcher := fetch.New(registry, api, cfg.RequestTimeout, cfg.RSSEntryCap)

	logger.Info("fetching articles", "topic", cfg.Topic, "region", cfg.Region)
	fetched := fetcher.Fetch(ctx, cfg.Topic, cfg.Region, cfg.CustomSources)
	report.Fetched = len(fetched)
	if len(fetched) == 0 {
		logger.Warn("no articles fetched, nothing to classify")
		report.Outcome = OutcomeNoArticles
		return report, nil
	}

	limiter := ratelimit.New(cfg.MaxLLMRequests, cfg.BatchDelay)
	classified := classify.Run(ctx, completer, limiter, fetched, classify.Options{
		Topic:          cfg.Topic,
		Region:         cfg.Region,
		BatchSize:      cfg.BatchSize,
		MinScore:       cfg.MinScore,
		UsePrefilter:   cfg.UsePrefilter,
		PromptTemplate: promptTemplate,
		RetryAttempts:  cfg.RetryAttempts,
		RetryDelay:     cfg.RetryDelay,
	})
	report.Classified = len(classified)
	if len(classified) == 0 {
		logger.Warn("no articles passed classification and scoring")
		report.Outcome = OutcomeNoneClassified
		return report, nil
	}

	ranked := rank.Rank(classified, rank.Criteria{Region: cfg.Region, ContentType: cfg.ContentType}, cfg.MaxArticles)
	report.Ranked = len(ranked)
	report.Articles = ranked
	metrics.Global.AddArticlesRanked(len(ranked))
	if len(ranked) == 0 {
		logger.Warn("no articles matched the user criteria", "region", cfg.Region, "content_type", cfg.ContentType)
		report.Outcome = OutcomeNoMatches
		return report, nil
	}
	report.Outcome = OutcomeOK

	logScoreAnalytics(ranked)

	if err := deliver(cfg, ranked); err != nil {
		// Delivery failure still leaves a usable report; surface but don't abort.
		logger.Error("digest delivery failed", "error", err)
	}

	return report, nil
}

func deliver(cfg *config.Config, ranked []article.Article) error {
	items := make([]mailer.Item, 0, len(ranked))
	for _, a := range ranked {
		c := a.Classification
		items = append(items, mailer.Item{
			Title:     fmt.Sprintf("[%d/100] %s", c.RelevanceScore, a.Title),
			Link:      a.Link,
			Summary:   a.Summary,
			Source:    a.Source,
			ScoreInfo: fmt.Sprintf("Relevance Score: %d/100", c.RelevanceScore),
		})
	}

	err := mailer.Send(mailer.Config{
		Host:       cfg.SMTPHost,
		Port:       cfg.SMTPPort,
		From:       cfg.EmailFrom,
		Password:   cfg.EmailPassword,
		Recipients: cfg.Recipients,
	}, cfg.Topic, items)
	if err == nil && len(cfg.Recipients) > 0 {
		metrics.Global.IncrementEmailsSent()
	}
	return err
}

func logScoreAnalytics(ranked []article.Article) {
	high, low, sum := 0, 100, 0
	for _, a := range ranked {
		s := a.Classification.RelevanceScore
		if s > high {
			high = s
		}
		if s < low {
			low = s
		}
		sum += s
	}
	logger.Info("score analytics",
		"articles", len(ranked),
		"highest", high,
		"lowest", low,
		"average", fmt.Sprintf("%.1f", float64(sum)/float64(len(ranked))),
	)
}
