package classify

import (
	"context"
	"time"

	"newsdigest/internal/article"
	"newsdigest/internal/gemini"
	"newsdigest/internal/logger"
	"newsdigest/internal/metrics"
	"newsdigest/internal/ratelimit"
	"newsdigest/internal/retry"
	"newsdigest/internal/score"
)

// Completer is the LLM completion transport. gemini.Client satisfies it;
// tests inject fakes.
type Completer interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Options carry the tunables of one classification run.
type Options struct {
	Topic          string
	Region         string
	BatchSize      int
	MinScore       int
	UsePrefilter   bool
	PromptTemplate string
	RetryAttempts  int
	RetryDelay     time.Duration

	// Sleep is passed to the retry loop; nil means real delays.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Run classifies articles in batches and keeps the ones scoring at or above
// the minimum. A batch whose call or parse fails is discarded whole — its
// articles receive no classification. Failures degrade to fewer results,
// never to an error.
func Run(ctx context.Context, completer Completer, limiter *ratelimit.Limiter, articles []article.Article, opts Options) []article.Article {
	if opts.UsePrefilter {
		before := len(articles)
		articles = PrefilterByRegion(articles, opts.Region)
		logger.Info("region pre-filter applied", "region", opts.Region, "before", before, "after", len(articles))
	}
	if len(articles) == 0 {
		logger.Warn("no articles left for classification")
		return nil
	}

	batches := BuildBatches(articles, opts.BatchSize)
	var kept []article.Article

	for i, batch := range batches {
		if err := limiter.Acquire(ctx); err != nil {
			logger.Warn("stopping classification early", "batch", i+1, "reason", err)
			break
		}

		logger.Info("classifying batch", "batch", i+1, "of", len(batches), "articles", len(batch))
		prompt := RenderPrompt(batch, opts.Topic, opts.PromptTemplate)

		responseText := callWithRetry(ctx, completer, prompt, opts)
		classifications, err := gemini.ParseBatchResponse(responseText, len(batch))
		if err != nil {
			logger.Warn("batch discarded", "batch", i+1, "error", err)
			metrics.Global.IncrementBatchesFailed()
			continue
		}
		metrics.Global.IncrementBatchesClassified()

		for j := range batch {
			c := classifications[j]
			c.RelevanceScore, c.ScoreBreakdown = score.Score(c, opts.Topic)
			batch[j].Classification = &c

			if c.RelevanceScore >= opts.MinScore {
				kept = append(kept, batch[j])
				logger.Debug("article kept", "title", batch[j].Title, "score", c.RelevanceScore)
			} else {
				logger.Debug("article below threshold", "title", batch[j].Title, "score", c.RelevanceScore)
			}
		}
	}

	metrics.Global.AddArticlesScored(len(kept))
	return kept
}

// callWithRetry performs the completion call with one bounded retry and
// returns empty text on final failure, which the caller treats as a failed
// batch.
func callWithRetry(ctx context.Context, completer Completer, prompt string, opts Options) string {
	var text string
	err := retry.Do(ctx, retry.Config{
		MaxAttempts: opts.RetryAttempts,
		Delay:       opts.RetryDelay,
		Sleep:       opts.Sleep,
	}, func() error {
		metrics.Global.IncrementLLMCalls()
		out, err := completer.Generate(ctx, prompt)
		if err != nil {
			return err
		}
		text = out
		return nil
	})
	if err != nil {
		logger.Warn("completion call failed", "error", err)
		return ""
	}
	return text
}
