package metrics

import (
	"sync"
	"time"
)

// Metrics collects pipeline counters for one process. Exposed over the
// optional monitoring HTTP server.
type Metrics struct {
	mu sync.RWMutex

	// Counters
	FeedsFetched       int64
	FeedErrors         int64
	ArticlesFetched    int64
	DuplicatesFiltered int64
	LLMCalls           int64
	BatchesClassified  int64
	BatchesFailed      int64
	ArticlesScored     int64
	ArticlesRanked     int64
	EmailsSent         int64

	// Timings
	LastRunDuration time.Duration

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) AddFeedsFetched(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedsFetched += int64(n)
}

func (m *Metrics) IncrementFeedErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedErrors++
}

func (m *Metrics) AddArticlesFetched(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesFetched += int64(n)
}

func (m *Metrics) IncrementDuplicatesFiltered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered++
}

func (m *Metrics) IncrementLLMCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LLMCalls++
}

func (m *Metrics) IncrementBatchesClassified() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BatchesClassified++
}

func (m *Metrics) IncrementBatchesFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BatchesFailed++
}

func (m *Metrics) AddArticlesScored(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesScored += int64(n)
}

func (m *Metrics) AddArticlesRanked(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesRanked += int64(n)
}

func (m *Metrics) IncrementEmailsSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EmailsSent++
}

func (m *Metrics) RecordRun(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunDuration = duration
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"feeds_fetched":        m.FeedsFetched,
		"feed_errors":          m.FeedErrors,
		"articles_fetched":     m.ArticlesFetched,
		"duplicates_filtered":  m.DuplicatesFiltered,
		"llm_calls":            m.LLMCalls,
		"batches_classified":   m.BatchesClassified,
		"batches_failed":       m.BatchesFailed,
		"articles_scored":      m.ArticlesScored,
		"articles_ranked":      m.ArticlesRanked,
		"emails_sent":          m.EmailsSent,
		"last_run_duration_ms": m.LastRunDuration.Milliseconds(),
		"last_run_time":        m.LastRunTime.Format(time.RFC3339),
		"last_error_time":      m.LastErrorTime.Format(time.RFC3339),
		"last_error":           m.LastError,
		"is_healthy":           m.IsHealthy,
	}
}
