// Package article holds the records that flow through one aggregation run.
package article

// Article is a single ingested news item. Created by the fetcher, enriched
// with a Classification after the LLM stage, read-only afterwards.
type Article struct {
	Title      string
	Link       string
	Summary    string // markup stripped
	RawContent string // original body as published, kept for prompt rendering
	ImageURL   string
	Source     string

	Classification *Classification
}

// Classification is the LLM's judgment about one article. The JSON tags match
// the shape the model is instructed to emit, one object per article in batch
// order. RelevanceScore and ScoreBreakdown are filled in by the scorer, never
// by the model.
type Classification struct {
	IsRelevant  bool   `json:"is_relevant"`
	Region      string `json:"region"`
	ContentType string `json:"content_type"`
	Reasoning   string `json:"reasoning"`

	RelevanceScore int    `json:"-"`
	ScoreBreakdown string `json:"-"`
}

// Key identifies an article for deduplication. First-seen wins within a run.
func (a Article) Key() string {
	return a.Title + "|" + a.Link
}
