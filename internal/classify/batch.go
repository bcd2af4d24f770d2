// Package classify drives the LLM classification stage: region pre-filter,
// prompt batching, batch calls, response decoding and scoring.
package classify

import (
	"fmt"
	"os"
	"strings"

	"newsdigest/internal/article"
)

const (
	articlesPlaceholder = "{{articles_block}}"
	topicPlaceholder    = "{{topic}}"
)

// defaultPromptTemplate is used when no template file is configured. A file
// template must carry the same two placeholders.
const defaultPromptTemplate = `You are a news classifier. For each article below, decide whether it matches the topic "` + topicPlaceholder + `".

` + articlesPlaceholder + `

Respond with a JSON array only, one object per article, in the same order as the articles above. Each object must have exactly these fields:
- "is_relevant": boolean, true when the article matches the topic "` + topicPlaceholder + `"
- "region": string, the geographic region the article concerns (e.g. "India", "Global")
- "content_type": string, "general" or "sensitive"
- "reasoning": string, one short sentence explaining the decision

Do not wrap the array in markdown fences or add any other text.`

// LoadPromptTemplate reads the template file, falling back to the built-in
// default when the path is empty or the file does not exist.
func LoadPromptTemplate(path string) (string, error) {
	if path == "" {
		return defaultPromptTemplate, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultPromptTemplate, nil
		}
		return "", fmt.Errorf("read prompt template %s: %w", path, err)
	}
	tpl := string(raw)
	if !strings.Contains(tpl, articlesPlaceholder) || !strings.Contains(tpl, topicPlaceholder) {
		return "", fmt.Errorf("prompt template %s is missing %s or %s", path, articlesPlaceholder, topicPlaceholder)
	}
	return tpl, nil
}

// BuildBatches splits articles into contiguous slices of at most batchSize,
// covering the input exactly once in order. The last batch may be shorter.
func BuildBatches(articles []article.Article, batchSize int) [][]article.Article {
	if batchSize <= 0 || len(articles) == 0 {
		return nil
	}
	batches := make([][]article.Article, 0, (len(articles)+batchSize-1)/batchSize)
	for start := 0; start < len(articles); start += batchSize {
		end := start + batchSize
		if end > len(articles) {
			end = len(articles)
		}
		batches = append(batches, articles[start:end])
	}
	return batches
}

// RenderPrompt turns one batch into the prompt text: numbered article blocks
// substituted into the template placeholders.
func RenderPrompt(batch []article.Article, topic, template string) string {
	blocks := make([]string, 0, len(batch))
	for i, a := range batch {
		blocks = append(blocks, fmt.Sprintf("[ARTICLE %d]\nTitle: %s\nSummary: %s", i+1, strings.TrimSpace(a.Title), strings.TrimSpace(a.Summary)))
	}
	combined := strings.Join(blocks, "\n\n")

	prompt := strings.ReplaceAll(template, articlesPlaceholder, combined)
	return strings.ReplaceAll(prompt, topicPlaceholder, topic)
}
