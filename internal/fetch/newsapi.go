package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"newsdigest/internal/article"
)

// NewsAPIClient queries the news-search API "everything" endpoint.
type NewsAPIClient struct {
	baseURL    string
	apiKey     string
	pageSize   int
	httpClient *http.Client
}

func NewNewsAPIClient(baseURL, apiKey string, pageSize int, timeout time.Duration) *NewsAPIClient {
	return &NewsAPIClient{
		baseURL:  baseURL,
		apiKey:   apiKey,
		pageSize: pageSize,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type newsAPIResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Title       string `json:"title"`
		URL         string `json:"url"`
		Description string `json:"description"`
		Content     string `json:"content"`
		URLToImage  string `json:"urlToImage"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// Search fetches English-language hits for the topic and maps them through
// the same title normalization as the RSS path. The image field is validated
// directly; there is no markup to scan.
func (c *NewsAPIClient) Search(ctx context.Context, topic string) ([]article.Article, error) {
	q := url.Values{}
	q.Set("q", topic)
	q.Set("language", "en")
	q.Set("pageSize", strconv.Itoa(c.pageSize))
	q.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news api request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("news api error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var data newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode news api response: %w", err)
	}

	articles := make([]article.Article, 0, len(data.Articles))
	for _, item := range data.Articles {
		title := NormalizeTitle(item.Title)
		if title == "" {
			continue
		}

		imageURL := ""
		if ValidImageURL(item.URLToImage) {
			imageURL = item.URLToImage
		}

		sourceName := item.Source.Name
		if sourceName == "" {
			sourceName = "Unknown"
		}

		articles = append(articles, article.Article{
			Title:      title,
			Link:       item.URL,
			Summary:    item.Description,
			RawContent: item.Content,
			ImageURL:   imageURL,
			Source:     "NewsAPI - " + sourceName,
		})
	}
	return articles, nil
}
