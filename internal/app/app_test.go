package app

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"newsdigest/internal/config"
)

type fakeCompleter struct {
	response string
	calls    int
}

func (f *fakeCompleter) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	return f.response, nil
}

func testConfig(t *testing.T, feedURLs ...string) *config.Config {
	t.Helper()

	yaml := "topics:\n  education:\n    india:\n"
	for i, u := range feedURLs {
		yaml += fmt.Sprintf("      - name: Feed %d\n        url: %s\n", i+1, u)
	}
	path := filepath.Join(t.TempDir(), "feeds.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	return &config.Config{
		Topic:           "education",
		Region:          "india",
		ContentType:     "general",
		BatchSize:       10,
		MinScore:        30,
		MaxArticles:     10,
		UsePrefilter:    true,
		FeedsConfigPath: path,
		RSSEntryCap:     200,
		RequestTimeout:  5 * time.Second,
		RetryAttempts:   2,
		RetryDelay:      time.Millisecond,
	}
}

// Two feeds publishing the same article must produce a single-entry digest
// with the full 80-point score.
func TestRunEndToEnd(t *testing.T) {
	const rssBody = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Feed</title>
<item><title>New education policy rolls out across India</title><link>https://news.example.in/policy</link><description>The policy takes effect this term.</description></item>
</channel></rss>`

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, rssBody)
	})
	srvA := httptest.NewServer(handler)
	defer srvA.Close()
	srvB := httptest.NewServer(handler)
	defer srvB.Close()

	cfg := testConfig(t, srvA.URL, srvB.URL)
	completer := &fakeCompleter{response: `[{"is_relevant": true, "region": "India", "content_type": "General", "reasoning": "education policy"}]`}

	report, err := Run(context.Background(), cfg, completer)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.Outcome != OutcomeOK {
		t.Fatalf("Outcome = %q, want %q", report.Outcome, OutcomeOK)
	}
	if report.Fetched != 1 {
		t.Errorf("Fetched = %d, want 1 (duplicate collapsed)", report.Fetched)
	}
	if report.Ranked != 1 || len(report.Articles) != 1 {
		t.Fatalf("Ranked = %d, want 1", report.Ranked)
	}
	if got := report.Articles[0].Classification.RelevanceScore; got != 80 {
		t.Errorf("RelevanceScore = %d, want 80", got)
	}
	if completer.calls != 1 {
		t.Errorf("expected exactly 1 batch call, got %d", completer.calls)
	}
}

func TestRunNoArticlesFetched(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer broken.Close()

	cfg := testConfig(t, broken.URL)
	completer := &fakeCompleter{}

	report, err := Run(context.Background(), cfg, completer)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Outcome != OutcomeNoArticles {
		t.Errorf("Outcome = %q, want %q", report.Outcome, OutcomeNoArticles)
	}
	if completer.calls != 0 {
		t.Errorf("no LLM calls expected, got %d", completer.calls)
	}
}

func TestRunNoneClassified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Feed</title>
<item><title>Local cricket tournament wraps up season</title><link>https://news.example.in/cricket</link></item>
</channel></rss>`)
	}))
	defer srv.Close()

	cfg := testConfig(t, srv.URL)
	completer := &fakeCompleter{response: "garbage the parser cannot read"}

	report, err := Run(context.Background(), cfg, completer)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Outcome != OutcomeNoneClassified {
		t.Errorf("Outcome = %q, want %q", report.Outcome, OutcomeNoneClassified)
	}
}

func TestRunNoMatches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Feed</title>
<item><title>Global summit debates education funding</title><link>https://news.example.in/summit</link></item>
</channel></rss>`)
	}))
	defer srv.Close()

	cfg := testConfig(t, srv.URL)
	// Relevant but classified under the wrong region for the criteria.
	completer := &fakeCompleter{response: `[{"is_relevant": true, "region": "Global", "content_type": "general", "reasoning": "funding"}]`}

	report, err := Run(context.Background(), cfg, completer)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Outcome != OutcomeNoMatches {
		t.Errorf("Outcome = %q, want %q", report.Outcome, OutcomeNoMatches)
	}
	if report.Classified != 1 {
		t.Errorf("Classified = %d, want 1", report.Classified)
	}
}
