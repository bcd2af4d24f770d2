package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"newsdigest/internal/feeds"
)

const rssTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <item>
      <title>%s</title>
      <link>%s</link>
      <description>%s</description>
    </item>
  </channel>
</rss>`

func rssServer(t *testing.T, title, link, description string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, rssTemplate, title, link, description)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func registryFor(t *testing.T, sources map[string]string) *feeds.Registry {
	t.Helper()
	yaml := "topics:\n  education:\n    india:\n"
	for name, url := range sources {
		yaml += fmt.Sprintf("      - name: %s\n        url: %s\n", name, url)
	}

	path := filepath.Join(t.TempDir(), "feeds.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := feeds.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestFetchDeduplicatesByTitleAndLink(t *testing.T) {
	title := "Board exam results announced for class ten"
	link := "https://news.example.in/results"

	srvA := rssServer(t, title, link, "Results are out.")
	srvB := rssServer(t, title, link, "Results are out.")

	registry := registryFor(t, map[string]string{"Feed A": srvA.URL, "Feed B": srvB.URL})
	f := New(registry, nil, 5*time.Second, 200)

	got := f.Fetch(context.Background(), "education", "india", nil)
	if len(got) != 1 {
		t.Fatalf("expected 1 article after dedup, got %d", len(got))
	}
	if got[0].Title != title || got[0].Link != link {
		t.Errorf("unexpected article: %+v", got[0])
	}
}

func TestFetchRejectsBadTitlesAndStripsMarkup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Feed</title>
<item><title>Short</title><link>https://a.example/1</link><description>too short title</description></item>
<item><title>Ministry unveils new school curriculum</title><link>https://a.example/2</link><description>&lt;p&gt;The &lt;b&gt;plan&lt;/b&gt; covers all states.&lt;/p&gt;</description></item>
</channel></rss>`)
	}))
	defer srv.Close()

	registry := registryFor(t, map[string]string{"Feed": srv.URL})
	f := New(registry, nil, 5*time.Second, 200)

	got := f.Fetch(context.Background(), "education", "india", nil)
	if len(got) != 1 {
		t.Fatalf("expected 1 article, got %d", len(got))
	}
	if got[0].Summary != "The plan covers all states." {
		t.Errorf("summary markup not stripped: %q", got[0].Summary)
	}
}

func TestFetchContinuesPastFailingFeed(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer broken.Close()

	good := rssServer(t, "University admissions open for fall term", "https://b.example/adm", "Admissions open.")

	registry := registryFor(t, map[string]string{"Broken": broken.URL, "Good": good.URL})
	f := New(registry, nil, 5*time.Second, 200)

	got := f.Fetch(context.Background(), "education", "india", nil)
	if len(got) != 1 {
		t.Fatalf("expected the good feed's article despite the broken feed, got %d", len(got))
	}
}

func TestFetchAppliesEntryCapBeforeAPIMerge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"><channel><title>Feed</title>`)
		for i := 0; i < 5; i++ {
			fmt.Fprintf(w, `<item><title>Education story number %d published today</title><link>https://c.example/%d</link></item>`, i, i)
		}
		fmt.Fprint(w, `</channel></rss>`)
	}))
	defer srv.Close()

	registry := registryFor(t, map[string]string{"Feed": srv.URL})
	f := New(registry, nil, 5*time.Second, 3)

	got := f.Fetch(context.Background(), "education", "india", nil)
	if len(got) != 3 {
		t.Fatalf("expected RSS cap of 3, got %d", len(got))
	}
}

func TestNewsAPISearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("q") != "education" || q.Get("language") != "en" || q.Get("pageSize") != "50" || q.Get("apiKey") != "test-key" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
  "status": "ok",
  "articles": [
    {
      "title": "National literacy mission expands to rural districts",
      "url": "https://api.example/a",
      "description": "Expansion announced.",
      "content": "Full content here.",
      "urlToImage": "https://api.example/images/a.jpg",
      "source": {"name": "Example Wire"}
    },
    {
      "title": "Bad",
      "url": "https://api.example/b",
      "description": "Title too short, must be dropped.",
      "urlToImage": "",
      "source": {"name": "Example Wire"}
    }
  ]
}`)
	}))
	defer srv.Close()

	client := NewNewsAPIClient(srv.URL, "test-key", 50, 5*time.Second)
	got, err := client.Search(context.Background(), "education")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 article, got %d", len(got))
	}

	a := got[0]
	if a.Source != "NewsAPI - Example Wire" {
		t.Errorf("unexpected source label %q", a.Source)
	}
	if a.ImageURL != "https://api.example/images/a.jpg" {
		t.Errorf("unexpected image %q", a.ImageURL)
	}
	if a.RawContent != "Full content here." {
		t.Errorf("unexpected raw content %q", a.RawContent)
	}
}

func TestNewsAPISearchNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status":"error"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewNewsAPIClient(srv.URL, "bad-key", 50, 5*time.Second)
	if _, err := client.Search(context.Background(), "education"); err == nil {
		t.Error("expected error on non-200 response")
	}
}

func TestFetchMergesAPIResultsAfterRSS(t *testing.T) {
	rss := rssServer(t, "State announces teacher recruitment drive", "https://d.example/rss", "From RSS.")
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"ok","articles":[{"title":"Education budget allocations revised upward","url":"https://d.example/api","description":"From API.","source":{"name":"Wire"}}]}`)
	}))
	defer api.Close()

	registry := registryFor(t, map[string]string{"Feed": rss.URL})
	client := NewNewsAPIClient(api.URL, "key", 50, 5*time.Second)
	f := New(registry, client, 5*time.Second, 200)

	got := f.Fetch(context.Background(), "education", "india", nil)
	if len(got) != 2 {
		t.Fatalf("expected RSS + API articles, got %d", len(got))
	}
	if got[0].Link != "https://d.example/rss" || got[1].Link != "https://d.example/api" {
		t.Errorf("expected RSS results before API results, got %+v", got)
	}
}
