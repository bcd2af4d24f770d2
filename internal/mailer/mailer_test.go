package mailer

import (
	"strings"
	"testing"
)

func TestBuildMessage(t *testing.T) {
	cfg := Config{
		Host:       "smtp.example.com",
		Port:       587,
		From:       "digest@example.com",
		Recipients: []string{"a@example.com", "b@example.com"},
	}
	items := []Item{
		{
			Title:     "[80/100] Board exam results announced",
			Link:      "https://news.example.in/results",
			Summary:   "Results are out.",
			Source:    "RSS Feed - news.example.in",
			ScoreInfo: "Relevance Score: 80/100",
		},
	}

	msg, err := buildMessage(cfg, "education", items)
	if err != nil {
		t.Fatalf("buildMessage() error = %v", err)
	}
	body := string(msg)

	for _, want := range []string{
		"From: digest@example.com\r\n",
		"To: a@example.com, b@example.com\r\n",
		"Subject: Top 1 Education articles\r\n",
		"Content-Type: text/html",
		`<a href="https://news.example.in/results">[80/100] Board exam results announced</a>`,
		"Relevance Score: 80/100",
		"RSS Feed - news.example.in",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("message missing %q", want)
		}
	}
}

func TestBuildMessageEscapesHTMLInFields(t *testing.T) {
	cfg := Config{From: "digest@example.com", Recipients: []string{"a@example.com"}}
	items := []Item{{Title: `<script>alert("x")</script>`, Link: "https://example.com"}}

	msg, err := buildMessage(cfg, "education", items)
	if err != nil {
		t.Fatalf("buildMessage() error = %v", err)
	}
	if strings.Contains(string(msg), "<script>") {
		t.Error("article fields must be HTML-escaped in the digest body")
	}
}

func TestSendSkipsWithoutRecipients(t *testing.T) {
	if err := Send(Config{}, "education", nil); err != nil {
		t.Errorf("Send() with no recipients should be a no-op, got %v", err)
	}
}
