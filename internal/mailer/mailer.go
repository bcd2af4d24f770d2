// Package mailer delivers the ranked digest as an HTML email over SMTP.
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
	"time"

	"newsdigest/internal/logger"
)

// Config holds SMTP delivery settings.
type Config struct {
	Host       string
	Port       int
	From       string
	Password   string
	Recipients []string
}

// Item is one digest entry as rendered into the email body.
type Item struct {
	Title     string
	Link      string
	Summary   string
	Source    string
	ScoreInfo string
}

var digestTemplate = template.Must(template.New("digest").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: sans-serif; color: #1a1a1a; max-width: 680px; margin: 0 auto;">
  <h1 style="font-size: 24px;">Top {{len .Items}} {{.Topic}} articles</h1>
  {{range .Items}}
  <div style="border: 1px solid #e5e7eb; border-radius: 8px; padding: 16px; margin-bottom: 16px;">
    <h2 style="font-size: 18px; margin: 0 0 8px 0;"><a href="{{.Link}}">{{.Title}}</a></h2>
    {{if .Summary}}<p style="margin: 0 0 8px 0;">{{.Summary}}</p>{{end}}
    <p style="margin: 0; font-size: 13px; color: #6b7280;">{{.Source}}{{if .ScoreInfo}} &middot; {{.ScoreInfo}}{{end}}</p>
  </div>
  {{end}}
</body>
</html>`))

// Send emails the digest with bounded retries. No recipients is not an
// error: delivery is simply skipped.
func Send(cfg Config, topic string, items []Item) error {
	if len(cfg.Recipients) == 0 {
		logger.Warn("no email recipients configured, skipping delivery")
		return nil
	}

	msg, err := buildMessage(cfg, topic, items)
	if err != nil {
		return fmt.Errorf("build digest email: %w", err)
	}

	maxRetries := 3
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err = sendOnce(cfg, msg)
		if err == nil {
			logger.Info("digest email sent", "recipients", len(cfg.Recipients), "articles", len(items), "attempt", attempt)
			return nil
		}

		logger.Warn("email send failed", "attempt", attempt, "of", maxRetries, "error", err)
		if attempt < maxRetries {
			time.Sleep(time.Duration(1<<attempt) * time.Second)
		}
	}

	return fmt.Errorf("can't send digest after %d tries: %w", maxRetries, err)
}

func sendOnce(cfg Config, msg []byte) error {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	auth := smtp.PlainAuth("", cfg.From, cfg.Password, cfg.Host)
	return smtp.SendMail(addr, auth, cfg.From, cfg.Recipients, msg)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func buildMessage(cfg Config, topic string, items []Item) ([]byte, error) {
	var body bytes.Buffer
	data := struct {
		Topic string
		Items []Item
	}{Topic: titleCase(topic), Items: items}

	if err := digestTemplate.Execute(&body, data); err != nil {
		return nil, err
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(cfg.Recipients, ", "))
	fmt.Fprintf(&msg, "Subject: Top %d %s articles\r\n", len(items), titleCase(topic))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.Write(body.Bytes())
	return msg.Bytes(), nil
}
