package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries every tunable of one digest run. It is constructed once in
// main and passed by parameter; no component reads the environment after Load.
type Config struct {
	// User filter
	Topic         string
	Region        string
	ContentType   string
	CustomSources []string // feed name filter, empty = all

	// Classification settings
	BatchSize      int
	MinScore       int
	MaxArticles    int
	UsePrefilter   bool
	MaxLLMRequests int           // per run, 0 = unlimited
	BatchDelay     time.Duration // pacing between LLM batch calls

	// Gemini settings
	GeminiAPIKey string
	GeminiModel  string

	// NewsAPI settings
	NewsAPIKey      string
	NewsAPIBaseURL  string
	NewsAPIPageSize int

	// RSS settings
	FeedsConfigPath string
	PromptPath      string
	RSSEntryCap     int

	// Email delivery
	SMTPHost      string
	SMTPPort      int
	EmailFrom     string
	EmailPassword string
	Recipients    []string

	// App settings
	Debug          bool
	RequestTimeout time.Duration
	RetryAttempts  int
	RetryDelay     time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		Topic:           "education",
		Region:          "india",
		ContentType:     "general",
		BatchSize:       10,
		MinScore:        30,
		MaxArticles:     10,
		UsePrefilter:    true,
		BatchDelay:      time.Second,
		GeminiModel:     "gemini-2.5-flash",
		NewsAPIBaseURL:  "https://newsapi.org/v2/everything",
		NewsAPIPageSize: 50,
		RSSEntryCap:     200,
		RequestTimeout:  30 * time.Second,
		RetryAttempts:   2,
		RetryDelay:      time.Second,
		SMTPHost:        "smtp.gmail.com",
		SMTPPort:        587,
	}

	// Load from environment
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.NewsAPIKey = os.Getenv("NEWS_API_KEY")
	cfg.EmailFrom = os.Getenv("EMAIL_FROM")
	cfg.EmailPassword = os.Getenv("EMAIL_PASSWORD")

	cfg.Topic = getEnvOrDefault("NEWS_TOPIC", cfg.Topic)
	cfg.Region = getEnvOrDefault("NEWS_REGION", cfg.Region)
	cfg.ContentType = getEnvOrDefault("NEWS_CONTENT_TYPE", cfg.ContentType)
	cfg.GeminiModel = getEnvOrDefault("GEMINI_MODEL", cfg.GeminiModel)
	cfg.NewsAPIBaseURL = getEnvOrDefault("NEWS_API_BASE_URL", cfg.NewsAPIBaseURL)
	cfg.FeedsConfigPath = getEnvOrDefault("FEEDS_CONFIG_PATH", "configs/feeds.yaml")
	cfg.PromptPath = getEnvOrDefault("FILTER_PROMPT_PATH", "configs/filter_prompt.txt")
	cfg.SMTPHost = getEnvOrDefault("SMTP_SERVER", cfg.SMTPHost)

	cfg.BatchSize = getEnvIntOrDefault("BATCH_SIZE", cfg.BatchSize)
	cfg.MinScore = getEnvIntOrDefault("MIN_SCORE", cfg.MinScore)
	cfg.MaxArticles = getEnvIntOrDefault("MAX_ARTICLES", cfg.MaxArticles)
	cfg.MaxLLMRequests = getEnvIntOrDefault("MAX_LLM_REQUESTS", cfg.MaxLLMRequests)
	cfg.NewsAPIPageSize = getEnvIntOrDefault("NEWS_API_PAGE_SIZE", cfg.NewsAPIPageSize)
	cfg.RSSEntryCap = getEnvIntOrDefault("RSS_ENTRY_CAP", cfg.RSSEntryCap)
	cfg.RetryAttempts = getEnvIntOrDefault("RETRY_ATTEMPTS", cfg.RetryAttempts)
	cfg.SMTPPort = getEnvIntOrDefault("SMTP_PORT", cfg.SMTPPort)

	if v := os.Getenv("BATCH_DELAY_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val >= 0 {
			cfg.BatchDelay = time.Duration(val) * time.Second
		}
	}
	if v := os.Getenv("RETRY_DELAY_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val >= 0 {
			cfg.RetryDelay = time.Duration(val) * time.Second
		}
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.RequestTimeout = time.Duration(val) * time.Second
		}
	}

	if v := os.Getenv("USE_PREFILTER"); v != "" {
		cfg.UsePrefilter = v == "true"
	}
	if os.Getenv("DEBUG") == "true" {
		cfg.Debug = true
	}

	cfg.CustomSources = splitList(os.Getenv("CUSTOM_SOURCES"))
	cfg.Recipients = splitList(os.Getenv("EMAIL_RECIPIENTS"))

	return cfg, cfg.Validate()
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.Topic == "" {
		return fmt.Errorf("NEWS_TOPIC must not be empty")
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("BATCH_SIZE must be positive, got %d", c.BatchSize)
	}
	if c.MinScore < 0 || c.MinScore > 100 {
		return fmt.Errorf("MIN_SCORE must be within [0,100], got %d", c.MinScore)
	}
	if c.MaxArticles <= 0 {
		return fmt.Errorf("MAX_ARTICLES must be positive, got %d", c.MaxArticles)
	}
	if len(c.Recipients) > 0 && (c.EmailFrom == "" || c.EmailPassword == "") {
		return fmt.Errorf("EMAIL_FROM and EMAIL_PASSWORD are required when EMAIL_RECIPIENTS is set")
	}
	return nil
}
