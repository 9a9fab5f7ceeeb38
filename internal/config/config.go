package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth
	TendercraftAPIKey string

	// LLM connector
	LLMProvider     string // "anthropic" or "gemini"
	AnthropicAPIKey string
	AnthropicModel  string
	GeminiAPIKey    string
	GeminiModel     string

	// Project store connection
	ProjectstoreURL    string
	ProjectstoreAPIKey string

	// Upload limits
	MaxUploadBytes int64

	// Review prompt cap, in characters of draft text
	MaxReviewChars int

	// Session state
	SessionTTL time.Duration

	// Preview cache
	PreviewCacheSize int

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		TendercraftAPIKey: os.Getenv("TENDERCRAFT_API_KEY"),

		LLMProvider:     envOr("LLM_PROVIDER", "anthropic"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  envOr("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     envOr("GEMINI_MODEL", "gemini-2.0-flash"),

		ProjectstoreURL:    envOr("PROJECTSTORE_URL", "http://localhost:8080"),
		ProjectstoreAPIKey: os.Getenv("PROJECTSTORE_API_KEY"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		MaxReviewChars: envInt("MAX_REVIEW_CHARS", 20000),

		SessionTTL: envDuration("SESSION_TTL", 4*time.Hour),

		PreviewCacheSize: envInt("PREVIEW_CACHE_SIZE", 64),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.MaxReviewChars <= 0 {
		cfg.MaxReviewChars = 20000
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 4 * time.Hour
	}
	if cfg.PreviewCacheSize <= 0 {
		cfg.PreviewCacheSize = 64
	}

	return cfg
}

func (c Config) Validate() error {
	if c.TendercraftAPIKey == "" {
		return fmt.Errorf("TENDERCRAFT_API_KEY is required")
	}
	if c.ProjectstoreAPIKey == "" {
		return fmt.Errorf("PROJECTSTORE_API_KEY is required")
	}
	switch c.LLMProvider {
	case "anthropic":
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required for LLM_PROVIDER=anthropic")
		}
	case "gemini":
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for LLM_PROVIDER=gemini")
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER: %q", c.LLMProvider)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
