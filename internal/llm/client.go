// Package llm provides the connector to the external completion service.
// Clients are constructed explicitly from configuration and passed in by the
// caller — there is no ambient process-wide client.
package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dgallion1/tendercraft/internal/config"
)

// Client is a completion-service handle. Complete returns free text;
// CompleteJSON asks the model for a JSON document and returns the raw bytes
// for the caller to decode and validate.
type Client interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
	CompleteJSON(ctx context.Context, system, prompt string) (json.RawMessage, error)
	Name() string
	Stats() StatsSnapshot
	Close()
}

// NewClient constructs the provider selected by configuration.
func NewClient(ctx context.Context, cfg config.Config) (Client, error) {
	switch cfg.LLMProvider {
	case "anthropic":
		return NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicModel), nil
	case "gemini":
		return NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	default:
		return nil, fmt.Errorf("unknown llm provider: %q", cfg.LLMProvider)
	}
}
