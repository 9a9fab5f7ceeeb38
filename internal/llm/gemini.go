package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	genai "google.golang.org/genai"
)

// GeminiClient is a thin wrapper around the official genai client.
type GeminiClient struct {
	cli   *genai.Client
	model string
	stats *latencyStats
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &GeminiClient{
		cli:   cli,
		model: model,
		stats: newLatencyStats(time.Hour),
	}, nil
}

func (g *GeminiClient) Name() string { return "Gemini:" + g.model }

func (g *GeminiClient) Stats() StatsSnapshot { return g.stats.Snapshot() }

func (g *GeminiClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	return g.generate(ctx, system, prompt, "")
}

// CompleteJSON requests application/json output from the model.
func (g *GeminiClient) CompleteJSON(ctx context.Context, system, prompt string) (json.RawMessage, error) {
	text, err := g.generate(ctx, system, prompt, "application/json")
	if err != nil {
		return nil, err
	}
	return json.RawMessage(stripCodeBlock(text)), nil
}

func (g *GeminiClient) generate(ctx context.Context, system, prompt, mimeType string) (string, error) {
	cfg := &genai.GenerateContentConfig{}
	if mimeType != "" {
		cfg.ResponseMIMEType = mimeType
	}
	if system != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: system}}}
	}

	start := time.Now()
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		cfg,
	)
	g.stats.Record(time.Since(start).Milliseconds())
	if err != nil {
		return "", fmt.Errorf("gemini api: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from model")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// Close releases resources. The genai client holds no connections that need
// explicit teardown.
func (g *GeminiClient) Close() {}
