package tender

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/dgallion1/tendercraft/internal/llm"
)

// In-band placeholders returned when a collaborator call fails. These are
// document text, not errors: the caller never sees a failure.
const (
	DraftErrorPlaceholder  = "# Error generating draft"
	ReviewErrorPlaceholder = "Unable to generate review at this time."
	ChatErrorPlaceholder   = "Unable to respond at this moment."
)

// Service wraps the completion client with the tender call sites. Every
// operation recovers locally to a fixed fallback value; failures are logged
// for diagnostics only.
type Service struct {
	client         llm.Client
	catalog        *Catalog
	log            *slog.Logger
	maxReviewChars int
}

func NewService(client llm.Client, catalog *Catalog, log *slog.Logger, maxReviewChars int) *Service {
	if maxReviewChars <= 0 {
		maxReviewChars = 20000
	}
	return &Service{
		client:         client,
		catalog:        catalog,
		log:            log,
		maxReviewChars: maxReviewChars,
	}
}

// Catalog exposes the template/clause store for direct use by API handlers.
func (s *Service) Catalog() *Catalog {
	return s.catalog
}

// Analyze turns a conversation log into a typed analysis record. Transport
// failures, JSON parse failures, and schema mismatches all yield the fixed
// fallback record.
func (s *Service) Analyze(ctx context.Context, conversationLog string) Analysis {
	raw, err := s.completeJSONWithRetry(ctx, analysisSystem, BuildAnalysisPrompt(conversationLog))
	if err != nil {
		s.log.Warn("analysis call failed, using fallback", "error", err)
		return FallbackAnalysis()
	}
	a, err := decodeAnalysis(raw)
	if err != nil {
		s.log.Warn("analysis response malformed, using fallback", "error", err)
		return FallbackAnalysis()
	}
	if len(a.Structure) == 0 {
		a.Structure = s.catalog.Sections(a.Domain)
	}
	return a
}

// GenerateDraft produces the markdown tender body. On any failure the literal
// error placeholder is returned as the draft text.
func (s *Service) GenerateDraft(ctx context.Context, a Analysis, structure []string) string {
	clauses := s.catalog.Clauses(a.Domain)
	prompt := BuildDraftPrompt(a.Domain, a.RecommendedTemplate, a.KeyPoints, structure, clauses)

	text, err := s.completeWithRetry(ctx, draftSystem, prompt)
	if err != nil {
		s.log.Warn("draft generation failed, using placeholder", "error", err)
		return DraftErrorPlaceholder
	}
	return text
}

// Review asks for a role-based review of the draft. Only the first
// maxReviewChars bytes of the draft enter the prompt, truncated on a rune
// boundary so the model never receives a split UTF-8 sequence.
func (s *Service) Review(ctx context.Context, draftText, role string, domain Domain) string {
	if len(draftText) > s.maxReviewChars {
		cut := s.maxReviewChars
		for cut > 0 && !utf8.RuneStart(draftText[cut]) {
			cut--
		}
		draftText = draftText[:cut]
	}
	text, err := s.completeWithRetry(ctx, reviewSystem, BuildReviewPrompt(draftText, role, domain))
	if err != nil {
		s.log.Warn("review generation failed, using placeholder", "error", err)
		return ReviewErrorPlaceholder
	}
	return text
}

// Chat produces the next assistant turn for the conversation.
func (s *Service) Chat(ctx context.Context, history []Message) string {
	text, err := s.completeWithRetry(ctx, chatSystem, BuildChatPrompt(history))
	if err != nil {
		s.log.Warn("chat turn failed, using placeholder", "error", err)
		return ChatErrorPlaceholder
	}
	return text
}

func (s *Service) completeWithRetry(ctx context.Context, system, prompt string) (string, error) {
	var text string
	var lastErr error
	for attempt := range llm.MaxRetries {
		text, lastErr = s.client.Complete(ctx, system, prompt)
		if lastErr == nil || !llm.IsRetryable(lastErr) {
			break
		}
		s.log.Warn("retryable llm error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(llm.Backoff(attempt)):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return text, lastErr
}

func (s *Service) completeJSONWithRetry(ctx context.Context, system, prompt string) ([]byte, error) {
	var raw []byte
	var lastErr error
	for attempt := range llm.MaxRetries {
		raw, lastErr = s.client.CompleteJSON(ctx, system, prompt)
		if lastErr == nil || !llm.IsRetryable(lastErr) {
			break
		}
		s.log.Warn("retryable llm error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(llm.Backoff(attempt)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return raw, lastErr
}
