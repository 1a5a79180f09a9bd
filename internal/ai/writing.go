package ai

import (
	"context"
	"strings"
	"unicode/utf8"

	"inkwell/internal/model"
)

// Input caps keep prompts inside small context windows. Sentiment only
// needs the opening of a piece; the writing transformations get more.
const (
	maxSentimentInput = 2000
	maxWritingInput   = 4000
)

const (
	outlinePrompt = "You are an expert blog post outliner. Create a structured markdown " +
		"outline for a blog post with this title. Include an introduction, 3-5 key points, " +
		"and a conclusion."
	polishPrompt = "You are an expert editor. Rewrite the following text to be more " +
		"engaging, professional, and grammatically correct, while preserving the original " +
		"meaning. Return ONLY the rewritten text."
	suggestionsPrompt = "You are a writing coach. Analyze the following blog draft and " +
		"provide 3-5 actionable suggestions to improve it. Focus on clarity, engagement, " +
		"and structure. Format as a markdown list."
	summaryPrompt = "You are an expert content editor. Summarize the following blog post " +
		"into a concise, engaging summary sized to the content. Capture the main ideas " +
		"and the hooking element."
	sentimentPrompt = "Analyze the sentiment of this text. Return ONLY one word from " +
		"this list: Positive, Negative, Neutral, Inspiring, Informative."
)

// minSummaryLen: bodies shorter than this are their own summary.
const minSummaryLen = 50

// Service exposes the writing transformations and the derived-field
// helpers the record pipeline needs.
type Service struct {
	provider Provider
}

// NewService wraps a provider. A nil or unconfigured provider is legal;
// see the individual methods for how each degrades.
func NewService(p Provider) *Service {
	return &Service{provider: p}
}

func (s *Service) configured() bool {
	if s == nil || s.provider == nil {
		return false
	}
	if c, ok := s.provider.(*Client); ok {
		return c.Configured()
	}
	return true
}

// truncate caps text at limit bytes without splitting a rune.
func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	for limit > 0 && !utf8.RuneStart(text[limit]) {
		limit--
	}
	return text[:limit]
}

// Outline generates a markdown outline from a title. Fails when no
// provider is configured.
func (s *Service) Outline(ctx context.Context, title string) (string, error) {
	if !s.configured() {
		return "", ErrNotConfigured
	}
	return s.provider.ChatCompletion(ctx, outlinePrompt, truncate(title, maxWritingInput))
}

// Polish rewrites a draft body. The body may be HTML; chat models
// handle markup fine, so it is passed through untouched.
func (s *Service) Polish(ctx context.Context, body string) (string, error) {
	if !s.configured() {
		return "", ErrNotConfigured
	}
	return s.provider.ChatCompletion(ctx, polishPrompt, truncate(body, maxWritingInput))
}

// Suggestions produces writing advice for a draft, possibly an empty one.
func (s *Service) Suggestions(ctx context.Context, body string) (string, error) {
	if !s.configured() {
		return "", ErrNotConfigured
	}
	return s.provider.ChatCompletion(ctx, suggestionsPrompt, truncate(body, maxWritingInput))
}

// Summarize produces an abstract for a body. Short bodies are returned
// as-is; without a provider, or when the provider fails, it degrades to
// a truncated excerpt rather than failing record creation.
func (s *Service) Summarize(ctx context.Context, body string) string {
	if len(body) < minSummaryLen {
		return body
	}
	if !s.configured() {
		return excerpt(body)
	}
	out, err := s.provider.ChatCompletion(ctx, summaryPrompt, truncate(body, maxWritingInput))
	if err != nil || out == "" {
		return excerpt(body)
	}
	return out
}

// Sentiment classifies a body into one of the known labels. Any failure
// or unexpected reply degrades to Neutral.
func (s *Service) Sentiment(ctx context.Context, body string) string {
	if !s.configured() {
		return model.SentimentNeutral
	}
	out, err := s.provider.ChatCompletion(ctx, sentimentPrompt, truncate(body, maxSentimentInput))
	if err != nil {
		return model.SentimentNeutral
	}
	return model.NormalizeSentiment(out)
}

func excerpt(body string) string {
	const max = 200
	if len(body) <= max {
		return body
	}
	return strings.TrimSpace(truncate(body, max)) + "…"
}
