package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/iconidentify/postcraft/internal/domain"
)

const defaultImageDescription = "Create an engaging, colorful image related to the blog topic"

// ImagePromptService turns a post's image description into a detailed
// generation prompt and a short phrase.
type ImagePromptService struct {
	text   TextGenerator
	logger *slog.Logger
}

// NewImagePromptService creates a new ImagePromptService.
func NewImagePromptService(text TextGenerator, logger *slog.Logger) *ImagePromptService {
	return &ImagePromptService{text: text, logger: logger}
}

// Build asks the model for a detailed prompt and then summarizes it.
// Model failures fall back to plain text, so both fields are always set.
func (s *ImagePromptService) Build(ctx context.Context, apiKey string, content domain.BlogContent, description string) domain.ImagePrompt {
	base := strings.TrimSpace(description)
	if base == "" {
		base = defaultImageDescription
	}

	req := BuildImagePromptRequest(content, base)
	req.APIKey = apiKey

	detailed, err := s.text.Complete(ctx, req)
	detailed = strings.TrimSpace(detailed)
	if err != nil || detailed == "" {
		if err != nil {
			s.logger.Warn("detailed image prompt failed, using description", "error", err)
		}
		detailed = "Create an image showing: " + base
	}

	return domain.ImagePrompt{
		Detailed: detailed,
		Short:    s.Summarize(ctx, apiKey, detailed),
	}
}

// Summarize reduces detailed to a short phrase, preferring the model and
// falling back to SummarizeFallback when the call fails.
func (s *ImagePromptService) Summarize(ctx context.Context, apiKey, detailed string) string {
	req := BuildSummaryRequest(detailed)
	req.APIKey = apiKey

	reply, err := s.text.Complete(ctx, req)
	if err != nil {
		s.logger.Warn("image prompt summary failed, using text fallback", "error", err)
		return SummarizeFallback(detailed)
	}
	return cleanSummary(reply)
}
