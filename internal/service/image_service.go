package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/iconidentify/postcraft/internal/domain"
	"github.com/iconidentify/postcraft/internal/downloader"
	"github.com/iconidentify/postcraft/pkg/deepai"
)

// imagePromptChars is the longest prompt sent to the image provider.
const imagePromptChars = 1000

// ImageService generates an image and returns it inline as base64.
type ImageService struct {
	provider   ImageProvider
	downloader downloader.Downloader
	logger     *slog.Logger
}

// NewImageService creates a new ImageService.
func NewImageService(provider ImageProvider, dl downloader.Downloader, logger *slog.Logger) *ImageService {
	return &ImageService{
		provider:   provider,
		downloader: dl,
		logger:     logger,
	}
}

// attempt is the outcome of one pass over all provider variants.
type attempt struct {
	result domain.ImageResult
	done   bool

	lastResp *deepai.Response
	lastErr  error
}

// Generate tries every provider variant with prompt. When none yields an
// image and the provider called the prompt unsafe, the prompt is sanitized
// and the variants are tried exactly once more.
func (s *ImageService) Generate(ctx context.Context, apiKey, prompt string) domain.ImageResult {
	if apiKey == "" {
		return domain.NewImageError("DeepAI API key is not configured")
	}

	first := s.tryVariants(ctx, apiKey, prompt)
	if first.done {
		return first.result
	}

	last := first
	if isUnsafe(first.lastResp) {
		sanitized := SanitizePrompt(prompt)
		s.logger.Info("image prompt rejected as unsafe, retrying sanitized",
			"sanitized_prompt", sanitized,
		)

		retry := s.tryVariants(ctx, apiKey, sanitized)
		if retry.done {
			return retry.result
		}
		last = retry
	}

	s.logger.Warn("image generation failed", "last_response", describeAttempt(last))
	return domain.NewImageError("DeepAI API error: " + describeAttempt(last))
}

func (s *ImageService) tryVariants(ctx context.Context, apiKey, prompt string) attempt {
	prompt = domain.Truncate(prompt, imagePromptChars)

	var a attempt
	for v := 0; v < s.provider.Variants(); v++ {
		resp, err := s.provider.Submit(ctx, apiKey, prompt, v)
		if err != nil {
			s.logger.Warn("image request failed", "variant", v, "error", err)
			a.lastResp, a.lastErr = nil, err
			continue
		}
		a.lastResp, a.lastErr = resp, nil

		s.logger.Debug("image provider response",
			"variant", v,
			"status", resp.StatusCode,
			"has_image", resp.ImageURL != "",
		)

		if resp.ImageURL == "" {
			continue
		}

		a.result = s.download(ctx, resp.ImageURL)
		a.done = true
		return a
	}
	return a
}

// download fetches the generated image. A failure ends the whole attempt.
func (s *ImageService) download(ctx context.Context, url string) domain.ImageResult {
	res, err := s.downloader.Fetch(ctx, url)
	if err != nil {
		s.logger.Error("failed to download generated image", "url", url, "error", err)
		return domain.NewImageError(fmt.Sprintf("%v: %v", domain.ErrImageDownload, err))
	}

	return domain.ImageResult{
		Success:     true,
		ImageURL:    url,
		ImageBase64: base64.StdEncoding.EncodeToString(res.Data),
		ImageFormat: imageFormat(res.Data, res.ContentType),
	}
}

// isUnsafe reports whether the provider rejected the prompt's content.
func isUnsafe(resp *deepai.Response) bool {
	return resp != nil && strings.Contains(strings.ToLower(resp.ErrorText), "unsafe")
}

func describeAttempt(a attempt) string {
	switch {
	case a.lastResp != nil:
		return a.lastResp.String()
	case a.lastErr != nil:
		return a.lastErr.Error()
	}
	return "no response"
}

// imageFormat sniffs the image type, trusting the bytes over the header.
func imageFormat(data []byte, contentType string) string {
	if f, ok := formatFromMIME(http.DetectContentType(data)); ok {
		return f
	}
	if f, ok := formatFromMIME(contentType); ok {
		return f
	}
	return "png"
}

func formatFromMIME(mime string) (string, bool) {
	mime = strings.TrimSpace(strings.SplitN(mime, ";", 2)[0])
	sub, ok := strings.CutPrefix(mime, "image/")
	if !ok || sub == "" {
		return "", false
	}
	return sub, true
}
