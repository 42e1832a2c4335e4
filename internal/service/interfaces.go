package service

import (
	"context"

	"github.com/iconidentify/postcraft/internal/domain"
	"github.com/iconidentify/postcraft/internal/history"
	"github.com/iconidentify/postcraft/pkg/deepai"
	"github.com/iconidentify/postcraft/pkg/deepseek"
)

// TextGenerator completes a single system + user prompt.
type TextGenerator interface {
	Complete(ctx context.Context, req deepseek.CompletionRequest) (string, error)
}

// ImageProvider submits a prompt to an image API. Providers that need to try
// several request shapes expose them as numbered variants.
type ImageProvider interface {
	Variants() int
	Submit(ctx context.Context, apiKey, prompt string, variant int) (*deepai.Response, error)
}

// ContentExtractor turns a blog URL into plain text.
type ContentExtractor interface {
	Extract(ctx context.Context, url string) (domain.BlogContent, error)
}

// KeyResolver picks the API keys used for a request.
type KeyResolver interface {
	TextKey(override string) string
	ImageKey(override string) string
}

// RunRecorder stores a summary of each processed blog.
type RunRecorder interface {
	Record(entry history.Entry) error
}
