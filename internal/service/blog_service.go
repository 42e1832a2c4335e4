package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/iconidentify/postcraft/internal/domain"
	"github.com/iconidentify/postcraft/internal/history"
)

const blogSummaryChars = 500

// ProcessRequest is one blog-to-post conversion.
type ProcessRequest struct {
	URL      string
	Platform string
	// TextKey and ImageKey override the configured keys when set.
	TextKey       string
	ImageKey      string
	GenerateImage bool
}

// ProcessResult holds everything produced for a blog.
type ProcessResult struct {
	RunID       string
	Content     domain.BlogContent
	Platform    domain.Platform
	Post        domain.PostResult
	ImagePrompt domain.ImagePrompt
	// Image is nil unless generation was requested and an image key resolved.
	Image *domain.ImageResult
}

// Summary returns the start of the blog text followed by an ellipsis.
func (r *ProcessResult) Summary() string {
	return r.Content.Excerpt(blogSummaryChars) + "..."
}

// BlogService orchestrates extract, post generation, image prompt and image.
type BlogService struct {
	extractor ContentExtractor
	text      TextGenerator
	prompts   *ImagePromptService
	images    *ImageService
	keys      KeyResolver
	history   RunRecorder
	logger    *slog.Logger
}

// NewBlogService creates a new blog service. recorder may be nil.
func NewBlogService(
	extractor ContentExtractor,
	text TextGenerator,
	prompts *ImagePromptService,
	images *ImageService,
	keys KeyResolver,
	recorder RunRecorder,
	logger *slog.Logger,
) *BlogService {
	return &BlogService{
		extractor: extractor,
		text:      text,
		prompts:   prompts,
		images:    images,
		keys:      keys,
		history:   recorder,
		logger:    logger,
	}
}

// Process runs the full pipeline for one blog. Only missing input and
// extraction failures are returned as errors; model and image failures are
// reported inside the result.
func (s *BlogService) Process(ctx context.Context, req ProcessRequest) (*ProcessResult, error) {
	url := strings.TrimSpace(req.URL)
	if url == "" {
		return nil, domain.ErrMissingURL
	}

	textKey := s.keys.TextKey(strings.TrimSpace(req.TextKey))
	if textKey == "" {
		return nil, domain.ErrMissingTextKey
	}
	imageKey := s.keys.ImageKey(strings.TrimSpace(req.ImageKey))

	platform := domain.ParsePlatform(req.Platform)
	entry := history.Entry{
		ID:             history.NewID(),
		URL:            url,
		Platform:       platform.String(),
		ImageRequested: req.GenerateImage,
	}
	started := time.Now()

	logger := s.logger.With("run_id", entry.ID, "platform", platform)
	logger.Info("processing blog",
		"url", url,
		"generate_image", req.GenerateImage,
		"image_key_present", imageKey != "",
	)

	content, err := s.extractor.Extract(ctx, url)
	if err != nil {
		logger.Warn("blog extraction failed", "url", url, "error", err)
		entry.Status = history.StatusExtractionFailed
		entry.Error = err.Error()
		s.record(entry, started)
		return nil, err
	}

	post := s.GeneratePost(ctx, textKey, platform, content, url)
	if post.Failed() {
		logger.Warn("post generation failed", "error", post.Error)
	}

	result := &ProcessResult{
		RunID:       entry.ID,
		Content:     content,
		Platform:    platform,
		Post:        post,
		ImagePrompt: s.prompts.Build(ctx, textKey, content, post.ImageDescription()),
	}

	if req.GenerateImage && imageKey != "" {
		img := s.images.Generate(ctx, imageKey, result.ImagePrompt.Detailed)
		result.Image = &img
		entry.ImageGenerated = img.Success
	}

	entry.Status = history.StatusSuccess
	if post.Failed() {
		entry.Status = history.StatusGenerationFailed
		entry.Error = post.Error
	}
	s.record(entry, started)

	logger.Info("blog processed",
		"post_failed", post.Failed(),
		"image_generated", entry.ImageGenerated,
		"duration", time.Since(started),
	)
	return result, nil
}

// GeneratePost drafts a post for platform from content. Upstream failures
// are returned as a failed PostResult.
func (s *BlogService) GeneratePost(ctx context.Context, apiKey string, platform domain.Platform, content domain.BlogContent, blogURL string) domain.PostResult {
	req := BuildPostRequest(platform, content)
	req.APIKey = apiKey

	reply, err := s.text.Complete(ctx, req)
	if err != nil {
		return domain.PostResult{Error: err.Error()}
	}
	return domain.PostResult{Post: decodePost(platform, reply, blogURL)}
}

// GenerateImage creates an image for a caller-supplied prompt.
func (s *BlogService) GenerateImage(ctx context.Context, prompt, keyOverride string) (domain.ImageResult, error) {
	if strings.TrimSpace(prompt) == "" {
		return domain.ImageResult{}, domain.ErrMissingPrompt
	}
	key := s.keys.ImageKey(strings.TrimSpace(keyOverride))
	if key == "" {
		return domain.ImageResult{}, domain.ErrMissingImageKey
	}
	return s.images.Generate(ctx, key, prompt), nil
}

func (s *BlogService) record(entry history.Entry, started time.Time) {
	if s.history == nil {
		return
	}
	entry.DurationMS = time.Since(started).Milliseconds()
	if err := s.history.Record(entry); err != nil {
		s.logger.Warn("failed to record run history", "run_id", entry.ID, "error", err)
	}
}
