package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/iconidentify/postcraft/internal/domain"
	"github.com/iconidentify/postcraft/internal/service"
)

// mockImageBase64 is a 1x1 transparent PNG.
const mockImageBase64 = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR4nGNgYAAAAAMAAWgmWQ0AAAAASUVORK5CYII="

// BlogProcessor runs the blog pipeline.
type BlogProcessor interface {
	Process(ctx context.Context, req service.ProcessRequest) (*service.ProcessResult, error)
	GenerateImage(ctx context.Context, prompt, keyOverride string) (domain.ImageResult, error)
}

// BlogHandler handles post and image generation requests.
type BlogHandler struct {
	blogSvc BlogProcessor
	logger  *slog.Logger
}

// NewBlogHandler creates a new blog handler.
func NewBlogHandler(blogSvc BlogProcessor, logger *slog.Logger) *BlogHandler {
	return &BlogHandler{
		blogSvc: blogSvc,
		logger:  logger,
	}
}

// ProcessRequest is the JSON request body for /api/process.
type ProcessRequest struct {
	URL           string `json:"url"`
	Platform      string `json:"platform"`
	DeepSeekKey   string `json:"deepseek_key,omitempty"`
	DeepAIKey     string `json:"deepai_key,omitempty"`
	GenerateImage Flag   `json:"generate_image"`
}

// Flag is a request boolean that also accepts numbers and strings: 0, "",
// "false", "0" and null are false; other numbers, strings and non-empty
// arrays or objects are true.
type Flag bool

// UnmarshalJSON implements json.Unmarshaler. It never fails.
func (f *Flag) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		*f = false
		return nil
	}
	switch x := v.(type) {
	case bool:
		*f = Flag(x)
	case float64:
		*f = x != 0
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(x)); err == nil {
			*f = Flag(b)
		} else {
			*f = x != ""
		}
	case []any:
		*f = len(x) > 0
	case map[string]any:
		*f = len(x) > 0
	default:
		*f = false
	}
	return nil
}

// ProcessResponse is returned by /api/process. Only the *_post field that
// matches Platform is non-null; it carries {"error": ...} when generation
// failed.
type ProcessResponse struct {
	BlogSummary      string              `json:"blog_summary"`
	Platform         domain.Platform     `json:"platform"`
	PostContent      domain.PostResult   `json:"post_content"`
	InstagramPost    *domain.PostResult  `json:"instagram_post"`
	FacebookPost     *domain.PostResult  `json:"facebook_post"`
	PinterestPost    *domain.PostResult  `json:"pinterest_post"`
	ImagePrompt      string              `json:"image_prompt"`
	ImagePromptShort string              `json:"image_prompt_short"`
	Success          bool                `json:"success"`
	ImageGeneration  *domain.ImageResult `json:"image_generation,omitempty"`
}

// GenerateImageRequest is the JSON request body for /api/generate_image.
type GenerateImageRequest struct {
	Prompt    string `json:"prompt"`
	DeepAIKey string `json:"deepai_key,omitempty"`
}

// Process handles POST /api/process
func (h *BlogHandler) Process(w http.ResponseWriter, r *http.Request) {
	var req ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.blogSvc.Process(r.Context(), service.ProcessRequest{
		URL:           req.URL,
		Platform:      req.Platform,
		TextKey:       req.DeepSeekKey,
		ImageKey:      req.DeepAIKey,
		GenerateImage: bool(req.GenerateImage),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingURL), errors.Is(err, domain.ErrMissingTextKey):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrExtractionFailed):
			writeError(w, http.StatusInternalServerError, err.Error())
		default:
			h.logger.Error("process failed", "url", req.URL, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to process blog")
		}
		return
	}

	writeJSON(w, http.StatusOK, ProcessResponse{
		BlogSummary:      result.Summary(),
		Platform:         result.Platform,
		PostContent:      result.Post,
		InstagramPost:    postFor(result, domain.PlatformInstagram),
		FacebookPost:     postFor(result, domain.PlatformFacebook),
		PinterestPost:    postFor(result, domain.PlatformPinterest),
		ImagePrompt:      result.ImagePrompt.Detailed,
		ImagePromptShort: result.ImagePrompt.Short,
		Success:          true,
		ImageGeneration:  result.Image,
	})
}

// postFor returns the post result when it was produced for platform.
func postFor(result *service.ProcessResult, platform domain.Platform) *domain.PostResult {
	if result.Platform != platform {
		return nil
	}
	return &result.Post
}

// GenerateImage handles POST /api/generate_image
func (h *BlogHandler) GenerateImage(w http.ResponseWriter, r *http.Request) {
	var req GenerateImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.blogSvc.GenerateImage(r.Context(), req.Prompt, req.DeepAIKey)
	if err != nil {
		if errors.Is(err, domain.ErrMissingPrompt) || errors.Is(err, domain.ErrMissingImageKey) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("generate image failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to generate image")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// MockImage handles GET /api/mock_image
func (h *BlogHandler) MockImage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.ImageResult{
		Success:     true,
		ImageBase64: mockImageBase64,
		ImageFormat: "png",
	})
}
