package domain

import "errors"

// Domain errors.
var (
	// ErrMissingURL is returned when a process request has no blog URL.
	ErrMissingURL = errors.New("URL is required")

	// ErrMissingPrompt is returned when an image request has no prompt.
	ErrMissingPrompt = errors.New("Prompt is required")

	// ErrMissingTextKey is returned when no text generation key can be resolved.
	ErrMissingTextKey = errors.New("DeepSeek API key is required. Please set DEEPSEEK_API_KEY in .env")

	// ErrMissingImageKey is returned when no image generation key can be resolved.
	ErrMissingImageKey = errors.New("DeepAI API key is required. Please set DEEPAI_API_KEY in .env")

	// ErrExtractionFailed is returned when the blog could not be fetched or parsed.
	ErrExtractionFailed = errors.New("Error fetching blog")

	// ErrImageDownload is returned when a generated image cannot be downloaded.
	ErrImageDownload = errors.New("Failed to download generated image")
)
