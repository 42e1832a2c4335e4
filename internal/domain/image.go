package domain

// ImagePrompt pairs a detailed AI-authored image description with a short
// phrase derived from it. Either may be empty.
type ImagePrompt struct {
	Detailed string
	Short    string
}

// ImageResult is the outcome of an image generation attempt.
// Exactly one of Success or Error is set.
type ImageResult struct {
	Success     bool   `json:"success,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	ImageBase64 string `json:"image_base64,omitempty"`
	ImageFormat string `json:"image_format,omitempty"`
	Error       string `json:"error,omitempty"`
}

// NewImageError creates a failed ImageResult.
func NewImageError(reason string) ImageResult {
	return ImageResult{Error: reason}
}

// Failed reports whether the result carries an error.
func (r ImageResult) Failed() bool {
	return !r.Success
}
