// Package deepai talks to the DeepAI text2img endpoint.
package deepai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/iconidentify/postcraft/internal/config"
)

// maxResponseBytes caps how much of a text2img reply is read.
const maxResponseBytes = 1 << 20

// HeaderVariants are the spellings of the API key header tried in order.
// DeepAI deployments have been seen to accept only one of them.
var HeaderVariants = []string{"Api-Key", "api-key", "Api-key"}

// Response is a decoded text2img reply.
type Response struct {
	StatusCode int
	// ImageURL is the first generated image URL, empty when none was returned.
	ImageURL string
	// ErrorText is taken from the err, error or status fields.
	ErrorText string
	// Raw is the reply body as received.
	Raw string
}

// String returns the raw reply for diagnostics.
func (r *Response) String() string {
	if r == nil {
		return "<nil>"
	}
	return r.Raw
}

// Client submits prompts to DeepAI.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new DeepAI client.
func NewClient(cfg config.DeepAIConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Variants returns the number of header spellings Submit accepts.
func (c *Client) Variants() int {
	return len(HeaderVariants)
}

// Submit posts prompt using the header spelling at index variant.
// Non-2xx replies are returned as a Response; only transport failures are errors.
func (c *Client) Submit(ctx context.Context, apiKey, prompt string, variant int) (*Response, error) {
	req, err := c.newRequest(ctx, apiKey, prompt, variant)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	out := parseResponse(body)
	out.StatusCode = resp.StatusCode
	return out, nil
}

func (c *Client) newRequest(ctx context.Context, apiKey, prompt string, variant int) (*http.Request, error) {
	if variant < 0 || variant >= len(HeaderVariants) {
		return nil, fmt.Errorf("header variant %d out of range", variant)
	}

	form := url.Values{"text": {prompt}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/text2img", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	// Assigned directly so the spelling is not canonicalized.
	req.Header[HeaderVariants[variant]] = []string{apiKey}
	return req, nil
}

func parseResponse(body []byte) *Response {
	out := &Response{Raw: string(body)}

	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return out
	}

	if u, ok := fields["output_url"].(string); ok && u != "" {
		out.ImageURL = u
	} else if u := firstString(fields["output"]); u != "" {
		out.ImageURL = u
	} else if u := firstString(fields["output_urls"]); u != "" {
		out.ImageURL = u
	}

	for _, key := range []string{"err", "error", "status"} {
		if text := truthyString(fields[key]); text != "" {
			out.ErrorText = text
			break
		}
	}
	return out
}

func firstString(v any) string {
	list, ok := v.([]any)
	if !ok || len(list) == 0 {
		return ""
	}
	s, _ := list[0].(string)
	return s
}

func truthyString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if !t {
			return ""
		}
		return "true"
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
