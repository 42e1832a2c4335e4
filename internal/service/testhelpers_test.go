package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/iconidentify/postcraft/internal/domain"
	"github.com/iconidentify/postcraft/internal/downloader"
	"github.com/iconidentify/postcraft/internal/history"
	"github.com/iconidentify/postcraft/pkg/deepai"
	"github.com/iconidentify/postcraft/pkg/deepseek"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockTextGenerator answers by system prompt: post, image prompt or summary.
type mockTextGenerator struct {
	mu       sync.Mutex
	requests []deepseek.CompletionRequest

	postReply    string
	postErr      error
	detailReply  string
	detailErr    error
	summaryReply string
	summaryErr   error
}

func (m *mockTextGenerator) Complete(ctx context.Context, req deepseek.CompletionRequest) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	switch req.System {
	case imagePromptSystem:
		return m.detailReply, m.detailErr
	case summarySystem:
		return m.summaryReply, m.summaryErr
	default:
		return m.postReply, m.postErr
	}
}

func (m *mockTextGenerator) requestsFor(system string) []deepseek.CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []deepseek.CompletionRequest
	for _, r := range m.requests {
		if r.System == system {
			out = append(out, r)
		}
	}
	return out
}

// mockProvider replays scripted responses for each Submit call.
type mockProvider struct {
	mu       sync.Mutex
	variants int
	// respond returns the response for the nth call (0-based).
	respond func(call int, prompt string, variant int) (*deepai.Response, error)
	prompts  []string
	calls    []int
}

func (m *mockProvider) Variants() int {
	if m.variants == 0 {
		return len(deepai.HeaderVariants)
	}
	return m.variants
}

func (m *mockProvider) Submit(ctx context.Context, apiKey, prompt string, variant int) (*deepai.Response, error) {
	m.mu.Lock()
	call := len(m.calls)
	m.calls = append(m.calls, variant)
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()
	return m.respond(call, prompt, variant)
}

func (m *mockProvider) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// mockDownloader serves fixed bytes or an error.
type mockDownloader struct {
	data        []byte
	contentType string
	err         error
	urls        []string
}

func (m *mockDownloader) Fetch(ctx context.Context, url string) (*downloader.Result, error) {
	m.urls = append(m.urls, url)
	if m.err != nil {
		return nil, m.err
	}
	return &downloader.Result{Data: m.data, ContentType: m.contentType}, nil
}

// mockExtractor returns fixed content or an error.
type mockExtractor struct {
	content domain.BlogContent
	err     error
	urls    []string
}

func (m *mockExtractor) Extract(ctx context.Context, url string) (domain.BlogContent, error) {
	m.urls = append(m.urls, url)
	return m.content, m.err
}

// staticKeys resolves overrides first and then fixed keys.
type staticKeys struct {
	text  string
	image string
}

func (k staticKeys) TextKey(override string) string {
	if override != "" {
		return override
	}
	return k.text
}

func (k staticKeys) ImageKey(override string) string {
	if override != "" {
		return override
	}
	return k.image
}

// memoryRecorder keeps recorded history entries.
type memoryRecorder struct {
	mu      sync.Mutex
	entries []history.Entry
	err     error
}

func (r *memoryRecorder) Record(e history.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	return r.err
}

var errUpstream = errors.New("upstream unavailable")

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func imageResponse(url string) *deepai.Response {
	return &deepai.Response{StatusCode: 200, ImageURL: url, Raw: `{"output_url":"` + url + `"}`}
}

func errorResponse(text string) *deepai.Response {
	return &deepai.Response{StatusCode: 400, ErrorText: text, Raw: `{"err":"` + text + `"}`}
}
