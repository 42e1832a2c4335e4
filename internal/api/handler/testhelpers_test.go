package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/iconidentify/postcraft/internal/domain"
	"github.com/iconidentify/postcraft/internal/history"
	"github.com/iconidentify/postcraft/internal/service"
)

// testLogger returns a silent logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockBlogService is a test implementation of BlogProcessor.
type mockBlogService struct {
	result     *service.ProcessResult
	processErr error
	lastReq    service.ProcessRequest

	image       domain.ImageResult
	imageErr    error
	imagePrompt string
	imageKey    string
}

func (m *mockBlogService) Process(ctx context.Context, req service.ProcessRequest) (*service.ProcessResult, error) {
	m.lastReq = req
	if m.processErr != nil {
		return nil, m.processErr
	}
	return m.result, nil
}

func (m *mockBlogService) GenerateImage(ctx context.Context, prompt, keyOverride string) (domain.ImageResult, error) {
	m.imagePrompt, m.imageKey = prompt, keyOverride
	return m.image, m.imageErr
}

// mockSettingsStore is an in-memory SettingsStore.
type mockSettingsStore struct {
	mu        sync.Mutex
	settings  domain.Settings
	updateErr error
}

func newMockSettingsStore() *mockSettingsStore {
	return &mockSettingsStore{settings: domain.DefaultSettings()}
}

func (m *mockSettingsStore) Get() domain.Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings.Clone()
}

func (m *mockSettingsStore) Masked() domain.Settings {
	return m.Get().Masked()
}

func (m *mockSettingsStore) Update(fn func(*domain.Settings)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	next := m.settings.Clone()
	fn(&next)
	m.settings = next
	return nil
}

// mockHistory is a fixed HistoryReader.
type mockHistory struct {
	entries   []history.Entry
	err       error
	lastLimit int
}

func (m *mockHistory) Recent(limit int) ([]history.Entry, error) {
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	if limit > 0 && len(m.entries) > limit {
		return m.entries[:limit], nil
	}
	return m.entries, nil
}

// staticKeys is a fixed KeyChecker.
type staticKeys struct {
	text  string
	image string
}

func (k staticKeys) TextKey(string) string  { return k.text }
func (k staticKeys) ImageKey(string) string { return k.image }

var errStorage = errors.New("storage unavailable")
