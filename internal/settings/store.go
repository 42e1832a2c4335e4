// Package settings persists provider API keys in a single JSON file.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/iconidentify/postcraft/internal/domain"
	"github.com/iconidentify/postcraft/pkg/crypto"
)

// ErrSealedWithoutSecret is returned when the settings file is encrypted but
// no secret was configured.
var ErrSealedWithoutSecret = errors.New("settings file is encrypted; set SETTINGS_SECRET")

// Store is the single guarded accessor for saved settings. Reads are served
// from memory; every write replaces the file atomically.
type Store struct {
	path   string
	box    *crypto.Box
	logger *slog.Logger

	mu      sync.RWMutex
	current domain.Settings
}

// Open loads the settings file at path. A missing or malformed file yields
// defaults. box may be nil, in which case the file is plain JSON.
func Open(path string, box *crypto.Box, logger *slog.Logger) (*Store, error) {
	s := &Store{
		path:    path,
		box:     box,
		logger:  logger,
		current: domain.DefaultSettings(),
	}

	loaded, err := s.read()
	if err != nil {
		return nil, err
	}
	if loaded != nil {
		s.current = loaded.MergeDefaults()
	}
	return s, nil
}

// read returns nil settings when the file is absent or not valid JSON.
func (s *Store) read() (*domain.Settings, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read settings: %w", err)
	}

	if crypto.IsSealed(data) {
		if s.box == nil {
			return nil, ErrSealedWithoutSecret
		}
		data, err = s.box.Open(data)
		if err != nil {
			return nil, fmt.Errorf("open settings: %w", err)
		}
	}

	var saved domain.Settings
	if err := json.Unmarshal(data, &saved); err != nil {
		s.logger.Error("settings file is not valid JSON, using defaults",
			"path", s.path,
			"error", err,
		)
		return nil, nil
	}
	return &saved, nil
}

// Get returns a copy of the current settings.
func (s *Store) Get() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// Masked returns the current settings with every key masked.
func (s *Store) Masked() domain.Settings {
	return s.Get().Masked()
}

// Update applies fn to a copy of the settings and persists the result.
// The in-memory copy only changes when the write succeeds.
func (s *Store) Update(fn func(*domain.Settings)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current.Clone()
	fn(&next)
	next = next.MergeDefaults()

	if err := s.writeLocked(next); err != nil {
		return err
	}
	s.current = next
	return nil
}

func (s *Store) writeLocked(settings domain.Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if s.box != nil {
		data, err = s.box.Seal(data)
		if err != nil {
			return fmt.Errorf("seal settings: %w", err)
		}
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}

	tmp := filepath.Join(dir, "."+filepath.Base(s.path)+"."+uuid.New().String()[:8]+".tmp")
	// 0600: keys are secrets
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace settings: %w", err)
	}
	return nil
}

// KeyResolver picks the API key for a request: the request's own key first,
// then the environment, then saved settings.
type KeyResolver struct {
	store    *Store
	textEnv  string
	imageEnv string
}

// NewKeyResolver creates a KeyResolver. store may be nil.
func NewKeyResolver(store *Store, textEnv, imageEnv string) *KeyResolver {
	return &KeyResolver{store: store, textEnv: textEnv, imageEnv: imageEnv}
}

// TextKey resolves the text generation key.
func (r *KeyResolver) TextKey(override string) string {
	return r.resolve(override, r.textEnv, domain.CategoryTextAI, domain.ProviderDeepSeek)
}

// ImageKey resolves the image generation key.
func (r *KeyResolver) ImageKey(override string) string {
	return r.resolve(override, r.imageEnv, domain.CategoryImageAI, domain.ProviderDeepAI)
}

func (r *KeyResolver) resolve(override, env, category, provider string) string {
	if override != "" {
		return override
	}
	if env != "" {
		return env
	}
	if r.store == nil {
		return ""
	}
	saved := r.store.Get()
	if category == domain.CategoryTextAI {
		return saved.TextAI[provider]
	}
	return saved.ImageAI[provider]
}
