package handler

import (
	"bytes"
	"log/slog"
	"net/http"

	mw "github.com/iconidentify/postcraft/internal/api/middleware"
	"github.com/iconidentify/postcraft/internal/domain"
	"github.com/iconidentify/postcraft/pkg/ui"
)

// SettingsStore reads and replaces saved provider keys.
type SettingsStore interface {
	Get() domain.Settings
	Masked() domain.Settings
	Update(fn func(*domain.Settings)) error
}

// SettingsHandler serves the provider key settings page and API.
type SettingsHandler struct {
	store  SettingsStore
	logger *slog.Logger
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(store SettingsStore, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{
		store:  store,
		logger: logger,
	}
}

type settingsField struct {
	Label string
	Name  string
	Value string
}

type settingsSection struct {
	Title  string
	Fields []settingsField
}

type settingsPage struct {
	Saved     bool
	Error     string
	AccessKey string
	Sections  []settingsSection
}

// Page handles GET /settings
func (h *SettingsHandler) Page(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, settingsPage{})
}

// Save handles POST /settings. Every known provider key is replaced by the
// submitted form value; fields left out of the form are cleared.
func (h *SettingsHandler) Save(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, settingsPage{Error: "invalid form submission"})
		return
	}

	err := h.store.Update(func(s *domain.Settings) {
		s.ApplyForm(r.PostForm.Get)
	})
	if err != nil {
		h.logger.Error("save settings failed", "error", err)
		h.render(w, r, http.StatusInternalServerError, settingsPage{Error: "failed to save settings"})
		return
	}

	h.logger.Info("settings saved")
	h.render(w, r, http.StatusOK, settingsPage{Saved: true})
}

// API handles GET /api/settings. Keys are masked.
func (h *SettingsHandler) API(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Masked())
}

func (h *SettingsHandler) render(w http.ResponseWriter, r *http.Request, status int, page settingsPage) {
	current := h.store.Get()
	page.AccessKey = mw.AccessKey(r)
	page.Sections = []settingsSection{
		buildSection("Text AI Providers", domain.TextProviders, current.TextAI),
		buildSection("Image AI Providers", domain.ImageProviders, current.ImageAI),
	}

	var buf bytes.Buffer
	if err := ui.SettingsTemplate.Execute(&buf, page); err != nil {
		h.logger.Error("render settings failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to render settings")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func buildSection(title string, providers []domain.Provider, keys map[string]string) settingsSection {
	sec := settingsSection{Title: title, Fields: make([]settingsField, 0, len(providers))}
	for _, p := range providers {
		sec.Fields = append(sec.Fields, settingsField{
			Label: p.Label,
			Name:  p.FormField,
			Value: keys[p.Name],
		})
	}
	return sec
}
