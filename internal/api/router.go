package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/iconidentify/postcraft/internal/api/handler"
	mw "github.com/iconidentify/postcraft/internal/api/middleware"
)

// Handlers groups the route handlers.
type Handlers struct {
	Blog     *handler.BlogHandler
	Settings *handler.SettingsHandler
	History  *handler.HistoryHandler
	Health   *handler.HealthHandler
	UI       *handler.UIHandler
}

// NewRouter creates the HTTP router with all routes configured. When
// accessKey is non-empty the settings page and /api routes require it.
func NewRouter(h Handlers, accessKey string, requestTimeout time.Duration, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CleanPath)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.Logger(logger))
	r.Use(mw.Recovery(logger))
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(mw.CORS)

	// Health endpoints (no auth)
	r.Get("/health", h.Health.Live)
	r.Get("/ready", h.Health.Ready)

	// The page itself carries no secrets; its API calls are authenticated.
	r.Get("/", h.UI.Index)

	protected := func(r chi.Router) {
		if accessKey != "" {
			r.Use(mw.APIKeyAuth(accessKey))
		}
	}

	r.Group(func(r chi.Router) {
		protected(r)
		r.Get("/settings", h.Settings.Page)
		r.Post("/settings", h.Settings.Save)
	})

	r.Route("/api", func(r chi.Router) {
		protected(r)

		r.Post("/process", h.Blog.Process)
		r.Post("/generate_image", h.Blog.GenerateImage)
		r.Get("/mock_image", h.Blog.MockImage)

		r.Get("/settings", h.Settings.API)
		r.Get("/history", h.History.List)
		r.Get("/stats", h.Health.Stats)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not found"}`))
	})

	return r
}
