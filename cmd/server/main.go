package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/iconidentify/postcraft/internal/api"
	"github.com/iconidentify/postcraft/internal/api/handler"
	"github.com/iconidentify/postcraft/internal/config"
	"github.com/iconidentify/postcraft/internal/downloader"
	"github.com/iconidentify/postcraft/internal/extractor"
	"github.com/iconidentify/postcraft/internal/history"
	"github.com/iconidentify/postcraft/internal/service"
	"github.com/iconidentify/postcraft/internal/settings"
	"github.com/iconidentify/postcraft/pkg/crypto"
	"github.com/iconidentify/postcraft/pkg/deepai"
	"github.com/iconidentify/postcraft/pkg/deepseek"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "", "Path to config file")
	envPath := flag.String("env", ".env", "Path to .env file")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("postcraft %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	// .env values replace anything already exported in the shell.
	envErr := godotenv.Overload(*envPath)

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting postcraft",
		"version", Version,
		"build_time", BuildTime,
	)
	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		logger.Warn("failed to load env file", "path", *envPath, "error", envErr)
	}
	logger.Info("api keys",
		"deepseek_loaded", cfg.DeepSeek.APIKey != "",
		"deepai_loaded", cfg.DeepAI.APIKey != "",
	)

	// Settings store, sealed at rest when a secret is configured
	var box *crypto.Box
	if cfg.Settings.Secret != "" {
		box, err = crypto.NewBox(cfg.Settings.Secret)
		if err != nil {
			logger.Error("failed to initialise settings encryption", "error", err)
			os.Exit(1)
		}
	}
	store, err := settings.Open(cfg.Settings.Path, box, logger)
	if err != nil {
		logger.Error("failed to open settings", "path", cfg.Settings.Path, "error", err)
		os.Exit(1)
	}
	keys := settings.NewKeyResolver(store, cfg.DeepSeek.APIKey, cfg.DeepAI.APIKey)

	if cfg.History.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.History.Path), 0755); err != nil {
			logger.Error("failed to create history directory", "error", err)
			os.Exit(1)
		}
	}
	runs := history.NewLog(cfg.History.Path, cfg.History.MaxEntries)

	// Initialize dependencies
	textClient := deepseek.NewClient(cfg.DeepSeek)
	imageClient := deepai.NewClient(cfg.DeepAI)
	dl := downloader.NewHTTPDownloader(cfg.Download)
	dl.SetLogger(logger)

	// Initialize services
	blogSvc := service.NewBlogService(
		extractor.New(cfg.Extract, logger),
		textClient,
		service.NewImagePromptService(textClient, logger),
		service.NewImageService(imageClient, dl, logger),
		keys,
		runs,
		logger,
	)

	// Setup router
	router := api.NewRouter(api.Handlers{
		Blog:     handler.NewBlogHandler(blogSvc, logger),
		Settings: handler.NewSettingsHandler(store, logger),
		History:  handler.NewHistoryHandler(runs, logger),
		Health:   handler.NewHealthHandler(keys),
		UI:       handler.NewUIHandler(),
	}, cfg.Server.AccessKey, cfg.Server.WriteTimeout, logger)

	// Setup HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("starting HTTP server", "addr", srv.Addr, "access_key_required", cfg.Server.AccessKey != "")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}

// newLogger builds the process logger: JSON by default, colourised text
// when the format is "text".
func newLogger(cfg config.LogConfig) *slog.Logger {
	level := parseLevel(cfg.Level)
	if cfg.Format == "text" {
		return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
