package main

import (
	"context"
	"log/slog"
	"testing"

	"github.com/iconidentify/postcraft/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseLevel(tt.in); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewLogger_Level(t *testing.T) {
	for _, format := range []string{"json", "text"} {
		t.Run(format, func(t *testing.T) {
			logger := newLogger(config.LogConfig{Level: "warn", Format: format})
			if logger.Enabled(context.Background(), slog.LevelInfo) {
				t.Error("info should be disabled at warn level")
			}
			if !logger.Enabled(context.Background(), slog.LevelWarn) {
				t.Error("warn should be enabled")
			}
		})
	}
}
