package config

import (
	"log/slog"
	"testing"
)

func TestLoadServerDefaults(t *testing.T) {
	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer: %v", err)
	}
	if cfg.Addr() != "localhost:8000" {
		t.Fatalf("Addr() = %q, want localhost:8000", cfg.Addr())
	}
	if !cfg.IsDevelopment() {
		t.Fatal("default env should be development")
	}
	if cfg.AIAPIKey != "" {
		t.Fatalf("AIAPIKey default = %q, want empty", cfg.AIAPIKey)
	}
}

func TestLoadServerFromEnvironment(t *testing.T) {
	t.Setenv("INKWELL_SERVER_HOST", "0.0.0.0")
	t.Setenv("INKWELL_SERVER_PORT", "9100")
	t.Setenv("INKWELL_ENV", "production")
	t.Setenv("INKWELL_AI_API_KEY", "sk-test")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer: %v", err)
	}
	if cfg.Addr() != "0.0.0.0:9100" {
		t.Fatalf("Addr() = %q", cfg.Addr())
	}
	if cfg.IsDevelopment() {
		t.Fatal("production env reported as development")
	}
	if cfg.AIAPIKey != "sk-test" {
		t.Fatalf("AIAPIKey = %q", cfg.AIAPIKey)
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		name string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"nonsense", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		cfg := Server{LogLevel: tt.name}
		if got := cfg.SlogLevel(); got != tt.want {
			t.Errorf("SlogLevel(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestLoadClientFromEnvironment(t *testing.T) {
	t.Setenv("INKWELL_SERVER_URL", "http://example.test:9000")
	t.Setenv("INKWELL_AUTHOR", "Ada")

	cfg, err := LoadClient()
	if err != nil {
		t.Fatalf("LoadClient: %v", err)
	}
	if cfg.ServerURL != "http://example.test:9000" {
		t.Fatalf("ServerURL = %q", cfg.ServerURL)
	}
	if cfg.AuthorName != "Ada" {
		t.Fatalf("AuthorName = %q", cfg.AuthorName)
	}
}
