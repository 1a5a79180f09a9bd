// Package config loads configuration from the environment, with an
// optional .env file for development.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Server holds the API server configuration.
type Server struct {
	Host     string `env:"INKWELL_SERVER_HOST" envDefault:"localhost"`
	Port     int    `env:"INKWELL_SERVER_PORT" envDefault:"8000"`
	DBPath   string `env:"INKWELL_DB_PATH" envDefault:"./data/inkwell.db"`
	Env      string `env:"INKWELL_ENV" envDefault:"development"`
	LogLevel string `env:"INKWELL_LOG_LEVEL" envDefault:"info"`

	// AI provider configuration. Missing credentials disable the
	// transformation endpoints; record CRUD works regardless.
	AIBaseURL string `env:"INKWELL_AI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	AIAPIKey  string `env:"INKWELL_AI_API_KEY"`
	AIModel   string `env:"INKWELL_AI_MODEL" envDefault:"gpt-4o-mini"`
}

// Client holds the terminal client configuration.
type Client struct {
	ServerURL  string `env:"INKWELL_SERVER_URL" envDefault:"http://localhost:8000"`
	AuthorName string `env:"INKWELL_AUTHOR"`
}

// Addr returns the listen address in host:port form.
func (c Server) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDevelopment reports whether the server runs in development mode.
func (c Server) IsDevelopment() bool {
	return c.Env == "development"
}

// SlogLevel maps the configured level name onto slog's scale. Unknown
// names fall back to info.
func (c Server) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
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

// LoadServer parses the server configuration from the environment.
func LoadServer() (*Server, error) {
	loadDotEnv()
	cfg := &Server{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing server config: %w", err)
	}
	return cfg, nil
}

// LoadClient parses the client configuration from the environment.
func LoadClient() (*Client, error) {
	loadDotEnv()
	cfg := &Client{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing client config: %w", err)
	}
	return cfg, nil
}

// loadDotEnv folds a local .env file into the environment when present.
// Real environment variables win; a missing file is not an error.
func loadDotEnv() {
	_ = godotenv.Load()
}
