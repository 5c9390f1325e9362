package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"
)

const (
	BackendGemini = "gemini"
	BackendRemote = "remote"
)

var (
	ErrMissingCredentials = errors.New("missing credentials")
	ErrInvalidConfig      = errors.New("invalid config")
)

type Config struct {
	App struct {
		Name        string   `envconfig:"APP_NAME" default:"FinAssist"`
		Port        int      `envconfig:"PORT" default:"8080"`
		CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`
	}

	DB struct {
		URL      string `envconfig:"DATABASE_URL"`
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"finassist"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Auth struct {
		URL       string `envconfig:"AUTH_URL"`
		AnonKey   string `envconfig:"AUTH_ANON_KEY"`
		JWTSecret string `envconfig:"AUTH_JWT_SECRET"`
		Audience  string `envconfig:"AUTH_AUDIENCE" default:"authenticated"`
	}

	LLM struct {
		Backend     string `envconfig:"LLM_BACKEND" default:"gemini"`
		GeminiKey   string `envconfig:"GEMINI_API_KEY"`
		GeminiModel string `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`
		RemoteURL   string `envconfig:"LLM_REMOTE_URL"`
		RemoteToken string `envconfig:"LLM_REMOTE_TOKEN"`
	}

	Assistant struct {
		Timeout      time.Duration `envconfig:"ASSISTANT_TIMEOUT" default:"15s"`
		ContextLimit int           `envconfig:"ASSISTANT_CONTEXT_LIMIT" default:"50"`
	}

	News struct {
		Debounce time.Duration `envconfig:"NEWS_DEBOUNCE" default:"500ms"`
		Timeout  time.Duration `envconfig:"NEWS_TIMEOUT" default:"15s"`
	}

	TUI struct {
		UserID string `envconfig:"TUI_USER_ID"`
	}
}

// ConnectionString prefers DATABASE_URL and otherwise builds one from the DB_* parts.
func (c *Config) ConnectionString() string {
	if c.DB.URL != "" {
		return c.DB.URL
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// Validate checks what the API server cannot start without.
func (c *Config) Validate() error {
	var missing []string

	if c.Auth.URL == "" {
		missing = append(missing, "AUTH_URL")
	}

	if c.Auth.AnonKey == "" {
		missing = append(missing, "AUTH_ANON_KEY")
	}

	if c.Auth.JWTSecret == "" {
		missing = append(missing, "AUTH_JWT_SECRET")
	}

	switch strings.ToLower(c.LLM.Backend) {
	case BackendGemini:
		if c.LLM.GeminiKey == "" {
			missing = append(missing, "GEMINI_API_KEY")
		}
	case BackendRemote:
		if c.LLM.RemoteURL == "" {
			missing = append(missing, "LLM_REMOTE_URL")
		}
	default:
		return fmt.Errorf("%w: unknown LLM_BACKEND %q", ErrInvalidConfig, c.LLM.Backend)
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}

	if c.Assistant.ContextLimit <= 0 {
		return fmt.Errorf("%w: ASSISTANT_CONTEXT_LIMIT must be positive", ErrInvalidConfig)
	}

	return nil
}

// TUIUser parses TUI_USER_ID.
func (c *Config) TUIUser() (uuid.UUID, error) {
	if c.TUI.UserID == "" {
		return uuid.Nil, fmt.Errorf("%w: TUI_USER_ID", ErrMissingCredentials)
	}

	id, err := uuid.Parse(c.TUI.UserID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: TUI_USER_ID: %w", ErrInvalidConfig, err)
	}

	return id, nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
