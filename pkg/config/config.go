// Package config loads service configuration from config.yaml with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for crewlog-engine.
// Configuration can come from YAML file (config.yaml) or environment
// variables; environment variables always override YAML values.
// Secrets (credentials, signing keys) must only come from environment
// variables.
type Config struct {
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8470"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// MigrationsPath is where golang-migrate finds the SQL files.
	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"migrations"`

	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	AI       AIConfig       `yaml:"ai"`
	Auth     AuthConfig     `yaml:"auth"`
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"crewlog"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"crewlog_engine"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"10"`
}

// DSN returns a PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode,
	)
}

// RedisConfig holds the optional cache configuration. An empty host
// means no cache; generated briefings are simply not cached.
type RedisConfig struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:""`
	Port     int    `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"-" env:"REDIS_PASSWORD"` // Secret - not in YAML
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

// AIConfig holds the AI provider configuration. The API key is the
// single credential whose absence makes every AI feature degrade to
// its non-AI fallback.
type AIConfig struct {
	Provider           string `yaml:"provider" env:"AI_PROVIDER" env-default:"openai"`
	BaseURL            string `yaml:"base_url" env:"AI_BASE_URL" env-default:""`
	Model              string `yaml:"model" env:"AI_MODEL" env-default:""`
	TranscriptionModel string `yaml:"transcription_model" env:"AI_TRANSCRIPTION_MODEL" env-default:""`

	APIKey              string `yaml:"-" env:"AI_API_KEY"`               // Secret - not in YAML
	TranscriptionAPIKey string `yaml:"-" env:"AI_TRANSCRIPTION_API_KEY"` // Secret - not in YAML

	// FullTimeoutSeconds bounds full generations (summaries, briefings,
	// reflections). QuickTimeoutSeconds bounds lightweight calls
	// (single question, theme extraction). There is no "no timeout" mode.
	FullTimeoutSeconds  int `yaml:"full_timeout_seconds" env:"AI_FULL_TIMEOUT_SECONDS" env-default:"12"`
	QuickTimeoutSeconds int `yaml:"quick_timeout_seconds" env:"AI_QUICK_TIMEOUT_SECONDS" env-default:"4"`

	// MinDecisionsForPatterns is the number of decision entries needed
	// before pattern analysis produces insights. Policy, not contract.
	MinDecisionsForPatterns int `yaml:"min_decisions_for_patterns" env:"AI_MIN_DECISIONS_FOR_PATTERNS" env-default:"3"`
}

// FullTimeout returns the full-generation deadline as a duration.
func (c *AIConfig) FullTimeout() time.Duration {
	return time.Duration(c.FullTimeoutSeconds) * time.Second
}

// QuickTimeout returns the lightweight-call deadline as a duration.
func (c *AIConfig) QuickTimeout() time.Duration {
	return time.Duration(c.QuickTimeoutSeconds) * time.Second
}

// IsConfigured reports whether a completion credential is present.
func (c *AIConfig) IsConfigured() bool {
	return c.APIKey != ""
}

// AuthConfig holds API authentication configuration.
type AuthConfig struct {
	// Enable controls whether bearer tokens are required. Disable for
	// local development only.
	Enable bool `yaml:"enable" env:"AUTH_ENABLE" env-default:"true"`

	// JWTSecret signs and verifies API tokens (HMAC).
	JWTSecret string `yaml:"-" env:"AUTH_JWT_SECRET"` // Secret - not in YAML
}

// Load reads configuration from config.yaml with environment variable
// overrides. A missing config.yaml is fine; the environment alone then
// provides everything. The version parameter is injected at build time.
func Load(version string) (*Config, error) {
	cfg := &Config{Version: version}

	err := cleanenv.ReadConfig("config.yaml", cfg)
	if errors.Is(err, fs.ErrNotExist) {
		err = cleanenv.ReadEnv(cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.Enable && c.Auth.JWTSecret == "" {
		return fmt.Errorf("AUTH_JWT_SECRET is required when auth is enabled")
	}
	if c.AI.FullTimeoutSeconds <= 0 || c.AI.QuickTimeoutSeconds <= 0 {
		return fmt.Errorf("AI timeouts must be positive")
	}
	return nil
}
