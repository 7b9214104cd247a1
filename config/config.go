package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment `env:"-"`

	// Server configuration
	ServerPort  string   `env:"SERVER_PORT" envDefault:"8080"`
	ServerHost  string   `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	BaseURL     string   `env:"BASE_URL" envDefault:"http://localhost:3000"`
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	LogLevel    string   `env:"LOG_LEVEL"`

	// Database configuration
	DBType            string        `env:"DB_TYPE" envDefault:"postgres"`
	DBHost            string        `env:"DB_HOST" envDefault:"localhost"`
	DBPort            string        `env:"DB_PORT" envDefault:"5432"`
	DBUser            string        `env:"DB_USER"`
	DBPassword        string        `env:"DB_PASSWORD"`
	DBName            string        `env:"DB_NAME" envDefault:"profilsaya"`
	DBSSLMode         string        `env:"DB_SSL_MODE" envDefault:"disable"`
	DBPath            string        `env:"DB_PATH" envDefault:"profilsaya.db"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"25"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`

	// Redis configuration
	RedisHost        string        `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort        string        `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword    string        `env:"REDIS_PASSWORD"`
	RedisDB          int           `env:"REDIS_DB" envDefault:"0"`
	RedisURL         string        `env:"REDIS_URL"`
	ThemeSnapshotTTL time.Duration `env:"THEME_SNAPSHOT_TTL" envDefault:"720h"`

	// JWT configuration
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"168h"`

	// Rate limits, requests per minute
	AuthRateLimit int `env:"AUTH_RATE_LIMIT" envDefault:"10"`
	SaveRateLimit int `env:"SAVE_RATE_LIMIT" envDefault:"60"`

	// Avatar storage, disabled when no bucket is set
	S3BucketName string `env:"S3_BUCKET_NAME"`
	AWSRegion    string `env:"AWS_REGION"`
}

// ListenAddr is the address the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// LoadConfig reads the configuration of the current environment:
// variables (and a .env file outside CI and production), then Docker
// secrets on top.
func LoadConfig() (*Config, error) {
	current := GetEnvironment()

	if current.usesDotEnv() {
		if err := loadDotEnv(); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.Environment = current

	switch {
	case current == CI:
		loadCISecrets(cfg)
	case current.usesSecrets():
		loadDockerSecrets(cfg)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func loadDotEnv() error {
	path := os.Getenv("ENV_FILE")
	if path == "" {
		path = ".env"
	}
	// godotenv never overrides variables that are already set
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// loadCISecrets falls back to the TEST_ prefixed GitHub Actions secrets
func loadCISecrets(cfg *Config) {
	fallback := map[*string]string{
		&cfg.DBPassword:    "TEST_DB_PASSWORD",
		&cfg.JWTSecret:     "TEST_JWT_SECRET",
		&cfg.RedisPassword: "TEST_REDIS_PASSWORD",
		&cfg.RedisURL:      "TEST_REDIS_URL",
	}
	for dst, name := range fallback {
		if *dst == "" {
			*dst = os.Getenv(name)
		}
	}
}

// loadDockerSecrets overlays the values present in SECRETS_DIR
func loadDockerSecrets(cfg *Config) {
	secrets := map[string]*string{
		"db_user":        &cfg.DBUser,
		"db_password":    &cfg.DBPassword,
		"jwt_secret":     &cfg.JWTSecret,
		"redis_password": &cfg.RedisPassword,
		"redis_url":      &cfg.RedisURL,
	}
	for name, dst := range secrets {
		if value := readSecret(name); value != "" {
			*dst = value
		}
	}
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	data, err := os.ReadFile(filepath.Join(secretsDir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
