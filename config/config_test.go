package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the loader at an empty secrets dir and no .env file
func isolate(t *testing.T, environment string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("CI", "false")
	t.Setenv("ENV", environment)
	t.Setenv("SECRETS_DIR", dir)
	t.Setenv("ENV_FILE", filepath.Join(dir, "missing.env"))
	return dir
}

func TestLoadConfig(t *testing.T) {
	isolate(t, "development")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_PASSWORD", "postgres")
	t.Setenv("DB_NAME", "profilsaya")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,https://profilsaya.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Development, cfg.Environment)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "5433", cfg.DBPort)
	assert.Equal(t, "postgres", cfg.DBUser)
	assert.Equal(t, "postgres", cfg.DBPassword)
	assert.Equal(t, "profilsaya", cfg.DBName)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, []string{"http://localhost:3000", "https://profilsaya.com"}, cfg.CORSOrigins)
}

func TestLoadConfigWithDefaults(t *testing.T) {
	isolate(t, "test")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Test, cfg.Environment)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "0.0.0.0:8080", cfg.ListenAddr())
	assert.Equal(t, "postgres", cfg.DBType)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, "http://localhost:3000", cfg.BaseURL)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 30*24*time.Hour, cfg.ThemeSnapshotTTL)
	assert.Equal(t, 10, cfg.AuthRateLimit)
}

func TestLoadConfigReadsDotEnv(t *testing.T) {
	dir := isolate(t, "development")
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("DB_TYPE=sqlite\nDB_PATH=dev.db\nJWT_SECRET=from-dotenv\n"), 0o600))
	t.Setenv("ENV_FILE", envFile)
	t.Cleanup(func() {
		os.Unsetenv("DB_TYPE")
		os.Unsetenv("DB_PATH")
		os.Unsetenv("JWT_SECRET")
	})

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DBType)
	assert.Equal(t, "dev.db", cfg.DBPath)
	assert.Equal(t, "from-dotenv", cfg.JWTSecret)
}

func TestLoadConfigSecretsOverrideEnvironment(t *testing.T) {
	dir := isolate(t, "production")
	t.Setenv("DB_USER", "from-env")
	t.Setenv("JWT_SECRET", "short")
	for name, value := range map[string]string{
		"db_user":     "from-secret",
		"db_password": "s3cret",
		"jwt_secret":  "0123456789abcdef0123456789abcdef",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(value+"\n"), 0o600))
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, Production, cfg.Environment)
	assert.Equal(t, "from-secret", cfg.DBUser)
	assert.Equal(t, "s3cret", cfg.DBPassword)
	assert.Equal(t, "0123456789abcdef0123456789abcdef", cfg.JWTSecret)
}

func TestLoadConfigCIUsesTestSecrets(t *testing.T) {
	isolate(t, "")
	t.Setenv("CI", "true")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("TEST_DB_PASSWORD", "ci-db")
	t.Setenv("TEST_JWT_SECRET", "ci-jwt")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, CI, cfg.Environment)
	assert.Equal(t, "ci-db", cfg.DBPassword)
	assert.Equal(t, "ci-jwt", cfg.JWTSecret)
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Environment: Development,
			ServerPort:  "8080",
			BaseURL:     "http://localhost:3000",
			DBType:      "postgres",
			DBHost:      "localhost",
			DBPort:      "5432",
			DBUser:      "postgres",
			DBName:      "profilsaya",
			JWTSecret:   "secret",
			TokenTTL:    time.Hour,
		}
	}

	assert.NoError(t, ValidateConfig(valid()))

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"missing jwt secret", func(c *Config) { c.JWTSecret = "" }, "JWT_SECRET"},
		{"unknown db type", func(c *Config) { c.DBType = "oracle" }, "DB_TYPE"},
		{"missing db user", func(c *Config) { c.DBUser = "" }, "DB_USER"},
		{"relative base url", func(c *Config) { c.BaseURL = "profilsaya.com" }, "BASE_URL"},
		{"zero token ttl", func(c *Config) { c.TokenTTL = 0 }, "TOKEN_TTL"},
		{"short production secret", func(c *Config) {
			c.Environment = Production
			c.DBPassword = "x"
		}, "JWT_SECRET"},
		{"sqlite in production", func(c *Config) {
			c.Environment = Production
			c.DBPassword = "x"
			c.JWTSecret = "0123456789abcdef0123456789abcdef"
			c.DBType = "sqlite"
			c.DBPath = "prod.db"
		}, "DB_TYPE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := ValidateConfig(cfg)
			require.Error(t, err)

			var verrs ValidationErrors
			require.True(t, errors.As(err, &verrs))
			fields := make([]string, len(verrs))
			for i, v := range verrs {
				fields[i] = v.Field
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestNewS3ConfigDisabledWithoutBucket(t *testing.T) {
	cfg := &Config{}
	_, err := cfg.NewS3Config(context.Background())
	assert.ErrorIs(t, err, ErrStorageDisabled)
}
