package config

import (
	"fmt"
	"net/url"
	"strings"
)

// minProductionSecretLength is the shortest JWT secret accepted in production
const minProductionSecretLength = 32

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one pass
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors
	require := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, ValidationError{Field: field, Message: "is required"})
		}
	}

	require("SERVER_PORT", cfg.ServerPort)
	require("JWT_SECRET", cfg.JWTSecret)

	switch cfg.DBType {
	case "postgres", "mysql":
		require("DB_HOST", cfg.DBHost)
		require("DB_PORT", cfg.DBPort)
		require("DB_USER", cfg.DBUser)
		require("DB_NAME", cfg.DBName)
	case "sqlite":
		require("DB_PATH", cfg.DBPath)
		if cfg.Environment.IsProduction() {
			errs = append(errs, ValidationError{Field: "DB_TYPE", Message: "sqlite is not supported in production"})
		}
	default:
		errs = append(errs, ValidationError{Field: "DB_TYPE", Message: fmt.Sprintf("unsupported database type %q", cfg.DBType)})
	}

	if u, err := url.Parse(cfg.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, ValidationError{Field: "BASE_URL", Message: "must be an absolute URL"})
	}

	if cfg.TokenTTL <= 0 {
		errs = append(errs, ValidationError{Field: "TOKEN_TTL", Message: "must be positive"})
	}

	if cfg.Environment.IsProduction() {
		require("DB_PASSWORD", cfg.DBPassword)
		if cfg.JWTSecret != "" && len(cfg.JWTSecret) < minProductionSecretLength {
			errs = append(errs, ValidationError{
				Field:   "JWT_SECRET",
				Message: fmt.Sprintf("must be at least %d characters in production", minProductionSecretLength),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
