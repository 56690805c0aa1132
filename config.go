package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration, loaded from environment variables.
type Config struct {
	GitHubToken         string
	MaxSearchAttempts   int
	MaxFallbackAttempts int
	MaxIssueAttempts    int
	RequestTimeout      time.Duration
	RetryDelay          time.Duration
	IssueLanguage       string
	LogLevel            string
	LogFormat           string
}

type ConfigValidationError struct {
	Field   string
	Message string
}

func (e ConfigValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s - %s", e.Field, e.Message)
}

// LoadConfig reads configuration from the environment. Only GITHUB_TOKEN is
// commonly set; everything else has working defaults.
func LoadConfig() (*Config, error) {
	config := &Config{
		GitHubToken:         strings.TrimSpace(os.Getenv("GITHUB_TOKEN")),
		MaxSearchAttempts:   3,
		MaxFallbackAttempts: 3,
		MaxIssueAttempts:    3,
		RequestTimeout:      15 * time.Second,
		RetryDelay:          1 * time.Second,
		IssueLanguage:       "python",
		LogLevel:            "info",
		LogFormat:           "text",
	}

	if attemptsEnv := os.Getenv("MAX_SEARCH_ATTEMPTS"); attemptsEnv != "" {
		parsed, err := strconv.Atoi(attemptsEnv)
		if err != nil {
			return nil, ConfigValidationError{Field: "MAX_SEARCH_ATTEMPTS", Message: fmt.Sprintf("invalid value %q: %v", attemptsEnv, err)}
		}
		if parsed <= 0 {
			return nil, ConfigValidationError{Field: "MAX_SEARCH_ATTEMPTS", Message: "must be positive"}
		}
		config.MaxSearchAttempts = parsed
	}

	if attemptsEnv := os.Getenv("MAX_FALLBACK_ATTEMPTS"); attemptsEnv != "" {
		parsed, err := strconv.Atoi(attemptsEnv)
		if err != nil {
			return nil, ConfigValidationError{Field: "MAX_FALLBACK_ATTEMPTS", Message: fmt.Sprintf("invalid value %q: %v", attemptsEnv, err)}
		}
		if parsed <= 0 {
			return nil, ConfigValidationError{Field: "MAX_FALLBACK_ATTEMPTS", Message: "must be positive"}
		}
		config.MaxFallbackAttempts = parsed
	}

	if attemptsEnv := os.Getenv("MAX_ISSUE_ATTEMPTS"); attemptsEnv != "" {
		parsed, err := strconv.Atoi(attemptsEnv)
		if err != nil {
			return nil, ConfigValidationError{Field: "MAX_ISSUE_ATTEMPTS", Message: fmt.Sprintf("invalid value %q: %v", attemptsEnv, err)}
		}
		if parsed <= 0 {
			return nil, ConfigValidationError{Field: "MAX_ISSUE_ATTEMPTS", Message: "must be positive"}
		}
		config.MaxIssueAttempts = parsed
	}

	if timeoutEnv := os.Getenv("REQUEST_TIMEOUT_SECONDS"); timeoutEnv != "" {
		parsed, err := strconv.Atoi(timeoutEnv)
		if err != nil {
			return nil, ConfigValidationError{Field: "REQUEST_TIMEOUT_SECONDS", Message: fmt.Sprintf("invalid value %q: %v", timeoutEnv, err)}
		}
		if parsed <= 0 {
			return nil, ConfigValidationError{Field: "REQUEST_TIMEOUT_SECONDS", Message: "must be positive"}
		}
		config.RequestTimeout = time.Duration(parsed) * time.Second
	}

	if delayEnv := os.Getenv("RETRY_DELAY_MS"); delayEnv != "" {
		parsed, err := strconv.Atoi(delayEnv)
		if err != nil {
			return nil, ConfigValidationError{Field: "RETRY_DELAY_MS", Message: fmt.Sprintf("invalid value %q: %v", delayEnv, err)}
		}
		if parsed < 0 {
			return nil, ConfigValidationError{Field: "RETRY_DELAY_MS", Message: "cannot be negative"}
		}
		config.RetryDelay = time.Duration(parsed) * time.Millisecond
	}

	// Empty string disables the language scope on issue label searches.
	if langEnv, ok := os.LookupEnv("ISSUE_LANGUAGE"); ok {
		config.IssueLanguage = strings.ToLower(strings.TrimSpace(langEnv))
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
		if !validLevels[strings.ToLower(level)] {
			return nil, ConfigValidationError{Field: "LOG_LEVEL", Message: fmt.Sprintf("invalid level %q, must be one of: debug, info, warn, error", level)}
		}
		config.LogLevel = strings.ToLower(level)
	}

	if format := os.Getenv("LOG_FORMAT"); format != "" {
		validFormats := map[string]bool{"text": true, "json": true}
		if !validFormats[strings.ToLower(format)] {
			return nil, ConfigValidationError{Field: "LOG_FORMAT", Message: fmt.Sprintf("invalid format %q, must be one of: text, json", format)}
		}
		config.LogFormat = strings.ToLower(format)
	}

	return config, nil
}

func (c *Config) Validate() error {
	if c.MaxSearchAttempts > 10 {
		return ConfigValidationError{Field: "MAX_SEARCH_ATTEMPTS", Message: "cannot exceed 10 to avoid rate limiting"}
	}

	if c.MaxFallbackAttempts > 10 {
		return ConfigValidationError{Field: "MAX_FALLBACK_ATTEMPTS", Message: "cannot exceed 10 to avoid rate limiting"}
	}

	if c.MaxIssueAttempts > 10 {
		return ConfigValidationError{Field: "MAX_ISSUE_ATTEMPTS", Message: "cannot exceed 10 to avoid rate limiting"}
	}

	if c.RequestTimeout > 2*time.Minute {
		return ConfigValidationError{Field: "REQUEST_TIMEOUT_SECONDS", Message: "cannot exceed 120 seconds"}
	}

	if c.GitHubToken != "" && len(c.GitHubToken) < 10 {
		return ConfigValidationError{Field: "GITHUB_TOKEN", Message: "appears to be invalid (too short)"}
	}

	return nil
}

func (c *Config) HasToken() bool {
	return c.GitHubToken != ""
}
