package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Config holds draftcheck configuration.
// Stored at: {home}/config.yaml
type Config struct {
	ServerURL      string      `mapstructure:"server_url" yaml:"server_url" json:"server_url"`
	Token          string      `mapstructure:"token" yaml:"token" json:"token"`          // Bearer token (supports ${ENV_VAR} syntax)
	Language       string      `mapstructure:"language" yaml:"language" json:"language"` // en, hi or auto
	AssignmentID   int         `mapstructure:"assignment_id" yaml:"assignment_id" json:"assignment_id"`
	TimeoutSeconds int         `mapstructure:"timeout_seconds" yaml:"timeout_seconds" json:"timeout_seconds"`
	ReadRetries    uint        `mapstructure:"read_retries" yaml:"read_retries" json:"read_retries"`
	Progress       ProgressCfg `mapstructure:"progress" yaml:"progress" json:"progress"`
}

// ProgressCfg sets the reading/checking animation cadence.
type ProgressCfg struct {
	PhaseIntervalMS int `mapstructure:"phase_interval_ms" yaml:"phase_interval_ms" json:"phase_interval_ms"`
	DotsIntervalMS  int `mapstructure:"dots_interval_ms" yaml:"dots_interval_ms" json:"dots_interval_ms"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ServerURL:      "http://localhost:8000",
		Token:          "${DRAFTCHECK_API_TOKEN}",
		Language:       "en",
		TimeoutSeconds: 300,
		ReadRetries:    3,
		Progress: ProgressCfg{
			PhaseIntervalMS: 1200,
			DotsIntervalMS:  450,
		},
	}
}

// ResolvedToken returns the token with ${ENV_VAR} references expanded.
func (c *Config) ResolvedToken() string {
	return ResolveEnvVars(c.Token)
}

// Timeout returns the HTTP client timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// PhaseInterval returns how long each progress phase is shown.
func (c *Config) PhaseInterval() time.Duration {
	return time.Duration(c.Progress.PhaseIntervalMS) * time.Millisecond
}

// DotsInterval returns the progress dots cadence.
func (c *Config) DotsInterval() time.Duration {
	return time.Duration(c.Progress.DotsIntervalMS) * time.Millisecond
}

// Validate checks the values a command depends on.
func (c *Config) Validate() error {
	var errs []error
	u, err := url.Parse(c.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("server_url must be an http(s) URL, got %q", c.ServerURL))
	}
	switch c.Language {
	case "en", "hi", "auto":
	default:
		errs = append(errs, fmt.Errorf("language must be en, hi or auto, got %q", c.Language))
	}
	if c.TimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds))
	}
	if c.AssignmentID < 0 {
		errs = append(errs, fmt.Errorf("assignment_id must not be negative, got %d", c.AssignmentID))
	}
	return errors.Join(errs...)
}
