// Package config provides configuration management for pantry-ci.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"pantry-ci/src/githubactions"
)

// ErrPlatformNotSet is returned when a command needs PLATFORM and it is empty.
var ErrPlatformNotSet = errors.New("$PLATFORM not set")

// ErrCellarDSNNotSet is returned when a command writes to the Postgres cellar
// and CELLAR_DSN is empty.
var ErrCellarDSNNotSet = errors.New("$CELLAR_DSN not set")

// Config holds the application configuration.
type Config struct {
	// Invert keeps installed packages instead of missing ones.
	Invert bool
	// GitHubActions is true when running inside a GitHub Actions job.
	GitHubActions bool
	// GitHubOutput is the path of the step output file, if any.
	GitHubOutput string
	// Platform selects the CI configuration record, e.g. "linux+x86-64".
	Platform string
	// TeaPrefix is the root of the filesystem cellar.
	TeaPrefix string
	// CellarDSN selects the Postgres cellar instead of the filesystem one.
	CellarDSN string
	// RedpandaBrokers enables publishing result events when non-empty.
	RedpandaBrokers []string
	// OverridesFile is a TOML file with platform table overrides.
	OverridesFile string
	// RunID and Repository identify the GitHub Actions run, when there is one.
	RunID      string
	Repository string
}

// LoadFromEnv loads configuration from environment variables. A .env file in
// the working directory is read first; variables already set take precedence.
func LoadFromEnv() (*Config, error) {
	_ = godotenv.Load()
	return FromLookup(os.Getenv), nil
}

// FromLookup builds a Config from an arbitrary getenv function.
func FromLookup(getenv func(string) string) *Config {
	cfg := &Config{
		Invert:        ParseFlag(getenv("INVERT")),
		GitHubActions: githubactions.Enabled(getenv),
		GitHubOutput:  getenv("GITHUB_OUTPUT"),
		Platform:      strings.TrimSpace(getenv("PLATFORM")),
		TeaPrefix:     getenv("TEA_PREFIX"),
		CellarDSN:     getenv("CELLAR_DSN"),
		OverridesFile: getenv("PANTRY_CONFIG"),
		RunID:         getenv("GITHUB_RUN_ID"),
		Repository:    getenv("GITHUB_REPOSITORY"),
	}

	if cfg.TeaPrefix == "" {
		if home := getenv("HOME"); home != "" {
			cfg.TeaPrefix = filepath.Join(home, ".tea")
		}
	}

	for _, b := range strings.Split(getenv("REDPANDA_BROKERS"), ",") {
		if b = strings.TrimSpace(b); b != "" {
			cfg.RedpandaBrokers = append(cfg.RedpandaBrokers, b)
		}
	}

	return cfg
}

// RequirePlatform returns the configured platform or ErrPlatformNotSet.
func (c *Config) RequirePlatform() (string, error) {
	if c.Platform == "" {
		return "", ErrPlatformNotSet
	}
	return c.Platform, nil
}

// RequireCellarDSN returns the configured Postgres DSN or ErrCellarDSNNotSet.
func (c *Config) RequireCellarDSN() (string, error) {
	if c.CellarDSN == "" {
		return "", ErrCellarDSNNotSet
	}
	return c.CellarDSN, nil
}

// ParseFlag interprets a boolean environment variable: empty is false, any
// strconv.ParseBool spelling is honored, and any other value is true.
func ParseFlag(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return true
	}
	return v
}
