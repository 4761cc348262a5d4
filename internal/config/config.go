// Package config resolves client settings from the environment and an
// optional .env file. Command-line flags are applied on top by cmd/.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultAPIURL  = "http://localhost:8000"
	DefaultTimeout = 2 * time.Minute
	DefaultAddr    = ":8000"
)

// Config holds the resolved client settings.
type Config struct {
	// APIURL is the base URL of the advisory backend.
	APIURL string
	// DBPath is the local state database. Empty means the default location.
	DBPath string
	// LogFile receives the structured log. Empty means next to DBPath.
	LogFile string
	Verbose bool
	// Timeout bounds each backend request.
	Timeout time.Duration
	// DevAddr is the listen address of the dev backend.
	DevAddr string
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		APIURL:  DefaultAPIURL,
		Timeout: DefaultTimeout,
		DevAddr: DefaultAddr,
	}
}

// Load reads envFiles (".env" when none are given) into the process
// environment without overriding variables that are already set, then
// builds a Config from GOABROAD_* variables. Missing env files are ignored.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from GOABROAD_* environment variables, falling
// back to defaults for unset values.
func FromEnv() (Config, error) {
	cfg := Default()

	if v := os.Getenv("GOABROAD_API_URL"); v != "" {
		cfg.APIURL = v
	}
	cfg.DBPath = os.Getenv("GOABROAD_DB")
	cfg.LogFile = os.Getenv("GOABROAD_LOG_FILE")
	if v := os.Getenv("GOABROAD_DEV_ADDR"); v != "" {
		cfg.DevAddr = v
	}

	if v := os.Getenv("GOABROAD_VERBOSE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("GOABROAD_VERBOSE: %w", err)
		}
		cfg.Verbose = b
	}
	if v := os.Getenv("GOABROAD_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("GOABROAD_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}

	return cfg, cfg.Validate()
}

// Validate checks that the settings are usable.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("invalid API URL %q: %w", c.APIURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid API URL %q: scheme must be http or https", c.APIURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid API URL %q: missing host", c.APIURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}
