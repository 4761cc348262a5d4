package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Provider names accepted by Config.Provider.
const (
	Anthropic  = "anthropic"
	OpenAI     = "openai"
	Gemini     = "gemini"
	OpenRouter = "openrouter"
)

// defaultModels is used when Config.Model is empty.
var defaultModels = map[string]string{
	Anthropic:  "claude-haiku-4-5-20251001",
	OpenAI:     "gpt-4o-mini",
	Gemini:     "gemini-2.0-flash",
	OpenRouter: "google/gemini-2.0-flash-exp",
}

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// Config selects one provider and how to call it.
type Config struct {
	Provider string
	APIKey   string
	Model    string
	// BaseURL overrides the provider endpoint. OpenRouter defaults to its
	// public API; Gemini ignores it.
	BaseURL string

	// Timeout bounds one Generate call including retries.
	Timeout   time.Duration
	MaxTokens int
	Retry     RetryConfig
}

// RetryConfig controls WithRetry.
type RetryConfig struct {
	Attempts int
	Initial  time.Duration
	Max      time.Duration
}

// DefaultConfig returns the settings used for anything not configured.
func DefaultConfig() Config {
	return Config{
		Timeout:   60 * time.Second,
		MaxTokens: 1024,
		Retry: RetryConfig{
			Attempts: 3,
			Initial:  time.Second,
			Max:      10 * time.Second,
		},
	}
}

// well-known key variables, checked in this order when GOABROAD_LLM_PROVIDER
// is unset.
var discoveryOrder = []struct{ provider, env string }{
	{Gemini, "GEMINI_API_KEY"},
	{OpenAI, "OPENAI_API_KEY"},
	{Anthropic, "ANTHROPIC_API_KEY"},
	{OpenRouter, "OPENROUTER_API_KEY"},
}

// ConfigFromEnv reads GOABROAD_LLM_* settings. Without GOABROAD_LLM_PROVIDER
// it picks the first provider whose well-known API key variable is set.
// ok is false when neither is present.
func ConfigFromEnv() (cfg Config, ok bool) {
	cfg = DefaultConfig()

	cfg.Provider = os.Getenv("GOABROAD_LLM_PROVIDER")
	cfg.APIKey = os.Getenv("GOABROAD_LLM_API_KEY")
	if cfg.Provider == "" {
		for _, d := range discoveryOrder {
			if k := os.Getenv(d.env); k != "" {
				cfg.Provider = d.provider
				if cfg.APIKey == "" {
					cfg.APIKey = k
				}
				break
			}
		}
	} else if cfg.APIKey == "" {
		for _, d := range discoveryOrder {
			if d.provider == cfg.Provider {
				cfg.APIKey = os.Getenv(d.env)
			}
		}
	}
	if cfg.Provider == "" {
		return Config{}, false
	}

	cfg.Model = os.Getenv("GOABROAD_LLM_MODEL")
	cfg.BaseURL = os.Getenv("GOABROAD_LLM_BASE_URL")
	if v := os.Getenv("GOABROAD_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if v := os.Getenv("GOABROAD_LLM_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxTokens = n
		}
	}
	return cfg, true
}

// withDefaults fills the model and endpoint for the chosen provider.
func (c Config) withDefaults() Config {
	if c.Model == "" {
		c.Model = defaultModels[c.Provider]
	}
	if c.Provider == OpenRouter && c.BaseURL == "" {
		c.BaseURL = openRouterBaseURL
	}
	return c
}

// Validate checks the provider name and that an API key is present.
func (c Config) Validate() error {
	if _, ok := defaultModels[c.Provider]; !ok {
		return fmt.Errorf("unknown LLM provider %q", c.Provider)
	}
	if c.APIKey == "" {
		return fmt.Errorf("an API key is required for the %s provider (set GOABROAD_LLM_API_KEY)", c.Provider)
	}
	return nil
}
