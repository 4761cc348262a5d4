package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goabroadai/goabroad/internal/store"
)

// ErrNotConfigured means the environment names no provider and holds no
// known API key.
var ErrNotConfigured = errors.New("no LLM provider configured")

// Open builds the provider cfg selects, wrapped so that each call is
// bounded by cfg.Timeout, retried per cfg.Retry, and observed. events may
// be nil.
func Open(ctx context.Context, cfg Config, events store.EventRepo, logger *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	var base Provider
	switch cfg.Provider {
	case Anthropic:
		base = newAnthropic(cfg)
	case OpenAI, OpenRouter:
		base = newOpenAI(cfg.Provider, cfg)
	case Gemini:
		g, err := newGemini(ctx, cfg)
		if err != nil {
			return nil, err
		}
		base = g
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}

	// Each attempt is observed, so retries show up as separate events.
	p := WithRetry(Observe(base, cfg.Provider, events, logger), cfg.Retry)
	return withTimeout(p, cfg.Timeout), nil
}

// OpenFromEnv is Open with ConfigFromEnv.
func OpenFromEnv(ctx context.Context, events store.EventRepo, logger *zap.Logger) (Provider, Config, error) {
	cfg, ok := ConfigFromEnv()
	if !ok {
		return nil, Config{}, ErrNotConfigured
	}
	p, err := Open(ctx, cfg, events, logger)
	if err != nil {
		return nil, cfg, err
	}
	return p, cfg.withDefaults(), nil
}

type timed struct {
	Provider
	timeout time.Duration
}

func withTimeout(p Provider, d time.Duration) Provider {
	if d <= 0 {
		return p
	}
	return &timed{Provider: p, timeout: d}
}

func (t *timed) Generate(ctx context.Context, req Request) (*Reply, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.Provider.Generate(ctx, req)
}
