package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

type retrying struct {
	inner Provider
	cfg   RetryConfig
	sleep func(context.Context, time.Duration) error
}

// WithRetry retries rate limits and outages with capped exponential backoff.
// A reply that fails its schema is retried once; rejected and truncated
// requests are not retried.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	if cfg.Attempts <= 1 {
		return p
	}
	return &retrying{inner: p, cfg: cfg, sleep: sleepCtx}
}

func (r *retrying) ModelID() string { return r.inner.ModelID() }

func (r *retrying) Generate(ctx context.Context, req Request) (*Reply, error) {
	var err error
	reasked := false
	for attempt := range r.cfg.Attempts {
		if attempt > 0 {
			if serr := r.sleep(ctx, r.delay(attempt, err)); serr != nil {
				return nil, serr
			}
		}

		var reply *Reply
		reply, err = r.inner.Generate(ctx, req)
		if err == nil {
			return reply, nil
		}
		if !retryable(err, &reasked) {
			return nil, err
		}
	}
	return nil, err
}

func retryable(err error, reasked *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	kind, ok := KindOf(err)
	if !ok {
		return true
	}
	switch kind {
	case KindRejected, KindTruncated:
		return false
	case KindInvalidOutput:
		if *reasked {
			return false
		}
		*reasked = true
	}
	return true
}

// delay is the wait before attempt (1-based retries), honouring a
// provider's Retry-After.
func (r *retrying) delay(attempt int, err error) time.Duration {
	var e *Error
	if errors.As(err, &e) && e.RetryAfter > 0 {
		return e.RetryAfter
	}

	wait := r.cfg.Initial << (attempt - 1)
	if r.cfg.Max > 0 && (wait > r.cfg.Max || wait <= 0) {
		wait = r.cfg.Max
	}
	// ±20% jitter
	jitter := time.Duration(float64(wait) * 0.2 * (2*rand.Float64() - 1))
	return max(wait+jitter, 0)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
