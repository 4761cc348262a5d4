package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goabroadai/goabroad/internal/store"
)

type observed struct {
	inner  Provider
	name   string
	events store.EventRepo
	logger *zap.Logger
}

// Observe logs every request made through p and appends it to events.
// name is the provider name recorded with each event. events and logger
// may be nil.
func Observe(p Provider, name string, events store.EventRepo, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &observed{inner: p, name: name, events: events, logger: logger.Named("llm")}
}

func (o *observed) ModelID() string { return o.inner.ModelID() }

func (o *observed) Generate(ctx context.Context, req Request) (*Reply, error) {
	purpose := purposeOf(ctx)
	if ce := o.logger.Check(zap.DebugLevel, "llm prompt"); ce != nil {
		ce.Write(zap.String("purpose", purpose), zap.String("prompt", describe(req)))
	}

	start := time.Now()
	reply, err := o.inner.Generate(ctx, req)

	ev := store.LLMRequestEventData{
		Provider:  o.name,
		Model:     o.inner.ModelID(),
		Purpose:   purpose,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if reply != nil {
		ev.Model = reply.Model
		ev.InputTokens = reply.InputTokens
		ev.OutputTokens = reply.OutputTokens
	}

	fields := []zap.Field{
		zap.String("provider", ev.Provider),
		zap.String("model", ev.Model),
		zap.String("purpose", purpose),
		zap.Int("input_tokens", ev.InputTokens),
		zap.Int("output_tokens", ev.OutputTokens),
		zap.Int64("latency_ms", ev.LatencyMs),
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
		o.logger.Warn("llm request failed", append(fields, zap.Error(err))...)
	} else {
		o.logger.Info("llm request", fields...)
	}

	if o.events != nil {
		// The reply stands even if it cannot be recorded.
		if rerr := o.events.AppendLLMRequest(ctx, ev); rerr != nil {
			o.logger.Warn("record llm request", zap.Error(rerr))
		}
	}
	return reply, err
}

func describe(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	for _, t := range req.Turns {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", t.Role, t.Text)
	}
	if req.Schema != nil {
		fmt.Fprintf(&b, "[schema %s]\n", req.Schema.Name)
	}
	return b.String()
}
