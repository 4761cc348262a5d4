package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

func retryingStub(t *testing.T, attempts int, replies ...StubReply) (*retrying, *Stub, *[]time.Duration) {
	t.Helper()
	stub := NewStub(replies...)
	r, ok := WithRetry(stub, RetryConfig{Attempts: attempts, Initial: time.Second, Max: 3 * time.Second}).(*retrying)
	if !ok {
		t.Fatal("expected a retrying provider")
	}
	var waits []time.Duration
	r.sleep = func(_ context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	}
	return r, stub, &waits
}

func TestRetry_TransientThenSuccess(t *testing.T) {
	r, stub, waits := retryingStub(t, 3,
		StubReply{Err: &Error{Kind: KindUnavailable}},
		StubReply{Err: &Error{Kind: KindRateLimited, RetryAfter: 5 * time.Second}},
		StubReply{JSON: `{"response":"ok"}`},
	)

	if _, err := r.Generate(context.Background(), Prompt("", "q")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := len(stub.Requests()); n != 3 {
		t.Errorf("attempts = %d, want 3", n)
	}
	if len(*waits) != 2 {
		t.Fatalf("waits = %v", *waits)
	}
	if w := (*waits)[0]; w < 800*time.Millisecond || w > 1200*time.Millisecond {
		t.Errorf("first wait %s outside 1s ± 20%%", w)
	}
	if (*waits)[1] != 5*time.Second {
		t.Errorf("Retry-After not honoured: %s", (*waits)[1])
	}
}

func TestRetry_GivesUp(t *testing.T) {
	last := &Error{Kind: KindUnavailable, Err: errors.New("third")}
	r, stub, _ := retryingStub(t, 3,
		StubReply{Err: &Error{Kind: KindUnavailable}},
		StubReply{Err: &Error{Kind: KindUnavailable}},
		StubReply{Err: last},
	)

	_, err := r.Generate(context.Background(), Prompt("", "q"))
	if !errors.Is(err, last) {
		t.Errorf("expected the last error, got %v", err)
	}
	if n := len(stub.Requests()); n != 3 {
		t.Errorf("attempts = %d", n)
	}
}

func TestRetry_NotRetried(t *testing.T) {
	for _, kind := range []Kind{KindRejected, KindTruncated} {
		t.Run(kind.String(), func(t *testing.T) {
			r, stub, _ := retryingStub(t, 3, StubReply{Err: &Error{Kind: kind}}, StubReply{JSON: `{}`})
			if _, err := r.Generate(context.Background(), Prompt("", "q")); err == nil {
				t.Fatal("expected error")
			}
			if n := len(stub.Requests()); n != 1 {
				t.Errorf("attempts = %d, want 1", n)
			}
		})
	}
}

func TestRetry_InvalidOutputOnce(t *testing.T) {
	r, stub, _ := retryingStub(t, 5,
		StubReply{JSON: `{"wrong":1}`},
		StubReply{JSON: `{"wrong":2}`},
		StubReply{JSON: `{"response":"never reached"}`},
	)
	req := Prompt("", "q")
	req.Schema = replySchema

	_, err := r.Generate(context.Background(), req)
	if kind, _ := KindOf(err); kind != KindInvalidOutput {
		t.Fatalf("expected invalid output, got %v", err)
	}
	if n := len(stub.Requests()); n != 2 {
		t.Errorf("attempts = %d, want 2", n)
	}
}

func TestRetry_ContextCancelled(t *testing.T) {
	stub := NewStub(StubReply{Err: &Error{Kind: KindUnavailable}}, StubReply{JSON: `{}`})
	p := WithRetry(stub, RetryConfig{Attempts: 3, Initial: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Generate(ctx, Prompt("", "q"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRetry_SingleAttemptUnwrapped(t *testing.T) {
	stub := NewStub()
	if p := WithRetry(stub, RetryConfig{Attempts: 1}); p != Provider(stub) {
		t.Error("one attempt needs no wrapper")
	}
}

func TestRetry_DelayCapped(t *testing.T) {
	r := &retrying{cfg: RetryConfig{Attempts: 10, Initial: time.Second, Max: 3 * time.Second}}
	if d := r.delay(6, errors.New("x")); d > 3600*time.Millisecond {
		t.Errorf("delay %s exceeds cap plus jitter", d)
	}
}
