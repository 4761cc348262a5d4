package llm

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Kind classifies provider failures.
type Kind int

const (
	// KindUnavailable covers network failures and 5xx answers.
	KindUnavailable Kind = iota
	KindRateLimited
	// KindRejected is a 4xx other than 429: bad key, bad model, bad request.
	KindRejected
	// KindInvalidOutput means the model answered with something that does
	// not match the requested schema.
	KindInvalidOutput
	KindTruncated
)

func (k Kind) String() string {
	switch k {
	case KindUnavailable:
		return "unavailable"
	case KindRateLimited:
		return "rate limited"
	case KindRejected:
		return "rejected"
	case KindInvalidOutput:
		return "invalid output"
	case KindTruncated:
		return "truncated"
	}
	return "unknown"
}

// Error is returned by every Provider in this package.
type Error struct {
	Provider string
	Kind     Kind
	// Status is the HTTP status the provider answered with, 0 if none.
	Status int
	// RetryAfter is the wait the provider asked for, when it said.
	RetryAfter time.Duration
	Err        error
}

func (e *Error) Error() string {
	msg := e.Provider + ": " + e.Kind.String()
	if e.Status != 0 {
		msg += fmt.Sprintf(" (%d)", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the Kind of err if it wraps an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// classify maps an SDK failure with its HTTP status onto an *Error.
func classify(provider string, status int, err error) *Error {
	kind := KindUnavailable
	switch {
	case status == http.StatusTooManyRequests:
		kind = KindRateLimited
	case status >= 400 && status < 500:
		kind = KindRejected
	}
	return &Error{Provider: provider, Kind: kind, Status: status, Err: err}
}

// retryAfter reads a Retry-After header given in seconds.
func retryAfter(h http.Header) time.Duration {
	if h == nil {
		return 0
	}
	secs, err := strconv.Atoi(h.Get("Retry-After"))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
