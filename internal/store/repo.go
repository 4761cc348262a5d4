package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// StateRepo is a small key/value table for client-side state.
type StateRepo interface {
	// Get returns the value stored under key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// EducationRecord is one stored education entry.
type EducationRecord struct {
	Level         string   `json:"level"`
	Institution   string   `json:"institution,omitempty"`
	Field         string   `json:"field,omitempty"`
	GPA           *float64 `json:"gpa,omitempty"`
	YearCompleted *int     `json:"year_completed,omitempty"`
}

// ResumeMeta describes an uploaded resume. The file itself is not kept.
type ResumeMeta struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// ProfileRecord is a submitted student profile as the dev backend stores it.
type ProfileRecord struct {
	ID                   int64
	FullName             string
	FatherName           string
	MotherName           string
	Email                string
	PhoneCountryCode     string
	PhoneNumber          string
	Nationality          string
	CurrentLivingCountry string
	PreferredCountries   []string
	BudgetMinBDT         int
	BudgetMaxBDT         int
	PreferredCurrency    string
	PreferredIntake      string
	Education            []EducationRecord
	Resume               *ResumeMeta
	CreatedAt            time.Time
}

// ProfileRepo stores submitted profiles.
type ProfileRepo interface {
	// Create inserts p and returns its new id. p.ID and p.CreatedAt are set.
	Create(ctx context.Context, p *ProfileRecord) (int64, error)

	// Get returns the profile with the given id, or ErrNotFound.
	Get(ctx context.Context, id int64) (*ProfileRecord, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// EventRepo provides append access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// CountLLMRequests returns how many LLM requests were recorded.
	CountLLMRequests(ctx context.Context) (int, error)

	// RecentLLMRequests returns up to limit events, newest first.
	RecentLLMRequests(ctx context.Context, limit int) ([]LLMRequestEvent, error)
}

// LLMRequestEvent is a recorded LLM request.
type LLMRequestEvent struct {
	ID        int64
	Timestamp time.Time
	LLMRequestEventData
}
