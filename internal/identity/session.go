// Package identity tracks which submitted profile this client speaks for.
package identity

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/goabroadai/goabroad/internal/store"
)

// Key is the state key the user id is stored under.
const Key = "goabroad_user_id"

// Session holds the user id loaded at startup. It is updated only by a
// successful submission or an explicit logout.
type Session struct {
	repo store.StateRepo

	mu     sync.RWMutex
	userID int64
}

// Load reads the stored user id. A missing or unparsable value yields a
// session without an identity.
func Load(ctx context.Context, repo store.StateRepo) (*Session, error) {
	s := &Session{repo: repo}
	raw, ok, err := repo.Get(ctx, Key)
	if err != nil {
		return nil, fmt.Errorf("load user id: %w", err)
	}
	if ok {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			s.userID = id
		}
	}
	return s, nil
}

// UserID returns the current user id, or 0 when no profile was submitted.
func (s *Session) UserID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// HasIdentity reports whether a user id is known.
func (s *Session) HasIdentity() bool {
	return s.UserID() > 0
}

// Remember persists id and makes it current. The stored value is written
// first so memory never runs ahead of disk.
func (s *Session) Remember(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("invalid user id %d", id)
	}
	if err := s.repo.Set(ctx, Key, strconv.FormatInt(id, 10)); err != nil {
		return err
	}
	s.mu.Lock()
	s.userID = id
	s.mu.Unlock()
	return nil
}

// Forget clears the stored user id.
func (s *Session) Forget(ctx context.Context) error {
	if err := s.repo.Delete(ctx, Key); err != nil {
		return err
	}
	s.mu.Lock()
	s.userID = 0
	s.mu.Unlock()
	return nil
}
