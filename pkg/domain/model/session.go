package model

import (
	"time"

	"github.com/secmon-lab/gridiron/pkg/domain/types"
)

// Session tracks the lifetime of a browser workspace. Sessions are kept in
// memory only and slide forward on every request.
type Session struct {
	ID        types.WorkspaceID `json:"id"`
	CreatedAt time.Time         `json:"created_at"`
	ExpiresAt time.Time         `json:"expires_at"`
}

// NewSession creates a new Session with a UUID v7 ID
func NewSession(now time.Time, ttl time.Duration) (*Session, error) {
	id, err := types.NewWorkspaceID()
	if err != nil {
		return nil, err
	}

	return &Session{
		ID:        id,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}, nil
}

// Touch extends the session to now + ttl
func (s *Session) Touch(now time.Time, ttl time.Duration) {
	s.ExpiresAt = now.Add(ttl)
}

// IsExpired checks if the session has expired at now
func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
