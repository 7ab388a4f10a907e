package command

import (
	"time"

	"github.com/google/uuid"

	"github.com/solohouse/solo-os/internal/user"
)

// Session is the per-connection state threaded through every dispatch.
// User is nil until a login command sets it.
type Session struct {
	ID          string
	User        *user.User
	CurrentView string
	StartedAt   time.Time
}

// NewSession creates a fresh anonymous session.
func NewSession() *Session {
	return &Session{
		ID:          uuid.NewString(),
		CurrentView: "main",
		StartedAt:   time.Now(),
	}
}

// Authenticated reports whether a user is logged in on this session.
func (s *Session) Authenticated() bool {
	return s.User != nil
}

// IsAdmin reports whether the session user is an administrator.
func (s *Session) IsAdmin() bool {
	return s.User != nil && s.User.IsAdmin
}
