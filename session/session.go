// Package session holds the explicit "who is acting" object passed to every
// tournament and profile operation.
package session

import (
	"time"

	"github.com/Dosada05/torvix-arena/models"
)

type Session struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

// UserID returns "" for a nil or anonymous session.
func (s *Session) UserID() string {
	if s == nil || s.User == nil {
		return ""
	}
	return s.User.ID
}

func (s *Session) Active() bool {
	return s.UserID() != ""
}

// ForUser builds a session without a token, used by jobs and tests.
func ForUser(u *models.User) *Session {
	return &Session{User: u}
}
