package entity

import (
	"time"

	"github.com/google/uuid"
)

type SessionRole string

const (
	SessionRoleMember SessionRole = "member"
	SessionRoleOwner  SessionRole = "owner"
)

// Session is a bearer token issued by the external auth subsystem.
// This service only validates it and reads the actor behind it.
type Session struct {
	BaseSimple
	UserID    uuid.UUID   `db:"user_id"`
	Role      SessionRole `db:"role"`
	Token     string      `db:"token"`
	ExpiresAt time.Time   `db:"expires_at"`
}

func (s *Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
