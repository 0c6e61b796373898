package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionState is the active authenticated session held by the daemon
type SessionState struct {
	ID            uuid.UUID
	User          User
	RawToken      string
	Payload       JwtPayload
	EstablishedAt time.Time
}

// Clone returns a copy that shares no pointers with s
func (s SessionState) Clone() SessionState {
	out := s
	if s.Payload.IssuedAt != nil {
		iat := *s.Payload.IssuedAt
		out.Payload.IssuedAt = &iat
	}
	if s.Payload.ExpiresAt != nil {
		exp := *s.Payload.ExpiresAt
		out.Payload.ExpiresAt = &exp
	}
	return out
}
