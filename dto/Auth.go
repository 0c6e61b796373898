package dto

import (
	"time"

	"farm-market-session/model"
)

// AuthResponse is what the authentication service hands the frontend after login or refresh
type AuthResponse struct {
	Token string      `json:"token" validate:"required"`
	User  *model.User `json:"user" validate:"required"`
}

// SessionView is the public shape of the active session. The raw token is never echoed.
type SessionView struct {
	SessionID     string     `json:"session_id"`
	User          model.User `json:"user"`
	IssuedAt      *int64     `json:"iat,omitempty"`
	ExpiresAt     *int64     `json:"exp,omitempty"`
	EstablishedAt time.Time  `json:"established_at"`
}

func NewSessionView(s model.SessionState) SessionView {
	return SessionView{
		SessionID:     s.ID.String(),
		User:          s.User,
		IssuedAt:      s.Payload.IssuedAt,
		ExpiresAt:     s.Payload.ExpiresAt,
		EstablishedAt: s.EstablishedAt,
	}
}

func unix(sec int64) time.Time {
	return time.Unix(sec, 0)
}
