package model

import "time"

// JwtPayload is the decoded content of an authentication token.
// IssuedAt and ExpiresAt are seconds since epoch and may be absent.
type JwtPayload struct {
	ID        int64  `json:"id" validate:"required"`
	Email     string `json:"email" validate:"required"`
	Role      Role   `json:"role" validate:"required"`
	IssuedAt  *int64 `json:"iat,omitempty"`
	ExpiresAt *int64 `json:"exp,omitempty"`
}

// IsExpired is true iff exp is present and now >= exp.
// A payload without exp never expires.
func (p JwtPayload) IsExpired(now time.Time) bool {
	if p.ExpiresAt == nil {
		return false
	}
	return now.Unix() >= *p.ExpiresAt
}

// ExpiresTime returns exp as a time, or nil when the payload has none
func (p JwtPayload) ExpiresTime() *time.Time {
	if p.ExpiresAt == nil {
		return nil
	}
	t := time.Unix(*p.ExpiresAt, 0).UTC()
	return &t
}
