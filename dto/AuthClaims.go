package dto

import (
	"farm-market-session/model"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims is the token body as it travels on the wire
type AuthClaims struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	// Standard claims (exp, iat) are embedded here
	jwt.RegisteredClaims
}

// ToPayload drops everything the session does not use
func (c *AuthClaims) ToPayload() model.JwtPayload {
	p := model.JwtPayload{
		ID:    c.UserID,
		Email: c.Email,
		Role:  model.Role(c.Role),
	}
	if c.IssuedAt != nil {
		iat := c.IssuedAt.Unix()
		p.IssuedAt = &iat
	}
	if c.ExpiresAt != nil {
		exp := c.ExpiresAt.Unix()
		p.ExpiresAt = &exp
	}
	return p
}

// ClaimsFromPayload is the inverse of ToPayload, used when signing
func ClaimsFromPayload(p model.JwtPayload) AuthClaims {
	c := AuthClaims{
		UserID: p.ID,
		Email:  p.Email,
		Role:   string(p.Role),
	}
	if p.IssuedAt != nil {
		c.IssuedAt = jwt.NewNumericDate(unix(*p.IssuedAt))
	}
	if p.ExpiresAt != nil {
		c.ExpiresAt = jwt.NewNumericDate(unix(*p.ExpiresAt))
	}
	return c
}
