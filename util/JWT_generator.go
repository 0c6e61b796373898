package util

import (
	"crypto/rsa"
	"errors"
	"time"

	"farm-market-session/dto"
	"farm-market-session/model"

	"github.com/golang-jwt/jwt/v5"
)

// JWTSigner issues tokens the decoder will accept. Only the `issue` command and tests use it;
// real tokens come from the authentication service.
type JWTSigner struct {
	method jwt.SigningMethod
	key    interface{}
}

func NewHMACSigner(secret []byte) *JWTSigner {
	return &JWTSigner{method: jwt.SigningMethodHS256, key: secret}
}

func NewRSASigner(priv *rsa.PrivateKey) *JWTSigner {
	return &JWTSigner{method: jwt.SigningMethodRS256, key: priv}
}

// NewSignerFromConfig mirrors NewDecoderFromConfig
func NewSignerFromConfig(cfg Config) (*JWTSigner, error) {
	if cfg.RSAPublicKey != "" {
		if cfg.RSAPrivateKey == "" {
			return nil, errors.New("RSA_PUBLIC_KEY is set but RSA_PRIVATE_KEY is not")
		}
		priv, err := ParseRSAPrivateKey(cfg.RSAPrivateKey)
		if err != nil {
			return nil, err
		}
		return NewRSASigner(priv), nil
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("neither RSA_PRIVATE_KEY nor JWT_SECRET is set")
	}
	return NewHMACSigner([]byte(cfg.JWTSecret)), nil
}

// Sign encodes the payload as-is. iat/exp are only written when present.
func (s *JWTSigner) Sign(p model.JwtPayload) (string, error) {
	claims := dto.ClaimsFromPayload(p)
	return jwt.NewWithClaims(s.method, claims).SignedString(s.key)
}

// NewPayload builds a payload issued at now. A zero ttl leaves exp unset;
// a negative one yields a token that is already expired.
func NewPayload(id int64, email string, role model.Role, now time.Time, ttl time.Duration) model.JwtPayload {
	iat := now.Unix()
	p := model.JwtPayload{
		ID:       id,
		Email:    email,
		Role:     role,
		IssuedAt: &iat,
	}
	if ttl != 0 {
		exp := now.Add(ttl).Unix()
		p.ExpiresAt = &exp
	}
	return p
}
