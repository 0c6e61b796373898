package util

import (
	"crypto/rsa"
	"errors"
	"fmt"

	"farm-market-session/dto"
	"farm-market-session/model"

	"github.com/golang-jwt/jwt/v5"
)

// JWTDecoder verifies token signatures with one configured algorithm and key.
// Expiry is deliberately left to model.JwtPayload.IsExpired.
type JWTDecoder struct {
	method jwt.SigningMethod
	key    interface{}
	parser *jwt.Parser
}

// NewHMACDecoder verifies HS256 tokens signed with a shared secret
func NewHMACDecoder(secret []byte) *JWTDecoder {
	return newDecoder(jwt.SigningMethodHS256, secret)
}

// NewRSADecoder verifies RS256 tokens against a public key
func NewRSADecoder(pub *rsa.PublicKey) *JWTDecoder {
	return newDecoder(jwt.SigningMethodRS256, pub)
}

func newDecoder(method jwt.SigningMethod, key interface{}) *JWTDecoder {
	return &JWTDecoder{
		method: method,
		key:    key,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{method.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}
}

// NewDecoderFromConfig picks RS256 when a public key is configured, HS256 otherwise
func NewDecoderFromConfig(cfg Config) (*JWTDecoder, error) {
	if cfg.RSAPublicKey != "" {
		pub, err := ParseRSAPublicKey(cfg.RSAPublicKey)
		if err != nil {
			return nil, err
		}
		return NewRSADecoder(pub), nil
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("neither RSA_PUBLIC_KEY nor JWT_SECRET is set")
	}
	return NewHMACDecoder([]byte(cfg.JWTSecret)), nil
}

// Algorithm is the only alg header this decoder accepts
func (d *JWTDecoder) Algorithm() string {
	return d.method.Alg()
}

// Decode validates the signature and returns the session payload
func (d *JWTDecoder) Decode(tokenString string) (*model.JwtPayload, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("%w: empty token", ErrInvalidToken)
	}

	claims := &dto.AuthClaims{}
	token, err := d.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != d.method.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return d.key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("%w: signature not verified", ErrInvalidToken)
	}

	payload := claims.ToPayload()
	if err := ValidateStruct(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return &payload, nil
}
