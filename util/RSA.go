package util

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"strings"
)

// normalizePEM handles both \n literals (as found in .env files) and actual newlines
func normalizePEM(raw string) []byte {
	return []byte(strings.ReplaceAll(raw, "\\n", "\n"))
}

// ParseRSAPublicKey reads a PKIX public key in PEM format
func ParseRSAPublicKey(raw string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(normalizePEM(raw))
	if block == nil {
		return nil, errors.New("failed to decode public key PEM - ensure it's properly formatted with BEGIN/END markers")
	}

	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, errors.New("failed to parse public key: " + err.Error())
	}

	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("public key is not an RSA key")
	}
	return rsaPub, nil
}

// ParseRSAPrivateKey reads a PKCS1 private key in PEM format
func ParseRSAPrivateKey(raw string) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(normalizePEM(raw))
	if block == nil {
		return nil, errors.New("failed to decode private key PEM - ensure it's properly formatted with BEGIN/END markers")
	}

	priv, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, errors.New("failed to parse private key: " + err.Error())
	}
	return priv, nil
}
