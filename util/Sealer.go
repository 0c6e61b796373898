package util

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

const nonceLen = 24

// HashToken returns a SHA256 hex of the token string for safe DB storage and logs
func HashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

// Sealer encrypts persisted sessions so raw tokens never sit in the database in clear text
type Sealer struct {
	key [32]byte
}

// NewSealer derives the secretbox key from a passphrase
func NewSealer(secret string) *Sealer {
	return &Sealer{key: sha256.Sum256([]byte(secret))}
}

// Seal returns base64(nonce || box)
func (s *Sealer) Seal(plain []byte) (string, error) {
	var nonce [nonceLen]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", err
	}
	box := secretbox.Seal(nonce[:], plain, &nonce, &s.key)
	return base64.StdEncoding.EncodeToString(box), nil
}

func (s *Sealer) Open(sealed string) ([]byte, error) {
	box, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return nil, errors.New("invalid sealed encoding")
	}
	if len(box) < nonceLen+secretbox.Overhead {
		return nil, errors.New("sealed value too short")
	}

	var nonce [nonceLen]byte
	copy(nonce[:], box[:nonceLen])
	plain, ok := secretbox.Open(nil, box[nonceLen:], &nonce, &s.key)
	if !ok {
		return nil, errors.New("sealed value could not be opened")
	}
	return plain, nil
}
