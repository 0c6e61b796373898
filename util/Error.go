package util

import (
	"errors"

	"gorm.io/gorm"
)

// ErrInvalidToken is returned when a token cannot be parsed or its signature cannot be verified
var ErrInvalidToken = errors.New("invalid token")

// IsRecordNotFound checks if the error means the query matched nothing
func IsRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
