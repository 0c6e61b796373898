package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextNoon(t *testing.T) {
	loc := time.UTC

	morning := time.Date(2026, 4, 10, 9, 15, 0, 0, loc)
	assert.Equal(t, time.Date(2026, 4, 10, 12, 0, 0, 0, loc), nextNoon(morning))

	exactlyNoon := time.Date(2026, 4, 10, 12, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2026, 4, 11, 12, 0, 0, 0, loc), nextNoon(exactlyNoon))

	evening := time.Date(2026, 4, 30, 18, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2026, 5, 1, 12, 0, 0, 0, loc), nextNoon(evening))
}
