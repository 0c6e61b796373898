package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionRecord is the persisted snapshot of an established session.
// The AuthResponse itself is only ever stored sealed.
type SessionRecord struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID    int64      `gorm:"not null;index"`
	Email     string     `gorm:"size:255;not null"`
	Role      string     `gorm:"size:50;not null"`
	Sealed    string     `gorm:"type:text;not null"`
	TokenHash string     `gorm:"size:64;not null;index"` // sha256 hex of the raw token
	ExpiresAt *time.Time `gorm:"index"`                  // NULL if the token carries no exp
	ClearedAt *time.Time `gorm:"index"`                  // NULL until logout or expiry
	CreatedAt time.Time  `gorm:"autoCreateTime"`
}

func (r *SessionRecord) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// IsActive checks if the record can still be restored
func (r *SessionRecord) IsActive(now time.Time) bool {
	if r.ClearedAt != nil {
		return false
	}
	return r.ExpiresAt == nil || now.Before(*r.ExpiresAt)
}
