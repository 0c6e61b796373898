package repository

import (
	"time"

	"farm-market-session/model"

	"gorm.io/gorm"
)

// SessionRepository persists the snapshot of the single active session
type SessionRepository interface {
	// Replace clears every active record and stores rec as the new one
	Replace(rec *model.SessionRecord) error

	// GetActive returns the newest record not yet cleared. Expiry is the caller's concern.
	GetActive() (*model.SessionRecord, error)

	// ClearActive marks every uncleared record as cleared
	ClearActive() error

	// DeleteExpired purges cleared records and records whose token expired before now
	DeleteExpired(now time.Time) error
}

type pgSessionRepo struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &pgSessionRepo{db: db}
}

// AutoMigrate creates or updates the session_records table
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.SessionRecord{})
}

func (r *pgSessionRepo) Replace(rec *model.SessionRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := clearActive(tx); err != nil {
			return err
		}
		return tx.Create(rec).Error
	})
}

func (r *pgSessionRepo) GetActive() (*model.SessionRecord, error) {
	var rec model.SessionRecord
	if err := r.db.Where("cleared_at IS NULL").Order("created_at DESC").First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *pgSessionRepo) ClearActive() error {
	return clearActive(r.db)
}

func (r *pgSessionRepo) DeleteExpired(now time.Time) error {
	return r.db.
		Where("cleared_at IS NOT NULL OR (expires_at IS NOT NULL AND expires_at <= ?)", now).
		Delete(&model.SessionRecord{}).Error
}

func clearActive(db *gorm.DB) error {
	return db.Model(&model.SessionRecord{}).
		Where("cleared_at IS NULL").
		Update("cleared_at", time.Now()).Error
}
