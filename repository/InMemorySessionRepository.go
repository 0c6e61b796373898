package repository

import (
	"sort"
	"sync"
	"time"

	"farm-market-session/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type memSessionRepo struct {
	mu      sync.Mutex
	records map[uuid.UUID]model.SessionRecord
}

// NewInMemorySessionRepo keeps records for the life of the process only.
// Lookups report gorm.ErrRecordNotFound so callers handle both stores the same way.
func NewInMemorySessionRepo() SessionRepository {
	return &memSessionRepo{records: make(map[uuid.UUID]model.SessionRecord)}
}

func (r *memSessionRepo) Replace(rec *model.SessionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.clearLocked(time.Now())
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	r.records[rec.ID] = *rec
	return nil
}

func (r *memSessionRepo) GetActive() (*model.SessionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	active := make([]model.SessionRecord, 0, 1)
	for _, rec := range r.records {
		if rec.ClearedAt == nil {
			active = append(active, rec)
		}
	}
	if len(active) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].CreatedAt.After(active[j].CreatedAt)
	})
	rec := active[0]
	return &rec, nil
}

func (r *memSessionRepo) ClearActive() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearLocked(time.Now())
	return nil
}

func (r *memSessionRepo) DeleteExpired(now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, rec := range r.records {
		if rec.ClearedAt != nil || (rec.ExpiresAt != nil && !now.Before(*rec.ExpiresAt)) {
			delete(r.records, id)
		}
	}
	return nil
}

func (r *memSessionRepo) clearLocked(now time.Time) {
	for id, rec := range r.records {
		if rec.ClearedAt == nil {
			cleared := now
			rec.ClearedAt = &cleared
			r.records[id] = rec
		}
	}
}
