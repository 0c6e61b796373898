package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"farm-market-session/dto"
	"farm-market-session/metrics"
	"farm-market-session/model"
	"farm-market-session/repository"
	"farm-market-session/util"

	"github.com/google/uuid"
)

var (
	// ErrInconsistentSession means the user record disagrees with the token that should authorize it
	ErrInconsistentSession = errors.New("inconsistent session")

	// ErrInvalidResponse means the AuthResponse is missing fields or malformed
	ErrInvalidResponse = errors.New("invalid auth response")
)

// TokenDecoder turns a raw token into a verified payload
type TokenDecoder interface {
	Decode(token string) (*model.JwtPayload, error)
}

// SessionNotifier is told about every new sign-in
type SessionNotifier interface {
	NotifySignIn(user model.User, at time.Time) error
}

// SessionService owns the single process-wide session.
// mu only guards the state pointer and is never held across I/O.
// storeMu is taken before mu by every path that swaps the state and writes the store,
// so store writes land in the same order as the swaps they mirror.
type SessionService struct {
	decoder   TokenDecoder
	store     repository.SessionRepository // nil disables persistence
	sealer    *util.Sealer
	notifier  SessionNotifier // nil disables sign-in notices
	collector *metrics.Collector
	now       func() time.Time

	storeMu sync.Mutex
	mu      sync.Mutex
	state   *model.SessionState
}

func NewSessionService(
	decoder TokenDecoder,
	store repository.SessionRepository,
	sealer *util.Sealer,
	notifier SessionNotifier,
	collector *metrics.Collector,
) *SessionService {
	return &SessionService{
		decoder:   decoder,
		store:     store,
		sealer:    sealer,
		notifier:  notifier,
		collector: collector,
		now:       time.Now,
	}
}

// Decode parses and verifies a token without touching session state
func (s *SessionService) Decode(token string) (*model.JwtPayload, error) {
	return s.decoder.Decode(token)
}

// Establish validates the response and makes it the active session.
// On any error the previous session, if one exists, is left as it was.
func (s *SessionService) Establish(resp *dto.AuthResponse) (*model.SessionState, error) {
	state, reason, err := s.build(resp)
	if err != nil {
		s.collector.RecordRejected(reason)
		return nil, err
	}

	s.storeMu.Lock()
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	s.persist(resp, state)
	s.storeMu.Unlock()

	s.collector.RecordEstablished()
	log.Printf("[SESSION] established %s for user %d (%s), token %s", state.ID, state.User.ID, state.User.Role, shortHash(state.RawToken))
	if !state.User.Role.IsKnown() {
		log.Printf("[SESSION] %s carries unrecognised role %q", state.ID, state.User.Role)
	}

	s.notify(state)

	out := state.Clone()
	return &out, nil
}

// Clear discards the active session. Clearing an empty session is a no-op.
func (s *SessionService) Clear() {
	s.storeMu.Lock()
	defer s.storeMu.Unlock()

	s.mu.Lock()
	prev := s.state
	s.state = nil
	s.mu.Unlock()

	if prev != nil {
		s.collector.RecordCleared()
		log.Printf("[SESSION] cleared %s", prev.ID)
	}
	s.clearStore()
}

// Current returns a copy of the active session. An expired session is dropped here and reported as absent.
func (s *SessionService) Current() (*model.SessionState, bool) {
	now := s.now()

	s.mu.Lock()
	state := s.state
	if state == nil {
		s.mu.Unlock()
		return nil, false
	}
	if state.Payload.IsExpired(now) {
		s.state = nil
		s.mu.Unlock()

		s.collector.RecordExpired()
		log.Printf("[SESSION] %s expired", state.ID)
		s.clearExpired()
		return nil, false
	}
	out := state.Clone()
	s.mu.Unlock()

	return &out, true
}

// Restore re-establishes the last persisted session, if it is still usable.
// It does not write back to the store or send a sign-in notice.
func (s *SessionService) Restore() (*model.SessionState, error) {
	if s.store == nil || s.sealer == nil {
		return nil, nil
	}

	s.storeMu.Lock()
	defer s.storeMu.Unlock()

	rec, err := s.store.GetActive()
	if err != nil {
		if util.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("load session record: %w", err)
	}

	if !rec.IsActive(s.now()) {
		log.Printf("[STORE] record %s is no longer active, discarding", rec.ID)
		s.clearStore()
		return nil, nil
	}

	plain, err := s.sealer.Open(rec.Sealed)
	if err != nil {
		s.clearStore()
		return nil, fmt.Errorf("open session record %s: %w", rec.ID, err)
	}

	var resp dto.AuthResponse
	if err := json.Unmarshal(plain, &resp); err != nil {
		s.clearStore()
		return nil, fmt.Errorf("decode session record %s: %w", rec.ID, err)
	}

	state, _, err := s.build(&resp)
	if err != nil {
		s.clearStore()
		return nil, fmt.Errorf("restore session record %s: %w", rec.ID, err)
	}
	state.ID = rec.ID
	state.EstablishedAt = rec.CreatedAt

	s.mu.Lock()
	s.state = state
	s.mu.Unlock()

	log.Printf("[SESSION] restored %s for user %d", state.ID, state.User.ID)
	out := state.Clone()
	return &out, nil
}

// build runs every check Establish needs and returns the state it would install.
// On failure it also returns the metrics reason; recording it is up to the caller.
func (s *SessionService) build(resp *dto.AuthResponse) (*model.SessionState, string, error) {
	if resp == nil {
		return nil, metrics.ReasonInvalidResponse, fmt.Errorf("%w: empty body", ErrInvalidResponse)
	}
	if err := util.ValidateStruct(resp); err != nil {
		return nil, metrics.ReasonInvalidResponse, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	payload, err := s.decoder.Decode(resp.Token)
	if err != nil {
		return nil, metrics.ReasonInvalidToken, err
	}

	now := s.now()
	if payload.IsExpired(now) {
		return nil, metrics.ReasonInvalidToken, fmt.Errorf("%w: token already expired", util.ErrInvalidToken)
	}

	if err := checkConsistency(payload, resp.User); err != nil {
		return nil, metrics.ReasonInconsistent, err
	}

	return &model.SessionState{
		ID:            uuid.New(),
		User:          *resp.User,
		RawToken:      resp.Token,
		Payload:       *payload,
		EstablishedAt: now,
	}, "", nil
}

func checkConsistency(p *model.JwtPayload, u *model.User) error {
	switch {
	case p.ID != u.ID:
		return fmt.Errorf("%w: id mismatch (token %d, user %d)", ErrInconsistentSession, p.ID, u.ID)
	case p.Email != u.Email:
		return fmt.Errorf("%w: email mismatch", ErrInconsistentSession)
	case p.Role != u.Role:
		return fmt.Errorf("%w: role mismatch (token %q, user %q)", ErrInconsistentSession, p.Role, u.Role)
	}
	return nil
}

func (s *SessionService) persist(resp *dto.AuthResponse, state *model.SessionState) {
	if s.store == nil || s.sealer == nil {
		return
	}

	plain, err := json.Marshal(resp)
	if err != nil {
		log.Printf("[STORE] failed to encode session %s: %v", state.ID, err)
		return
	}
	sealed, err := s.sealer.Seal(plain)
	if err != nil {
		log.Printf("[STORE] failed to seal session %s: %v", state.ID, err)
		return
	}

	rec := &model.SessionRecord{
		ID:        state.ID,
		UserID:    state.User.ID,
		Email:     state.User.Email,
		Role:      string(state.User.Role),
		Sealed:    sealed,
		TokenHash: util.HashToken(state.RawToken),
		ExpiresAt: state.Payload.ExpiresTime(),
		CreatedAt: state.EstablishedAt,
	}
	if err := s.store.Replace(rec); err != nil {
		log.Printf("[STORE] failed to persist session %s: %v", state.ID, err)
	}
}

// clearExpired drops the persisted record after Current saw the session expire,
// unless a newer session was installed in the meantime and owns the record now.
func (s *SessionService) clearExpired() {
	s.storeMu.Lock()
	defer s.storeMu.Unlock()

	s.mu.Lock()
	replaced := s.state != nil
	s.mu.Unlock()
	if replaced {
		return
	}
	s.clearStore()
}

func (s *SessionService) clearStore() {
	if s.store == nil {
		return
	}
	if err := s.store.ClearActive(); err != nil {
		log.Printf("[STORE] failed to clear session records: %v", err)
	}
}

// notify runs in the background so Establish never waits on SMTP
func (s *SessionService) notify(state *model.SessionState) {
	if s.notifier == nil {
		return
	}
	user, at := state.User, state.EstablishedAt
	go func() {
		if err := s.notifier.NotifySignIn(user, at); err != nil {
			log.Printf("Failed to send sign-in notice to %s: %v", user.Email, err)
		}
	}()
}

func shortHash(token string) string {
	return util.HashToken(token)[:12]
}
