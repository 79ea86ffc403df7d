package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/api-sage/somaluganda-remit/src/internal/commons"
	"github.com/api-sage/somaluganda-remit/src/internal/domain"
)

// SessionRepository keeps wizard sessions in process memory. Sessions are
// not persisted; the ledger is the durable record.
type SessionRepository struct {
	mu       sync.Mutex
	sessions map[string]domain.TransferSession
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	return &SessionRepository{
		sessions: make(map[string]domain.TransferSession),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (r *SessionRepository) Create(_ context.Context, session domain.TransferSession) (domain.TransferSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.evictExpiredLocked()

	if _, exists := r.sessions[session.ID]; exists {
		return domain.TransferSession{}, fmt.Errorf("create session %q: %w", session.ID, commons.ErrDuplicateRecord)
	}
	r.sessions[session.ID] = session
	return session, nil
}

func (r *SessionRepository) Get(_ context.Context, id string) (domain.TransferSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return domain.TransferSession{}, commons.ErrRecordNotFound
	}
	return session, nil
}

func (r *SessionRepository) Update(_ context.Context, id string, mutate func(*domain.TransferSession) error) (domain.TransferSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return domain.TransferSession{}, commons.ErrRecordNotFound
	}

	if err := mutate(&session); err != nil {
		return domain.TransferSession{}, err
	}
	session.UpdatedAt = r.now().UTC()
	r.sessions[id] = session

	return session, nil
}

// evictExpiredLocked drops idle sessions that are not mid-submission.
func (r *SessionRepository) evictExpiredLocked() {
	if r.ttl <= 0 {
		return
	}
	cutoff := r.now().Add(-r.ttl)
	for id, session := range r.sessions {
		if !session.Submitting && session.UpdatedAt.Before(cutoff) {
			delete(r.sessions, id)
		}
	}
}
