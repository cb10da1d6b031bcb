package memory

import (
	"context"
	"sync"
	"time"

	"suivi-chargements/internal/domain"
	"suivi-chargements/internal/repository"
)

// SessionRepository keeps sessions in a mutex-guarded map. Sessions do not
// survive a restart; deployments wanting durable sessions use the sqlite store.
type SessionRepository struct {
	mu    sync.RWMutex
	items map[string]domain.Session
}

func NewSessionRepository() repository.SessionRepository {
	return &SessionRepository{items: make(map[string]domain.Session)}
}

func (r *SessionRepository) Init(ctx context.Context) error {
	return nil
}

func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}
	r.items[session.Token] = *session
	return nil
}

func (r *SessionRepository) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.items[token]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	s := session
	return &s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, token)
	return nil
}

func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for token, session := range r.items {
		if session.Expired(now) {
			delete(r.items, token)
		}
	}
	return nil
}

var _ repository.SessionRepository = (*SessionRepository)(nil)
