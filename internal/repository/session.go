package repository

import (
	"context"
	"time"

	"suivi-chargements/internal/domain"
)

// SessionRepository manages login sessions keyed by token. Implementations
// are pluggable: a persistent table or an in-memory map, per deployment.
type SessionRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, session *domain.Session) error
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) error
}
