package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"suivi-chargements/internal/domain"
	"suivi-chargements/internal/repository"
)

// UserRepository keeps users in a mutex-guarded map.
type UserRepository struct {
	mu    sync.RWMutex
	items map[string]domain.User
}

func NewUserRepository() repository.UserRepository {
	return &UserRepository{items: make(map[string]domain.User)}
}

func (r *UserRepository) Init(ctx context.Context) error {
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.Username == user.Username {
			return fmt.Errorf("user already exists: %s", user.Username)
		}
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	r.items[user.ID] = *user
	return nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.items {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.items[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u := user
	return &u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
