package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"suivi-chargements/internal/domain"
	"suivi-chargements/internal/repository"
)

var (
	// ErrInvalidCredentials covers both unknown usernames and wrong
	// passwords. Callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotAuthenticated indicates a missing or dead session.
	ErrNotAuthenticated = errors.New("not authenticated")
)

const (
	superadminUsername = "Superadmin"
	superadminPassword = "Administrator"
	bcryptCost         = 10
)

// AuthService handles login sessions and the seed account.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*domain.User, *domain.Session, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (*domain.User, error)
	ValidateSession(ctx context.Context, token string) (string, error)
	SeedSuperadmin(ctx context.Context) error
}

type authService struct {
	users      repository.UserRepository
	sessions   repository.SessionRepository
	sessionTTL time.Duration
}

func NewAuthService(users repository.UserRepository, sessions repository.SessionRepository, sessionTTL time.Duration) AuthService {
	return &authService{
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (*domain.User, *domain.Session, error) {
	if username == "" || password == "" {
		return nil, nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	session := &domain.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: now.Add(s.sessionTTL),
		CreatedAt: now,
	}

	// the session must be committed before the caller answers the client
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, nil, err
	}

	return sanitizeUser(user), session, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

func (s *authService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	session, err := s.resolveSession(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return sanitizeUser(user), nil
}

// ValidateSession resolves a token to the bound user id without touching the
// users table. The auth middleware runs this before any business logic.
func (s *authService) ValidateSession(ctx context.Context, token string) (string, error) {
	session, err := s.resolveSession(ctx, token)
	if err != nil {
		return "", err
	}
	return session.UserID, nil
}

func (s *authService) resolveSession(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, err
	}

	if session.Expired(time.Now()) {
		_ = s.sessions.Delete(ctx, token)
		return nil, ErrNotAuthenticated
	}
	return session, nil
}

// SeedSuperadmin creates the administrative seed account once. Failures are
// reported to the caller, which logs and continues; missing seed is never
// fatal to startup.
func (s *authService) SeedSuperadmin(ctx context.Context) error {
	_, err := s.users.GetByUsername(ctx, superadminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(superadminPassword), bcryptCost)
	if err != nil {
		return err
	}

	return s.users.Create(ctx, &domain.User{
		Username:     superadminUsername,
		PasswordHash: string(hash),
	})
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}
}
