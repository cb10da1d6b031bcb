package repository

import (
	"context"

	"suivi-chargements/internal/domain"
)

// CommandeRepository exposes persistence operations for Commande records.
// Updates are full replacements; the datastore is the sole arbiter of
// concurrent writes (last write wins).
type CommandeRepository interface {
	Init(ctx context.Context) error
	List(ctx context.Context) ([]domain.Commande, error)
	Get(ctx context.Context, id string) (*domain.Commande, error)
	Create(ctx context.Context, input domain.CommandeInput) (*domain.Commande, error)
	Update(ctx context.Context, id string, input domain.CommandeInput) (*domain.Commande, error)
	Delete(ctx context.Context, id string) (bool, error)
}
