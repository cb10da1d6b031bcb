package service

import (
	"context"

	"suivi-chargements/internal/domain"
	"suivi-chargements/internal/repository"
)

// CommandeService coordinates order operations backed by the repository.
type CommandeService interface {
	List(ctx context.Context) ([]domain.Commande, error)
	Get(ctx context.Context, id string) (*domain.Commande, error)
	Create(ctx context.Context, input domain.CommandeInput) (*domain.Commande, error)
	Update(ctx context.Context, id string, input domain.CommandeInput) (*domain.Commande, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type commandeService struct {
	commandes repository.CommandeRepository
}

func NewCommandeService(commandes repository.CommandeRepository) CommandeService {
	return &commandeService{commandes: commandes}
}

func (s *commandeService) List(ctx context.Context) ([]domain.Commande, error) {
	return s.commandes.List(ctx)
}

func (s *commandeService) Get(ctx context.Context, id string) (*domain.Commande, error) {
	return s.commandes.Get(ctx, id)
}

func (s *commandeService) Create(ctx context.Context, input domain.CommandeInput) (*domain.Commande, error) {
	return s.commandes.Create(ctx, input)
}

func (s *commandeService) Update(ctx context.Context, id string, input domain.CommandeInput) (*domain.Commande, error) {
	return s.commandes.Update(ctx, id, input)
}

func (s *commandeService) Delete(ctx context.Context, id string) (bool, error) {
	return s.commandes.Delete(ctx, id)
}
