package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"suivi-chargements/internal/domain"
	"suivi-chargements/internal/repository"
)

// CommandeRepository keeps orders in a mutex-guarded map. Used by tests and
// by the memory database driver.
type CommandeRepository struct {
	mu    sync.RWMutex
	items map[string]domain.Commande
	seq   map[string]int
	next  int
}

func NewCommandeRepository() repository.CommandeRepository {
	return &CommandeRepository{
		items: make(map[string]domain.Commande),
		seq:   make(map[string]int),
	}
}

func (r *CommandeRepository) Init(ctx context.Context) error {
	return nil
}

func (r *CommandeRepository) List(ctx context.Context) ([]domain.Commande, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Commande, 0, len(r.items))
	for _, commande := range r.items {
		result = append(result, commande)
	}

	// most recent first, insertion order breaking creation-time ties
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return r.seq[result[i].ID] > r.seq[result[j].ID]
	})

	return result, nil
}

func (r *CommandeRepository) Get(ctx context.Context, id string) (*domain.Commande, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	commande, ok := r.items[id]
	if !ok {
		return nil, domain.ErrCommandeNotFound
	}
	return &commande, nil
}

func (r *CommandeRepository) Create(ctx context.Context, input domain.CommandeInput) (*domain.Commande, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	commande := domain.Commande{
		ID:                uuid.NewString(),
		Client:            input.Client,
		NumeroBonCommande: input.NumeroBonCommande,
		DateLivraison:     input.DateLivraison,
		Depot:             input.Depot,
		Camion:            input.Camion,
		Quantite:          input.Quantite,
		Produit:           input.Produit,
		Fournisseur:       input.Fournisseur,
		DateChargement:    input.DateChargement,
		Statut:            input.Statut,
		Transporteur:      input.Transporteur,
		Destination:       input.Destination,
		TauxTransport:     input.TauxTransport,
		CreatedAt:         time.Now().UTC(),
	}

	r.items[commande.ID] = commande
	r.seq[commande.ID] = r.next
	r.next++
	return &commande, nil
}

func (r *CommandeRepository) Update(ctx context.Context, id string, input domain.CommandeInput) (*domain.Commande, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[id]
	if !ok {
		return nil, domain.ErrCommandeNotFound
	}

	// full replacement; only id and creation time survive
	commande := domain.Commande{
		ID:                current.ID,
		Client:            input.Client,
		NumeroBonCommande: input.NumeroBonCommande,
		DateLivraison:     input.DateLivraison,
		Depot:             input.Depot,
		Camion:            input.Camion,
		Quantite:          input.Quantite,
		Produit:           input.Produit,
		Fournisseur:       input.Fournisseur,
		DateChargement:    input.DateChargement,
		Statut:            input.Statut,
		Transporteur:      input.Transporteur,
		Destination:       input.Destination,
		TauxTransport:     input.TauxTransport,
		CreatedAt:         current.CreatedAt,
	}

	r.items[id] = commande
	return &commande, nil
}

func (r *CommandeRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	delete(r.seq, id)
	return true, nil
}

var _ repository.CommandeRepository = (*CommandeRepository)(nil)
