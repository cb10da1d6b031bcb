package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"suivi-chargements/internal/domain"
	"suivi-chargements/internal/repository"
)

const createCommandesTable = `
CREATE TABLE IF NOT EXISTS commandes (
	id TEXT PRIMARY KEY,
	client TEXT NOT NULL,
	numero_bon_commande TEXT NOT NULL,
	date_livraison TEXT NOT NULL,
	depot TEXT NOT NULL,
	camion TEXT NOT NULL,
	quantite TEXT NOT NULL,
	produit TEXT NOT NULL,
	fournisseur TEXT NOT NULL,
	date_chargement TEXT NOT NULL,
	statut TEXT NOT NULL,
	transporteur TEXT NOT NULL,
	destination TEXT NOT NULL,
	taux_transport TEXT NOT NULL,
	created_at DATETIME NOT NULL
);
`

type CommandeRepository struct {
	db *sql.DB
}

func NewCommandeRepository(db *sql.DB) repository.CommandeRepository {
	return &CommandeRepository{db: db}
}

func (r *CommandeRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createCommandesTable); err != nil {
		return fmt.Errorf("create commandes table: %w", err)
	}
	return nil
}

func (r *CommandeRepository) List(ctx context.Context) ([]domain.Commande, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, client, numero_bon_commande, date_livraison, depot, camion, quantite, produit, fournisseur, date_chargement, statut, transporteur, destination, taux_transport, created_at
FROM commandes
ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query commandes: %w", err)
	}
	defer rows.Close()

	var commandes []domain.Commande
	for rows.Next() {
		commande, err := scanCommande(rows)
		if err != nil {
			return nil, err
		}
		commandes = append(commandes, *commande)
	}

	return commandes, rows.Err()
}

func (r *CommandeRepository) Get(ctx context.Context, id string) (*domain.Commande, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, client, numero_bon_commande, date_livraison, depot, camion, quantite, produit, fournisseur, date_chargement, statut, transporteur, destination, taux_transport, created_at
FROM commandes
WHERE id = ?`,
		id,
	)
	return scanCommande(row)
}

func (r *CommandeRepository) Create(ctx context.Context, input domain.CommandeInput) (*domain.Commande, error) {
	commande := &domain.Commande{
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

	_, err := r.db.ExecContext(ctx, `
INSERT INTO commandes (id, client, numero_bon_commande, date_livraison, depot, camion, quantite, produit, fournisseur, date_chargement, statut, transporteur, destination, taux_transport, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		commande.ID,
		commande.Client,
		commande.NumeroBonCommande,
		commande.DateLivraison,
		commande.Depot,
		commande.Camion,
		commande.Quantite,
		string(commande.Produit),
		commande.Fournisseur,
		commande.DateChargement,
		string(commande.Statut),
		commande.Transporteur,
		commande.Destination,
		commande.TauxTransport,
		commande.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert commande: %w", err)
	}
	return commande, nil
}

func (r *CommandeRepository) Update(ctx context.Context, id string, input domain.CommandeInput) (*domain.Commande, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE commandes
SET client=?, numero_bon_commande=?, date_livraison=?, depot=?, camion=?, quantite=?, produit=?, fournisseur=?, date_chargement=?, statut=?, transporteur=?, destination=?, taux_transport=?
WHERE id=?`,
		input.Client,
		input.NumeroBonCommande,
		input.DateLivraison,
		input.Depot,
		input.Camion,
		input.Quantite,
		string(input.Produit),
		input.Fournisseur,
		input.DateChargement,
		string(input.Statut),
		input.Transporteur,
		input.Destination,
		input.TauxTransport,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("update commande: %w", err)
	}

	aff, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("commande update rows affected: %w", err)
	}
	if aff == 0 {
		return nil, domain.ErrCommandeNotFound
	}

	return r.Get(ctx, id)
}

func (r *CommandeRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM commandes WHERE id=?`, id)
	if err != nil {
		return false, fmt.Errorf("delete commande: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("commande delete rows affected: %w", err)
	}
	return aff > 0, nil
}

func scanCommande(scanner interface {
	Scan(dest ...any) error
}) (*domain.Commande, error) {
	var (
		commande  domain.Commande
		produit   string
		statut    string
		createdAt time.Time
	)

	if err := scanner.Scan(
		&commande.ID,
		&commande.Client,
		&commande.NumeroBonCommande,
		&commande.DateLivraison,
		&commande.Depot,
		&commande.Camion,
		&commande.Quantite,
		&produit,
		&commande.Fournisseur,
		&commande.DateChargement,
		&statut,
		&commande.Transporteur,
		&commande.Destination,
		&commande.TauxTransport,
		&createdAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCommandeNotFound
		}
		return nil, fmt.Errorf("scan commande: %w", err)
	}

	commande.Produit = domain.Produit(produit)
	commande.Statut = domain.Statut(statut)
	commande.CreatedAt = createdAt.Local()
	return &commande, nil
}
