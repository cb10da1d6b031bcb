package domain

import "time"

type Produit string

const (
	ProduitGazoil  Produit = "Gazoil"
	ProduitEssence Produit = "Essence"
	ProduitJetA1   Produit = "Jet A1"
)

// Produits lists the accepted fuel products, in display order.
var Produits = []Produit{ProduitGazoil, ProduitEssence, ProduitJetA1}

type Statut string

const (
	StatutEnCours  Statut = "En cours"
	StatutLivre    Statut = "Livré"
	StatutNonLivre Statut = "Non livré"
)

// Statuts lists the accepted delivery statuses.
var Statuts = []Statut{StatutEnCours, StatutLivre, StatutNonLivre}

// Commande represents a fuel-delivery order tracked by the system.
// Decimal fields (Quantite, TauxTransport) are carried as strings the way the
// database stores them; validation guarantees they parse to positive numbers.
type Commande struct {
	ID                string
	Client            string
	NumeroBonCommande string
	DateLivraison     string
	Depot             string
	Camion            string
	Quantite          string
	Produit           Produit
	Fournisseur       string
	DateChargement    string
	Statut            Statut
	Transporteur      string
	Destination       string
	TauxTransport     string
	CreatedAt         time.Time
}

// CommandeInput holds every caller-supplied field of a Commande, already
// validated and coerced. ID and CreatedAt are assigned by the repository.
type CommandeInput struct {
	Client            string
	NumeroBonCommande string
	DateLivraison     string
	Depot             string
	Camion            string
	Quantite          string
	Produit           Produit
	Fournisseur       string
	DateChargement    string
	Statut            Statut
	Transporteur      string
	Destination       string
	TauxTransport     string
}
