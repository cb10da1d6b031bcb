package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suivi-chargements/internal/domain"
	"suivi-chargements/internal/repository/memory"
)

var statsNow = time.Date(2025, time.August, 15, 12, 0, 0, 0, time.UTC)

func commandeFor(client, date, quantite string) domain.Commande {
	return domain.Commande{
		Client:         client,
		DateChargement: date,
		Quantite:       quantite,
		Produit:        domain.ProduitGazoil,
		Statut:         domain.StatutEnCours,
		Depot:          "Depot A",
		Transporteur:   "T1",
	}
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil, statsNow)

	assert.Equal(t, 0, stats.TotalCommandes)
	assert.Equal(t, int64(0), stats.TotalQuantite)
	assert.Equal(t, "N/A", stats.MeilleurClient)
	assert.Equal(t, "N/A", stats.MoinsClient)
	assert.Equal(t, "N/A", stats.MeilleurTransporteur)
	assert.Equal(t, 0, stats.MeilleurTransporteurLivraisons)
	assert.Equal(t, "N/A", stats.DepotPlusActif)
	assert.Equal(t, int64(0), stats.DepotPlusActifQuantite)
	assert.Empty(t, stats.QuantiteParProduit)
}

func TestComputeStats_BestAndWorstClient(t *testing.T) {
	commandes := []domain.Commande{
		commandeFor("A", "2025-08-01", "10"),
		commandeFor("A", "2025-08-02", "10"),
		commandeFor("B", "2025-08-03", "10"),
	}

	stats := ComputeStats(commandes, statsNow)

	assert.Equal(t, 3, stats.TotalCommandes)
	assert.Equal(t, "A", stats.MeilleurClient)
	assert.Equal(t, 2, stats.MeilleurClientCommandes)
	assert.Equal(t, "B", stats.MoinsClient)
	assert.Equal(t, 1, stats.MoinsClientCommandes)
}

func TestComputeStats_SingleClientIsBestAndWorst(t *testing.T) {
	commandes := []domain.Commande{
		commandeFor("Seul", "2025-08-05", "100"),
	}

	stats := ComputeStats(commandes, statsNow)

	assert.Equal(t, "Seul", stats.MeilleurClient)
	assert.Equal(t, 1, stats.MeilleurClientCommandes)
	assert.Equal(t, "Seul", stats.MoinsClient)
	assert.Equal(t, 1, stats.MoinsClientCommandes)
}

func TestComputeStats_TieGoesToFirstSeen(t *testing.T) {
	commandes := []domain.Commande{
		commandeFor("A", "2025-08-01", "10"),
		commandeFor("B", "2025-08-02", "10"),
	}

	stats := ComputeStats(commandes, statsNow)

	// equal counts: descending stable sort keeps encounter order
	assert.Equal(t, "A", stats.MeilleurClient)
	assert.Equal(t, "B", stats.MoinsClient)
}

func TestComputeStats_ExcludesOtherMonths(t *testing.T) {
	commandes := []domain.Commande{
		commandeFor("A", "2025-07-31", "500"),
		commandeFor("B", "2025-08-01", "200"),
		commandeFor("C", "2025-09-01", "900"),
		commandeFor("D", "invalid-date", "100"),
	}

	stats := ComputeStats(commandes, statsNow)

	assert.Equal(t, 1, stats.TotalCommandes)
	assert.Equal(t, int64(200), stats.TotalQuantite)
	assert.Equal(t, "B", stats.MeilleurClient)
}

func TestComputeStats_QuantitiesAndRounding(t *testing.T) {
	a := commandeFor("A", "2025-08-01", "10.4")
	a.Produit = domain.ProduitEssence
	b := commandeFor("B", "2025-08-02", "10.4")
	c := commandeFor("C", "2025-08-03", "not-a-number")

	stats := ComputeStats([]domain.Commande{a, b, c}, statsNow)

	// 20.8 rounds to 21; the unparseable quantity counts as zero
	assert.Equal(t, int64(21), stats.TotalQuantite)
	assert.Equal(t, 10.4, stats.QuantiteParProduit["Essence"])
	assert.Equal(t, 10.4, stats.QuantiteParProduit["Gazoil"])
}

func TestComputeStats_TransporteurCountsOnlyDelivered(t *testing.T) {
	a := commandeFor("A", "2025-08-01", "10")
	a.Transporteur = "Rapide"
	a.Statut = domain.StatutLivre
	b := commandeFor("B", "2025-08-02", "10")
	b.Transporteur = "Rapide"
	b.Statut = domain.StatutLivre
	c := commandeFor("C", "2025-08-03", "10")
	c.Transporteur = "Lent"
	c.Statut = domain.StatutEnCours

	stats := ComputeStats([]domain.Commande{a, b, c}, statsNow)

	assert.Equal(t, "Rapide", stats.MeilleurTransporteur)
	assert.Equal(t, 2, stats.MeilleurTransporteurLivraisons)
}

func TestComputeStats_NoDeliveries(t *testing.T) {
	stats := ComputeStats([]domain.Commande{
		commandeFor("A", "2025-08-01", "10"),
	}, statsNow)

	assert.Equal(t, "N/A", stats.MeilleurTransporteur)
	assert.Equal(t, 0, stats.MeilleurTransporteurLivraisons)
}

func TestComputeStats_MostActiveDepot(t *testing.T) {
	a := commandeFor("A", "2025-08-01", "100.6")
	a.Depot = "Nord"
	b := commandeFor("B", "2025-08-02", "50")
	b.Depot = "Sud"
	c := commandeFor("C", "2025-08-03", "60")
	c.Depot = "Sud"

	stats := ComputeStats([]domain.Commande{a, b, c}, statsNow)

	assert.Equal(t, "Sud", stats.DepotPlusActif)
	assert.Equal(t, int64(110), stats.DepotPlusActifQuantite)
}

func TestComputeStats_MonthBoundariesInclusive(t *testing.T) {
	commandes := []domain.Commande{
		commandeFor("First", "2025-08-01", "1"),
		commandeFor("Last", "2025-08-31", "1"),
	}

	stats := ComputeStats(commandes, statsNow)
	assert.Equal(t, 2, stats.TotalCommandes)
}

func TestStatsService_MonthlySummary(t *testing.T) {
	repo := memory.NewCommandeRepository()
	ctx := context.Background()

	today := time.Now().Format("2006-01-02")
	_, err := repo.Create(ctx, domain.CommandeInput{
		Client:         "A",
		DateChargement: today,
		Quantite:       "100",
		Produit:        domain.ProduitGazoil,
		Statut:         domain.StatutLivre,
		Depot:          "Nord",
		Transporteur:   "T1",
	})
	require.NoError(t, err)

	svc := NewStatsService(repo)
	stats, err := svc.MonthlySummary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.TotalCommandes)
	assert.Equal(t, int64(100), stats.TotalQuantite)
	assert.Equal(t, "A", stats.MeilleurClient)
}
