package service

import (
	"context"
	"math"
	"sort"
	"strconv"
	"time"

	"suivi-chargements/internal/domain"
	"suivi-chargements/internal/repository"
	"suivi-chargements/internal/validation"
)

// Stats summarizes the current calendar month of orders.
type Stats struct {
	TotalCommandes                 int                `json:"totalCommandes"`
	TotalQuantite                  int64              `json:"totalQuantite"`
	QuantiteParProduit             map[string]float64 `json:"quantiteParProduit"`
	MeilleurClient                 string             `json:"meilleurClient"`
	MeilleurClientCommandes        int                `json:"meilleurClientCommandes"`
	MoinsClient                    string             `json:"moinsClient"`
	MoinsClientCommandes           int                `json:"moinsClientCommandes"`
	MeilleurTransporteur           string             `json:"meilleurTransporteur"`
	MeilleurTransporteurLivraisons int                `json:"meilleurTransporteurLivraisons"`
	DepotPlusActif                 string             `json:"depotPlusActif"`
	DepotPlusActifQuantite         int64              `json:"depotPlusActifQuantite"`
}

// StatsService computes the monthly summary from the live order list.
type StatsService interface {
	MonthlySummary(ctx context.Context) (*Stats, error)
}

type statsService struct {
	commandes repository.CommandeRepository
}

func NewStatsService(commandes repository.CommandeRepository) StatsService {
	return &statsService{commandes: commandes}
}

func (s *statsService) MonthlySummary(ctx context.Context) (*Stats, error) {
	commandes, err := s.commandes.List(ctx)
	if err != nil {
		return nil, err
	}
	stats := ComputeStats(commandes, time.Now())
	return &stats, nil
}

// ComputeStats reduces the order list to the monthly summary for the calendar
// month containing now. Orders whose loading date does not parse are excluded;
// unparseable quantities count as zero.
//
// Every grouping accumulates in first-seen order and is then stable-sorted by
// descending value, so ties are won by the earliest-encountered key. The
// "worst client" is the last entry of that descending sort, not a true
// minimum; with more than two tied clients at non-extremal ranks this is an
// insertion-order artifact, kept deliberately.
func ComputeStats(commandes []domain.Commande, now time.Time) Stats {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	nextMonth := monthStart.AddDate(0, 1, 0)

	var month []domain.Commande
	for _, c := range commandes {
		date, ok := validation.ParseDate(c.DateChargement)
		if !ok {
			continue
		}
		if date.Before(monthStart) || !date.Before(nextMonth) {
			continue
		}
		month = append(month, c)
	}

	stats := Stats{
		TotalCommandes:       len(month),
		QuantiteParProduit:   map[string]float64{},
		MeilleurClient:       "N/A",
		MoinsClient:          "N/A",
		MeilleurTransporteur: "N/A",
		DepotPlusActif:       "N/A",
	}

	var (
		totalQuantite float64
		parClient     tally
		parProduit    tally
		livraisons    tally
		parDepot      tally
	)

	for _, c := range month {
		qty := quantityOf(c)
		totalQuantite += qty
		parProduit.add(string(c.Produit), qty)
		parClient.add(c.Client, 1)
		parDepot.add(c.Depot, qty)
		if c.Statut == domain.StatutLivre {
			livraisons.add(c.Transporteur, 1)
		}
	}

	stats.TotalQuantite = int64(math.Round(totalQuantite))
	for _, e := range parProduit.entries() {
		stats.QuantiteParProduit[e.key] = e.value
	}

	if clients := parClient.entries(); len(clients) > 0 {
		stats.MeilleurClient = clients[0].key
		stats.MeilleurClientCommandes = int(clients[0].value)
		last := clients[len(clients)-1]
		stats.MoinsClient = last.key
		stats.MoinsClientCommandes = int(last.value)
	}

	if transporteurs := livraisons.entries(); len(transporteurs) > 0 {
		stats.MeilleurTransporteur = transporteurs[0].key
		stats.MeilleurTransporteurLivraisons = int(transporteurs[0].value)
	}

	if depots := parDepot.entries(); len(depots) > 0 {
		stats.DepotPlusActif = depots[0].key
		stats.DepotPlusActifQuantite = int64(math.Round(depots[0].value))
	}

	return stats
}

func quantityOf(c domain.Commande) float64 {
	qty, err := strconv.ParseFloat(c.Quantite, 64)
	if err != nil {
		return 0
	}
	return qty
}

// tally accumulates values per key while remembering first-seen key order.
type tally struct {
	keys []string
	vals map[string]float64
}

func (t *tally) add(key string, value float64) {
	if t.vals == nil {
		t.vals = map[string]float64{}
	}
	if _, seen := t.vals[key]; !seen {
		t.keys = append(t.keys, key)
	}
	t.vals[key] += value
}

type tallyEntry struct {
	key   string
	value float64
}

// entries returns the accumulated pairs sorted by descending value; the sort
// is stable so equal values keep first-seen order.
func (t *tally) entries() []tallyEntry {
	result := make([]tallyEntry, 0, len(t.keys))
	for _, key := range t.keys {
		result = append(result, tallyEntry{key: key, value: t.vals[key]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].value > result[j].value
	})
	return result
}
