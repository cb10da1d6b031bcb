package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suivi-chargements/internal/domain"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testInput(client string) domain.CommandeInput {
	return domain.CommandeInput{
		Client:            client,
		NumeroBonCommande: "BC-001",
		DateLivraison:     "2025-08-20",
		Depot:             "Nord",
		Camion:            "TR-1",
		Quantite:          "1000",
		Produit:           domain.ProduitGazoil,
		Fournisseur:       "SAR",
		DateChargement:    "2025-08-18",
		Statut:            domain.StatutEnCours,
		Transporteur:      "T1",
		Destination:       "Dakar",
		TauxTransport:     "12",
	}
}

func TestCommandeRepository_RoundTrip(t *testing.T) {
	repo := NewCommandeRepository(openTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Init(ctx))

	created, err := repo.Create(ctx, testInput("A"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "A", got.Client)
	assert.Equal(t, "1000", got.Quantite)
	assert.Equal(t, domain.ProduitGazoil, got.Produit)
	assert.WithinDuration(t, created.CreatedAt, got.CreatedAt, time.Second)
}

func TestCommandeRepository_UpdateReplaces(t *testing.T) {
	repo := NewCommandeRepository(openTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Init(ctx))

	created, err := repo.Create(ctx, testInput("A"))
	require.NoError(t, err)

	replacement := testInput("B")
	replacement.Statut = domain.StatutLivre
	replacement.Quantite = "500"

	updated, err := repo.Update(ctx, created.ID, replacement)
	require.NoError(t, err)
	assert.Equal(t, "B", updated.Client)
	assert.Equal(t, domain.StatutLivre, updated.Statut)
	assert.Equal(t, "500", updated.Quantite)

	// missing ids never create rows
	_, err = repo.Update(ctx, "missing", replacement)
	assert.ErrorIs(t, err, domain.ErrCommandeNotFound)
}

func TestCommandeRepository_ConcurrentUpdatesLastWriteWins(t *testing.T) {
	repo := NewCommandeRepository(openTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Init(ctx))

	created, err := repo.Create(ctx, testInput("initial"))
	require.NoError(t, err)

	const writers = 3
	inputs := make([]domain.CommandeInput, writers)
	for i := range inputs {
		input := testInput(fmt.Sprintf("client-%d", i))
		input.Quantite = fmt.Sprintf("%d", (i+1)*1000)
		input.Destination = fmt.Sprintf("destination-%d", i)
		inputs[i] = input
	}

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(input domain.CommandeInput) {
			defer wg.Done()
			_, err := repo.Update(ctx, created.ID, input)
			assert.NoError(t, err)
		}(inputs[i])
	}
	wg.Wait()

	// the durably stored record is exactly one writer's payload, never a mix
	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)

	var winner *domain.CommandeInput
	for i := range inputs {
		if inputs[i].Client == got.Client {
			winner = &inputs[i]
			break
		}
	}
	require.NotNil(t, winner, "final client %q matches no writer", got.Client)
	assert.Equal(t, winner.Quantite, got.Quantite)
	assert.Equal(t, winner.Destination, got.Destination)
	assert.Equal(t, created.ID, got.ID)
}

func TestCommandeRepository_DeleteIsIdempotentFalse(t *testing.T) {
	repo := NewCommandeRepository(openTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Init(ctx))

	created, err := repo.Create(ctx, testInput("A"))
	require.NoError(t, err)

	deleted, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = repo.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrCommandeNotFound)
}

func TestCommandeRepository_ListNewestFirst(t *testing.T) {
	db := openTestDB(t)
	repo := NewCommandeRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.Init(ctx))

	older, err := repo.Create(ctx, testInput("A"))
	require.NoError(t, err)

	// force distinct creation times; sqlite stores what we give it
	_, err = db.ExecContext(ctx, `UPDATE commandes SET created_at=? WHERE id=?`,
		older.CreatedAt.Add(-time.Hour), older.ID)
	require.NoError(t, err)

	newer, err := repo.Create(ctx, testInput("B"))
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
}

func TestUserRepository_RoundTrip(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Init(ctx))

	user := &domain.User{Username: "marie", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEmpty(t, user.ID)

	byName, err := repo.GetByUsername(ctx, "marie")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "marie", byID.Username)

	_, err = repo.GetByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	// usernames are unique
	err = repo.Create(ctx, &domain.User{Username: "marie", PasswordHash: "other"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestSessionRepository_Lifecycle(t *testing.T) {
	repo := NewSessionRepository(openTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Init(ctx))

	now := time.Now().UTC()
	session := &domain.Session{
		Token:     "tok-1",
		UserID:    "user-1",
		ExpiresAt: now.Add(time.Hour),
	}
	require.NoError(t, repo.Create(ctx, session))

	got, err := repo.GetByToken(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)

	expired := &domain.Session{
		Token:     "tok-2",
		UserID:    "user-1",
		ExpiresAt: now.Add(-time.Hour),
	}
	require.NoError(t, repo.Create(ctx, expired))
	require.NoError(t, repo.DeleteExpired(ctx, now))

	_, err = repo.GetByToken(ctx, "tok-2")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	require.NoError(t, repo.Delete(ctx, "tok-1"))
	_, err = repo.GetByToken(ctx, "tok-1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
