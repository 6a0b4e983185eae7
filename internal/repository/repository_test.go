package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weddingwander/weddingwander/internal/database"
	"github.com/weddingwander/weddingwander/internal/model"
)

func seededStore(t *testing.T) database.Store {
	t.Helper()
	store := database.NewMemoryStore()
	require.NoError(t, Seed(context.Background(), store))
	return store
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	events, err := NewEventRepository(store).List(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 6)

	regs, err := NewRegistrationRepository(store).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, regs)

	accounts, err := NewAccountRepository(store).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestSeedKeepsExistingData(t *testing.T) {
	ctx := context.Background()
	store := database.NewMemoryStore()
	custom := []model.Event{{ID: "only", Capacity: 1}}
	require.NoError(t, database.WriteCollection(ctx, store, database.CollectionWeddings, custom))

	require.NoError(t, Seed(ctx, store))
	require.NoError(t, Seed(ctx, store))

	events, err := NewEventRepository(store).List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "only", events[0].ID)

	ok, err := database.Exists(ctx, store, database.CollectionUsers)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSeedCorruptCollection(t *testing.T) {
	ctx := context.Background()
	store := database.NewMemoryStore()
	require.NoError(t, store.Set(ctx, database.CollectionWeddings, []byte("{")))

	// Seeding only checks presence; a corrupt collection surfaces on read.
	require.NoError(t, Seed(ctx, store))
	_, err := NewEventRepository(store).List(ctx)
	assert.ErrorIs(t, err, database.ErrCorrupt)
}

func TestEventRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository(seededStore(t))

	e, err := repo.GetByID(ctx, "wedding-003")
	require.NoError(t, err)
	assert.Equal(t, "Florence", e.Location.City)

	_, err = repo.GetByID(ctx, "wedding-999")
	assert.ErrorIs(t, err, ErrNotFound)

	e.Registered = 63
	require.NoError(t, repo.Save(ctx, *e))
	e, err = repo.GetByID(ctx, "wedding-003")
	require.NoError(t, err)
	assert.Equal(t, 63, e.Registered)

	assert.ErrorIs(t, repo.Save(ctx, model.Event{ID: "wedding-999"}), ErrNotFound)
}

func TestRegistrationRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewRegistrationRepository(seededStore(t))
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	regs := []model.Registration{
		{ID: "r1", UserID: "u1", WeddingID: "w1", Status: model.StatusConfirmed, Guests: 1, RegistrationDate: now},
		{ID: "r2", UserID: "u2", WeddingID: "w1", Status: model.StatusCanceled, Guests: 2, RegistrationDate: now},
		{ID: "r3", UserID: "u1", WeddingID: "w2", Status: model.StatusConfirmed, Guests: 3, RegistrationDate: now},
	}
	require.NoError(t, repo.ReplaceAll(ctx, regs))

	got, err := repo.GetByID(ctx, "r2")
	require.NoError(t, err)
	assert.Equal(t, regs[1], *got)

	_, err = repo.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	mine, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []model.Registration{regs[0], regs[2]}, mine)

	none, err := repo.ListByUser(ctx, "u9")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	forEvent, err := repo.ListByEvent(ctx, "w1")
	require.NoError(t, err)
	assert.Len(t, forEvent, 2)
}

func TestAccountRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository(seededStore(t))
	a := model.Account{ID: "user-1", Name: "A", Email: "a@x.com", Password: "secret1"}

	require.NoError(t, repo.Create(ctx, a))

	got, err := repo.GetByEmail(ctx, "A@X.com")
	require.NoError(t, err)
	assert.Equal(t, a, *got)

	got, err = repo.GetByID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, a, *got)

	_, err = repo.GetByEmail(ctx, "b@x.com")
	assert.ErrorIs(t, err, ErrNotFound)

	cur, err := repo.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)

	require.NoError(t, repo.SetCurrent(ctx, a))
	cur, err = repo.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, "user-1", cur.ID)

	require.NoError(t, repo.ClearCurrent(ctx))
	cur, err = repo.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)
}
