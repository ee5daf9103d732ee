package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acerto/acerto/internal/models"
	"github.com/acerto/acerto/internal/storage"
	"github.com/acerto/acerto/internal/storage/storetest"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	// Create temp directory for test database
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")
	store, err := New(context.Background(), dbPath)
	require.NoError(t, err, "Failed to create store")
	return store
}

func TestSQLiteStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) storage.Store { return newTestStore(t) })
}

func TestGroupNameUniquePerOwner(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, store.CreateGroup(ctx, &models.Group{ID: "g1", OwnerID: "ana", Name: "Praia", CreatedAt: now, UpdatedAt: now}))

	// Same owner, different case: rejected by the schema.
	err := store.CreateGroup(ctx, &models.Group{ID: "g2", OwnerID: "ana", Name: "PRAIA", CreatedAt: now, UpdatedAt: now})
	assert.Error(t, err)

	// A failed insert leaves nothing behind.
	_, err = store.GetGroup(ctx, "g2")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Another owner may reuse the name.
	require.NoError(t, store.CreateGroup(ctx, &models.Group{ID: "g3", OwnerID: "bia", Name: "Praia", CreatedAt: now, UpdatedAt: now}))
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "acerto.db")
	now := time.Now().UTC()

	store, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.CreateGroup(ctx, &models.Group{
		ID:        "g1",
		OwnerID:   "ana",
		Name:      "Praia",
		Members:   []models.Member{{Email: "a@x.com"}},
		CreatedAt: now,
		UpdatedAt: now,
	}))
	require.NoError(t, store.Close())

	// Migrations are idempotent.
	reopened, err := New(ctx, dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetGroup(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, "Praia", got.Name)
	assert.True(t, now.Equal(got.CreatedAt))
	assert.Equal(t, []models.Member{{Email: "a@x.com"}}, got.Members)
}

func TestMigrationsAreVersioned(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	version := func() int {
		var v int
		require.NoError(t, store.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&v))
		return v
	}
	assert.Equal(t, len(migrations), version())

	// A new step runs once; running the list again skips it.
	next := append(append([]string{}, migrations...), "CREATE TABLE extra (id TEXT PRIMARY KEY)")
	require.NoError(t, migrate(ctx, store.db, next))
	require.NoError(t, migrate(ctx, store.db, next))
	assert.Equal(t, len(next), version())

	// A binary that knows fewer steps refuses the database.
	err := migrate(ctx, store.db, migrations)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "newer than this binary")

	// A failing step leaves the version where it was.
	broken := append(append([]string{}, next...), "NOT VALID SQL")
	require.Error(t, migrate(ctx, store.db, broken))
	assert.Equal(t, len(next), version())
}

func TestNameKey(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Viagem SP", "viagem sp"},
		{"  Praia  ", "praia"},
		{"ÔNIBUS", "ônibus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nameKey(tt.name))
		})
	}
}
