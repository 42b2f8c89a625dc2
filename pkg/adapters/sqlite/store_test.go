package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aretw0/fretwise"
	"github.com/aretw0/fretwise/pkg/adapters/sqlite"
	"github.com/aretw0/fretwise/pkg/domain"
	"github.com/aretw0/fretwise/pkg/ports/tests"
	"github.com/aretw0/fretwise/pkg/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func open(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "db", "chords.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_Contract(t *testing.T) {
	tests.RunLibraryContract(t, open(t))
}

func TestSQLiteStore_InMemoryContract(t *testing.T) {
	store, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	defer store.Close()
	tests.RunLibraryContract(t, store)
}

func TestSQLiteRecorder_Contract(t *testing.T) {
	store := open(t)
	tests.RunRecorderContract(t, store, func(key domain.PairKey) []domain.Transition {
		got, err := store.Transitions(context.Background(), key)
		require.NoError(t, err)
		return got
	})
}

func TestSQLiteStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chords.db")
	ctx := context.Background()

	store, err := sqlite.Open(path)
	require.NoError(t, err)
	_, err = seed.NewSeeder(store, seed.WithBatchSize(1)).Seed(ctx, seed.Sample())
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = sqlite.Open(path)
	require.NoError(t, err)
	defer store.Close()
	assert.Equal(t, path, store.Path())

	got, err := store.ListVariations(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, seed.Sample()[0], got[0])
}

func TestSQLiteStore_EngineRecordsTransitions(t *testing.T) {
	store := open(t)
	ctx := context.Background()
	require.NoError(t, store.SaveVariations(ctx, tests.SampleVariations(t)))

	eng, err := fretwise.New(store, fretwise.WithRecorder(store))
	require.NoError(t, err)
	out, err := eng.Recommend(ctx, []string{"A", "D", "G"})
	require.NoError(t, err)
	assert.Len(t, out.Picked, 3)

	stored, err := store.Transitions(ctx, domain.PairKey{First: "A", Second: "G"})
	require.NoError(t, err)
	require.Len(t, stored, 4)
	assert.Equal(t, "A v1 G v1", stored[0].Name)
	assert.Equal(t, -5.5, stored[0].Total)
}
