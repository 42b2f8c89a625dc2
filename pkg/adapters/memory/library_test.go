package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/fretwise/pkg/adapters/memory"
	"github.com/aretw0/fretwise/pkg/domain"
	"github.com/aretw0/fretwise/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLibrary_Contract(t *testing.T) {
	tests.RunLibraryContract(t, memory.NewLibrary())
}

func TestMemoryRecorder_Contract(t *testing.T) {
	rec := memory.NewRecorder()
	tests.RunRecorderContract(t, rec, rec.Transitions)
	assert.Equal(t, 1, rec.Len())
}

func TestMemoryLibrary_SnapshotIsFrozen(t *testing.T) {
	ctx := context.Background()
	lib := memory.NewLibrary(tests.SampleVariations(t)...)

	snap, err := lib.Snapshot(ctx)
	require.NoError(t, err)

	extra := tests.MustVariation(t, "A v3", []string{"x", "0", "2", "2", "2", "0"}, []string{"-", "-", "2", "1", "3", "-"})
	require.NoError(t, lib.SaveVariations(ctx, []domain.ChordVariation{extra}))

	live, err := lib.ListVariations(ctx, "A")
	require.NoError(t, err)
	assert.Len(t, live, 3)

	frozen, err := snap.ListVariations(ctx, "A")
	require.NoError(t, err)
	assert.Len(t, frozen, 2)
}

func TestMemoryLibrary_RejectsInvalid(t *testing.T) {
	lib := memory.NewLibrary()
	bad := domain.ChordVariation{Name: "X v1", Positions: []domain.Fret{domain.Muted}, Fingerings: []domain.Finger{domain.NoFinger}}

	err := lib.SaveVariations(context.Background(), []domain.ChordVariation{bad})
	assert.ErrorIs(t, err, domain.ErrInvalidVariation)

	roots, err := lib.ListRoots(context.Background())
	require.NoError(t, err)
	assert.Empty(t, roots)
}
