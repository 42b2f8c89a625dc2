package tests

import (
	"context"
	"testing"

	"github.com/aretw0/fretwise/pkg/domain"
	"github.com/aretw0/fretwise/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MustVariation builds a variation from seed markers or fails the test.
func MustVariation(t *testing.T, name string, positions, fingerings []string) domain.ChordVariation {
	t.Helper()
	v, err := domain.NewVariation(name, positions, fingerings)
	require.NoError(t, err)
	return v
}

// SampleVariations returns the A, D and G shapes used across adapter tests.
func SampleVariations(t *testing.T) []domain.ChordVariation {
	t.Helper()
	return []domain.ChordVariation{
		MustVariation(t, "A v1", []string{"x", "0", "2", "2", "2", "0"}, []string{"-", "-", "1", "2", "3", "-"}),
		MustVariation(t, "A v2", []string{"5", "7", "7", "6", "5", "5"}, []string{"1", "3", "4", "2", "1", "1"}),
		MustVariation(t, "D v1", []string{"x", "x", "0", "2", "3", "2"}, []string{"-", "-", "-", "1", "3", "2"}),
		MustVariation(t, "D v2", []string{"5", "5", "7", "7", "7", "5"}, []string{"1", "1", "2", "3", "4", "1"}),
		MustVariation(t, "G v1", []string{"3", "2", "0", "0", "0", "3"}, []string{"2", "1", "-", "-", "-", "3"}),
		MustVariation(t, "G v2", []string{"3", "2", "0", "0", "3", "3"}, []string{"2", "1", "-", "-", "3", "4"}),
	}
}

// RunLibraryContract runs a suite of tests to verify that a ports.Library implementation
// adheres to the defined interface contract. The library must start empty.
func RunLibraryContract(t *testing.T, lib ports.Library) {
	t.Helper()
	ctx := context.Background()

	t.Run("Save and List", func(t *testing.T) {
		require.NoError(t, lib.SaveVariations(ctx, SampleVariations(t)))

		got, err := lib.ListVariations(ctx, "A")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "A v1", got[0].Name)
		assert.Equal(t, "A v2", got[1].Name)
		assert.Equal(t, SampleVariations(t)[1], got[1])
	})

	t.Run("List Unknown Root", func(t *testing.T) {
		_, err := lib.ListVariations(ctx, "H")
		assert.ErrorIs(t, err, domain.ErrChordNotFound)
	})

	t.Run("Ordinal Order", func(t *testing.T) {
		batch := []domain.ChordVariation{
			MustVariation(t, "E v10", []string{"0", "2", "2", "1", "0", "0"}, []string{"-", "2", "3", "1", "-", "-"}),
			MustVariation(t, "E v2", []string{"0", "7", "6", "4", "5", "4"}, []string{"-", "4", "3", "1", "2", "1"}),
			MustVariation(t, "E v1", []string{"0", "2", "2", "1", "0", "0"}, []string{"-", "2", "3", "1", "-", "-"}),
		}
		require.NoError(t, lib.SaveVariations(ctx, batch))

		got, err := lib.ListVariations(ctx, "E")
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, []string{"E v1", "E v2", "E v10"}, []string{got[0].Name, got[1].Name, got[2].Name})
	})

	t.Run("Replace", func(t *testing.T) {
		updated := MustVariation(t, "D v2", []string{"x", "5", "7", "7", "7", "5"}, []string{"-", "1", "2", "3", "4", "1"})
		require.NoError(t, lib.SaveVariations(ctx, []domain.ChordVariation{updated}))

		got, err := lib.ListVariations(ctx, "D")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, updated, got[1])
	})

	t.Run("List Roots", func(t *testing.T) {
		roots, err := lib.ListRoots(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "D", "E", "G"}, roots)
	})

	t.Run("Returned Variations Are Isolated", func(t *testing.T) {
		got, err := lib.ListVariations(ctx, "G")
		require.NoError(t, err)
		got[0].Positions[0] = 12

		again, err := lib.ListVariations(ctx, "G")
		require.NoError(t, err)
		assert.Equal(t, domain.Fret(3), again[0].Positions[0])
	})
}

// RunRecorderContract verifies a ports.TransitionRecorder accepts and replaces rankings.
// load reads back what was recorded for a pair, in ranking order.
func RunRecorderContract(t *testing.T, rec ports.TransitionRecorder, load func(key domain.PairKey) []domain.Transition) {
	t.Helper()
	ctx := context.Background()
	vs := SampleVariations(t)
	key := domain.PairKey{First: "A", Second: "D"}

	first := []domain.Transition{
		domain.NewTransition(vs[0], vs[2], domain.Score{FingerMovement: -3, HandMovement: -0.5, Total: -3.5}),
		domain.NewTransition(vs[1], vs[3], domain.Score{FingerMovement: -9, Total: -9}),
	}
	require.NoError(t, rec.RecordTransitions(ctx, key, first))

	got := load(key)
	require.Len(t, got, 2)
	assert.Equal(t, "A v1 D v1", got[0].Name)
	assert.Equal(t, -3.5, got[0].Total)
	assert.Equal(t, vs[0], got[0].From)

	second := first[1:]
	require.NoError(t, rec.RecordTransitions(ctx, key, second))
	got = load(key)
	require.Len(t, got, 1)
	assert.Equal(t, "A v2 D v2", got[0].Name)
}
