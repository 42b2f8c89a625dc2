package scorer_test

import (
	"errors"
	"math"
	"testing"

	"github.com/aretw0/fretwise/internal/scorer"
	"github.com/aretw0/fretwise/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustVariation(t *testing.T, name string, positions, fingerings []string) domain.ChordVariation {
	t.Helper()
	v, err := domain.NewVariation(name, positions, fingerings)
	require.NoError(t, err)
	return v
}

func sample(t *testing.T) map[string]domain.ChordVariation {
	t.Helper()
	return map[string]domain.ChordVariation{
		"A v1": mustVariation(t, "A v1", []string{"x", "0", "2", "2", "2", "0"}, []string{"-", "-", "1", "2", "3", "-"}),
		"A v2": mustVariation(t, "A v2", []string{"5", "7", "7", "6", "5", "5"}, []string{"1", "3", "4", "2", "1", "1"}),
		"D v1": mustVariation(t, "D v1", []string{"x", "x", "0", "2", "3", "2"}, []string{"-", "-", "-", "1", "3", "2"}),
		"D v2": mustVariation(t, "D v2", []string{"5", "5", "7", "7", "7", "5"}, []string{"1", "1", "2", "3", "4", "1"}),
		"G v1": mustVariation(t, "G v1", []string{"3", "2", "0", "0", "0", "3"}, []string{"2", "1", "-", "-", "-", "3"}),
		"G v2": mustVariation(t, "G v2", []string{"3", "2", "0", "0", "3", "3"}, []string{"2", "1", "-", "-", "3", "4"}),
	}
}

func TestScore_KnownTransitions(t *testing.T) {
	v := sample(t)

	tests := []struct {
		from, to   string
		wantFinger float64
		wantHand   float64
	}{
		// Same finger set; fingers 1 and 2 cross one and two strings, finger 3 stays.
		{from: "A v1", to: "D v1", wantFinger: -3, wantHand: -0.5},
		// Pinky only in D v2, three shared fingers move, hand jumps from fret 1 to 6.
		{from: "A v1", to: "D v2", wantFinger: -5, wantHand: -5},
		// Barre finger stays on string 0 then is charged from its next occurrence.
		{from: "A v2", to: "D v2", wantFinger: -9, wantHand: 0},
		{from: "A v2", to: "D v1", wantFinger: -9, wantHand: -4.5},
		{from: "A v1", to: "G v1", wantFinger: -5, wantHand: -0.5},
		{from: "A v1", to: "G v2", wantFinger: -5, wantHand: -0.5},
		{from: "D v2", to: "G v1", wantFinger: -6, wantHand: -4.5},
		{from: "D v1", to: "G v1", wantFinger: -8, wantHand: 0},
	}

	for _, tt := range tests {
		t.Run(tt.from+" -> "+tt.to, func(t *testing.T) {
			got, err := scorer.Score(v[tt.from], v[tt.to])
			require.NoError(t, err)
			assert.Equal(t, tt.wantFinger, got.FingerMovement)
			assert.Equal(t, tt.wantHand, got.HandMovement)
			assert.Equal(t, tt.wantFinger+tt.wantHand, got.Total)
		})
	}
}

func TestScore_IdentityIsZero(t *testing.T) {
	for name, v := range sample(t) {
		t.Run(name, func(t *testing.T) {
			got, err := scorer.Score(v, v)
			require.NoError(t, err)
			assert.Equal(t, domain.Score{}, got)
			assert.False(t, math.Signbit(got.Total), "total must not be negative zero")
		})
	}
}

func TestScore_NonPositive(t *testing.T) {
	v := sample(t)
	for _, one := range v {
		for _, two := range v {
			got, err := scorer.Score(one, two)
			require.NoError(t, err)
			assert.LessOrEqual(t, got.Total, 0.0, "%s -> %s", one.Name, two.Name)
		}
	}
}

func TestScore_AllMutedIsValidationError(t *testing.T) {
	v := sample(t)
	muted := domain.ChordVariation{
		Name:       "N v1",
		Positions:  []domain.Fret{domain.Muted, domain.Muted, domain.Muted, domain.Muted, domain.Muted, domain.Muted},
		Fingerings: []domain.Finger{domain.NoFinger, domain.NoFinger, domain.NoFinger, domain.NoFinger, domain.NoFinger, domain.NoFinger},
	}

	for _, pair := range [][2]domain.ChordVariation{{muted, v["A v1"]}, {v["A v1"], muted}} {
		got, err := scorer.Score(pair[0], pair[1])
		require.Error(t, err)
		var verr *domain.ValidationError
		assert.True(t, errors.As(err, &verr))
		assert.False(t, math.IsNaN(got.Total))
		assert.Equal(t, domain.Score{}, got)
	}
}

func TestScore_LengthMismatch(t *testing.T) {
	bad := domain.ChordVariation{
		Name:       "B v1",
		Positions:  []domain.Fret{0, 2},
		Fingerings: []domain.Finger{domain.NoFinger},
	}
	_, err := scorer.Score(bad, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidVariation)
}

func TestScorer_Weights(t *testing.T) {
	v := sample(t)
	s := scorer.New(scorer.WithFingeringWeight(-2), scorer.WithHandPositionWeight(-0.5))

	got, err := s.Score(v["A v1"], v["D v2"])
	require.NoError(t, err)
	assert.Equal(t, -10.0, got.FingerMovement)
	assert.Equal(t, -2.5, got.HandMovement)
	assert.Equal(t, -12.5, got.Total)
	assert.Equal(t, scorer.Weights{Fingering: -2, HandPosition: -0.5}, s.Weights())
}
