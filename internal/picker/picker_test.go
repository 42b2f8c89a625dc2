package picker_test

import (
	"context"
	"testing"

	"github.com/aretw0/fretwise/internal/picker"
	"github.com/aretw0/fretwise/internal/ranker"
	"github.com/aretw0/fretwise/pkg/adapters/memory"
	"github.com/aretw0/fretwise/pkg/domain"
	"github.com/aretw0/fretwise/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func byName(t *testing.T) map[string]domain.ChordVariation {
	t.Helper()
	out := make(map[string]domain.ChordVariation)
	for _, v := range tests.SampleVariations(t) {
		out[v.Name] = v
	}
	return out
}

func TestPick_SampleChords(t *testing.T) {
	lib := memory.NewLibrary(tests.SampleVariations(t)...)
	set, err := ranker.New(lib).Rank(context.Background(), []string{"G", "D", "A"})
	require.NoError(t, err)

	picked, err := picker.New().Pick(context.Background(), set)
	require.NoError(t, err)
	require.Len(t, picked, 3)

	assert.Equal(t, "A", picked[0].Root())
	assert.Equal(t, "D", picked[1].Root())
	assert.Equal(t, "G", picked[2].Root())
	assert.Equal(t, []string{"A v1", "D v1", "G v1"}, []string{picked[0].Name, picked[1].Name, picked[2].Name})

	// Every pick must come from the input ranking.
	present := make(map[string]bool)
	for _, k := range set.Keys() {
		ts, _ := set.Get(k)
		for _, tr := range ts {
			present[tr.From.Name] = true
			present[tr.To.Name] = true
		}
	}
	for _, p := range picked {
		assert.True(t, present[p.Name], "%s not in ranking", p.Name)
	}
}

func TestPool_TopTransitionsOnly(t *testing.T) {
	v := byName(t)
	set := domain.NewRankedTransitionSet()
	set.Set(domain.PairKey{First: "A", Second: "D"}, []domain.Transition{
		domain.NewTransition(v["A v1"], v["D v1"], domain.Score{Total: -3.5}),
		domain.NewTransition(v["A v2"], v["D v2"], domain.Score{Total: -9}),
	})
	set.Set(domain.PairKey{First: "A", Second: "G"}, []domain.Transition{
		domain.NewTransition(v["A v2"], v["G v1"], domain.Score{Total: -1}),
	})
	set.Set(domain.PairKey{First: "D", Second: "G"}, nil)

	pool := picker.Pool(set)
	assert.Equal(t, []string{"A", "D", "G"}, pool.Roots())
	assert.Len(t, pool.Variations("A"), 2)
	assert.Len(t, pool.Variations("D"), 1)
	assert.Equal(t, "D v1", pool.Variations("D")[0].Name)
}

func TestPick_ChoosesCheapestCandidate(t *testing.T) {
	v := byName(t)
	set := domain.NewRankedTransitionSet()
	set.Set(domain.PairKey{First: "A", Second: "D"}, []domain.Transition{
		domain.NewTransition(v["A v1"], v["D v1"], domain.Score{Total: -3.5}),
	})
	// A v2 enters the pool through a forged top transition.
	set.Set(domain.PairKey{First: "A", Second: "G"}, []domain.Transition{
		domain.NewTransition(v["A v2"], v["G v1"], domain.Score{Total: -1}),
	})

	var events []*domain.ChordPickedEvent
	p := picker.New(picker.WithHooks(domain.Hooks{
		OnChordPicked: func(ctx context.Context, e *domain.ChordPickedEvent) {
			events = append(events, e)
		},
	}))

	picked, err := p.Pick(context.Background(), set)
	require.NoError(t, err)
	require.Len(t, picked, 3)
	assert.Equal(t, "A v1", picked[0].Name)

	require.Len(t, events, 3)
	assert.Equal(t, "A", events[0].Root)
	assert.Equal(t, 2, events[0].Candidates)
	assert.Equal(t, -3.5, events[0].BestTotal)
}

func TestPick_TieGoesToSmallerName(t *testing.T) {
	v := byName(t)
	c2 := tests.MustVariation(t, "C v2", []string{"x", "3", "2", "0", "1", "0"}, []string{"-", "3", "2", "-", "1", "-"})
	c1 := c2.Clone()
	c1.Name = "C v1"

	set := domain.NewRankedTransitionSet()
	set.Set(domain.PairKey{First: "A", Second: "C"}, []domain.Transition{
		domain.NewTransition(v["A v1"], c2, domain.Score{}),
	})
	set.Set(domain.PairKey{First: "C", Second: "D"}, []domain.Transition{
		domain.NewTransition(c1, v["D v1"], domain.Score{}),
	})

	picked, err := picker.New().Pick(context.Background(), set)
	require.NoError(t, err)
	require.Len(t, picked, 3)
	assert.Equal(t, "C v1", picked[1].Name)
}

func TestPick_EmptySet(t *testing.T) {
	picked, err := picker.New().Pick(context.Background(), domain.NewRankedTransitionSet())
	require.NoError(t, err)
	assert.Empty(t, picked)
}

func TestPick_InvalidVariation(t *testing.T) {
	v := byName(t)
	muted := domain.ChordVariation{
		Name:       "N v1",
		Positions:  []domain.Fret{domain.Muted, domain.Muted},
		Fingerings: []domain.Finger{domain.NoFinger, domain.NoFinger},
	}
	set := domain.NewRankedTransitionSet()
	set.Set(domain.PairKey{First: "A", Second: "N"}, []domain.Transition{
		domain.NewTransition(v["A v1"], muted, domain.Score{}),
	})

	_, err := picker.New().Pick(context.Background(), set)
	assert.ErrorIs(t, err, domain.ErrInvalidVariation)
}
