package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVariation(t *testing.T) {
	tests := []struct {
		name       string
		positions  []string
		fingerings []string
		wantErr    bool
	}{
		{
			name:       "Open A",
			positions:  []string{"x", "0", "2", "2", "2", "0"},
			fingerings: []string{"-", "-", "1", "2", "3", "-"},
		},
		{
			name:       "Length Mismatch",
			positions:  []string{"x", "0", "2"},
			fingerings: []string{"-", "-"},
			wantErr:    true,
		},
		{
			name:       "All Muted",
			positions:  []string{"x", "x", "x", "x", "x", "x"},
			fingerings: []string{"-", "-", "-", "-", "-", "-"},
			wantErr:    true,
		},
		{
			name:       "Bad Fret",
			positions:  []string{"-1", "0"},
			fingerings: []string{"-", "-"},
			wantErr:    true,
		},
		{
			name:       "Bad Finger",
			positions:  []string{"1", "0"},
			fingerings: []string{"5", "-"},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := NewVariation("A v1", tt.positions, tt.fingerings)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidVariation), "expected ErrInvalidVariation, got %v", err)
				var verr *ValidationError
				assert.True(t, errors.As(err, &verr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "A", v.Root())
			assert.Equal(t, 6, v.Strings())
		})
	}
}

func TestChordVariation_HandMidpoint(t *testing.T) {
	v, err := NewVariation("A v2", []string{"5", "7", "7", "6", "5", "5"}, []string{"1", "3", "4", "2", "1", "1"})
	require.NoError(t, err)

	mid, err := v.HandMidpoint()
	require.NoError(t, err)
	assert.Equal(t, 6.0, mid)

	muted := ChordVariation{
		Name:       "X v1",
		Positions:  []Fret{Muted, Muted},
		Fingerings: []Finger{NoFinger, NoFinger},
	}
	_, err = muted.HandMidpoint()
	assert.ErrorIs(t, err, ErrInvalidVariation)
}

func TestChordVariation_FingerQueries(t *testing.T) {
	v, err := NewVariation("A v2", []string{"5", "7", "7", "6", "5", "5"}, []string{"1", "3", "4", "2", "1", "1"})
	require.NoError(t, err)

	assert.Len(t, v.UsedFingers(), 4)
	assert.Equal(t, 0, v.StringOf(Index), "lowest string wins for a barre")
	assert.Equal(t, 2, v.StringOf(Pinky))
	assert.Equal(t, -1, v.StringOf(NoFinger+9))
}

func TestChordVariation_JSONMarkers(t *testing.T) {
	v, err := NewVariation("D v1", []string{"x", "x", "0", "2", "3", "2"}, []string{"-", "-", "-", "1", "3", "2"})
	require.NoError(t, err)

	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"D v1","positions":["x","x","0","2","3","2"],"fingerings":["-","-","-","1","3","2"]}`, string(data))

	var back ChordVariation
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, v, back)
}

func TestVariationName(t *testing.T) {
	assert.Equal(t, "G v3", VariationName("G", 3))
	assert.Equal(t, "C#m7", RootOf("C#m7 v12"))
	assert.Equal(t, "E", RootOf("E"))
}

func TestRootOf_RootsWithSpaces(t *testing.T) {
	cases := map[string]string{
		"A minor v1":  "A minor",
		"A minor v12": "A minor",
		"A v1":        "A",
		"Cmaj7 vibe":  "Cmaj7 vibe",
		"D sus v2 v3": "D sus v2",
	}
	for name, want := range cases {
		assert.Equal(t, want, RootOf(name), name)
	}
	assert.Equal(t, "F sharp minor", RootOf(VariationName("F sharp minor", 4)))

	v, err := NewVariation("A minor v1", []string{"x", "0", "2", "2", "1", "0"}, []string{"-", "-", "2", "3", "1", "-"})
	require.NoError(t, err)
	assert.Equal(t, "A minor", v.Root())
	assert.Equal(t, 1, Ordinal(v.Name))
}

func TestChordVariation_Clone(t *testing.T) {
	v, err := NewVariation("G v1", []string{"3", "2", "0", "0", "0", "3"}, []string{"2", "1", "-", "-", "-", "3"})
	require.NoError(t, err)

	c := v.Clone()
	c.Positions[0] = 7
	assert.Equal(t, Fret(3), v.Positions[0])
}

func TestSortVariations(t *testing.T) {
	vs := []ChordVariation{{Name: "E v10"}, {Name: "E v2"}, {Name: "E v1"}, {Name: "E"}}
	SortVariations(vs)

	names := make([]string, len(vs))
	for i, v := range vs {
		names[i] = v.Name
	}
	assert.Equal(t, []string{"E", "E v1", "E v2", "E v10"}, names)
	assert.Equal(t, 10, Ordinal("E v10"))
	assert.Equal(t, 0, Ordinal("E vx"))
}
