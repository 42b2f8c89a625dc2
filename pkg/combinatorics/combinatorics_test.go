package combinatorics_test

import (
	"testing"

	"github.com/aretw0/fretwise/pkg/combinatorics"
	"github.com/stretchr/testify/assert"
)

func TestPairs(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		want  [][2]string
	}{
		{name: "Empty", items: nil, want: nil},
		{name: "Single", items: []string{"A"}, want: nil},
		{name: "Two", items: []string{"A", "D"}, want: [][2]string{{"A", "D"}}},
		{
			name:  "Index Order",
			items: []string{"G", "A", "D"},
			want:  [][2]string{{"G", "A"}, {"G", "D"}, {"A", "D"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, combinatorics.Pairs(tt.items))
		})
	}
}

func TestPairs_Count(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}
	assert.Len(t, combinatorics.Pairs(items), 21)
}

func TestProduct_OuterLoopFirst(t *testing.T) {
	got := combinatorics.Product([]string{"a1", "a2"}, []int{1, 2, 3})

	want := []combinatorics.Pair[string, int]{
		{"a1", 1}, {"a1", 2}, {"a1", 3},
		{"a2", 1}, {"a2", 2}, {"a2", 3},
	}
	assert.Equal(t, want, got)
	assert.Nil(t, combinatorics.Product([]string{"a"}, []int{}))
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []string{"A", "D", "G"}, combinatorics.Unique([]string{"A", "D", "A", "G", "D"}))
}
