// Package combinatorics generates the deterministic pairings used by the ranker.
//
// Both helpers preserve input order, so identical inputs always produce identical
// outputs; the ranker relies on this for reproducible tie-breaks.
package combinatorics

// Pairs returns every unordered 2-combination of items in lexicographic index order:
// for items [a b c] it yields (a,b) (a,c) (b,c). Fewer than two items yield nil.
func Pairs[T any](items []T) [][2]T {
	n := len(items)
	if n < 2 {
		return nil
	}
	out := make([][2]T, 0, n*(n-1)/2)
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			out = append(out, [2]T{items[i], items[j]})
		}
	}
	return out
}

// Pair is one element of a cartesian product.
type Pair[A, B any] struct {
	Left  A
	Right B
}

// Product returns the cartesian product of as and bs with as as the outer loop.
func Product[A, B any](as []A, bs []B) []Pair[A, B] {
	if len(as) == 0 || len(bs) == 0 {
		return nil
	}
	out := make([]Pair[A, B], 0, len(as)*len(bs))
	for _, a := range as {
		for _, b := range bs {
			out = append(out, Pair[A, B]{Left: a, Right: b})
		}
	}
	return out
}

// Unique drops repeated items, keeping the first occurrence of each.
func Unique[T comparable](items []T) []T {
	seen := make(map[T]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}
