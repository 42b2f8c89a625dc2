package domain

// ChordPool holds the candidate variations of each chord root considered during selection.
// Roots iterate in insertion order and variations are deduplicated by name.
type ChordPool struct {
	roots      []string
	variations map[string][]ChordVariation
}

// NewChordPool creates an empty pool.
func NewChordPool() *ChordPool {
	return &ChordPool{
		variations: make(map[string][]ChordVariation),
	}
}

// Add registers a variation under its root. It reports false if the name was already pooled.
func (p *ChordPool) Add(v ChordVariation) bool {
	root := v.Root()
	existing, ok := p.variations[root]
	if !ok {
		p.roots = append(p.roots, root)
	}
	for _, e := range existing {
		if e.Name == v.Name {
			return false
		}
	}
	p.variations[root] = append(existing, v)
	return true
}

// Roots returns the pooled roots in insertion order.
func (p *ChordPool) Roots() []string {
	return append([]string(nil), p.roots...)
}

// Variations returns the candidates of a root.
func (p *ChordPool) Variations(root string) []ChordVariation {
	return p.variations[root]
}

// Len returns the number of roots.
func (p *ChordPool) Len() int {
	return len(p.roots)
}
