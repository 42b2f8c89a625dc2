package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/fretwise/pkg/domain"
	"github.com/aretw0/fretwise/pkg/ports"
)

// Library implements ports.Library in memory.
// Safe for concurrent use.
type Library struct {
	mu     sync.RWMutex
	chords map[string]map[string]domain.ChordVariation // root -> name -> variation
}

var (
	_ ports.Library     = (*Library)(nil)
	_ ports.Snapshotter = (*Library)(nil)
)

// NewLibrary creates a new in-memory library, optionally pre-filled.
func NewLibrary(variations ...domain.ChordVariation) *Library {
	l := &Library{
		chords: make(map[string]map[string]domain.ChordVariation),
	}
	l.put(variations)
	return l
}

func (l *Library) put(batch []domain.ChordVariation) {
	for _, v := range batch {
		root := v.Root()
		if l.chords[root] == nil {
			l.chords[root] = make(map[string]domain.ChordVariation)
		}
		// Deep copy to ensure isolation, similar to serialization
		l.chords[root][v.Name] = v.Clone()
	}
}

// SaveVariations stores the batch, replacing variations with the same name.
func (l *Library) SaveVariations(ctx context.Context, batch []domain.ChordVariation) error {
	for _, v := range batch {
		if err := v.Validate(); err != nil {
			return err
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.put(batch)
	return nil
}

// ListVariations returns copies of the variations of a root in ordinal order.
func (l *Library) ListVariations(ctx context.Context, root string) ([]domain.ChordVariation, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	byName, ok := l.chords[root]
	if !ok || len(byName) == 0 {
		return nil, &domain.NotFoundError{Root: root}
	}

	out := make([]domain.ChordVariation, 0, len(byName))
	for _, v := range byName {
		out = append(out, v.Clone())
	}
	domain.SortVariations(out)
	return out, nil
}

// ListRoots returns the known roots, sorted.
func (l *Library) ListRoots(ctx context.Context) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	roots := make([]string, 0, len(l.chords))
	for r := range l.chords {
		roots = append(roots, r)
	}
	sort.Strings(roots) // Deterministic order
	return roots, nil
}

// Snapshot returns an independent copy of the library's current contents.
func (l *Library) Snapshot(ctx context.Context) (ports.VariationSource, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	snap := NewLibrary()
	for _, byName := range l.chords {
		for _, v := range byName {
			snap.put([]domain.ChordVariation{v})
		}
	}
	return snap, nil
}
