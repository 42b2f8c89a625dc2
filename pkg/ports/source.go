package ports

import (
	"context"

	"github.com/aretw0/fretwise/pkg/domain"
)

// VariationSource defines how the engine retrieves chord variations.
type VariationSource interface {
	// ListVariations returns the variations of a chord root in a stable order.
	// Returns domain.ErrChordNotFound (usually as *domain.NotFoundError) for unknown roots.
	ListVariations(ctx context.Context, root string) ([]domain.ChordVariation, error)
}

// Catalog lists the chord roots available in a backend.
type Catalog interface {
	// ListRoots returns every known chord root, sorted.
	ListRoots(ctx context.Context) ([]string, error)
}

// Snapshotter is implemented by sources that can freeze their current contents.
// The ranker uses it so all chords of one run come from the same view.
type Snapshotter interface {
	Snapshot(ctx context.Context) (VariationSource, error)
}

// Library is the full read/write surface most adapters implement.
type Library interface {
	VariationSource
	Catalog
	VariationWriter
}
