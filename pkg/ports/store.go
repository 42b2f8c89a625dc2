package ports

import (
	"context"

	"github.com/aretw0/fretwise/pkg/domain"
)

// VariationWriter persists chord variations.
type VariationWriter interface {
	// SaveVariations stores a batch of variations. Saving a name that already
	// exists replaces it. Implementations should apply a batch atomically.
	SaveVariations(ctx context.Context, batch []domain.ChordVariation) error
}

// TransitionRecorder persists the ranked transitions of a chord pair.
type TransitionRecorder interface {
	// RecordTransitions stores the transitions of a pair, in ranking order,
	// replacing any earlier ranking of the same pair.
	RecordTransitions(ctx context.Context, key domain.PairKey, transitions []domain.Transition) error
}
