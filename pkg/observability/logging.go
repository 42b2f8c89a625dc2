package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/fretwise/pkg/domain"
)

// LoggingHooks logs every lifecycle event at debug level.
func LoggingHooks(logger *slog.Logger) domain.Hooks {
	return domain.Hooks{
		OnPairRanked: func(ctx context.Context, e *domain.PairRankedEvent) {
			logger.DebugContext(ctx, "pair_ranked",
				"pair", e.Pair.String(),
				"transitions", e.Transitions,
				"best_total", e.Best.Total,
				"duration", e.Duration,
			)
		},
		OnChordPicked: func(ctx context.Context, e *domain.ChordPickedEvent) {
			logger.DebugContext(ctx, "chord_picked",
				"root", e.Root,
				"variation", e.Variation,
				"candidates", e.Candidates,
				"best_total", e.BestTotal,
			)
		},
	}
}
