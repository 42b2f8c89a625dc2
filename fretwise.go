package fretwise

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/fretwise/internal/logging"
	"github.com/aretw0/fretwise/internal/picker"
	"github.com/aretw0/fretwise/internal/ranker"
	"github.com/aretw0/fretwise/internal/scorer"
	"github.com/aretw0/fretwise/pkg/combinatorics"
	"github.com/aretw0/fretwise/pkg/domain"
	"github.com/aretw0/fretwise/pkg/ports"
)

// ErrNoCatalog is returned by Roots when the source cannot enumerate chord roots.
var ErrNoCatalog = errors.New("variation source does not list chord roots")

// Engine is the high-level entry point for the fretwise library.
// It wires the scorer, ranker and picker around a variation source.
// An Engine is immutable after New and safe for concurrent use.
type Engine struct {
	source   ports.VariationSource
	scorer   *scorer.Scorer
	ranker   *ranker.Ranker
	picker   *picker.Picker
	recorder ports.TransitionRecorder
	weights  scorer.Weights
	hooks    domain.Hooks
	logger   *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithWeights overrides the default -1/-1 scoring weights.
func WithWeights(fingering, handPosition float64) Option {
	return func(e *Engine) {
		e.weights = scorer.Weights{Fingering: fingering, HandPosition: handPosition}
	}
}

// WithHooks registers observability hooks. Repeated calls chain the hooks.
func WithHooks(hooks domain.Hooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithRecorder persists every ranked pair through the given recorder.
func WithRecorder(rec ports.TransitionRecorder) Option {
	return func(e *Engine) {
		e.recorder = rec
	}
}

// New initializes an Engine reading variations from source.
func New(source ports.VariationSource, opts ...Option) (*Engine, error) {
	if source == nil {
		return nil, fmt.Errorf("variation source is required")
	}

	eng := &Engine{
		source:  source,
		weights: scorer.DefaultWeights(),
	}
	for _, opt := range opts {
		opt(eng)
	}

	// Ensure logger is initialized (so we don't pass nil to the components)
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	eng.scorer = scorer.New(scorer.WithWeights(eng.weights))

	rankerOpts := []ranker.Option{
		ranker.WithScorer(eng.scorer),
		ranker.WithHooks(eng.hooks),
		ranker.WithLogger(eng.logger),
	}
	if eng.recorder != nil {
		rankerOpts = append(rankerOpts, ranker.WithRecorder(eng.recorder))
	}
	eng.ranker = ranker.New(source, rankerOpts...)

	eng.picker = picker.New(
		picker.WithScorer(eng.scorer),
		picker.WithHooks(eng.hooks),
		picker.WithLogger(eng.logger),
	)

	return eng, nil
}

// Score rates a single transition with the engine's weights.
func (e *Engine) Score(from, to domain.ChordVariation) (domain.Score, error) {
	return e.scorer.Score(from, to)
}

// Weights returns the scoring weights in use.
func (e *Engine) Weights() scorer.Weights {
	return e.weights
}

// Rank scores and sorts the transitions of every pair of the given chord roots.
// On a missing chord the returned set keeps the pairs ranked before the failure.
func (e *Engine) Rank(ctx context.Context, names []string) (*domain.RankedTransitionSet, error) {
	return e.ranker.Rank(ctx, names)
}

// Pick chooses one representative variation per chord root of a ranking, sorted by root.
func (e *Engine) Pick(ctx context.Context, ranked *domain.RankedTransitionSet) ([]domain.ChordVariation, error) {
	return e.picker.Pick(ctx, ranked)
}

// Recommendation is the outcome of ranking and picking a chord list.
type Recommendation struct {
	Chords []string                    `json:"chords"`
	Picked []domain.ChordVariation     `json:"picked"`
	Ranked *domain.RankedTransitionSet `json:"ranked"`
}

// Recommend ranks the transitions between the given chords and picks one variation each.
// A single distinct chord has no transitions; its first stored variation is returned.
func (e *Engine) Recommend(ctx context.Context, names []string) (*Recommendation, error) {
	chords := combinatorics.Unique(names)
	rec := &Recommendation{Chords: chords}

	if len(chords) == 1 {
		vs, err := e.source.ListVariations(ctx, chords[0])
		if err != nil {
			return nil, err
		}
		if len(vs) == 0 {
			return nil, &domain.NotFoundError{Root: chords[0]}
		}
		rec.Picked = vs[:1]
		rec.Ranked = domain.NewRankedTransitionSet()
		return rec, nil
	}

	ranked, err := e.Rank(ctx, chords)
	if err != nil {
		return nil, err
	}
	picked, err := e.Pick(ctx, ranked)
	if err != nil {
		return nil, err
	}

	rec.Ranked = ranked
	rec.Picked = picked
	e.logger.Info("recommended chords", "chords", chords, "pairs", ranked.Len())
	return rec, nil
}

// Roots lists the chord roots known to the source.
// Returns ErrNoCatalog if the source does not implement ports.Catalog.
func (e *Engine) Roots(ctx context.Context) ([]string, error) {
	if c, ok := e.source.(ports.Catalog); ok {
		return c.ListRoots(ctx)
	}
	return nil, ErrNoCatalog
}

// Variations returns the stored variations of a chord root.
func (e *Engine) Variations(ctx context.Context, root string) ([]domain.ChordVariation, error) {
	return e.source.ListVariations(ctx, root)
}

// Source returns the underlying VariationSource used by the engine.
func (e *Engine) Source() ports.VariationSource {
	return e.source
}
