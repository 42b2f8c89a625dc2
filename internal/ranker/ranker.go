// Package ranker scores every variation combination of every chord pair and sorts them.
package ranker

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/aretw0/fretwise/internal/logging"
	"github.com/aretw0/fretwise/internal/scorer"
	"github.com/aretw0/fretwise/pkg/combinatorics"
	"github.com/aretw0/fretwise/pkg/domain"
	"github.com/aretw0/fretwise/pkg/ports"
)

// Ranker builds RankedTransitionSets from a variation source.
type Ranker struct {
	source   ports.VariationSource
	scorer   *scorer.Scorer
	recorder ports.TransitionRecorder
	hooks    domain.Hooks
	logger   *slog.Logger
}

// Option configures the Ranker.
type Option func(*Ranker)

// WithScorer replaces the default scorer.
func WithScorer(s *scorer.Scorer) Option {
	return func(r *Ranker) {
		r.scorer = s
	}
}

// WithRecorder hands each ranked pair to a persistence collaborator.
func WithRecorder(rec ports.TransitionRecorder) Option {
	return func(r *Ranker) {
		r.recorder = rec
	}
}

// WithHooks registers observability hooks.
func WithHooks(h domain.Hooks) Option {
	return func(r *Ranker) {
		r.hooks = h
	}
}

// WithLogger sets the logger for per-pair progress.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Ranker) {
		r.logger = logger
	}
}

// New creates a Ranker reading from source.
func New(source ports.VariationSource, opts ...Option) *Ranker {
	r := &Ranker{
		source: source,
		scorer: scorer.New(),
		logger: logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rank scores all variation combinations for every pair of the given chord roots.
// Repeated names are ignored after their first occurrence.
//
// Each root is read from the source at most once per call, from a snapshot when the
// source supports it. On error the returned set still holds the pairs ranked so far.
func (r *Ranker) Rank(ctx context.Context, names []string) (*domain.RankedTransitionSet, error) {
	set := domain.NewRankedTransitionSet()

	source := r.source
	if snap, ok := source.(ports.Snapshotter); ok {
		frozen, err := snap.Snapshot(ctx)
		if err != nil {
			return set, fmt.Errorf("failed to snapshot variation source: %w", err)
		}
		source = frozen
	}

	read := make(map[string][]domain.ChordVariation)
	variations := func(root string) ([]domain.ChordVariation, error) {
		if vs, ok := read[root]; ok {
			return vs, nil
		}
		vs, err := source.ListVariations(ctx, root)
		if err != nil {
			return nil, err
		}
		if len(vs) == 0 {
			return nil, &domain.NotFoundError{Root: root}
		}
		read[root] = vs
		return vs, nil
	}

	for _, pair := range combinatorics.Pairs(combinatorics.Unique(names)) {
		if err := ctx.Err(); err != nil {
			return set, err
		}
		key := domain.PairKey{First: pair[0], Second: pair[1]}
		start := time.Now()

		one, err := variations(key.First)
		if err != nil {
			return set, fmt.Errorf("failed to rank %s: %w", key, err)
		}
		two, err := variations(key.Second)
		if err != nil {
			return set, fmt.Errorf("failed to rank %s: %w", key, err)
		}

		transitions, err := r.RankPair(one, two)
		if err != nil {
			return set, fmt.Errorf("failed to rank %s: %w", key, err)
		}
		set.Set(key, transitions)

		if r.recorder != nil {
			if err := r.recorder.RecordTransitions(ctx, key, transitions); err != nil {
				return set, fmt.Errorf("failed to record %s: %w", key, err)
			}
		}

		r.logger.Debug("ranked pair", "pair", key.String(), "transitions", len(transitions))
		if r.hooks.OnPairRanked != nil {
			r.hooks.OnPairRanked(ctx, &domain.PairRankedEvent{
				EventBase:   domain.EventBase{Timestamp: time.Now(), Type: domain.EventPairRanked},
				Pair:        key,
				Transitions: len(transitions),
				Best:        transitions[0].Score,
				Duration:    time.Since(start),
			})
		}
	}

	return set, nil
}

// RankPair scores the cartesian product of two variation lists and sorts it by
// total score descending, breaking ties by ascending transition name.
func (r *Ranker) RankPair(one, two []domain.ChordVariation) ([]domain.Transition, error) {
	product := combinatorics.Product(one, two)
	transitions := make([]domain.Transition, 0, len(product))

	for _, p := range product {
		score, err := r.scorer.Score(p.Left, p.Right)
		if err != nil {
			return nil, err
		}
		transitions = append(transitions, domain.NewTransition(p.Left, p.Right, score))
	}

	Sort(transitions)
	return transitions, nil
}

// Sort orders transitions from cheapest to most costly with a deterministic tie-break.
func Sort(transitions []domain.Transition) {
	sort.SliceStable(transitions, func(i, j int) bool {
		a, b := transitions[i], transitions[j]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return a.Name < b.Name
	})
}
