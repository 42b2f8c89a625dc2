// Package picker selects one representative variation per chord root from ranked transitions.
//
// Selection is greedy and local: each root's winner is the pooled variation with the
// cheapest transition to any pooled variation of another root, chosen independently
// of the other roots' winners. It is not a joint optimum over the chord sequence.
package picker

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/aretw0/fretwise/internal/logging"
	"github.com/aretw0/fretwise/internal/scorer"
	"github.com/aretw0/fretwise/pkg/domain"
)

// Picker chooses representatives from a RankedTransitionSet.
type Picker struct {
	scorer *scorer.Scorer
	hooks  domain.Hooks
	logger *slog.Logger
}

// Option configures the Picker.
type Option func(*Picker)

// WithScorer replaces the default scorer.
func WithScorer(s *scorer.Scorer) Option {
	return func(p *Picker) {
		p.scorer = s
	}
}

// WithHooks registers observability hooks.
func WithHooks(h domain.Hooks) Option {
	return func(p *Picker) {
		p.hooks = h
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Picker) {
		p.logger = logger
	}
}

// New creates a Picker.
func New(opts ...Option) *Picker {
	p := &Picker{
		scorer: scorer.New(),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Pool collects both endpoints of every pair's top-ranked transition, keyed by root.
func Pool(set *domain.RankedTransitionSet) *domain.ChordPool {
	pool := domain.NewChordPool()
	for _, key := range set.Keys() {
		best, ok := set.Best(key)
		if !ok {
			continue
		}
		pool.Add(best.From)
		pool.Add(best.To)
	}
	return pool
}

// Pick returns one variation per chord root found in the set, sorted by root.
func (p *Picker) Pick(ctx context.Context, set *domain.RankedTransitionSet) ([]domain.ChordVariation, error) {
	pool := Pool(set)
	roots := pool.Roots()
	chosen := make([]domain.ChordVariation, 0, len(roots))

	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		candidates := pool.Variations(root)
		best, bestScore, err := p.pickRoot(root, candidates, pool)
		if err != nil {
			return nil, err
		}
		chosen = append(chosen, best)

		p.logger.Debug("picked chord", "root", root, "variation", best.Name, "score", bestScore)
		if p.hooks.OnChordPicked != nil {
			p.hooks.OnChordPicked(ctx, &domain.ChordPickedEvent{
				EventBase:  domain.EventBase{Timestamp: time.Now(), Type: domain.EventChordPicked},
				Root:       root,
				Variation:  best.Name,
				Candidates: len(candidates),
				BestTotal:  bestScore,
			})
		}
	}

	sort.SliceStable(chosen, func(i, j int) bool {
		return chosen[i].Root() < chosen[j].Root()
	})
	return chosen, nil
}

// pickRoot scores every candidate of root against every pooled variation of the other
// roots and keeps the candidate with the highest score, ties going to the smaller name.
func (p *Picker) pickRoot(root string, candidates []domain.ChordVariation, pool *domain.ChordPool) (domain.ChordVariation, float64, error) {
	var best *domain.ChordVariation
	bestScore := math.Inf(-1)

	for _, other := range pool.Roots() {
		if other == root {
			continue
		}
		for i := range candidates {
			v := &candidates[i]
			for _, v2 := range pool.Variations(other) {
				s, err := p.scorer.Score(*v, v2)
				if err != nil {
					return domain.ChordVariation{}, 0, err
				}
				if best == nil || s.Total > bestScore || (s.Total == bestScore && v.Name < best.Name) {
					best = v
					bestScore = s.Total
				}
			}
		}
	}

	if best == nil {
		// No other root to compare against: keep the first candidate by name.
		first := candidates[0]
		for _, c := range candidates[1:] {
			if c.Name < first.Name {
				first = c
			}
		}
		return first, 0, nil
	}
	return *best, bestScore, nil
}
