// Package scorer computes the cost of moving between two chord variations.
package scorer

import (
	"fmt"
	"math"

	"github.com/aretw0/fretwise/pkg/domain"
)

// DefaultWeight is applied per unit of finger or hand movement.
const DefaultWeight = -1.0

// Weights scale the raw movement distances into scores.
// Negative weights keep scores non-positive, which the ranker expects.
type Weights struct {
	Fingering    float64 `json:"fingering"`
	HandPosition float64 `json:"hand_position"`
}

// DefaultWeights returns the standard -1/-1 weighting.
func DefaultWeights() Weights {
	return Weights{Fingering: DefaultWeight, HandPosition: DefaultWeight}
}

// Scorer is a pure transition cost function. The zero value is not usable; use New.
type Scorer struct {
	weights Weights
}

// Option configures the Scorer.
type Option func(*Scorer)

// WithWeights replaces both weights.
func WithWeights(w Weights) Option {
	return func(s *Scorer) {
		s.weights = w
	}
}

// WithFingeringWeight sets the per-finger penalty.
func WithFingeringWeight(w float64) Option {
	return func(s *Scorer) {
		s.weights.Fingering = w
	}
}

// WithHandPositionWeight sets the per-fret hand movement penalty.
func WithHandPositionWeight(w float64) Option {
	return func(s *Scorer) {
		s.weights.HandPosition = w
	}
}

// New creates a Scorer with the default weights unless overridden.
func New(opts ...Option) *Scorer {
	s := &Scorer{weights: DefaultWeights()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Weights returns the configured weights.
func (s *Scorer) Weights() Weights {
	return s.weights
}

var defaultScorer = New()

// Score rates a transition with the default weights.
func Score(one, two domain.ChordVariation) (domain.Score, error) {
	return defaultScorer.Score(one, two)
}

// Score rates moving from one to two. Both variations are validated first, so a
// variation without any played string fails with a *domain.ValidationError.
func (s *Scorer) Score(one, two domain.ChordVariation) (domain.Score, error) {
	if err := one.Validate(); err != nil {
		return domain.Score{}, err
	}
	if err := two.Validate(); err != nil {
		return domain.Score{}, err
	}

	finger := s.fingerMovement(one, two)

	hand, err := s.handMovement(one, two)
	if err != nil {
		return domain.Score{}, err
	}

	return domain.Score{
		FingerMovement: clean(finger),
		HandMovement:   clean(hand),
		Total:          clean(finger + hand),
	}, nil
}

// fingerMovement charges fingers engaged in only one of the chords, then charges
// each shared finger once for the strings it crosses, using its lowest string in one.
func (s *Scorer) fingerMovement(one, two domain.ChordVariation) float64 {
	usedOne := one.UsedFingers()
	usedTwo := two.UsedFingers()

	differences := make(map[domain.Finger]struct{})
	for f := range usedOne {
		if _, ok := usedTwo[f]; !ok {
			differences[f] = struct{}{}
		}
	}
	for f := range usedTwo {
		if _, ok := usedOne[f]; !ok {
			differences[f] = struct{}{}
		}
	}

	penalty := float64(len(differences)) * s.weights.Fingering

	available := make(map[domain.Finger]bool, len(domain.PlayableFingers))
	for _, f := range domain.PlayableFingers {
		available[f] = true
	}

	for i, f := range one.Fingerings {
		if !available[f] {
			continue
		}
		if _, differs := differences[f]; differs {
			continue
		}
		if i < len(two.Fingerings) && two.Fingerings[i] == f {
			continue
		}
		target := two.StringOf(f)
		if target < 0 {
			continue
		}
		penalty += math.Abs(float64(i-target)) * s.weights.Fingering
		available[f] = false
	}

	return penalty
}

func (s *Scorer) handMovement(one, two domain.ChordVariation) (float64, error) {
	midOne, err := one.HandMidpoint()
	if err != nil {
		return 0, fmt.Errorf("hand position of %q: %w", one.Name, err)
	}
	midTwo, err := two.HandMidpoint()
	if err != nil {
		return 0, fmt.Errorf("hand position of %q: %w", two.Name, err)
	}
	return math.Abs(midOne-midTwo) * s.weights.HandPosition, nil
}

// clean folds negative zero into zero so identical chords report exactly 0.
func clean(v float64) float64 {
	if v == 0 {
		return 0
	}
	return v
}
