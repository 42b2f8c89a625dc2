package memory

import (
	"context"
	"sync"

	"github.com/aretw0/fretwise/pkg/domain"
)

// Recorder implements ports.TransitionRecorder in memory.
// Safe for concurrent use.
type Recorder struct {
	mu       sync.RWMutex
	rankings map[domain.PairKey][]domain.Transition
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		rankings: make(map[domain.PairKey][]domain.Transition),
	}
}

// RecordTransitions stores a copy of the ranking of a pair.
func (r *Recorder) RecordTransitions(ctx context.Context, key domain.PairKey, transitions []domain.Transition) error {
	copied := append([]domain.Transition(nil), transitions...)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.rankings[key] = copied
	return nil
}

// Transitions returns the recorded ranking of a pair.
func (r *Recorder) Transitions(key domain.PairKey) []domain.Transition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Transition(nil), r.rankings[key]...)
}

// Len returns the number of recorded pairs.
func (r *Recorder) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rankings)
}
