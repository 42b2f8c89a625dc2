package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventPairRanked  EventType = "pair_ranked"
	EventChordPicked EventType = "chord_picked"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// PairRankedEvent is emitted once a chord pair has been scored and sorted.
type PairRankedEvent struct {
	EventBase
	Pair        PairKey       `json:"pair"`
	Transitions int           `json:"transitions"`
	Best        Score         `json:"best"`
	Duration    time.Duration `json:"duration"`
}

// ChordPickedEvent is emitted when a representative variation is chosen for a root.
type ChordPickedEvent struct {
	EventBase
	Root       string  `json:"root"`
	Variation  string  `json:"variation"`
	Candidates int     `json:"candidates"`
	BestTotal  float64 `json:"best_total"`
}

// Hooks defines callbacks for engine observability.
type Hooks struct {
	OnPairRanked  func(context.Context, *PairRankedEvent)
	OnChordPicked func(context.Context, *ChordPickedEvent)
}

// Merge chains two hook sets, calling h before other.
func (h Hooks) Merge(other Hooks) Hooks {
	return Hooks{
		OnPairRanked:  chain(h.OnPairRanked, other.OnPairRanked),
		OnChordPicked: chain(h.OnChordPicked, other.OnChordPicked),
	}
}

func chain[E any](a, b func(context.Context, *E)) func(context.Context, *E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e *E) {
		a(ctx, e)
		b(ctx, e)
	}
}
