package domain

// Score is the cost of moving between two variations.
// All values are non-positive; a value closer to zero is a cheaper transition.
type Score struct {
	FingerMovement float64 `json:"fingerMovementScore"`
	HandMovement   float64 `json:"handMovementScore"`
	Total          float64 `json:"totalScore"`
}

// Transition is a directed pairing of two variations plus its computed cost.
type Transition struct {
	Name string         `json:"name"`
	From ChordVariation `json:"from"`
	To   ChordVariation `json:"to"`
	Score
}

// NewTransition names the transition after its endpoints ("A v1 D v2").
func NewTransition(from, to ChordVariation, score Score) Transition {
	return Transition{
		Name:  TransitionName(from, to),
		From:  from,
		To:    to,
		Score: score,
	}
}

// TransitionName is the composite name used for deterministic tie-breaks.
func TransitionName(from, to ChordVariation) string {
	return from.Name + " " + to.Name
}

// PairKey identifies an unordered chord-root pair, stored in combination order.
type PairKey struct {
	First  string `json:"first"`
	Second string `json:"second"`
}

func (k PairKey) String() string {
	return k.First + "-" + k.Second
}
