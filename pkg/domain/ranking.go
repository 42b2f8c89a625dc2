package domain

import "encoding/json"

// RankedTransitionSet maps chord pairs to their transitions, sorted from the
// cheapest (highest total score) to the most costly. Keys keep insertion order.
type RankedTransitionSet struct {
	keys    []PairKey
	entries map[PairKey][]Transition
}

// NewRankedTransitionSet creates an empty set.
func NewRankedTransitionSet() *RankedTransitionSet {
	return &RankedTransitionSet{
		entries: make(map[PairKey][]Transition),
	}
}

// Set stores the ranking of a pair, replacing any previous one without moving its key.
func (s *RankedTransitionSet) Set(key PairKey, transitions []Transition) {
	if _, ok := s.entries[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.entries[key] = transitions
}

// Get returns the ranking of a pair.
func (s *RankedTransitionSet) Get(key PairKey) ([]Transition, bool) {
	ts, ok := s.entries[key]
	return ts, ok
}

// Best returns the top-ranked transition of a pair.
func (s *RankedTransitionSet) Best(key PairKey) (Transition, bool) {
	ts, ok := s.entries[key]
	if !ok || len(ts) == 0 {
		return Transition{}, false
	}
	return ts[0], true
}

// Keys returns the pair keys in insertion order.
func (s *RankedTransitionSet) Keys() []PairKey {
	return append([]PairKey(nil), s.keys...)
}

// Len returns the number of pairs.
func (s *RankedTransitionSet) Len() int {
	return len(s.keys)
}

// Roots returns every chord root present in the set, in first-seen order.
func (s *RankedTransitionSet) Roots() []string {
	seen := make(map[string]struct{})
	var roots []string
	for _, k := range s.keys {
		for _, r := range []string{k.First, k.Second} {
			if _, ok := seen[r]; ok {
				continue
			}
			seen[r] = struct{}{}
			roots = append(roots, r)
		}
	}
	return roots
}

// RankedPair is the serialized form of one entry.
type RankedPair struct {
	Key         string       `json:"key"`
	First       string       `json:"first"`
	Second      string       `json:"second"`
	Transitions []Transition `json:"transitions"`
}

// Pairs flattens the set into its ordered entries.
func (s *RankedTransitionSet) Pairs() []RankedPair {
	out := make([]RankedPair, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, RankedPair{
			Key:         k.String(),
			First:       k.First,
			Second:      k.Second,
			Transitions: s.entries[k],
		})
	}
	return out
}

// MarshalJSON encodes the set as an ordered list of pairs.
func (s *RankedTransitionSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Pairs())
}

// UnmarshalJSON restores a set encoded by MarshalJSON.
func (s *RankedTransitionSet) UnmarshalJSON(data []byte) error {
	var pairs []RankedPair
	if err := json.Unmarshal(data, &pairs); err != nil {
		return err
	}
	*s = *NewRankedTransitionSet()
	for _, p := range pairs {
		s.Set(PairKey{First: p.First, Second: p.Second}, p.Transitions)
	}
	return nil
}
