/*
Package domain contains the core domain models for the fretwise transition engine.

It defines the vocabulary shared by the scorer, ranker and picker: chord variations
(one concrete fingering of a named chord), transitions between two variations and the
ordered collections that hold ranked transitions and candidate pools. This package is
kept pure and free of external dependencies like I/O or persistence, following
Hexagonal Architecture principles.

# Key Entities

  - ChordVariation: A named fingering with per-string fret positions and finger labels.
  - Transition: A directed pairing of two variations plus its movement cost.
  - RankedTransitionSet: Per chord-pair transitions, sorted from cheapest to most costly.
  - ChordPool: Candidate variations per chord root, considered during selection.
*/
package domain
