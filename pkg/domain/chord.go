package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Fret is the fret pressed on a string. Zero is an open string.
type Fret int

// Muted marks a string that is not played.
const Muted Fret = -1

// ParseFret converts a seed marker ("x" or a fret number) into a Fret.
func ParseFret(s string) (Fret, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, MutedMarker) {
		return Muted, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid fret %q", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("invalid fret %q: must be >= 0 or %q", s, MutedMarker)
	}
	return Fret(n), nil
}

// IsMuted reports whether the string is not played.
func (f Fret) IsMuted() bool {
	return f < 0
}

func (f Fret) String() string {
	if f.IsMuted() {
		return MutedMarker
	}
	return strconv.Itoa(int(f))
}

// MarshalText encodes the fret using the seed markers.
func (f Fret) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText decodes a seed marker.
func (f *Fret) UnmarshalText(text []byte) error {
	v, err := ParseFret(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Finger labels the fretting finger on a string.
type Finger int

const (
	NoFinger Finger = iota // Open or muted string
	Index
	Middle
	Ring
	Pinky
)

// PlayableFingers lists the fingers that can fret a note, in label order.
var PlayableFingers = []Finger{Index, Middle, Ring, Pinky}

// ParseFinger converts a seed marker ("-" or "1".."4") into a Finger.
func ParseFinger(s string) (Finger, error) {
	s = strings.TrimSpace(s)
	if s == NoFingerMarker || s == "" {
		return NoFinger, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < int(Index) || n > int(Pinky) {
		return NoFinger, fmt.Errorf("invalid finger %q", s)
	}
	return Finger(n), nil
}

// Playable reports whether the label is one of the four fretting fingers.
func (f Finger) Playable() bool {
	return f >= Index && f <= Pinky
}

func (f Finger) String() string {
	if !f.Playable() {
		return NoFingerMarker
	}
	return strconv.Itoa(int(f))
}

// MarshalText encodes the finger using the seed markers.
func (f Finger) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText decodes a seed marker.
func (f *Finger) UnmarshalText(text []byte) error {
	v, err := ParseFinger(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// ChordVariation is one specific fingering of a named chord.
// Positions and Fingerings are aligned by string index, lowest string first.
type ChordVariation struct {
	Name       string   `json:"name" yaml:"name"`
	Positions  []Fret   `json:"positions" yaml:"positions"`
	Fingerings []Finger `json:"fingerings" yaml:"fingerings"`
}

// VariationName builds the canonical name of the n-th (1-based) variation of a root.
func VariationName(root string, n int) string {
	return root + VariantPrefix + strconv.Itoa(n)
}

// RootOf extracts the chord root from a variation name ("A v2" -> "A").
// The root is everything before the trailing ordinal, so roots may contain
// spaces ("A minor v1" -> "A minor"). A name without an ordinal is its own root.
func RootOf(name string) string {
	i := strings.LastIndex(name, VariantPrefix)
	if i <= 0 {
		return name
	}
	if _, err := strconv.Atoi(name[i+len(VariantPrefix):]); err != nil {
		return name
	}
	return name[:i]
}

// NewVariation parses seed markers into a validated variation.
func NewVariation(name string, positions, fingerings []string) (ChordVariation, error) {
	v := ChordVariation{
		Name:       name,
		Positions:  make([]Fret, len(positions)),
		Fingerings: make([]Finger, len(fingerings)),
	}
	for i, p := range positions {
		f, err := ParseFret(p)
		if err != nil {
			return ChordVariation{}, &ValidationError{Variation: name, Reason: fmt.Sprintf("string %d: %v", i, err)}
		}
		v.Positions[i] = f
	}
	for i, s := range fingerings {
		f, err := ParseFinger(s)
		if err != nil {
			return ChordVariation{}, &ValidationError{Variation: name, Reason: fmt.Sprintf("string %d: %v", i, err)}
		}
		v.Fingerings[i] = f
	}
	if err := v.Validate(); err != nil {
		return ChordVariation{}, err
	}
	return v, nil
}

// Root returns the chord root this variation belongs to.
func (v ChordVariation) Root() string {
	return RootOf(v.Name)
}

// Strings returns the number of strings of the instrument the variation is written for.
func (v ChordVariation) Strings() int {
	return len(v.Positions)
}

// Validate checks the data model invariants.
func (v ChordVariation) Validate() error {
	if len(v.Positions) != len(v.Fingerings) {
		return &ValidationError{
			Variation: v.Name,
			Reason:    fmt.Sprintf("%d positions but %d fingerings", len(v.Positions), len(v.Fingerings)),
		}
	}
	for _, p := range v.Positions {
		if !p.IsMuted() {
			return nil
		}
	}
	return &ValidationError{Variation: v.Name, Reason: "all strings are muted"}
}

// FretSpan returns the lowest and highest fret among the played strings.
func (v ChordVariation) FretSpan() (lo, hi Fret, err error) {
	played := 0
	for _, p := range v.Positions {
		if p.IsMuted() {
			continue
		}
		if played == 0 || p < lo {
			lo = p
		}
		if played == 0 || p > hi {
			hi = p
		}
		played++
	}
	if played == 0 {
		return 0, 0, &ValidationError{Variation: v.Name, Reason: "all strings are muted"}
	}
	return lo, hi, nil
}

// HandMidpoint is the average of the lowest and highest played fret,
// used as a proxy for where the hand sits on the neck.
func (v ChordVariation) HandMidpoint() (float64, error) {
	lo, hi, err := v.FretSpan()
	if err != nil {
		return 0, err
	}
	return float64(lo+hi) / 2, nil
}

// UsedFingers returns the set of playable fingers engaged by the variation.
func (v ChordVariation) UsedFingers() map[Finger]struct{} {
	used := make(map[Finger]struct{}, len(PlayableFingers))
	for _, f := range v.Fingerings {
		if f.Playable() {
			used[f] = struct{}{}
		}
	}
	return used
}

// StringOf returns the lowest string index fretted by the finger, or -1.
func (v ChordVariation) StringOf(f Finger) int {
	for i, g := range v.Fingerings {
		if g == f {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy so callers can hand variations out without sharing slices.
func (v ChordVariation) Clone() ChordVariation {
	c := v
	c.Positions = append([]Fret(nil), v.Positions...)
	c.Fingerings = append([]Finger(nil), v.Fingerings...)
	return c
}

// Ordinal returns the variant number encoded in a variation name ("A v2" -> 2), or 0.
func Ordinal(name string) int {
	i := strings.LastIndex(name, VariantPrefix)
	if i < 0 {
		return 0
	}
	n, err := strconv.Atoi(name[i+len(VariantPrefix):])
	if err != nil {
		return 0
	}
	return n
}

// SortVariations orders variations by variant ordinal, then by name.
// This is the stable order every VariationSource returns.
func SortVariations(vs []ChordVariation) {
	sort.SliceStable(vs, func(i, j int) bool {
		oi, oj := Ordinal(vs[i].Name), Ordinal(vs[j].Name)
		if oi != oj {
			return oi < oj
		}
		return vs[i].Name < vs[j].Name
	})
}
