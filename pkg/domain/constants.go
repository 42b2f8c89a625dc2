package domain

// Text markers used by seed files and the JSON representation of a variation.
const (
	// MutedMarker marks a string that is not played.
	MutedMarker = "x"

	// NoFingerMarker marks an open or muted string that no finger frets.
	NoFingerMarker = "-"

	// VariantPrefix separates the chord root from the variant ordinal in a variation name ("A v1").
	VariantPrefix = " v"
)
