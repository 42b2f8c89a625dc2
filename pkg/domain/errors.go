package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidVariation is returned when a chord variation breaks the data model invariants.
var ErrInvalidVariation = errors.New("invalid chord variation")

// ErrChordNotFound is returned when a chord root has no variations in the data source.
var ErrChordNotFound = errors.New("chord not found")

// ValidationError describes why a variation was rejected.
type ValidationError struct {
	Variation string
	Reason    string
}

func (e *ValidationError) Error() string {
	if e.Variation == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidVariation, e.Reason)
	}
	return fmt.Sprintf("%s %q: %s", ErrInvalidVariation, e.Variation, e.Reason)
}

// Unwrap allows errors.Is(err, ErrInvalidVariation).
func (e *ValidationError) Unwrap() error {
	return ErrInvalidVariation
}

// NotFoundError reports a chord root unknown to the data source.
type NotFoundError struct {
	Root string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %q", ErrChordNotFound, e.Root)
}

// Unwrap allows errors.Is(err, ErrChordNotFound).
func (e *NotFoundError) Unwrap() error {
	return ErrChordNotFound
}
