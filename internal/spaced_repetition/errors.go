package spaced_repetition

import "errors"

// Sentinel errors. Use errors.Is to check.
var (
	ErrInvalidRating = errors.New("spaced_repetition: invalid rating")
	ErrInvalidDate   = errors.New("spaced_repetition: invalid ISO date")
)
