package compute

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingValue is returned when a structural input that drives column
	// arithmetic was never provided.
	ErrMissingValue   = errors.New("unexpected null value")
	ErrInvalidInput   = errors.New("invalid input")
	ErrLayoutMismatch = errors.New("layout mismatch")
	ErrTooManySeries  = errors.New("too many ranges to plot on chart")
)

// IntPtr returns a pointer to the given int value.
func IntPtr(i int) *int {
	return &i
}

// Unwrap returns the value behind v, or ErrMissingValue naming what was missing.
func Unwrap[T any](v *T, what string) (T, error) {
	if v == nil {
		var zero T
		return zero, fmt.Errorf("%w: %s", ErrMissingValue, what)
	}
	return *v, nil
}
