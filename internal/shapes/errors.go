package shapes

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration is wrapped by every error caused by options that
	// can never produce a valid run. It is always fatal.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrGeometryInfeasible means a shape cannot be fitted at one particular
	// anchor. The engine retries with a new anchor.
	ErrGeometryInfeasible = errors.New("cannot fit shape to image")

	// ErrPlacementExhausted is wrapped by the warnings recorded when a slot
	// uses up its trial budget.
	ErrPlacementExhausted = errors.New("could not fit any shapes to image, consider reducing the minimum dimension")
)

// PlacementExhaustedError records a shape slot that could not be placed.
type PlacementExhaustedError struct {
	Slot     int    // Index of the shape slot (0-based)
	Category string // Category that was attempted
	Trials   int    // Number of trials spent
}

func (e *PlacementExhaustedError) Error() string {
	return fmt.Sprintf("slot %d (%s): %d trials: %v", e.Slot, e.Category, e.Trials, ErrPlacementExhausted)
}

func (e *PlacementExhaustedError) Unwrap() error {
	return ErrPlacementExhausted
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}

func infeasiblef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrGeometryInfeasible, fmt.Sprintf(format, args...))
}
