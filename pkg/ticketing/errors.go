package ticketing

import "errors"

var (
	// ErrNotFound is returned when a commission does not exist.
	ErrNotFound = errors.New("commission not found")

	// ErrNegativePrice is returned when a price below zero is given. The
	// stored commission is left untouched.
	ErrNegativePrice = errors.New("price must be non-negative")

	// ErrInvalidStatus is returned when a status outside the workflow is
	// given.
	ErrInvalidStatus = errors.New("invalid commission status")

	// ErrInvalidLoader is returned when a mod loader outside the supported
	// families is given.
	ErrInvalidLoader = errors.New("invalid mod loader")

	// ErrSelectionIncomplete is returned when a wizard submission arrives
	// without all three selections present.
	ErrSelectionIncomplete = errors.New("selection incomplete")
)
