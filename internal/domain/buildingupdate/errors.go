package buildingupdate

import "errors"

var (
	// ErrUpdateNotFound indicates the building update doesn't exist.
	ErrUpdateNotFound = errors.New("building update not found")
	// ErrInvalidInput indicates invalid building update input.
	ErrInvalidInput = errors.New("invalid building update input")
)
