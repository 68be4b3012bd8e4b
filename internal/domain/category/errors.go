package category

import "errors"

var (
	// ErrConfigNotFound indicates the project has no category config.
	ErrConfigNotFound = errors.New("category config not found")
	// ErrInvalidInput indicates an invalid category config.
	ErrInvalidInput = errors.New("invalid category config input")
)
