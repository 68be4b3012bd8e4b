package repository

import "errors"

var (
	// ErrNotFound is returned when a requested document doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a uniqueness constraint fails
	ErrConflict = errors.New("conflict: document already exists")

	// ErrForeignKeyViolation is returned when a foreign key constraint fails
	ErrForeignKeyViolation = errors.New("foreign key violation")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnavailable is returned when the store cannot be reached or timed out.
	// Callers treat it as transient.
	ErrUnavailable = errors.New("store unavailable")

	// ErrMalformed is returned when a stored document cannot be decoded.
	// Retrying will not help.
	ErrMalformed = errors.New("malformed document")
)
