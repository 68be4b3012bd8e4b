package provider

import "errors"

var (
	// ErrProviderNotFound indicates the provider doesn't exist.
	ErrProviderNotFound = errors.New("provider not found")
	// ErrInvalidInput indicates invalid provider input.
	ErrInvalidInput = errors.New("invalid provider input")
)
