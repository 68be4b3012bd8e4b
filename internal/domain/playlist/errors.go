package playlist

import "errors"

var (
	// ErrItemNotFound indicates the slot doesn't exist.
	ErrItemNotFound = errors.New("playlist item not found")
	// ErrInvalidInput indicates invalid slot input.
	ErrInvalidInput = errors.New("invalid playlist item input")
	// ErrMediaNotFound indicates the referenced media doesn't exist.
	ErrMediaNotFound = errors.New("referenced media not found")
	// ErrMediaNotInProject indicates the media isn't shared into the slot's project.
	ErrMediaNotInProject = errors.New("media does not include the slot's project")
	// ErrMediaDisabled indicates the referenced media is disabled.
	ErrMediaDisabled = errors.New("media is disabled")
)
