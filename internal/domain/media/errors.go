package media

import "errors"

var (
	// ErrMediaNotFound indicates the media doesn't exist.
	ErrMediaNotFound = errors.New("media not found")
	// ErrInvalidInput indicates invalid media input.
	ErrInvalidInput = errors.New("invalid media input")
	// ErrInvalidAsset indicates the asset URL or MIME type doesn't match the kind.
	ErrInvalidAsset = errors.New("invalid media asset")
)
