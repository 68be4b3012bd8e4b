package project

import "errors"

var (
	// ErrProjectNotFound indicates the project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrInvalidInput indicates invalid project input.
	ErrInvalidInput = errors.New("invalid project input")
	// ErrDuplicateCode indicates another project already uses the code.
	ErrDuplicateCode = errors.New("project code already in use")
	// ErrProjectInactive indicates an inactive project was chosen as a reference target.
	ErrProjectInactive = errors.New("project is inactive")
)
