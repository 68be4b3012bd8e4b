package compiler

import (
	"context"
	"errors"
	"fmt"

	"github.com/rpggio/signage/internal/domain/project"
	"github.com/rpggio/signage/internal/repository"
)

// ErrProjectNotFound is returned for an unknown project ID.
var ErrProjectNotFound = project.ErrProjectNotFound

// FetchError reports a failed read against the document store.
type FetchError struct {
	Op        string
	Retryable bool
	Err       error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether err is a FetchError worth retrying.
func IsRetryable(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Retryable
}

func fetchError(op string, err error) *FetchError {
	retryable := true
	switch {
	case errors.Is(err, repository.ErrMalformed):
		retryable = false
	case errors.Is(err, context.Canceled):
		retryable = false
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, repository.ErrUnavailable):
		retryable = true
	}
	return &FetchError{Op: op, Retryable: retryable, Err: err}
}
