package sqlite

import (
	"fmt"
	"strings"

	"github.com/rpggio/signage/internal/repository"
)

func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "SQLITE_BUSY")
}

// mapWriteError translates driver errors into repository sentinels.
func mapWriteError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, repository.ErrConflict)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%s: %w", op, repository.ErrForeignKeyViolation)
	case isBusy(err):
		return fmt.Errorf("%s: %w: %v", op, repository.ErrUnavailable, err)
	default:
		return fmt.Errorf("failed to %s: %w", op, err)
	}
}

// mapReadError marks lock contention as unavailability so callers can retry.
func mapReadError(op string, err error) error {
	if isBusy(err) {
		return fmt.Errorf("%s: %w: %v", op, repository.ErrUnavailable, err)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
