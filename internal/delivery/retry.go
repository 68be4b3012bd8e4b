package delivery

import (
	"context"
	"time"

	"github.com/rpggio/signage/internal/compiler"
	"github.com/rpggio/signage/internal/precedence"
)

// Defaults for compile retries.
const (
	DefaultAttempts  = 3
	DefaultBaseDelay = 200 * time.Millisecond
)

// compileRetry compiles with bounded exponential backoff on retryable
// fetch errors. Other errors are returned immediately. The context bounds
// the total retry time.
func (s *Service) compileRetry(ctx context.Context, projectID string, now time.Time) ([]precedence.ResolvedItem, error) {
	var lastError error
	for attempt := 0; attempt < s.attempts; attempt++ {
		if attempt > 0 {
			backoff := s.baseDelay * time.Duration(1<<(attempt-1))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-s.after(backoff):
			}
		}

		items, err := s.compiler.Compile(ctx, projectID, now)
		if err == nil {
			return items, nil
		}
		lastError = err

		if !compiler.IsRetryable(err) {
			return nil, err
		}

		s.logger.Warn("transient compile failure, retrying",
			"project_id", projectID,
			"attempt", attempt+1,
			"error", err,
		)
	}
	return nil, lastError
}
