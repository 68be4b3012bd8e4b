package buildingupdate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/signage/internal/domain/activity"
	"github.com/rpggio/signage/internal/domain/project"
	"github.com/rpggio/signage/internal/repository"
)

// ActivityLogger records editor activity.
type ActivityLogger interface {
	Log(ctx context.Context, entry *activity.Entry) error
}

// Service handles building update operations.
type Service struct {
	repo       Repository
	projects   project.Reader
	activities ActivityLogger
	logger     *slog.Logger
	now        func() time.Time
}

// NewService creates a new building update service.
func NewService(repo Repository, projects project.Reader, activities ActivityLogger, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{repo: repo, projects: projects, activities: activities, logger: logger, now: time.Now}
}

// Save creates or replaces an update. A blank slug is derived from the
// title and a zero publish time becomes the save time. New updates, and
// updates moved to another project, need an active target project.
func (s *Service) Save(ctx context.Context, u *Update) (*Update, error) {
	if u == nil {
		return nil, ErrInvalidInput
	}
	saved := *u
	now := s.now().UTC()
	if strings.TrimSpace(saved.Slug) == "" {
		saved.Slug = project.Slugify(saved.Title)
	}
	if saved.PublishedAt.IsZero() {
		saved.PublishedAt = now
	}
	if err := Validate(&saved); err != nil {
		return nil, err
	}
	if strings.TrimSpace(saved.ID) == "" {
		saved.ID = uuid.NewString()
	}

	existing, err := s.repo.Get(ctx, saved.ID)
	switch {
	case err == nil:
		saved.CreatedAt = existing.CreatedAt
	case errors.Is(err, repository.ErrNotFound):
		saved.CreatedAt = now
		existing = nil
	default:
		return nil, fmt.Errorf("loading building update: %w", err)
	}

	if existing == nil || existing.ProjectID != saved.ProjectID {
		if err := project.RequireActive(ctx, s.projects, saved.ProjectID); err != nil {
			return nil, err
		}
	}
	saved.UpdatedAt = now

	if err := s.repo.Save(ctx, &saved); err != nil {
		return nil, fmt.Errorf("saving building update: %w", err)
	}
	s.log(ctx, &saved, activity.TypeUpdateSaved, fmt.Sprintf("saved building update %s", saved.Title))
	return &saved, nil
}

// Delete removes an update.
func (s *Service) Delete(ctx context.Context, id string) error {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUpdateNotFound
		}
		return fmt.Errorf("loading building update: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting building update: %w", err)
	}
	s.log(ctx, existing, activity.TypeUpdateDeleted, fmt.Sprintf("removed building update %s", existing.Title))
	return nil
}

// ListByProject returns every update of a project, newest first,
// including ones scheduled for later.
func (s *Service) ListByProject(ctx context.Context, projectID string) ([]Update, error) {
	list, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing building updates: %w", err)
	}
	SortNewestFirst(list)
	return list, nil
}

func (s *Service) log(ctx context.Context, u *Update, typ activity.Type, summary string) {
	if s.activities == nil {
		return
	}
	if err := s.activities.Log(ctx, &activity.Entry{
		ProjectID:  u.ProjectID,
		DocumentID: u.ID,
		Type:       typ,
		Summary:    summary,
	}); err != nil {
		s.logger.Warn("failed to record activity", "update_id", u.ID, "type", typ, "error", err)
	}
}
