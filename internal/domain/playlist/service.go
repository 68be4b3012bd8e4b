package playlist

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
	"github.com/rpggio/signage/internal/domain/media"
	"github.com/rpggio/signage/internal/domain/project"
	"github.com/rpggio/signage/internal/repository"
)

// ActivityLogger records editor activity.
type ActivityLogger interface {
	Log(ctx context.Context, entry *activity.Entry) error
}

// Service handles slot operations.
type Service struct {
	repo       Repository
	media      media.Reader
	projects   project.Reader
	activities ActivityLogger
	logger     *slog.Logger
}

// NewService creates a new playlist service.
func NewService(repo Repository, mediaReader media.Reader, projects project.Reader, activities ActivityLogger, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{repo: repo, media: mediaReader, projects: projects, activities: activities, logger: logger}
}

// SaveItem creates or replaces a slot. The referenced media must include
// the slot's project and be enabled at assignment time. The duration
// override only applies to image media.
func (s *Service) SaveItem(ctx context.Context, item *Item) (*Item, error) {
	if err := Validate(item); err != nil {
		return nil, err
	}

	m, err := s.media.Get(ctx, item.MediaID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrMediaNotFound, item.MediaID)
		}
		return nil, fmt.Errorf("loading media: %w", err)
	}
	if !m.HasProject(item.ProjectID) {
		return nil, fmt.Errorf("%w: %s", ErrMediaNotInProject, item.MediaID)
	}
	if !m.Enabled {
		return nil, fmt.Errorf("%w: %s", ErrMediaDisabled, item.MediaID)
	}
	if item.ImageDurationOverride != nil && m.Kind != media.KindImage {
		return nil, fmt.Errorf("%w: image_duration_override requires image media", ErrInvalidInput)
	}

	saved := *item
	now := time.Now().UTC()
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
		return nil, fmt.Errorf("loading playlist item: %w", err)
	}

	if existing == nil || existing.ProjectID != saved.ProjectID {
		if err := project.RequireActive(ctx, s.projects, saved.ProjectID); err != nil {
			return nil, err
		}
	}
	saved.UpdatedAt = now

	if err := s.repo.Save(ctx, &saved); err != nil {
		return nil, fmt.Errorf("saving playlist item: %w", err)
	}

	s.log(ctx, &saved, activity.TypeSlotSaved, fmt.Sprintf("slot %d plays %s", saved.Order, m.Title))
	return &saved, nil
}

// Delete removes a slot.
func (s *Service) Delete(ctx context.Context, id string) error {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrItemNotFound
		}
		return fmt.Errorf("loading playlist item: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting playlist item: %w", err)
	}
	s.log(ctx, existing, activity.TypeSlotDeleted, fmt.Sprintf("removed slot %d", existing.Order))
	return nil
}

// ListByProject returns a project's slots.
func (s *Service) ListByProject(ctx context.Context, projectID string) ([]Item, error) {
	return s.repo.ListByProject(ctx, projectID)
}

func (s *Service) log(ctx context.Context, item *Item, typ activity.Type, summary string) {
	if s.activities == nil {
		return
	}
	if err := s.activities.Log(ctx, &activity.Entry{
		ProjectID:  item.ProjectID,
		DocumentID: item.ID,
		Type:       typ,
		Summary:    summary,
	}); err != nil {
		s.logger.Warn("failed to record activity", "item_id", item.ID, "type", typ, "error", err)
	}
}
