package provider

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

// Service handles provider operations.
type Service struct {
	repo       Repository
	projects   project.Reader
	activities ActivityLogger
	logger     *slog.Logger
}

// NewService creates a new provider service.
func NewService(repo Repository, projects project.Reader, activities ActivityLogger, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{repo: repo, projects: projects, activities: activities, logger: logger}
}

// Save creates or replaces a provider. A blank slug is derived from the
// English name. Moving a provider to another project, or creating one,
// requires the target project to be active.
func (s *Service) Save(ctx context.Context, p *Provider) (*Provider, error) {
	if p == nil {
		return nil, ErrInvalidInput
	}
	saved := *p
	if strings.TrimSpace(saved.Slug) == "" {
		saved.Slug = project.Slugify(saved.NameEN)
	}
	if err := Validate(&saved); err != nil {
		return nil, err
	}

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
		return nil, fmt.Errorf("loading provider: %w", err)
	}

	if existing == nil || existing.ProjectID != saved.ProjectID {
		if err := project.RequireActive(ctx, s.projects, saved.ProjectID); err != nil {
			return nil, err
		}
	}
	saved.UpdatedAt = now

	if err := s.repo.Save(ctx, &saved); err != nil {
		return nil, fmt.Errorf("saving provider: %w", err)
	}

	if s.activities != nil {
		if err := s.activities.Log(ctx, &activity.Entry{
			ProjectID:  saved.ProjectID,
			DocumentID: saved.ID,
			Type:       activity.TypeProviderSaved,
			Summary:    fmt.Sprintf("saved provider %s", saved.NameEN),
		}); err != nil {
			s.logger.Warn("failed to record activity", "provider_id", saved.ID, "error", err)
		}
	}
	return &saved, nil
}

// Get fetches a provider by ID.
func (s *Service) Get(ctx context.Context, id string) (*Provider, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProviderNotFound
		}
		return nil, fmt.Errorf("getting provider: %w", err)
	}
	return p, nil
}

// ListByProject returns the providers in a project, ordered by English name.
func (s *Service) ListByProject(ctx context.Context, projectID string) ([]Provider, error) {
	list, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing providers: %w", err)
	}
	return list, nil
}
