package category

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

// Service handles category config operations. There is at most one config
// per project; saving replaces it.
type Service struct {
	repo       Repository
	projects   project.Reader
	activities ActivityLogger
	logger     *slog.Logger
}

// NewService creates a new category config service.
func NewService(repo Repository, projects project.Reader, activities ActivityLogger, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{repo: repo, projects: projects, activities: activities, logger: logger}
}

// Validate checks that category and subcategory IDs are present and unique.
func Validate(cfg *Config) error {
	if cfg == nil || strings.TrimSpace(cfg.ProjectID) == "" {
		return fmt.Errorf("%w: project is required", ErrInvalidInput)
	}
	seen := make(map[string]bool, len(cfg.Categories))
	for _, e := range cfg.Categories {
		if strings.TrimSpace(e.ID) == "" {
			return fmt.Errorf("%w: category id is required", ErrInvalidInput)
		}
		if seen[e.ID] {
			return fmt.Errorf("%w: duplicate category %q", ErrInvalidInput, e.ID)
		}
		seen[e.ID] = true

		subs := make(map[string]bool, len(e.Subcategories))
		for _, sub := range e.Subcategories {
			if strings.TrimSpace(sub.ID) == "" {
				return fmt.Errorf("%w: subcategory id is required in %q", ErrInvalidInput, e.ID)
			}
			if subs[sub.ID] {
				return fmt.Errorf("%w: duplicate subcategory %q in %q", ErrInvalidInput, sub.ID, e.ID)
			}
			subs[sub.ID] = true
		}
		if e.FallbackSubcategoryID != "" && !subs[e.FallbackSubcategoryID] {
			return fmt.Errorf("%w: fallback subcategory %q not defined in %q", ErrInvalidInput, e.FallbackSubcategoryID, e.ID)
		}
	}
	return nil
}

// Save replaces the project's category config.
func (s *Service) Save(ctx context.Context, cfg *Config) (*Config, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	saved := *cfg
	now := time.Now().UTC()

	existing, err := s.repo.GetByProject(ctx, saved.ProjectID)
	switch {
	case err == nil:
		saved.ID = existing.ID
		saved.CreatedAt = existing.CreatedAt
	case errors.Is(err, repository.ErrNotFound):
		if err := project.RequireActive(ctx, s.projects, saved.ProjectID); err != nil {
			return nil, err
		}
		if saved.ID == "" {
			saved.ID = uuid.NewString()
		}
		saved.CreatedAt = now
	default:
		return nil, fmt.Errorf("loading category config: %w", err)
	}
	saved.UpdatedAt = now

	if err := s.repo.Save(ctx, &saved); err != nil {
		return nil, fmt.Errorf("saving category config: %w", err)
	}

	if s.activities != nil {
		if err := s.activities.Log(ctx, &activity.Entry{
			ProjectID:  saved.ProjectID,
			DocumentID: saved.ID,
			Type:       activity.TypeCategoryConfigSaved,
			Summary:    fmt.Sprintf("saved %d categories", len(saved.Categories)),
		}); err != nil {
			s.logger.Warn("failed to record activity", "config_id", saved.ID, "error", err)
		}
	}
	return &saved, nil
}

// GetByProject returns the project's category config.
func (s *Service) GetByProject(ctx context.Context, projectID string) (*Config, error) {
	cfg, err := s.repo.GetByProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("getting category config: %w", err)
	}
	return cfg, nil
}
