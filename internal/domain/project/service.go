package project

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/signage/internal/repository"
)

// Service handles project operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new project service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{repo: repo, logger: logger}
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	ID             string
	Title          string
	Code           string
	HandoffBaseURL string
	Inactive       bool
}

// Create creates a new project. The code is derived from the title when omitted.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Project, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrInvalidInput
	}

	code := Slugify(req.Code)
	if code == "" {
		code = Slugify(req.Title)
	}
	if code == "" {
		return nil, fmt.Errorf("%w: code is empty after slugify", ErrInvalidInput)
	}

	if _, err := s.repo.GetByCode(ctx, code); err == nil {
		return nil, ErrDuplicateCode
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("checking project code: %w", err)
	}

	id := req.ID
	if strings.TrimSpace(id) == "" {
		id = uuid.NewString()
	}

	now := time.Now().UTC()
	proj := &Project{
		ID:             id,
		Title:          req.Title,
		Code:           code,
		HandoffBaseURL: req.HandoffBaseURL,
		IsActive:       !req.Inactive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, proj); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrDuplicateCode
		}
		return nil, fmt.Errorf("creating project: %w", err)
	}

	s.logger.Info("project created", "project_id", proj.ID, "code", proj.Code)
	return proj, nil
}

// SetActive toggles whether a project accepts new references. Kiosks of an
// inactive project receive an empty playlist.
func (s *Service) SetActive(ctx context.Context, id string, active bool) (*Project, error) {
	proj, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	proj.IsActive = active
	proj.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, proj); err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}
	s.logger.Info("project activation changed", "project_id", proj.ID, "active", active)
	return proj, nil
}

// Get fetches a project by ID.
func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	proj, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// GetByCode fetches a project by its routing code.
func (s *Service) GetByCode(ctx context.Context, code string) (*Project, error) {
	proj, err := s.repo.GetByCode(ctx, strings.ToLower(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project by code: %w", err)
	}
	return proj, nil
}

// List returns project summaries.
func (s *Service) List(ctx context.Context) ([]ProjectSummary, error) {
	return s.repo.List(ctx)
}

// RequireActive returns ErrProjectInactive unless every listed project
// exists and is active.
func RequireActive(ctx context.Context, projects Reader, ids ...string) error {
	for _, id := range ids {
		proj, err := projects.Get(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%w: %s", ErrProjectNotFound, id)
			}
			return fmt.Errorf("getting project %s: %w", id, err)
		}
		if !proj.IsActive {
			return fmt.Errorf("%w: %s", ErrProjectInactive, id)
		}
	}
	return nil
}
