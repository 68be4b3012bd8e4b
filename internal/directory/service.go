// Package directory serves the kiosk's provider directory and building
// updates for a routing code.
package directory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/rpggio/signage/internal/domain/buildingupdate"
	"github.com/rpggio/signage/internal/domain/project"
	"github.com/rpggio/signage/internal/domain/provider"
	"github.com/rpggio/signage/internal/repository"
)

var (
	// ErrProjectNotFound is returned for an unknown routing code.
	ErrProjectNotFound = project.ErrProjectNotFound
	// ErrInvalidFilter is returned for an unknown category or sub-category.
	ErrInvalidFilter = errors.New("invalid directory filter")
)

// Providers is the kiosk provider directory.
type Providers struct {
	ProjectCode string              `json:"project_code"`
	Providers   []provider.Provider `json:"providers"`
}

// Updates is the kiosk building updates feed.
type Updates struct {
	ProjectCode string                  `json:"project_code"`
	GeneratedAt time.Time               `json:"generated_at"`
	Updates     []buildingupdate.Update `json:"updates"`
}

// Service reads directory content for kiosks. Inactive projects list
// nothing.
type Service struct {
	projects  project.Reader
	providers provider.Reader
	updates   buildingupdate.Reader
	logger    *slog.Logger
}

// NewService creates a directory service.
func NewService(projects project.Reader, providers provider.Reader, updates buildingupdate.Reader, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{projects: projects, providers: providers, updates: updates, logger: logger}
}

// ProvidersByCode lists a project's providers by English name. A non-empty
// category keeps only providers listed under it.
func (s *Service) ProvidersByCode(ctx context.Context, code, category string) (*Providers, error) {
	if category != "" && !provider.IsValidCategory(category) {
		return nil, fmt.Errorf("%w: category %q", ErrInvalidFilter, category)
	}
	proj, err := s.resolve(ctx, code)
	if err != nil {
		return nil, err
	}
	out := &Providers{ProjectCode: proj.Code, Providers: []provider.Provider{}}
	if !proj.IsActive {
		return out, nil
	}

	list, err := s.providers.ListByProject(ctx, proj.ID)
	if err != nil {
		return nil, fmt.Errorf("listing providers: %w", err)
	}
	for _, p := range list {
		if category == "" || p.Category == category {
			out.Providers = append(out.Providers, p)
		}
	}
	s.logger.Debug("providers served", "code", code, "count", len(out.Providers))
	return out, nil
}

// UpdatesByCode lists the updates published by now, newest first. A
// non-empty subCategory keeps only updates filed under it.
func (s *Service) UpdatesByCode(ctx context.Context, code string, now time.Time, subCategory string) (*Updates, error) {
	if subCategory != "" && !buildingupdate.IsValidSubCategory(subCategory) {
		return nil, fmt.Errorf("%w: sub-category %q", ErrInvalidFilter, subCategory)
	}
	proj, err := s.resolve(ctx, code)
	if err != nil {
		return nil, err
	}
	out := &Updates{ProjectCode: proj.Code, GeneratedAt: now.UTC(), Updates: []buildingupdate.Update{}}
	if !proj.IsActive {
		return out, nil
	}

	list, err := s.updates.ListByProject(ctx, proj.ID)
	if err != nil {
		return nil, fmt.Errorf("listing building updates: %w", err)
	}
	out.Updates = buildingupdate.Published(list, now, subCategory)
	s.logger.Debug("building updates served", "code", code, "count", len(out.Updates))
	return out, nil
}

func (s *Service) resolve(ctx context.Context, code string) (*project.Project, error) {
	proj, err := s.projects.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, ErrProjectNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, code)
		}
		return nil, fmt.Errorf("resolving project %s: %w", code, err)
	}
	return proj, nil
}
