package media

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
	"github.com/rpggio/signage/internal/validator"
)

// ReferenceValidator checks a media item's provider reference.
type ReferenceValidator interface {
	Validate(ctx context.Context, c validator.Candidate) validator.Outcome
}

// ActivityLogger records editor activity.
type ActivityLogger interface {
	Log(ctx context.Context, entry *activity.Entry) error
}

// SaveResult carries the stored media and the reference check outcome.
type SaveResult struct {
	Media   *Media            `json:"media,omitempty"`
	Outcome validator.Outcome `json:"outcome"`
}

// Service handles media operations.
type Service struct {
	repo       Repository
	projects   project.Reader
	refs       ReferenceValidator
	activities ActivityLogger
	logger     *slog.Logger
}

// NewService creates a new media service.
func NewService(repo Repository, projects project.Reader, refs ReferenceValidator, activities ActivityLogger, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{repo: repo, projects: projects, refs: refs, activities: activities, logger: logger}
}

// Check validates fields and references without writing.
func (s *Service) Check(ctx context.Context, m *Media) (validator.Outcome, error) {
	if err := Validate(m); err != nil {
		return validator.Outcome{}, err
	}
	return s.refs.Validate(ctx, candidate(m)), nil
}

// Save creates or replaces a media item. A rejected reference check
// returns the IntegrityError and nothing is written. An unverified check
// writes and records a warning.
func (s *Service) Save(ctx context.Context, m *Media) (*SaveResult, error) {
	if err := Validate(m); err != nil {
		return nil, err
	}

	saved := *m
	saved.ProjectIDs = append([]string(nil), m.ProjectIDs...)
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
		return nil, fmt.Errorf("loading media: %w", err)
	}

	if added := addedProjects(existing, saved.ProjectIDs); len(added) > 0 {
		if err := project.RequireActive(ctx, s.projects, added...); err != nil {
			return nil, err
		}
	}

	outcome := s.refs.Validate(ctx, candidate(&saved))
	if outcome.Status == validator.StatusRejected {
		s.log(ctx, &saved, activity.TypeMediaRejected, outcome.Err.Error())
		return &SaveResult{Outcome: outcome}, outcome.Err
	}

	saved.UpdatedAt = now
	if err := s.repo.Save(ctx, &saved); err != nil {
		return nil, fmt.Errorf("saving media: %w", err)
	}

	if outcome.Status == validator.StatusUnverified {
		s.log(ctx, &saved, activity.TypeMediaUnverified, outcome.Warning)
	} else {
		s.log(ctx, &saved, activity.TypeMediaSaved, fmt.Sprintf("saved media %s", saved.Title))
	}
	return &SaveResult{Media: &saved, Outcome: outcome}, nil
}

// Get fetches a media item by ID.
func (s *Service) Get(ctx context.Context, id string) (*Media, error) {
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMediaNotFound
		}
		return nil, fmt.Errorf("getting media: %w", err)
	}
	return m, nil
}

// ListAssignable returns enabled media that can be placed in a slot of the project.
func (s *Service) ListAssignable(ctx context.Context, projectID string) ([]Media, error) {
	all, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing media: %w", err)
	}
	out := make([]Media, 0, len(all))
	for _, m := range all {
		if m.Enabled {
			out = append(out, m)
		}
	}
	return out, nil
}

// Search runs a full-text search over media titles and notes.
func (s *Service) Search(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidInput)
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	return s.repo.Search(ctx, query, opts)
}

func (s *Service) log(ctx context.Context, m *Media, typ activity.Type, summary string) {
	if s.activities == nil {
		return
	}
	for _, projectID := range m.ProjectIDs {
		if err := s.activities.Log(ctx, &activity.Entry{
			ProjectID:  projectID,
			DocumentID: m.ID,
			Type:       typ,
			Summary:    summary,
		}); err != nil {
			s.logger.Warn("failed to record activity", "media_id", m.ID, "type", typ, "error", err)
		}
	}
}

func candidate(m *Media) validator.Candidate {
	return validator.Candidate{MediaID: m.ID, ProviderID: m.Provider(), ProjectIDs: m.ProjectIDs}
}

func addedProjects(existing *Media, ids []string) []string {
	if existing == nil {
		return ids
	}
	var added []string
	for _, id := range ids {
		if !existing.HasProject(id) {
			added = append(added, id)
		}
	}
	return added
}
