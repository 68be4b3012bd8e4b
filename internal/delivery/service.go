// Package delivery serves compiled playlists to kiosks. It retries
// transient compile failures and falls back to the last good playlist so
// a kiosk never sees an engine error.
package delivery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rpggio/signage/internal/compiler"
	"github.com/rpggio/signage/internal/domain/project"
	"github.com/rpggio/signage/internal/lastgood"
	"github.com/rpggio/signage/internal/precedence"
	"github.com/rpggio/signage/internal/repository"
)

// ErrProjectNotFound is returned for an unknown project code or ID.
var ErrProjectNotFound = project.ErrProjectNotFound

// Compiler resolves a project's playlist at an instant.
type Compiler interface {
	Compile(ctx context.Context, projectID string, now time.Time) ([]precedence.ResolvedItem, error)
}

// Cache stores last good compilations.
type Cache interface {
	Put(ctx context.Context, snap *lastgood.Snapshot) error
	Get(ctx context.Context, projectID string) (*lastgood.Snapshot, error)
	ProjectIDForCode(ctx context.Context, code string) (string, error)
}

// Playlist is the kiosk payload.
type Playlist struct {
	ProjectID      string                    `json:"project_id"`
	ProjectCode    string                    `json:"project_code,omitempty"`
	HandoffBaseURL string                    `json:"handoff_base_url,omitempty"`
	GeneratedAt    time.Time                 `json:"generated_at"`
	Items          []precedence.ResolvedItem `json:"items"`
	Degraded       bool                      `json:"degraded"`
	Preview        bool                      `json:"preview,omitempty"`
	ETag           string                    `json:"-"`
}

// Options tune retries.
type Options struct {
	Attempts  int
	BaseDelay time.Duration
}

// Service builds kiosk playlists.
type Service struct {
	projects  project.Reader
	compiler  Compiler
	cache     Cache
	attempts  int
	baseDelay time.Duration
	after     func(time.Duration) <-chan time.Time
	logger    *slog.Logger
}

// NewService creates a delivery service. cache may be nil, in which case
// failures degrade straight to an empty playlist.
func NewService(projects project.Reader, c Compiler, cache Cache, opts Options, logger *slog.Logger) *Service {
	if opts.Attempts <= 0 {
		opts.Attempts = DefaultAttempts
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = DefaultBaseDelay
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		projects:  projects,
		compiler:  c,
		cache:     cache,
		attempts:  opts.Attempts,
		baseDelay: opts.BaseDelay,
		after:     time.After,
		logger:    logger,
	}
}

// target identifies the project a request resolves to.
type target struct {
	projectID string
	code      string
	handoff   string
}

// PlaylistByCode resolves a routing code and returns its live playlist.
// A successful compilation replaces the last good playlist. An unknown
// code is the only error a caller sees.
func (s *Service) PlaylistByCode(ctx context.Context, code string, now time.Time) (*Playlist, error) {
	return s.byCode(ctx, code, now, false)
}

// PreviewByCode returns the playlist a kiosk would show at the given
// instant. It never touches the last good playlist.
func (s *Service) PreviewByCode(ctx context.Context, code string, at time.Time) (*Playlist, error) {
	return s.byCode(ctx, code, at, true)
}

func (s *Service) byCode(ctx context.Context, code string, now time.Time, preview bool) (*Playlist, error) {
	proj, err := s.projects.GetByCode(ctx, code)
	if err == nil {
		t := target{projectID: proj.ID, code: proj.Code, handoff: proj.HandoffURL()}
		return s.build(ctx, t, now, preview), nil
	}
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, ErrProjectNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, code)
	}

	s.logger.Warn("project lookup failed", "code", code, "error", err)
	if s.cache != nil {
		if id, cacheErr := s.cache.ProjectIDForCode(ctx, code); cacheErr == nil {
			return s.fallback(ctx, target{projectID: id, code: code}, now, preview), nil
		}
	}
	return s.degraded(target{code: code}, now, nil, preview), nil
}

// Playlist returns the live playlist for a project ID.
func (s *Service) Playlist(ctx context.Context, projectID string, now time.Time) (*Playlist, error) {
	items, err := s.compileRetry(ctx, projectID, now)
	if errors.Is(err, compiler.ErrProjectNotFound) {
		return nil, err
	}
	t := target{projectID: projectID}
	if err != nil {
		s.logger.Error("compile failed, serving fallback", "project_id", projectID, "error", err)
		return s.fallback(ctx, t, now, false), nil
	}
	return s.success(ctx, t, now, items, false), nil
}

func (s *Service) build(ctx context.Context, t target, now time.Time, preview bool) *Playlist {
	items, err := s.compileRetry(ctx, t.projectID, now)
	if err != nil {
		s.logger.Error("compile failed, serving fallback", "project_id", t.projectID, "preview", preview, "error", err)
		return s.fallback(ctx, t, now, preview)
	}
	return s.success(ctx, t, now, items, preview)
}

func (s *Service) success(ctx context.Context, t target, now time.Time, items []precedence.ResolvedItem, preview bool) *Playlist {
	if s.cache != nil && !preview {
		snap := &lastgood.Snapshot{
			ProjectID:      t.projectID,
			ProjectCode:    t.code,
			HandoffBaseURL: t.handoff,
			RunID:          ulid.Make().String(),
			CompiledAt:     now.UTC(),
			Items:          items,
		}
		if err := s.cache.Put(ctx, snap); err != nil {
			s.logger.Warn("failed to store last-good playlist", "project_id", t.projectID, "error", err)
		}
	}
	return s.payload(t, now, items, false, preview)
}

// fallback serves the last good playlist, re-filtered by each item's
// effective window at now, or an empty playlist.
func (s *Service) fallback(ctx context.Context, t target, now time.Time, preview bool) *Playlist {
	if s.cache == nil {
		return s.degraded(t, now, nil, preview)
	}
	snap, err := s.cache.Get(ctx, t.projectID)
	if err != nil {
		if !errors.Is(err, lastgood.ErrNotFound) {
			s.logger.Warn("failed to read last-good playlist", "project_id", t.projectID, "error", err)
		}
		return s.degraded(t, now, nil, preview)
	}

	items := make([]precedence.ResolvedItem, 0, len(snap.Items))
	for _, it := range snap.Items {
		if it.Window().Contains(now) {
			items = append(items, it)
		}
	}
	if t.code == "" {
		t.code = snap.ProjectCode
	}
	if t.handoff == "" {
		t.handoff = snap.HandoffBaseURL
	}
	return s.degraded(t, now, items, preview)
}

func (s *Service) degraded(t target, now time.Time, items []precedence.ResolvedItem, preview bool) *Playlist {
	return s.payload(t, now, items, true, preview)
}

func (s *Service) payload(t target, now time.Time, items []precedence.ResolvedItem, degraded, preview bool) *Playlist {
	if items == nil {
		items = []precedence.ResolvedItem{}
	}
	pl := &Playlist{
		ProjectID:      t.projectID,
		ProjectCode:    t.code,
		HandoffBaseURL: t.handoff,
		GeneratedAt:    now.UTC(),
		Items:          items,
		Degraded:       degraded,
		Preview:        preview,
	}
	etag, err := ETag(pl)
	if err != nil {
		s.logger.Warn("failed to compute etag", "project_id", t.projectID, "error", err)
	}
	pl.ETag = etag
	return pl
}
