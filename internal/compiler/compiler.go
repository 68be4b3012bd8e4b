// Package compiler produces the ordered, resolved playlist for a project at
// a given instant.
package compiler

import (
	"cmp"
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/rpggio/signage/internal/domain/category"
	"github.com/rpggio/signage/internal/domain/media"
	"github.com/rpggio/signage/internal/domain/playlist"
	"github.com/rpggio/signage/internal/domain/project"
	"github.com/rpggio/signage/internal/precedence"
	"github.com/rpggio/signage/internal/repository"
	"github.com/rpggio/signage/internal/schedule"
)

// DefaultFetchTimeout bounds the concurrent store reads of one compilation.
const DefaultFetchTimeout = 5 * time.Second

// Sources are the read-side stores a compilation draws from.
type Sources struct {
	Projects   project.Reader
	Slots      playlist.Reader
	Media      media.Reader
	Categories category.Reader
}

// Compiler resolves playlists. It holds no mutable state and is safe for
// concurrent use.
type Compiler struct {
	src          Sources
	fetchTimeout time.Duration
	logger       *slog.Logger
}

// New creates a compiler. A zero timeout uses DefaultFetchTimeout.
func New(src Sources, fetchTimeout time.Duration, logger *slog.Logger) *Compiler {
	if fetchTimeout <= 0 {
		fetchTimeout = DefaultFetchTimeout
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Compiler{src: src, fetchTimeout: fetchTimeout, logger: logger}
}

type snapshot struct {
	project  *project.Project
	slots    []playlist.Item
	media    []media.Media
	category *category.Config
}

type candidate struct {
	slot  *playlist.Item
	media *media.Media
}

// Compile returns the items of projectID eligible at now, in play order.
// An empty result is valid. Store failures are returned as *FetchError.
func (c *Compiler) Compile(ctx context.Context, projectID string, now time.Time) ([]precedence.ResolvedItem, error) {
	runID := ulid.Make().String()
	logger := c.logger.With("run_id", runID, "project_id", projectID)

	snap, err := c.fetch(ctx, projectID)
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			return nil, err
		}
		logger.Warn("playlist fetch failed", "error", err, "retryable", IsRetryable(err))
		return nil, err
	}
	if !snap.project.IsActive {
		logger.Debug("project inactive, empty playlist")
		return []precedence.ResolvedItem{}, nil
	}

	byID := make(map[string]*media.Media, len(snap.media))
	for i := range snap.media {
		m := &snap.media[i]
		if _, ok := byID[m.ID]; !ok {
			byID[m.ID] = m
		}
	}

	seen := make(map[string]bool, len(snap.slots))
	candidates := make([]candidate, 0, len(snap.slots))
	for i := range snap.slots {
		slot := &snap.slots[i]
		if seen[slot.ID] {
			continue
		}
		seen[slot.ID] = true

		m, ok := byID[slot.MediaID]
		if !ok || !m.HasProject(projectID) {
			logger.Warn("dropping slot with dangling media reference", "slot_id", slot.ID, "media_id", slot.MediaID)
			continue
		}
		if !schedule.IsEligible(m, now) || !schedule.IsEligible(slot, now) {
			continue
		}
		candidates = append(candidates, candidate{slot: slot, media: m})
	}

	slices.SortStableFunc(candidates, func(a, b candidate) int {
		if n := cmp.Compare(a.slot.Order, b.slot.Order); n != 0 {
			return n
		}
		if n := a.slot.CreatedAt.Compare(b.slot.CreatedAt); n != 0 {
			return n
		}
		return cmp.Compare(a.slot.ID, b.slot.ID)
	})

	items := make([]precedence.ResolvedItem, 0, len(candidates))
	for _, cand := range candidates {
		item, err := precedence.Resolve(cand.slot, cand.media, snap.category)
		if err != nil {
			logger.Warn("dropping unresolvable slot", "slot_id", cand.slot.ID, "media_id", cand.media.ID, "error", err)
			continue
		}
		items = append(items, item)
	}

	logger.Debug("compiled playlist",
		"slots", len(snap.slots),
		"media", len(snap.media),
		"items", len(items),
		"at", now.UTC().Format(time.RFC3339),
	)
	return items, nil
}

func (c *Compiler) fetch(ctx context.Context, projectID string) (*snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	var snap snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p, err := c.src.Projects.Get(gctx, projectID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrProjectNotFound
			}
			return fetchError("project", err)
		}
		snap.project = p
		return nil
	})
	g.Go(func() error {
		slots, err := c.src.Slots.ListByProject(gctx, projectID)
		if err != nil {
			return fetchError("playlist items", err)
		}
		snap.slots = slots
		return nil
	})
	g.Go(func() error {
		list, err := c.src.Media.ListByProject(gctx, projectID)
		if err != nil {
			return fetchError("media", err)
		}
		snap.media = list
		return nil
	})
	g.Go(func() error {
		cfg, err := c.src.Categories.GetByProject(gctx, projectID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil
			}
			return fetchError("category config", err)
		}
		snap.category = cfg
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}
