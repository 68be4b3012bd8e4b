package compiler

import (
	"context"
	"time"

	"github.com/rpggio/signage/internal/domain/category"
	"github.com/rpggio/signage/internal/domain/media"
	"github.com/rpggio/signage/internal/domain/playlist"
	"github.com/rpggio/signage/internal/domain/project"
	"github.com/rpggio/signage/internal/repository"
)

// memStore is an in-memory document store for compiler tests.
type memStore struct {
	projects   map[string]*project.Project
	slots      []playlist.Item
	media      []media.Media
	categories map[string]*category.Config

	mediaErr   error
	mediaDelay time.Duration
}

func newMemStore() *memStore {
	return &memStore{
		projects:   map[string]*project.Project{},
		categories: map[string]*category.Config{},
	}
}

func (s *memStore) sources() Sources {
	return Sources{
		Projects:   projectReader{s},
		Slots:      slotReader{s},
		Media:      mediaReader{s},
		Categories: categoryReader{s},
	}
}

type projectReader struct{ s *memStore }

func (r projectReader) Get(ctx context.Context, id string) (*project.Project, error) {
	p, ok := r.s.projects[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r projectReader) GetByCode(ctx context.Context, code string) (*project.Project, error) {
	for _, p := range r.s.projects {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r projectReader) List(ctx context.Context) ([]project.ProjectSummary, error) {
	return nil, nil
}

type slotReader struct{ s *memStore }

func (r slotReader) ListByProject(ctx context.Context, projectID string) ([]playlist.Item, error) {
	var out []playlist.Item
	for _, it := range r.s.slots {
		if it.ProjectID == projectID {
			out = append(out, it)
		}
	}
	return out, nil
}

type mediaReader struct{ s *memStore }

func (r mediaReader) Get(ctx context.Context, id string) (*media.Media, error) {
	for _, m := range r.s.media {
		if m.ID == id {
			cp := m
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r mediaReader) ListByProject(ctx context.Context, projectID string) ([]media.Media, error) {
	if r.s.mediaDelay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.s.mediaDelay):
		}
	}
	if r.s.mediaErr != nil {
		return nil, r.s.mediaErr
	}
	var out []media.Media
	for _, m := range r.s.media {
		if m.HasProject(projectID) {
			out = append(out, m)
		}
	}
	return out, nil
}

type categoryReader struct{ s *memStore }

func (r categoryReader) GetByProject(ctx context.Context, projectID string) (*category.Config, error) {
	cfg, ok := r.s.categories[projectID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cfg, nil
}
