package surreal

import (
	"context"

	"github.com/rpggio/signage/internal/domain/buildingupdate"
	"github.com/rpggio/signage/internal/domain/category"
	"github.com/rpggio/signage/internal/domain/media"
	"github.com/rpggio/signage/internal/domain/playlist"
	"github.com/rpggio/signage/internal/domain/project"
	"github.com/rpggio/signage/internal/domain/provider"
)

type projectDoc struct {
	DocID string `json:"doc_id"`
	project.Project
}

type mediaDoc struct {
	DocID string `json:"doc_id"`
	media.Media
}

type slotDoc struct {
	DocID string `json:"doc_id"`
	playlist.Item
}

type categoryDoc struct {
	DocID string `json:"doc_id"`
	category.Config
}

type providerDoc struct {
	DocID string `json:"doc_id"`
	provider.Provider
}

type updateDoc struct {
	DocID string `json:"doc_id"`
	buildingupdate.Update
}

type countRow struct {
	N int `json:"n"`
}

// ProjectReader implements project.Reader.
type ProjectReader struct{ s *Store }

// Projects returns the project reader.
func (s *Store) Projects() *ProjectReader { return &ProjectReader{s: s} }

func (r *ProjectReader) Get(ctx context.Context, id string) (*project.Project, error) {
	doc, err := one[projectDoc](ctx, r.s, "get project",
		`SELECT * OMIT id FROM type::table($tb) WHERE doc_id = $id LIMIT 1`,
		map[string]any{"tb": TableProject, "id": id})
	if err != nil {
		return nil, err
	}
	p := doc.Project
	p.ID = doc.DocID
	return &p, nil
}

func (r *ProjectReader) GetByCode(ctx context.Context, code string) (*project.Project, error) {
	doc, err := one[projectDoc](ctx, r.s, "get project by code",
		`SELECT * OMIT id FROM type::table($tb) WHERE code = $code LIMIT 1`,
		map[string]any{"tb": TableProject, "code": code})
	if err != nil {
		return nil, err
	}
	p := doc.Project
	p.ID = doc.DocID
	return &p, nil
}

// List returns projects with their media and slot counts.
func (r *ProjectReader) List(ctx context.Context) ([]project.ProjectSummary, error) {
	docs, err := query[projectDoc](ctx, r.s, "list projects",
		`SELECT * OMIT id FROM type::table($tb) ORDER BY created_at`,
		map[string]any{"tb": TableProject})
	if err != nil {
		return nil, err
	}
	out := make([]project.ProjectSummary, 0, len(docs))
	for _, d := range docs {
		mediaCount, err := r.count(ctx, "count project media",
			`SELECT count() AS n FROM type::table($tb) WHERE project_ids CONTAINS $project GROUP ALL`,
			TableMedia, d.DocID)
		if err != nil {
			return nil, err
		}
		slotCount, err := r.count(ctx, "count project slots",
			`SELECT count() AS n FROM type::table($tb) WHERE project_id = $project GROUP ALL`,
			TablePlaylistItem, d.DocID)
		if err != nil {
			return nil, err
		}
		out = append(out, project.ProjectSummary{
			ID:         d.DocID,
			Title:      d.Title,
			Code:       d.Code,
			IsActive:   d.IsActive,
			MediaCount: mediaCount,
			SlotCount:  slotCount,
			CreatedAt:  d.CreatedAt,
		})
	}
	return out, nil
}

// count runs a GROUP ALL count query. An empty table yields no row.
func (r *ProjectReader) count(ctx context.Context, op, sql, table, projectID string) (int, error) {
	rows, err := query[countRow](ctx, r.s, op, sql, map[string]any{"tb": table, "project": projectID})
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].N, nil
}

// MediaReader implements media.Reader.
type MediaReader struct{ s *Store }

// Media returns the media reader.
func (s *Store) Media() *MediaReader { return &MediaReader{s: s} }

func (r *MediaReader) Get(ctx context.Context, id string) (*media.Media, error) {
	doc, err := one[mediaDoc](ctx, r.s, "get media",
		`SELECT * OMIT id FROM type::table($tb) WHERE doc_id = $id LIMIT 1`,
		map[string]any{"tb": TableMedia, "id": id})
	if err != nil {
		return nil, err
	}
	m := doc.Media
	m.ID = doc.DocID
	return &m, nil
}

func (r *MediaReader) ListByProject(ctx context.Context, projectID string) ([]media.Media, error) {
	docs, err := query[mediaDoc](ctx, r.s, "list media",
		`SELECT * OMIT id FROM type::table($tb) WHERE project_ids CONTAINS $project ORDER BY created_at`,
		map[string]any{"tb": TableMedia, "project": projectID})
	if err != nil {
		return nil, err
	}
	out := make([]media.Media, 0, len(docs))
	for _, d := range docs {
		m := d.Media
		m.ID = d.DocID
		out = append(out, m)
	}
	return out, nil
}

// SlotReader implements playlist.Reader.
type SlotReader struct{ s *Store }

// Slots returns the playlist slot reader.
func (s *Store) Slots() *SlotReader { return &SlotReader{s: s} }

func (r *SlotReader) ListByProject(ctx context.Context, projectID string) ([]playlist.Item, error) {
	docs, err := query[slotDoc](ctx, r.s, "list playlist items",
		`SELECT * OMIT id FROM type::table($tb) WHERE project_id = $project ORDER BY created_at, doc_id`,
		map[string]any{"tb": TablePlaylistItem, "project": projectID})
	if err != nil {
		return nil, err
	}
	out := make([]playlist.Item, 0, len(docs))
	for _, d := range docs {
		it := d.Item
		it.ID = d.DocID
		out = append(out, it)
	}
	return out, nil
}

// CategoryReader implements category.Reader.
type CategoryReader struct{ s *Store }

// Categories returns the category config reader.
func (s *Store) Categories() *CategoryReader { return &CategoryReader{s: s} }

func (r *CategoryReader) GetByProject(ctx context.Context, projectID string) (*category.Config, error) {
	doc, err := one[categoryDoc](ctx, r.s, "get category config",
		`SELECT * OMIT id FROM type::table($tb) WHERE project_id = $project LIMIT 1`,
		map[string]any{"tb": TableCategoryConfig, "project": projectID})
	if err != nil {
		return nil, err
	}
	cfg := doc.Config
	cfg.ID = doc.DocID
	return &cfg, nil
}

// ProviderReader implements provider.Reader.
type ProviderReader struct{ s *Store }

// Providers returns the provider reader.
func (s *Store) Providers() *ProviderReader { return &ProviderReader{s: s} }

func (r *ProviderReader) Get(ctx context.Context, id string) (*provider.Provider, error) {
	doc, err := one[providerDoc](ctx, r.s, "get provider",
		`SELECT * OMIT id FROM type::table($tb) WHERE doc_id = $id LIMIT 1`,
		map[string]any{"tb": TableProvider, "id": id})
	if err != nil {
		return nil, err
	}
	p := doc.Provider
	p.ID = doc.DocID
	return &p, nil
}

func (r *ProviderReader) ListByProject(ctx context.Context, projectID string) ([]provider.Provider, error) {
	docs, err := query[providerDoc](ctx, r.s, "list providers",
		`SELECT * OMIT id FROM type::table($tb) WHERE project_id = $project ORDER BY name_en`,
		map[string]any{"tb": TableProvider, "project": projectID})
	if err != nil {
		return nil, err
	}
	out := make([]provider.Provider, 0, len(docs))
	for _, d := range docs {
		p := d.Provider
		p.ID = d.DocID
		out = append(out, p)
	}
	return out, nil
}

// BuildingUpdateReader implements buildingupdate.Reader.
type BuildingUpdateReader struct{ s *Store }

// BuildingUpdates returns the building update reader.
func (s *Store) BuildingUpdates() *BuildingUpdateReader { return &BuildingUpdateReader{s: s} }

func (r *BuildingUpdateReader) ListByProject(ctx context.Context, projectID string) ([]buildingupdate.Update, error) {
	docs, err := query[updateDoc](ctx, r.s, "list building updates",
		`SELECT * OMIT id FROM type::table($tb) WHERE project_id = $project`,
		map[string]any{"tb": TableBuildingUpdate, "project": projectID})
	if err != nil {
		return nil, err
	}
	out := make([]buildingupdate.Update, 0, len(docs))
	for _, d := range docs {
		u := d.Update
		u.ID = d.DocID
		out = append(out, u)
	}
	buildingupdate.SortNewestFirst(out)
	return out, nil
}
