package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rpggio/signage/internal/domain/provider"
	"github.com/rpggio/signage/internal/repository"
)

// ProviderRepository implements provider.Repository for SQLite
type ProviderRepository struct {
	db *DB
}

// NewProviderRepository creates a new ProviderRepository
func NewProviderRepository(db *DB) *ProviderRepository {
	return &ProviderRepository{db: db}
}

const providerColumns = `id, project_id, name_en, name_th, slug, category, sub_category_ids,
	icon, cover_color, description, details, media, created_at, updated_at`

// Save inserts or replaces a provider
func (r *ProviderRepository) Save(ctx context.Context, p *provider.Provider) error {
	subs, err := json.Marshal(nonNil(p.SubCategoryIDs))
	if err != nil {
		return fmt.Errorf("%w: encode sub_category_ids: %v", repository.ErrInvalidInput, err)
	}
	details, err := json.Marshal(nonNil(p.Details))
	if err != nil {
		return fmt.Errorf("%w: encode details: %v", repository.ErrInvalidInput, err)
	}
	promos, err := json.Marshal(nonNil(p.Media))
	if err != nil {
		return fmt.Errorf("%w: encode media: %v", repository.ErrInvalidInput, err)
	}

	query := `
		INSERT INTO providers (` + providerColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			project_id = excluded.project_id,
			name_en = excluded.name_en,
			name_th = excluded.name_th,
			slug = excluded.slug,
			category = excluded.category,
			sub_category_ids = excluded.sub_category_ids,
			icon = excluded.icon,
			cover_color = excluded.cover_color,
			description = excluded.description,
			details = excluded.details,
			media = excluded.media,
			updated_at = excluded.updated_at
	`
	_, err = r.db.ExecContext(ctx, query,
		p.ID,
		p.ProjectID,
		p.NameEN,
		p.NameTH,
		p.Slug,
		p.Category,
		string(subs),
		p.Icon,
		p.CoverColor,
		p.Description,
		string(details),
		string(promos),
		p.CreatedAt,
		p.UpdatedAt,
	)
	return mapWriteError("save provider", err)
}

// Get retrieves a provider by ID
func (r *ProviderRepository) Get(ctx context.Context, id string) (*provider.Provider, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+providerColumns+` FROM providers WHERE id = ?`, id)
	p, err := scanProvider(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListByProject returns the providers of a project ordered by English name
func (r *ProviderRepository) ListByProject(ctx context.Context, projectID string) ([]provider.Provider, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+providerColumns+` FROM providers WHERE project_id = ? ORDER BY name_en, id`,
		projectID,
	)
	if err != nil {
		return nil, mapReadError("list providers", err)
	}
	defer rows.Close()

	var list []provider.Provider
	for rows.Next() {
		p, err := scanProvider(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, mapReadError("iterate provider rows", err)
	}
	return list, nil
}

func scanProvider(row rowScanner) (*provider.Provider, error) {
	var (
		p       provider.Provider
		subs    string
		details string
		promos  string
	)
	err := row.Scan(
		&p.ID,
		&p.ProjectID,
		&p.NameEN,
		&p.NameTH,
		&p.Slug,
		&p.Category,
		&subs,
		&p.Icon,
		&p.CoverColor,
		&p.Description,
		&details,
		&promos,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, mapReadError("scan provider", err)
	}
	if err := json.Unmarshal([]byte(subs), &p.SubCategoryIDs); err != nil {
		return nil, fmt.Errorf("provider %s sub_category_ids: %w: %v", p.ID, repository.ErrMalformed, err)
	}
	if err := json.Unmarshal([]byte(details), &p.Details); err != nil {
		return nil, fmt.Errorf("provider %s details: %w: %v", p.ID, repository.ErrMalformed, err)
	}
	if err := json.Unmarshal([]byte(promos), &p.Media); err != nil {
		return nil, fmt.Errorf("provider %s media: %w: %v", p.ID, repository.ErrMalformed, err)
	}
	if len(p.Media) == 0 {
		p.Media = nil
	}
	return &p, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
