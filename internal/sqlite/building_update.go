package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rpggio/signage/internal/domain/buildingupdate"
	"github.com/rpggio/signage/internal/repository"
)

// BuildingUpdateRepository implements buildingupdate.Repository for SQLite
type BuildingUpdateRepository struct {
	db *DB
}

// NewBuildingUpdateRepository creates a new BuildingUpdateRepository
func NewBuildingUpdateRepository(db *DB) *BuildingUpdateRepository {
	return &BuildingUpdateRepository{db: db}
}

const buildingUpdateColumns = `id, project_id, title, subtitle, slug, icon, bg_color,
	description, sub_category_ids, published_at, created_at, updated_at`

// Save inserts or replaces an update
func (r *BuildingUpdateRepository) Save(ctx context.Context, u *buildingupdate.Update) error {
	subs, err := json.Marshal(nonNil(u.SubCategoryIDs))
	if err != nil {
		return fmt.Errorf("%w: encode sub_category_ids: %v", repository.ErrInvalidInput, err)
	}

	query := `
		INSERT INTO building_updates (` + buildingUpdateColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			project_id = excluded.project_id,
			title = excluded.title,
			subtitle = excluded.subtitle,
			slug = excluded.slug,
			icon = excluded.icon,
			bg_color = excluded.bg_color,
			description = excluded.description,
			sub_category_ids = excluded.sub_category_ids,
			published_at = excluded.published_at,
			updated_at = excluded.updated_at
	`
	_, err = r.db.ExecContext(ctx, query,
		u.ID,
		u.ProjectID,
		u.Title,
		u.Subtitle,
		u.Slug,
		u.Icon,
		u.BgColor,
		u.Description,
		string(subs),
		u.PublishedAt.UTC(),
		u.CreatedAt,
		u.UpdatedAt,
	)
	return mapWriteError("save building update", err)
}

// Get retrieves an update by ID
func (r *BuildingUpdateRepository) Get(ctx context.Context, id string) (*buildingupdate.Update, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+buildingUpdateColumns+` FROM building_updates WHERE id = ?`, id)
	u, err := scanBuildingUpdate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// ListByProject returns a project's updates, newest first
func (r *BuildingUpdateRepository) ListByProject(ctx context.Context, projectID string) ([]buildingupdate.Update, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+buildingUpdateColumns+` FROM building_updates WHERE project_id = ?`,
		projectID,
	)
	if err != nil {
		return nil, mapReadError("list building updates", err)
	}
	defer rows.Close()

	var list []buildingupdate.Update
	for rows.Next() {
		u, err := scanBuildingUpdate(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, mapReadError("iterate building update rows", err)
	}
	buildingupdate.SortNewestFirst(list)
	return list, nil
}

// Delete removes an update
func (r *BuildingUpdateRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM building_updates WHERE id = ?`, id)
	if err != nil {
		return mapWriteError("delete building update", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return mapWriteError("delete building update", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanBuildingUpdate(row rowScanner) (*buildingupdate.Update, error) {
	var (
		u    buildingupdate.Update
		subs string
	)
	err := row.Scan(
		&u.ID,
		&u.ProjectID,
		&u.Title,
		&u.Subtitle,
		&u.Slug,
		&u.Icon,
		&u.BgColor,
		&u.Description,
		&subs,
		&u.PublishedAt,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, mapReadError("scan building update", err)
	}
	if err := json.Unmarshal([]byte(subs), &u.SubCategoryIDs); err != nil {
		return nil, fmt.Errorf("building update %s sub_category_ids: %w: %v", u.ID, repository.ErrMalformed, err)
	}
	if len(u.SubCategoryIDs) == 0 {
		u.SubCategoryIDs = nil
	}
	u.PublishedAt = u.PublishedAt.UTC()
	return &u, nil
}
