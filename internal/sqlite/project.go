package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rpggio/signage/internal/domain/project"
	"github.com/rpggio/signage/internal/repository"
)

// ProjectRepository implements project.Repository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, title, code, handoff_base_url, is_active, created_at, updated_at`

// Create creates a new project
func (r *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	query := `
		INSERT INTO projects (id, title, code, handoff_base_url, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		proj.ID,
		proj.Title,
		proj.Code,
		proj.HandoffBaseURL,
		proj.IsActive,
		proj.CreatedAt,
		proj.UpdatedAt,
	)
	return mapWriteError("create project", err)
}

// Update replaces a project's mutable fields
func (r *ProjectRepository) Update(ctx context.Context, proj *project.Project) error {
	query := `
		UPDATE projects
		SET title = ?, code = ?, handoff_base_url = ?, is_active = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		proj.Title,
		proj.Code,
		proj.HandoffBaseURL,
		proj.IsActive,
		proj.UpdatedAt,
		proj.ID,
	)
	if err != nil {
		return mapWriteError("update project", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return mapWriteError("update project", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Get retrieves a project by ID
func (r *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	return scanProject(row, "get project")
}

// GetByCode retrieves a project by its routing code
func (r *ProjectRepository) GetByCode(ctx context.Context, code string) (*project.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE code = ?`, code)
	return scanProject(row, "get project by code")
}

func scanProject(row *sql.Row, op string) (*project.Project, error) {
	var proj project.Project
	err := row.Scan(
		&proj.ID,
		&proj.Title,
		&proj.Code,
		&proj.HandoffBaseURL,
		&proj.IsActive,
		&proj.CreatedAt,
		&proj.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, mapReadError(op, err)
	}
	return &proj, nil
}

// List returns all projects with summary information
func (r *ProjectRepository) List(ctx context.Context) ([]project.ProjectSummary, error) {
	query := `
		SELECT
			p.id,
			p.title,
			p.code,
			p.is_active,
			p.created_at,
			(SELECT COUNT(*) FROM media_projects mp WHERE mp.project_id = p.id) AS media_count,
			(SELECT COUNT(*) FROM playlist_items pi WHERE pi.project_id = p.id) AS slot_count
		FROM projects p
		ORDER BY p.created_at ASC, p.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapReadError("list projects", err)
	}
	defer rows.Close()

	var summaries []project.ProjectSummary
	for rows.Next() {
		var summary project.ProjectSummary
		err := rows.Scan(
			&summary.ID,
			&summary.Title,
			&summary.Code,
			&summary.IsActive,
			&summary.CreatedAt,
			&summary.MediaCount,
			&summary.SlotCount,
		)
		if err != nil {
			return nil, mapReadError("scan project summary", err)
		}
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, mapReadError("iterate project rows", err)
	}

	return summaries, nil
}
