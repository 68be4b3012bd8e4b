package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rpggio/signage/internal/domain/category"
	"github.com/rpggio/signage/internal/repository"
)

// CategoryRepository implements category.Repository for SQLite
type CategoryRepository struct {
	db *DB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Save inserts or replaces the project's category config
func (r *CategoryRepository) Save(ctx context.Context, cfg *category.Config) error {
	data, err := json.Marshal(nonNil(cfg.Categories))
	if err != nil {
		return fmt.Errorf("%w: encode categories: %v", repository.ErrInvalidInput, err)
	}

	query := `
		INSERT INTO category_configs (id, project_id, categories, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(project_id) DO UPDATE SET
			categories = excluded.categories,
			updated_at = excluded.updated_at
	`
	_, err = r.db.ExecContext(ctx, query, cfg.ID, cfg.ProjectID, string(data), cfg.CreatedAt, cfg.UpdatedAt)
	return mapWriteError("save category config", err)
}

// GetByProject retrieves the project's category config
func (r *CategoryRepository) GetByProject(ctx context.Context, projectID string) (*category.Config, error) {
	var (
		cfg  category.Config
		data string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, project_id, categories, created_at, updated_at FROM category_configs WHERE project_id = ?`,
		projectID,
	).Scan(&cfg.ID, &cfg.ProjectID, &data, &cfg.CreatedAt, &cfg.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, mapReadError("get category config", err)
	}
	if err := json.Unmarshal([]byte(data), &cfg.Categories); err != nil {
		return nil, fmt.Errorf("category config %s: %w: %v", cfg.ID, repository.ErrMalformed, err)
	}
	return &cfg, nil
}
