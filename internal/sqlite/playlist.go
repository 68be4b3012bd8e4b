package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rpggio/signage/internal/domain/playlist"
	"github.com/rpggio/signage/internal/repository"
)

// PlaylistRepository implements playlist.Repository for SQLite
type PlaylistRepository struct {
	db *DB
}

// NewPlaylistRepository creates a new PlaylistRepository
func NewPlaylistRepository(db *DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

const playlistColumns = `id, project_id, sort_order, enabled, media_id,
	image_duration_override, start_at, end_at, created_at, updated_at`

// Save inserts or replaces a slot
func (r *PlaylistRepository) Save(ctx context.Context, item *playlist.Item) error {
	query := `
		INSERT INTO playlist_items (` + playlistColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			project_id = excluded.project_id,
			sort_order = excluded.sort_order,
			enabled = excluded.enabled,
			media_id = excluded.media_id,
			image_duration_override = excluded.image_duration_override,
			start_at = excluded.start_at,
			end_at = excluded.end_at,
			updated_at = excluded.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.ProjectID,
		item.Order,
		item.Enabled,
		item.MediaID,
		nullInt(item.ImageDurationOverride),
		nullTime(item.StartAt),
		nullTime(item.EndAt),
		item.CreatedAt,
		item.UpdatedAt,
	)
	return mapWriteError("save playlist item", err)
}

// Get retrieves a slot by ID
func (r *PlaylistRepository) Get(ctx context.Context, id string) (*playlist.Item, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+playlistColumns+` FROM playlist_items WHERE id = ?`, id)
	item, err := scanPlaylistItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, mapReadError("get playlist item", err)
	}
	return item, nil
}

// ListByProject returns a project's slots in insertion order
func (r *PlaylistRepository) ListByProject(ctx context.Context, projectID string) ([]playlist.Item, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+playlistColumns+` FROM playlist_items WHERE project_id = ? ORDER BY rowid`,
		projectID,
	)
	if err != nil {
		return nil, mapReadError("list playlist items", err)
	}
	defer rows.Close()

	var items []playlist.Item
	for rows.Next() {
		item, err := scanPlaylistItem(rows)
		if err != nil {
			return nil, mapReadError("scan playlist item", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, mapReadError("iterate playlist rows", err)
	}
	return items, nil
}

// Delete removes a slot
func (r *PlaylistRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM playlist_items WHERE id = ?`, id)
	if err != nil {
		return mapWriteError("delete playlist item", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return mapWriteError("delete playlist item", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanPlaylistItem(row rowScanner) (*playlist.Item, error) {
	var (
		item     playlist.Item
		duration sql.NullInt64
		startAt  sql.NullTime
		endAt    sql.NullTime
	)
	err := row.Scan(
		&item.ID,
		&item.ProjectID,
		&item.Order,
		&item.Enabled,
		&item.MediaID,
		&duration,
		&startAt,
		&endAt,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.ImageDurationOverride = intFromNull(duration)
	item.StartAt = timeFromNull(startAt)
	item.EndAt = timeFromNull(endAt)
	return &item, nil
}
