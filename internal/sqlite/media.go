package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rpggio/signage/internal/domain/media"
	"github.com/rpggio/signage/internal/repository"
)

// MediaRepository implements media.Repository for SQLite
type MediaRepository struct {
	db *DB
}

// NewMediaRepository creates a new MediaRepository
func NewMediaRepository(db *DB) *MediaRepository {
	return &MediaRepository{db: db}
}

const mediaColumns = `
	m.id, m.title, m.kind, m.video_url, m.image_url, m.asset_mime_type,
	m.provider_id, m.category, m.enabled, m.start_at, m.end_at,
	m.default_image_duration, m.notes, m.created_at, m.updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMedia(row rowScanner) (*media.Media, error) {
	var (
		m          media.Media
		providerID sql.NullString
		startAt    sql.NullTime
		endAt      sql.NullTime
		duration   sql.NullInt64
	)
	err := row.Scan(
		&m.ID,
		&m.Title,
		&m.Kind,
		&m.VideoURL,
		&m.ImageURL,
		&m.AssetMIMEType,
		&providerID,
		&m.Category,
		&m.Enabled,
		&startAt,
		&endAt,
		&duration,
		&m.Notes,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.ProviderID = stringFromNull(providerID)
	m.StartAt = timeFromNull(startAt)
	m.EndAt = timeFromNull(endAt)
	m.DefaultImageDuration = intFromNull(duration)
	return &m, nil
}

// Save inserts or replaces a media item and its project set
func (r *MediaRepository) Save(ctx context.Context, m *media.Media) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return mapWriteError("begin transaction", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO media (
			id, title, kind, video_url, image_url, asset_mime_type,
			provider_id, category, enabled, start_at, end_at,
			default_image_duration, notes, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			kind = excluded.kind,
			video_url = excluded.video_url,
			image_url = excluded.image_url,
			asset_mime_type = excluded.asset_mime_type,
			provider_id = excluded.provider_id,
			category = excluded.category,
			enabled = excluded.enabled,
			start_at = excluded.start_at,
			end_at = excluded.end_at,
			default_image_duration = excluded.default_image_duration,
			notes = excluded.notes,
			updated_at = excluded.updated_at
	`
	_, err = tx.ExecContext(ctx, query,
		m.ID,
		m.Title,
		m.Kind,
		m.VideoURL,
		m.ImageURL,
		m.AssetMIMEType,
		nullString(m.ProviderID),
		m.Category,
		m.Enabled,
		nullTime(m.StartAt),
		nullTime(m.EndAt),
		nullInt(m.DefaultImageDuration),
		m.Notes,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("save media", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM media_projects WHERE media_id = ?`, m.ID); err != nil {
		return mapWriteError("clear media projects", err)
	}
	for i, projectID := range m.ProjectIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO media_projects (media_id, project_id, position) VALUES (?, ?, ?)`,
			m.ID, projectID, i,
		)
		if err != nil {
			return mapWriteError("add media project", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return mapWriteError("commit media", err)
	}
	return nil
}

// Get retrieves a media item by ID
func (r *MediaRepository) Get(ctx context.Context, id string) (*media.Media, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+mediaColumns+` FROM media m WHERE m.id = ?`, id)
	m, err := scanMedia(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, mapReadError("get media", err)
	}

	sets, err := r.projectSets(ctx, `SELECT media_id, project_id FROM media_projects WHERE media_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	m.ProjectIDs = sets[m.ID]
	return m, nil
}

// ListByProject returns media whose project set contains projectID
func (r *MediaRepository) ListByProject(ctx context.Context, projectID string) ([]media.Media, error) {
	query := `SELECT ` + mediaColumns + `
		FROM media m
		JOIN media_projects mp ON mp.media_id = m.id
		WHERE mp.project_id = ?
		ORDER BY m.created_at ASC, m.id ASC
	`
	list, err := r.queryMedia(ctx, query, projectID)
	if err != nil {
		return nil, err
	}

	sets, err := r.projectSets(ctx, `
		SELECT media_id, project_id FROM media_projects
		WHERE media_id IN (SELECT media_id FROM media_projects WHERE project_id = ?)
		ORDER BY media_id, position
	`, projectID)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].ProjectIDs = sets[list[i].ID]
	}
	return list, nil
}

// Search performs a full-text search over media titles and notes
func (r *MediaRepository) Search(ctx context.Context, query string, opts media.SearchOptions) ([]media.SearchResult, error) {
	match := ftsQuery(query)
	if match == "" {
		return nil, nil
	}

	baseQuery := `SELECT ` + mediaColumns + `,
			bm25(media_fts) AS rank,
			snippet(media_fts, -1, '[', ']', '...', 12) AS snippet
		FROM media_fts
		JOIN media m ON m.rowid = media_fts.rowid
		WHERE media_fts MATCH ?
	`
	args := []any{match}
	conditions := []string{}

	if opts.ProjectID != "" {
		conditions = append(conditions, "EXISTS (SELECT 1 FROM media_projects mp WHERE mp.media_id = m.id AND mp.project_id = ?)")
		args = append(args, opts.ProjectID)
	}
	if opts.Category != "" {
		conditions = append(conditions, "m.category = ?")
		args = append(args, opts.Category)
	}
	if len(conditions) > 0 {
		baseQuery += " AND " + strings.Join(conditions, " AND ")
	}

	baseQuery += " ORDER BY rank"
	if opts.Limit > 0 {
		baseQuery += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, baseQuery, args...)
	if err != nil {
		return nil, mapReadError("search media", err)
	}

	var results []media.SearchResult
	for rows.Next() {
		var (
			result media.SearchResult
			rank   float64
			snip   string
		)
		m, err := scanMedia(scanFunc(func(dest ...any) error {
			return rows.Scan(append(dest, &rank, &snip)...)
		}))
		if err != nil {
			rows.Close()
			return nil, mapReadError("scan search result", err)
		}
		result.Media = *m
		result.Rank = rank
		result.Snippet = snip
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, mapReadError("iterate search results", err)
	}
	rows.Close()

	for i := range results {
		sets, err := r.projectSets(ctx, `SELECT media_id, project_id FROM media_projects WHERE media_id = ? ORDER BY position`, results[i].Media.ID)
		if err != nil {
			return nil, err
		}
		results[i].Media.ProjectIDs = sets[results[i].Media.ID]
	}
	return results, nil
}

type scanFunc func(dest ...any) error

func (f scanFunc) Scan(dest ...any) error {
	return f(dest...)
}

func (r *MediaRepository) queryMedia(ctx context.Context, query string, args ...any) ([]media.Media, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapReadError("list media", err)
	}
	defer rows.Close()

	var list []media.Media
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, mapReadError("scan media", err)
		}
		list = append(list, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, mapReadError("iterate media rows", err)
	}
	return list, nil
}

func (r *MediaRepository) projectSets(ctx context.Context, query string, args ...any) (map[string][]string, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapReadError("list media projects", err)
	}
	defer rows.Close()

	sets := make(map[string][]string)
	for rows.Next() {
		var mediaID, projectID string
		if err := rows.Scan(&mediaID, &projectID); err != nil {
			return nil, mapReadError("scan media project", err)
		}
		sets[mediaID] = append(sets[mediaID], projectID)
	}
	if err := rows.Err(); err != nil {
		return nil, mapReadError("iterate media projects", err)
	}
	return sets, nil
}

// ftsQuery quotes each term so user input cannot use FTS5 operators.
func ftsQuery(input string) string {
	fields := strings.Fields(input)
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		terms = append(terms, fmt.Sprintf(`"%s"`, strings.ReplaceAll(f, `"`, `""`)))
	}
	return strings.Join(terms, " ")
}
