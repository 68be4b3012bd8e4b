// Package surreal reads signage documents from a SurrealDB document store.
// It is read-only: it backs playlist compilation and reference checks on
// delivery nodes, while edits go through the SQLite store.
//
// Each table stores the document key in a doc_id string field; record IDs
// are omitted from every SELECT.
package surreal

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/connection"
	"github.com/surrealdb/surrealdb.go/pkg/connection/gorillaws"
	"github.com/surrealdb/surrealdb.go/surrealcbor"

	"github.com/rpggio/signage/internal/repository"
)

// Table names.
const (
	TableProject        = "project"
	TableMedia          = "media"
	TablePlaylistItem   = "playlist_item"
	TableCategoryConfig = "category_config"
	TableProvider       = "provider"
	TableBuildingUpdate = "building_update"
)

// Config holds connection settings.
type Config struct {
	URL       string
	Namespace string
	Database  string
	Username  string
	Password  string
}

// Store is a SurrealDB-backed document reader.
type Store struct {
	db *surrealdb.DB
}

// Open connects, signs in, and selects the namespace and database.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	conf := connection.NewConfig(u)
	codec := surrealcbor.New()
	conf.Marshaler = codec
	conf.Unmarshaler = codec

	conn := gorillaws.New(conf)

	db, err := surrealdb.FromConnection(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SurrealDB: %w: %v", repository.ErrUnavailable, err)
	}

	if cfg.Username != "" && cfg.Password != "" {
		if _, err := db.SignIn(ctx, map[string]any{
			"user": cfg.Username,
			"pass": cfg.Password,
		}); err != nil {
			db.Close(ctx)
			return nil, fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err := db.Use(ctx, cfg.Namespace, cfg.Database); err != nil {
		db.Close(ctx)
		return nil, fmt.Errorf("failed to use namespace/database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the connection.
func (s *Store) Close(ctx context.Context) error {
	return s.db.Close(ctx)
}

func query[T any](ctx context.Context, s *Store, op, sql string, vars map[string]any) ([]T, error) {
	res, err := surrealdb.Query[[]T](ctx, s.db, sql, vars)
	if err != nil {
		return nil, classify(op, err)
	}
	if res == nil || len(*res) == 0 {
		return nil, nil
	}
	first := (*res)[0]
	if first.Status != "" && first.Status != "OK" {
		return nil, fmt.Errorf("%s: query status %s: %w", op, first.Status, repository.ErrUnavailable)
	}
	return first.Result, nil
}

func one[T any](ctx context.Context, s *Store, op, sql string, vars map[string]any) (*T, error) {
	rows, err := query[T](ctx, s, op, sql, vars)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, repository.ErrNotFound
	}
	return &rows[0], nil
}

// classify maps driver errors onto repository sentinels. Decode failures
// are malformed documents; everything else is treated as the store being
// unreachable. Context errors are kept as they are.
func classify(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "unmarshal") || strings.Contains(msg, "cbor") || strings.Contains(msg, "cannot decode") {
		return fmt.Errorf("%s: %w: %v", op, repository.ErrMalformed, err)
	}
	return fmt.Errorf("%s: %w: %v", op, repository.ErrUnavailable, err)
}
