package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/rpggio/signage/internal/repository"
)

// APIKeyRepository stores hashed editor API keys.
type APIKeyRepository struct {
	db *DB
}

// NewAPIKeyRepository creates a new APIKeyRepository
func NewAPIKeyRepository(db *DB) *APIKeyRepository {
	return &APIKeyRepository{db: db}
}

// Create stores a key for actor. Only the SHA-256 of the token is kept.
func (r *APIKeyRepository) Create(ctx context.Context, token, actor, description string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO api_keys (key_hash, actor, created_at, description) VALUES (?, ?, ?, ?)`,
		HashToken(token), actor, time.Now().UTC(), description,
	)
	return mapWriteError("create api key", err)
}

// ResolveActor returns the actor that owns token and stamps last_used.
func (r *APIKeyRepository) ResolveActor(ctx context.Context, token string) (string, error) {
	hash := HashToken(token)
	var actor string
	err := r.db.QueryRowContext(ctx, `SELECT actor FROM api_keys WHERE key_hash = ?`, hash).Scan(&actor)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && actor == "") {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", mapReadError("resolve api key", err)
	}

	if _, err := r.db.ExecContext(ctx, `UPDATE api_keys SET last_used = ? WHERE key_hash = ?`, time.Now().UTC(), hash); err != nil {
		return "", fmt.Errorf("failed to touch api key: %w", err)
	}
	return actor, nil
}

// HashToken returns the hex SHA-256 of a bearer token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
