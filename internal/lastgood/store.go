// Package lastgood keeps the most recent successfully compiled playlist per
// project so kiosks can keep playing when the document store is down.
package lastgood

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v3"

	"github.com/rpggio/signage/internal/precedence"
)

// ErrNotFound indicates no snapshot has been stored for the key.
var ErrNotFound = errors.New("no last-good playlist")

// Snapshot is a stored compilation result.
type Snapshot struct {
	ProjectID      string                    `cbor:"project_id"`
	ProjectCode    string                    `cbor:"project_code"`
	HandoffBaseURL string                    `cbor:"handoff_base_url,omitempty"`
	RunID          string                    `cbor:"run_id,omitempty"`
	CompiledAt     time.Time                 `cbor:"compiled_at"`
	Items          []precedence.ResolvedItem `cbor:"items"`
}

// Store persists snapshots.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// Open opens a badger store in dir. An empty dir keeps everything in memory.
func Open(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	opts := badger.DefaultOptions(dir).WithLogger(badgerLogger{logger: logger})
	if dir == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open last-good store: %w", err)
	}
	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func playlistKey(projectID string) []byte {
	return []byte("playlist/" + projectID)
}

func codeKey(code string) []byte {
	return []byte("code/" + code)
}

// Put replaces the snapshot for snap.ProjectID and records its code.
func (s *Store) Put(ctx context.Context, snap *Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(playlistKey(snap.ProjectID), data); err != nil {
			return err
		}
		if snap.ProjectCode != "" {
			return txn.Set(codeKey(snap.ProjectCode), []byte(snap.ProjectID))
		}
		return nil
	})
}

// Get returns the snapshot for a project.
func (s *Store) Get(ctx context.Context, projectID string) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := s.get(playlistKey(projectID))
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot for %s: %w", projectID, err)
	}
	return &snap, nil
}

// ProjectIDForCode returns the project ID last seen for a routing code.
func (s *Store) ProjectIDForCode(ctx context.Context, code string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := s.get(codeKey(code))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *Store) get(key []byte) ([]byte, error) {
	var result []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		result, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read last-good store: %w", err)
	}
	return result, nil
}

// badgerLogger routes badger's logs through slog. Info and debug are
// demoted since badger is chatty on open and compaction.
type badgerLogger struct {
	logger *slog.Logger
}

func (l badgerLogger) Errorf(format string, args ...any) {
	l.logger.Error(fmt.Sprintf(format, args...), "component", "badger")
}

func (l badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warn(fmt.Sprintf(format, args...), "component", "badger")
}

func (l badgerLogger) Infof(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...), "component", "badger")
}

func (l badgerLogger) Debugf(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...), "component", "badger")
}
