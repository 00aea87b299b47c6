package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/singleflight"

	"kharcha/internal/core"

	_ "modernc.org/sqlite"
)

// Store owns the single database handle shared by every operation.
// The handle is opened and migrated lazily on first use; concurrent
// first callers all await the same in-flight initialization, so the
// migration runs exactly once no matter how many queries race at
// startup.
type Store struct {
	path string

	mu   sync.RWMutex
	db   *sql.DB
	init singleflight.Group
}

// Open constructs a Store for the database file at path. No I/O
// happens until the first operation needs the handle.
func Open(path string) *Store {
	return &Store{path: path}
}

// handle returns the ready, migrated database handle. On failure the
// in-flight marker is dropped so a later call retries from scratch
// instead of returning a permanently broken state.
func (s *Store) handle(ctx context.Context) (*sql.DB, error) {
	s.mu.RLock()
	db := s.db
	s.mu.RUnlock()
	if db != nil {
		return db, nil
	}

	v, err, _ := s.init.Do("init", func() (any, error) {
		// A caller may have slipped in between the fast path and
		// joining the flight after a previous flight completed.
		s.mu.RLock()
		cached := s.db
		s.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}

		db, err := openAndMigrate(ctx, s.path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", core.ErrStorageUnavailable, err)
		}

		s.mu.Lock()
		s.db = db
		s.mu.Unlock()
		return db, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*sql.DB), nil
}

func openAndMigrate(ctx context.Context, path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	slog.InfoContext(ctx, "Database ready", "path", path)
	return db, nil
}

// Ready forces initialization, reporting whether the store is usable.
func (s *Store) Ready(ctx context.Context) error {
	_, err := s.handle(ctx)
	return err
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}
