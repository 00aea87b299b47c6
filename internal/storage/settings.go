package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// GetSetting returns the stored value for key, or def when absent.
// A missing key is never an error.
func (s *Store) GetSetting(ctx context.Context, key, def string) (string, error) {
	db, err := s.handle(ctx)
	if err != nil {
		return "", err
	}

	var value string
	err = db.QueryRowContext(ctx,
		"SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return def, nil
	}
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

// SetSetting upserts the value for key, replacing any previous value
// atomically.
func (s *Store) SetSetting(ctx context.Context, key, value string) error {
	db, err := s.handle(ctx)
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx,
		"INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)", key, value); err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

// AllSettings returns a snapshot of every stored key/value pair.
func (s *Store) AllSettings(ctx context.Context) (map[string]string, error) {
	db, err := s.handle(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		out[k] = v
	}
	return out, rows.Err()
}

// WipeAll deletes every expense and every setting in one transaction.
// The schema_version row goes with the rest, so the next process start
// re-runs the (idempotent-on-empty) migration chain from zero.
func (s *Store) WipeAll(ctx context.Context) error {
	db, err := s.handle(ctx)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin wipe: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM expenses"); err != nil {
		return fmt.Errorf("wipe expenses: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM settings"); err != nil {
		return fmt.Errorf("wipe settings: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit wipe: %w", err)
	}

	slog.InfoContext(ctx, "All data wiped")
	return nil
}
