package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"

	"kharcha/internal/core"
)

// targetSchemaVersion is the version the migration chain converges on.
const targetSchemaVersion = 2

const createSettingsSQL = `
CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// Version 1: the original expense table. The payment column was
// misnamed payment_mode here; version 2 corrects it.
const createExpensesV1SQL = `
CREATE TABLE IF NOT EXISTS expenses (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	amount         REAL NOT NULL,
	category       TEXT NOT NULL,
	payment_mode   TEXT NOT NULL DEFAULT 'cash',
	note           TEXT DEFAULT '',
	date           TEXT NOT NULL,
	created_at     TEXT NOT NULL DEFAULT (datetime('now'))
)`

const createExpensesV2SQL = `
CREATE TABLE expenses (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	amount         REAL NOT NULL,
	category       TEXT NOT NULL,
	payment_method TEXT NOT NULL DEFAULT 'cash',
	note           TEXT DEFAULT '',
	date           TEXT NOT NULL,
	created_at     TEXT NOT NULL DEFAULT (datetime('now'))
);
CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date);
CREATE INDEX IF NOT EXISTS idx_expenses_category ON expenses(category)`

// migrate brings the schema up to targetSchemaVersion. The settings
// table is created first because the version cursor lives there. Each
// step runs in its own transaction and persists the new version as its
// final statement, so a crash mid-migration resumes from the last
// committed version.
func migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, createSettingsSQL); err != nil {
		return fmt.Errorf("create settings table: %w", err)
	}

	version, err := schemaVersion(ctx, db)
	if err != nil {
		return err
	}

	for v := version + 1; v <= targetSchemaVersion; v++ {
		if err := applyMigration(ctx, db, v); err != nil {
			return fmt.Errorf("migrate to version %d: %w", v, err)
		}
		slog.InfoContext(ctx, "Applied schema migration", "version", v)
	}
	return nil
}

func schemaVersion(ctx context.Context, db *sql.DB) (int, error) {
	var raw string
	err := db.QueryRowContext(ctx,
		"SELECT value FROM settings WHERE key = ?", core.KeySchemaVersion).Scan(&raw)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse schema version %q: %w", raw, err)
	}
	return v, nil
}

func applyMigration(ctx context.Context, db *sql.DB, version int) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	switch version {
	case 1:
		if _, err := tx.ExecContext(ctx, createExpensesV1SQL); err != nil {
			return err
		}
	case 2:
		// Destructive by intent: version 2 fixes the payment_mode
		// column naming defect by dropping and recreating the table.
		// Rows recorded under versions 0/1 are lost. This is a
		// one-time correction, not a pattern for future migrations.
		if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS expenses"); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, createExpensesV2SQL); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown migration version %d", version)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)",
		core.KeySchemaVersion, strconv.Itoa(version)); err != nil {
		return fmt.Errorf("persist schema version: %w", err)
	}
	return tx.Commit()
}
