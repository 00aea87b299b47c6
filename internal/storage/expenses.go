package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"kharcha/internal/core"
)

const expenseColumns = "id, amount, category, payment_method, note, date, created_at"

// Add validates and inserts a new expense, returning the assigned id.
// The store sets created_at to the current instant; payment method
// defaults to "cash" and note to "" when absent.
func (s *Store) Add(ctx context.Context, e core.NewExpense) (int64, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}
	e = e.Normalized()

	db, err := s.handle(ctx)
	if err != nil {
		return 0, err
	}

	res, err := db.ExecContext(ctx,
		"INSERT INTO expenses (amount, category, payment_method, note, date) VALUES (?, ?, ?, ?, ?)",
		e.Amount, e.Category, e.PaymentMethod, e.Note, e.Date)
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", id,
		"amount", e.Amount,
		"category", e.Category,
		"date", e.Date)
	return id, nil
}

// Update replaces every mutable field of the row matching id. A
// missing id is a no-op, not an error; the returned count lets callers
// that care distinguish the two.
func (s *Store) Update(ctx context.Context, id int64, e core.NewExpense) (int64, error) {
	db, err := s.handle(ctx)
	if err != nil {
		return 0, err
	}

	res, err := db.ExecContext(ctx,
		"UPDATE expenses SET amount = ?, category = ?, payment_method = ?, note = ?, date = ? WHERE id = ?",
		e.Amount, e.Category, e.PaymentMethod, e.Note, e.Date, id)
	if err != nil {
		return 0, fmt.Errorf("update expense: %w", err)
	}
	return res.RowsAffected()
}

// Delete removes the row matching id; a missing id is a no-op.
func (s *Store) Delete(ctx context.Context, id int64) (int64, error) {
	db, err := s.handle(ctx)
	if err != nil {
		return 0, err
	}

	res, err := db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("delete expense: %w", err)
	}
	return res.RowsAffected()
}

// GetByID returns the expense matching id, or nil when absent.
func (s *Store) GetByID(ctx context.Context, id int64) (*core.Expense, error) {
	db, err := s.handle(ctx)
	if err != nil {
		return nil, err
	}

	var e core.Expense
	err = db.QueryRowContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE id = ?", id).
		Scan(&e.ID, &e.Amount, &e.Category, &e.PaymentMethod, &e.Note, &e.Date, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get expense by id: %w", err)
	}
	return &e, nil
}

// ListAll returns every expense ordered by date descending, ties
// broken by id descending so same-timestamp inserts show newest first.
func (s *Store) ListAll(ctx context.Context) ([]core.Expense, error) {
	return s.queryExpenses(ctx,
		"SELECT "+expenseColumns+" FROM expenses ORDER BY date DESC, id DESC")
}

// ListByDateRange returns expenses with start <= date <= end, newest
// first. Bounds are compared as strings, which matches ISO-8601
// ordering as long as callers supply zero-padded, same-convention
// timestamps.
func (s *Store) ListByDateRange(ctx context.Context, start, end string) ([]core.Expense, error) {
	return s.queryExpenses(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE date >= ? AND date <= ? ORDER BY date DESC, id DESC",
		start, end)
}

// ListRecent returns the newest limit expenses.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]core.Expense, error) {
	return s.queryExpenses(ctx,
		"SELECT "+expenseColumns+" FROM expenses ORDER BY date DESC, id DESC LIMIT ?", limit)
}

// ExportAll returns every expense oldest first, the order a
// chronological export wants. Distinct from ListAll on purpose.
func (s *Store) ExportAll(ctx context.Context) ([]core.Expense, error) {
	return s.queryExpenses(ctx,
		"SELECT "+expenseColumns+" FROM expenses ORDER BY date ASC")
}

func (s *Store) queryExpenses(ctx context.Context, query string, args ...any) ([]core.Expense, error) {
	db, err := s.handle(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		var e core.Expense
		if err := rows.Scan(&e.ID, &e.Amount, &e.Category, &e.PaymentMethod, &e.Note, &e.Date, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return out, nil
}
