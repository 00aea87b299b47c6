package storage

import (
	"context"
	"fmt"
)

type (
	// CategoryTotal is a grouped sum for one category.
	CategoryTotal struct {
		Category string  `json:"category"`
		Total    float64 `json:"total"`
	}

	// DailyTotal is a grouped sum for one calendar day (YYYY-MM-DD).
	DailyTotal struct {
		Day   string  `json:"day"`
		Total float64 `json:"total"`
	}

	// WeeklyTotal is a grouped sum for one week key (YYYY-Wnn).
	WeeklyTotal struct {
		Week  string  `json:"week"`
		Total float64 `json:"total"`
	}
)

// TotalInRange sums amounts over the inclusive [start, end] date
// range. An empty range yields 0, never an absent value.
func (s *Store) TotalInRange(ctx context.Context, start, end string) (float64, error) {
	db, err := s.handle(ctx)
	if err != nil {
		return 0, err
	}

	var total float64
	err = db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE date >= ? AND date <= ?",
		start, end).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total in range: %w", err)
	}
	return total, nil
}

// TotalsByCategory sums per category over the range, largest total
// first. Categories with no matching rows are omitted.
func (s *Store) TotalsByCategory(ctx context.Context, start, end string) ([]CategoryTotal, error) {
	db, err := s.handle(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		"SELECT category, SUM(amount) AS total FROM expenses WHERE date >= ? AND date <= ? GROUP BY category ORDER BY total DESC",
		start, end)
	if err != nil {
		return nil, fmt.Errorf("totals by category: %w", err)
	}
	defer rows.Close()

	var out []CategoryTotal
	for rows.Next() {
		var t CategoryTotal
		if err := rows.Scan(&t.Category, &t.Total); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// DailyTotals sums per calendar day over the range, ascending by day.
// The day is the date() truncation of the stored timestamp; days with
// no expenses are omitted, so dense series need gap filling by the
// caller.
func (s *Store) DailyTotals(ctx context.Context, start, end string) ([]DailyTotal, error) {
	db, err := s.handle(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		"SELECT date(date) AS day, SUM(amount) AS total FROM expenses WHERE date >= ? AND date <= ? GROUP BY date(date) ORDER BY day ASC",
		start, end)
	if err != nil {
		return nil, fmt.Errorf("daily totals: %w", err)
	}
	defer rows.Close()

	var out []DailyTotal
	for rows.Next() {
		var t DailyTotal
		if err := rows.Scan(&t.Day, &t.Total); err != nil {
			return nil, fmt.Errorf("scan daily total: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// WeeklyTotals sums per week over the range, ascending by week key.
// Keys look like 2024-W03: %W weeks are zero-padded and start Monday.
func (s *Store) WeeklyTotals(ctx context.Context, start, end string) ([]WeeklyTotal, error) {
	db, err := s.handle(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		"SELECT strftime('%Y-W%W', date) AS week, SUM(amount) AS total FROM expenses WHERE date >= ? AND date <= ? GROUP BY week ORDER BY week ASC",
		start, end)
	if err != nil {
		return nil, fmt.Errorf("weekly totals: %w", err)
	}
	defer rows.Close()

	var out []WeeklyTotal
	for rows.Next() {
		var t WeeklyTotal
		if err := rows.Scan(&t.Week, &t.Total); err != nil {
			return nil, fmt.Errorf("scan weekly total: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
