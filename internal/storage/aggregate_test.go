package storage

import (
	"context"
	"math"
	"testing"

	"kharcha/internal/core"
)

func seedJanuary(t *testing.T, s *Store) {
	t.Helper()
	rows := []core.NewExpense{
		{Amount: 100, Category: "food", Date: "2024-01-01T09:00:00"},
		{Amount: 50.25, Category: "food", Date: "2024-01-01T18:00:00"},
		{Amount: 200, Category: "travel", Date: "2024-01-02T08:00:00"},
		{Amount: 75.50, Category: "bills", Date: "2024-01-10T12:00:00"},
	}
	for _, e := range rows {
		mustAdd(t, s, e)
	}
}

func TestTotalInRange(t *testing.T) {
	s := newTestStore(t)
	seedJanuary(t, s)
	ctx := context.Background()

	total, err := s.TotalInRange(ctx, "2024-01-01", "2024-01-31T23:59:59")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(total-425.75) > 1e-9 {
		t.Fatalf("expected 425.75, got %v", total)
	}
}

func TestTotalInRangeEmptyIsZero(t *testing.T) {
	s := newTestStore(t)
	seedJanuary(t, s)

	total, err := s.TotalInRange(context.Background(), "2030-01-01", "2030-12-31")
	if err != nil {
		t.Fatal(err)
	}
	if total != 0 {
		t.Fatalf("empty range must sum to 0, got %v", total)
	}
}

func TestTotalsByCategory(t *testing.T) {
	s := newTestStore(t)
	seedJanuary(t, s)
	ctx := context.Background()

	byCat, err := s.TotalsByCategory(ctx, "2024-01-01", "2024-01-31T23:59:59")
	if err != nil {
		t.Fatal(err)
	}
	if len(byCat) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(byCat))
	}
	// Largest total first.
	if byCat[0].Category != "travel" || byCat[0].Total != 200 {
		t.Fatalf("expected travel/200 first, got %+v", byCat[0])
	}
	for i := 1; i < len(byCat); i++ {
		if byCat[i].Total > byCat[i-1].Total {
			t.Fatalf("totals must be descending: %+v", byCat)
		}
	}

	// The grouped sums must add back up to the range total.
	var sum float64
	for _, c := range byCat {
		sum += c.Total
	}
	total, err := s.TotalInRange(ctx, "2024-01-01", "2024-01-31T23:59:59")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(sum-total) > 1e-9 {
		t.Fatalf("category sums %v != range total %v", sum, total)
	}
}

func TestDailyTotals(t *testing.T) {
	s := newTestStore(t)
	seedJanuary(t, s)

	daily, err := s.DailyTotals(context.Background(), "2024-01-01", "2024-01-31T23:59:59")
	if err != nil {
		t.Fatal(err)
	}
	// Three distinct days with spend; gap days are omitted.
	if len(daily) != 3 {
		t.Fatalf("expected 3 days, got %d: %+v", len(daily), daily)
	}
	if daily[0].Day != "2024-01-01" || math.Abs(daily[0].Total-150.25) > 1e-9 {
		t.Fatalf("expected 2024-01-01/150.25 first, got %+v", daily[0])
	}
	if daily[1].Day != "2024-01-02" || daily[2].Day != "2024-01-10" {
		t.Fatalf("days must ascend: %+v", daily)
	}
}

func TestWeeklyTotals(t *testing.T) {
	s := newTestStore(t)
	// 2024-01-01 is a Monday, so these land in consecutive %W weeks.
	mustAdd(t, s, core.NewExpense{Amount: 10, Category: "food", Date: "2024-01-02T10:00:00"})
	mustAdd(t, s, core.NewExpense{Amount: 20, Category: "food", Date: "2024-01-09T10:00:00"})

	weekly, err := s.WeeklyTotals(context.Background(), "2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatal(err)
	}
	if len(weekly) != 2 {
		t.Fatalf("expected 2 weeks, got %d: %+v", len(weekly), weekly)
	}
	if weekly[0].Week != "2024-W01" || weekly[0].Total != 10 {
		t.Fatalf("expected 2024-W01/10 first, got %+v", weekly[0])
	}
	if weekly[1].Week != "2024-W02" || weekly[1].Total != 20 {
		t.Fatalf("expected 2024-W02/20 second, got %+v", weekly[1])
	}
}
