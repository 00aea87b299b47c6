package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"kharcha/internal/core"
	"kharcha/internal/storage"
)

func newTestService(t *testing.T) *ExpenseService {
	t.Helper()
	store := storage.Open(filepath.Join(t.TempDir(), "expenses.db"))
	svc := NewExpenseService(store, nil) // no broker in tests
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestCreateExpenseWithoutBroker(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id, err := svc.CreateExpense(ctx, core.NewExpense{
		Amount: 99, Category: "food", Date: "2024-04-01T12:00:00",
	})
	if err != nil {
		t.Fatalf("create without broker must succeed: %v", err)
	}
	if id <= 0 {
		t.Fatalf("expected assigned id, got %d", id)
	}
}

func TestUpdateAndDeleteMissingAreSilent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.UpdateExpense(ctx, 777, core.NewExpense{Amount: 1, Category: "x", Date: "2024-01-01"}); err != nil {
		t.Fatalf("update missing id: %v", err)
	}
	if err := svc.DeleteExpense(ctx, 777); err != nil {
		t.Fatalf("delete missing id: %v", err)
	}
}

func TestMonthlyBudgetStatus(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// Pin "now" to a known month and spread expenses inside and
	// outside it.
	now := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)
	inMonth := []core.NewExpense{
		{Amount: 5000, Category: "bills", Date: "2024-06-01T09:00:00"},
		{Amount: 2500, Category: "food", Date: "2024-06-20T19:00:00"},
	}
	for _, e := range inMonth {
		if _, err := svc.CreateExpense(ctx, e); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := svc.CreateExpense(ctx, core.NewExpense{Amount: 9999, Category: "travel", Date: "2024-07-01T00:00:00"}); err != nil {
		t.Fatal(err)
	}

	if err := svc.store.SetSetting(ctx, core.KeyMonthlyBudget, "10000"); err != nil {
		t.Fatal(err)
	}

	status, err := svc.MonthlyBudgetStatus(ctx, now)
	if err != nil {
		t.Fatal(err)
	}
	if status.Spent != 7500 {
		t.Fatalf("expected spent 7500, got %v", status.Spent)
	}
	if status.Budget != 10000 {
		t.Fatalf("expected budget 10000, got %v", status.Budget)
	}
	if status.Progress != 0.75 {
		t.Fatalf("expected progress 0.75, got %v", status.Progress)
	}
}

func TestMonthlyBudgetStatusDefaultBudget(t *testing.T) {
	svc := newTestService(t)
	status, err := svc.MonthlyBudgetStatus(context.Background(), time.Now())
	if err != nil {
		t.Fatal(err)
	}
	// No setting stored: the parsed default applies.
	if status.Budget != 10000 {
		t.Fatalf("expected default budget 10000, got %v", status.Budget)
	}
	if status.Spent != 0 || status.Progress != 0 {
		t.Fatalf("expected zero position, got %+v", status)
	}
}
