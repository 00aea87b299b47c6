package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"kharcha/internal/amqp"
	"kharcha/internal/core"
	"kharcha/internal/storage"
)

// ExpenseService orchestrates expense writes across the local store
// and the optional change-event queue. The store is the system of
// record; publish failures are logged and never fail the write.
type ExpenseService struct {
	store      *storage.Store
	amqpClient *amqp.Client
}

func NewExpenseService(store *storage.Store, amqpClient *amqp.Client) *ExpenseService {
	return &ExpenseService{
		store:      store,
		amqpClient: amqpClient,
	}
}

// CreateExpense validates and persists a new expense, then announces
// it on the events queue.
func (s *ExpenseService) CreateExpense(ctx context.Context, e core.NewExpense) (int64, error) {
	id, err := s.store.Add(ctx, e)
	if err != nil {
		return 0, fmt.Errorf("save expense: %w", err)
	}

	s.publishChange(ctx, id, amqp.ChangeCreated)
	return id, nil
}

// UpdateExpense replaces the row's mutable fields. Updating a missing
// id is a silent no-op; no change event is published for it.
func (s *ExpenseService) UpdateExpense(ctx context.Context, id int64, e core.NewExpense) error {
	n, err := s.store.Update(ctx, id, e)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	if n == 0 {
		slog.DebugContext(ctx, "Update on missing expense", "id", id)
		return nil
	}

	s.publishChange(ctx, id, amqp.ChangeUpdated)
	return nil
}

// DeleteExpense removes the row. Deleting a missing id is a silent
// no-op; no change event is published for it.
func (s *ExpenseService) DeleteExpense(ctx context.Context, id int64) error {
	n, err := s.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if n == 0 {
		slog.DebugContext(ctx, "Delete on missing expense", "id", id)
		return nil
	}

	s.publishChange(ctx, id, amqp.ChangeDeleted)
	return nil
}

func (s *ExpenseService) publishChange(ctx context.Context, id int64, change string) {
	if s.amqpClient == nil {
		return
	}
	if err := s.amqpClient.PublishExpenseChange(ctx, id, change); err != nil {
		slog.ErrorContext(ctx, "Failed to publish expense change",
			"id", id, "change", change, "error", err)
	}
}

// MonthlyBudgetStatus derives the budget position for the calendar
// month containing now, combining the month's spend with the stored
// monthlyBudget setting.
func (s *ExpenseService) MonthlyBudgetStatus(ctx context.Context, now time.Time) (core.BudgetStatus, error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, -1)

	start := monthStart.Format("2006-01-02")
	end := monthEnd.Format("2006-01-02") + "T23:59:59"

	spent, err := s.store.TotalInRange(ctx, start, end)
	if err != nil {
		return core.BudgetStatus{}, fmt.Errorf("month total: %w", err)
	}

	raw, err := s.store.AllSettings(ctx)
	if err != nil {
		return core.BudgetStatus{}, fmt.Errorf("load settings: %w", err)
	}
	budget := core.ParseSettings(raw).MonthlyBudget

	return core.BudgetStatus{
		Budget:   budget,
		Spent:    spent,
		Progress: core.BudgetProgress(spent, budget),
	}, nil
}

// Close releases the store and the AMQP connection.
func (s *ExpenseService) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close expense service: %v", errs)
	}

	return nil
}
