package worker

import (
	"context"
	"fmt"
	"log/slog"

	"kharcha/internal/amqp"
	"kharcha/internal/mirror"
	"kharcha/internal/storage"
)

// SyncWorker consumes expense change events and forwards created rows
// to the mirror target.
type SyncWorker struct {
	store  *storage.Store
	target mirror.Target
}

func NewSyncWorker(store *storage.Store, target mirror.Target) *SyncWorker {
	return &SyncWorker{
		store:  store,
		target: target,
	}
}

// HandleChange processes one change event. The row is re-read from the
// store so the mirror always sees the current state, not the state at
// publish time.
func (w *SyncWorker) HandleChange(ctx context.Context, msg *amqp.ExpenseChangeMessage) error {
	switch msg.Change {
	case amqp.ChangeCreated:
		return w.mirrorExpense(ctx, msg.ID)
	case amqp.ChangeUpdated, amqp.ChangeDeleted:
		// The mirror is append-only; corrections stay local. Logged so
		// an operator reconciling the sheet knows rows may be stale.
		slog.InfoContext(ctx, "Skipping non-create change for append-only mirror",
			"id", msg.ID, "change", msg.Change)
		return nil
	default:
		slog.WarnContext(ctx, "Unknown change kind", "id", msg.ID, "change", msg.Change)
		return nil
	}
}

func (w *SyncWorker) mirrorExpense(ctx context.Context, id int64) error {
	e, err := w.store.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load expense %d: %w", id, err)
	}
	if e == nil {
		// Deleted between publish and consume; nothing to mirror.
		slog.InfoContext(ctx, "Expense gone before mirroring", "id", id)
		return nil
	}

	if err := w.target.AppendExpense(ctx, *e); err != nil {
		return fmt.Errorf("mirror expense %d: %w", id, err)
	}
	return nil
}

// Run consumes the events queue until ctx is cancelled.
func (w *SyncWorker) Run(ctx context.Context, client *amqp.Client) error {
	return client.ConsumeExpenseChanges(ctx, func(msg *amqp.ExpenseChangeMessage) error {
		return w.HandleChange(ctx, msg)
	})
}
