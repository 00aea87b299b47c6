// Package mirror pushes expense rows to an external append-only copy.
// The local store stays the system of record; a mirror is a best-effort
// backup fed by the change-events queue.
package mirror

import (
	"context"

	"kharcha/internal/core"
)

// Target receives expense rows. AppendExpense must be safe to retry:
// the worker requeues deliveries on failure.
type Target interface {
	AppendExpense(ctx context.Context, e core.Expense) error
}
