package core

import (
	"errors"
	"fmt"
	"strings"
)

const DefaultPaymentMethod = "cash"

type (
	// Expense is a single recorded spending transaction as stored.
	Expense struct {
		ID            int64   `json:"id"`
		Amount        float64 `json:"amount"`
		Category      string  `json:"category"`
		PaymentMethod string  `json:"payment_method"`
		Note          string  `json:"note"`
		// Date is the user-supplied occurrence timestamp, ISO-8601.
		// It is the ordering and filtering key; created_at is audit only.
		Date      string `json:"date"`
		CreatedAt string `json:"created_at"`
	}

	// NewExpense carries the caller-supplied fields of an expense
	// before the store assigns id and created_at.
	NewExpense struct {
		Amount        float64 `json:"amount"`
		Category      string  `json:"category"`
		PaymentMethod string  `json:"payment_method"`
		Note          string  `json:"note"`
		Date          string  `json:"date"`
	}
)

// ErrStorageUnavailable wraps failures to open or migrate the store.
var ErrStorageUnavailable = errors.New("storage unavailable")

// ValidationError reports the first input field that failed a
// precondition. It is raised before any write is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks the insert preconditions: positive amount, non-empty
// category and date. Membership in the category catalog is a
// presentation concern and is deliberately not checked here.
func (e NewExpense) Validate() error {
	if e.Amount <= 0 {
		return &ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	if strings.TrimSpace(e.Category) == "" {
		return &ValidationError{Field: "category", Reason: "must not be empty"}
	}
	if strings.TrimSpace(e.Date) == "" {
		return &ValidationError{Field: "date", Reason: "must not be empty"}
	}
	return nil
}

// Normalized returns a copy with defaults applied: payment method
// falls back to "cash", note to the empty string.
func (e NewExpense) Normalized() NewExpense {
	if strings.TrimSpace(e.PaymentMethod) == "" {
		e.PaymentMethod = DefaultPaymentMethod
	}
	return e
}
