package core

import (
	"errors"
	"testing"
)

func TestNewExpenseValidate(t *testing.T) {
	good := NewExpense{
		Amount:   120.50,
		Category: "food",
		Date:     "2024-01-15T10:00:00",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name  string
		e     NewExpense
		field string
	}{
		{"zero amount", NewExpense{Amount: 0, Category: "food", Date: "2024-01-15"}, "amount"},
		{"negative amount", NewExpense{Amount: -5, Category: "food", Date: "2024-01-15"}, "amount"},
		{"empty category", NewExpense{Amount: 10, Category: "", Date: "2024-01-15"}, "category"},
		{"blank category", NewExpense{Amount: 10, Category: "   ", Date: "2024-01-15"}, "category"},
		{"empty date", NewExpense{Amount: 10, Category: "food", Date: ""}, "date"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.e.Validate()
			if err == nil {
				t.Fatalf("expected error")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			if verr.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, verr.Field)
			}
		})
	}
}

func TestNewExpenseNormalized(t *testing.T) {
	e := NewExpense{Amount: 10, Category: "food", Date: "2024-01-15"}
	n := e.Normalized()
	if n.PaymentMethod != "cash" {
		t.Fatalf("expected default payment method cash, got %q", n.PaymentMethod)
	}
	if n.Note != "" {
		t.Fatalf("expected empty note, got %q", n.Note)
	}

	e.PaymentMethod = "upi"
	if got := e.Normalized().PaymentMethod; got != "upi" {
		t.Fatalf("expected upi preserved, got %q", got)
	}
}

func TestCategoryByID(t *testing.T) {
	if got := CategoryByID("food").Label; got != "Food" {
		t.Fatalf("expected Food, got %q", got)
	}
	// Unknown ids fall back to the catch-all entry.
	if got := CategoryByID("nope").ID; got != "other" {
		t.Fatalf("expected other, got %q", got)
	}
}
