package core

import "testing"

func TestParseSettingsDefaults(t *testing.T) {
	s := ParseSettings(map[string]string{})
	if s.Currency != "INR" || s.CurrencySymbol != "₹" {
		t.Fatalf("unexpected currency defaults: %+v", s)
	}
	if s.MonthlyBudget != 10000 {
		t.Fatalf("expected default budget 10000, got %v", s.MonthlyBudget)
	}
	if s.ReminderEnabled || s.AppLockEnabled {
		t.Fatalf("flags should default false: %+v", s)
	}
	if s.ReminderTime != "20:00" {
		t.Fatalf("expected reminder time 20:00, got %q", s.ReminderTime)
	}
	if len(s.CategoryBudgets) != 0 {
		t.Fatalf("expected empty category budgets, got %v", s.CategoryBudgets)
	}
}

func TestParseSettingsValues(t *testing.T) {
	s := ParseSettings(map[string]string{
		"currency":        "USD",
		"currencySymbol":  "$",
		"monthlyBudget":   "2500.50",
		"reminderEnabled": "true",
		"appLockEnabled":  "true",
		"categoryBudgets": `{"food":500,"travel":1200}`,
		"schema_version":  "2",
	})
	if s.Currency != "USD" || s.MonthlyBudget != 2500.50 {
		t.Fatalf("unexpected parse: %+v", s)
	}
	if !s.ReminderEnabled || !s.AppLockEnabled {
		t.Fatalf("expected flags true: %+v", s)
	}
	if s.CategoryBudgets["food"] != 500 || s.CategoryBudgets["travel"] != 1200 {
		t.Fatalf("unexpected category budgets: %v", s.CategoryBudgets)
	}
}

func TestParseSettingsBadValues(t *testing.T) {
	// Unparseable values fall back to defaults rather than failing.
	s := ParseSettings(map[string]string{
		"monthlyBudget":   "not-a-number",
		"categoryBudgets": "{broken",
		"reminderEnabled": "yes",
	})
	if s.MonthlyBudget != 10000 {
		t.Fatalf("expected default budget, got %v", s.MonthlyBudget)
	}
	if len(s.CategoryBudgets) != 0 {
		t.Fatalf("expected empty budgets, got %v", s.CategoryBudgets)
	}
	if s.ReminderEnabled {
		t.Fatalf("non-'true' strings must parse as false")
	}
}

func TestSettingsStringMapRoundTrip(t *testing.T) {
	s := DefaultSettings()
	s.MonthlyBudget = 12345.5
	s.CategoryBudgets = map[string]float64{"bills": 800}

	back := ParseSettings(s.StringMap())
	if back.MonthlyBudget != 12345.5 {
		t.Fatalf("budget did not round trip: %v", back.MonthlyBudget)
	}
	if back.CategoryBudgets["bills"] != 800 {
		t.Fatalf("category budgets did not round trip: %v", back.CategoryBudgets)
	}
	if m := s.StringMap(); m["reminderEnabled"] != "false" {
		t.Fatalf("expected stringified boolean, got %q", m["reminderEnabled"])
	}
}

func TestBudgetProgress(t *testing.T) {
	cases := []struct {
		total, budget, want float64
	}{
		{7500, 10000, 0.75},
		{0, 10000, 0},
		{15000, 10000, 1}, // clamped
		{100, 0, 0},       // no budget set
		{100, -5, 0},
	}
	for i, tc := range cases {
		if got := BudgetProgress(tc.total, tc.budget); got != tc.want {
			t.Fatalf("case %d: got %v, want %v", i, got, tc.want)
		}
	}
}
