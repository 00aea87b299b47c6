package core

import (
	"encoding/json"
	"strconv"
)

// Setting keys as persisted in the settings table. Values are stored
// as text regardless of logical type; Settings is the typed boundary.
const (
	KeyCurrency             = "currency"
	KeyCurrencySymbol       = "currencySymbol"
	KeyMonthlyBudget        = "monthlyBudget"
	KeyDefaultPaymentMethod = "defaultPaymentMethod"
	KeyReminderEnabled      = "reminderEnabled"
	KeyReminderTime         = "reminderTime"
	KeyAppLockEnabled       = "appLockEnabled"
	KeyCategoryBudgets      = "categoryBudgets"
	KeySchemaVersion        = "schema_version"
)

// Settings is the parsed form of the persisted user preferences.
// The reminder and app-lock flags are only stored here; scheduling
// notifications and the biometric gate live outside the core.
type Settings struct {
	Currency             string
	CurrencySymbol       string
	MonthlyBudget        float64
	DefaultPaymentMethod string
	ReminderEnabled      bool
	ReminderTime         string
	AppLockEnabled       bool
	CategoryBudgets      map[string]float64
}

// DefaultSettings returns the values assumed when a key is absent.
func DefaultSettings() Settings {
	return Settings{
		Currency:             "INR",
		CurrencySymbol:       "₹",
		MonthlyBudget:        10000,
		DefaultPaymentMethod: DefaultPaymentMethod,
		ReminderEnabled:      false,
		ReminderTime:         "20:00",
		AppLockEnabled:       false,
		CategoryBudgets:      map[string]float64{},
	}
}

// ParseSettings builds Settings from the raw string map, falling back
// to defaults for absent or unparseable values. Unknown keys
// (including schema_version) are ignored.
func ParseSettings(raw map[string]string) Settings {
	s := DefaultSettings()
	if v, ok := raw[KeyCurrency]; ok && v != "" {
		s.Currency = v
	}
	if v, ok := raw[KeyCurrencySymbol]; ok && v != "" {
		s.CurrencySymbol = v
	}
	if v, ok := raw[KeyMonthlyBudget]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			s.MonthlyBudget = f
		}
	}
	if v, ok := raw[KeyDefaultPaymentMethod]; ok && v != "" {
		s.DefaultPaymentMethod = v
	}
	if v, ok := raw[KeyReminderEnabled]; ok {
		s.ReminderEnabled = v == "true"
	}
	if v, ok := raw[KeyReminderTime]; ok && v != "" {
		s.ReminderTime = v
	}
	if v, ok := raw[KeyAppLockEnabled]; ok {
		s.AppLockEnabled = v == "true"
	}
	if v, ok := raw[KeyCategoryBudgets]; ok && v != "" {
		var budgets map[string]float64
		if err := json.Unmarshal([]byte(v), &budgets); err == nil {
			s.CategoryBudgets = budgets
		}
	}
	return s
}

// StringMap serializes the settings back to their persisted text form.
func (s Settings) StringMap() map[string]string {
	budgets, err := json.Marshal(s.CategoryBudgets)
	if err != nil || s.CategoryBudgets == nil {
		budgets = []byte("{}")
	}
	return map[string]string{
		KeyCurrency:             s.Currency,
		KeyCurrencySymbol:       s.CurrencySymbol,
		KeyMonthlyBudget:        strconv.FormatFloat(s.MonthlyBudget, 'f', -1, 64),
		KeyDefaultPaymentMethod: s.DefaultPaymentMethod,
		KeyReminderEnabled:      strconv.FormatBool(s.ReminderEnabled),
		KeyReminderTime:         s.ReminderTime,
		KeyAppLockEnabled:       strconv.FormatBool(s.AppLockEnabled),
		KeyCategoryBudgets:      string(budgets),
	}
}
