package storage

import (
	"context"
	"testing"

	"kharcha/internal/core"
)

func TestSettingRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SetSetting(ctx, "currency", "USD"); err != nil {
		t.Fatal(err)
	}
	v, err := s.GetSetting(ctx, "currency", "INR")
	if err != nil {
		t.Fatal(err)
	}
	if v != "USD" {
		t.Fatalf("expected USD, got %q", v)
	}
}

func TestGetSettingMissingReturnsDefault(t *testing.T) {
	s := newTestStore(t)
	v, err := s.GetSetting(context.Background(), "missing", "fallback")
	if err != nil {
		t.Fatalf("missing key must not error: %v", err)
	}
	if v != "fallback" {
		t.Fatalf("expected fallback, got %q", v)
	}
}

func TestSetSettingUpserts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SetSetting(ctx, "monthlyBudget", "10000"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetSetting(ctx, "monthlyBudget", "15000"); err != nil {
		t.Fatal(err)
	}

	all, err := s.AllSettings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if all["monthlyBudget"] != "15000" {
		t.Fatalf("expected replacement value, got %q", all["monthlyBudget"])
	}
	// At most one row per key: the map came from a full scan.
	count := 0
	for k := range all {
		if k == "monthlyBudget" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected a single row for the key, got %d", count)
	}
}

func TestAllSettingsSnapshot(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	want := map[string]string{
		"currency":        "INR",
		"reminderEnabled": "true",
		"categoryBudgets": `{"food":500}`,
	}
	for k, v := range want {
		if err := s.SetSetting(ctx, k, v); err != nil {
			t.Fatal(err)
		}
	}

	all, err := s.AllSettings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for k, v := range want {
		if all[k] != v {
			t.Fatalf("key %q: expected %q, got %q", k, v, all[k])
		}
	}
	// Migration leaves its cursor behind; it is a setting like any other.
	if all[core.KeySchemaVersion] != "2" {
		t.Fatalf("expected schema_version 2 in snapshot, got %q", all[core.KeySchemaVersion])
	}
}

func TestWipeAllClearsEverything(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustAdd(t, s, core.NewExpense{Amount: 10, Category: "food", Date: "2024-01-01"})
	if err := s.SetSetting(ctx, "currency", "EUR"); err != nil {
		t.Fatal(err)
	}

	if err := s.WipeAll(ctx); err != nil {
		t.Fatal(err)
	}

	rows, err := s.ListAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no expenses after wipe, got %d", len(rows))
	}

	all, err := s.AllSettings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 0 {
		t.Fatalf("expected empty settings after wipe (schema_version included), got %v", all)
	}

	// The store keeps working after a wipe within the same process.
	mustAdd(t, s, core.NewExpense{Amount: 5, Category: "food", Date: "2024-01-02"})
}
