package core

import (
	"reflect"
	"testing"
	"time"
)

func tx(id string, typ TxType, cents int64, category string, date string) Transaction {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return Transaction{
		ID:          id,
		Owner:       "u1",
		Type:        typ,
		Amount:      Money{Cents: cents},
		Category:    category,
		Description: id,
		Date:        d,
	}
}

func datePtr(s string) *time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &d
}

func TestFilterDateBoundsInclusive(t *testing.T) {
	txs := []Transaction{
		tx("a", Expense, 100, "Shopping", "2024-01-01"),
		tx("b", Expense, 200, "Shopping", "2024-01-15"),
		tx("c", Expense, 300, "Shopping", "2024-02-01"),
	}

	got := Filter(txs, Range{Start: datePtr("2024-01-01"), End: datePtr("2024-01-15")})
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("inclusive bounds wrong: %+v", got)
	}

	// Unbounded sides
	if got := Filter(txs, Range{Start: datePtr("2024-01-15")}); len(got) != 2 {
		t.Fatalf("open end expected 2, got %d", len(got))
	}
	if got := Filter(txs, Range{End: datePtr("2024-01-15")}); len(got) != 2 {
		t.Fatalf("open start expected 2, got %d", len(got))
	}
}

func TestFilterCategory(t *testing.T) {
	txs := []Transaction{
		tx("a", Expense, 100, "Shopping", "2024-01-01"),
		tx("b", Expense, 200, "Travel", "2024-01-02"),
		tx("c", Income, 300, "Salary", "2024-01-03"),
	}
	got := Filter(txs, Range{Category: "Travel"})
	if len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("category filter wrong: %+v", got)
	}
}

func TestFilterEmptyResultIsNotError(t *testing.T) {
	txs := []Transaction{tx("a", Expense, 100, "Shopping", "2024-01-01")}
	got := Filter(txs, Range{Category: "Travel"})
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestFilterPreservesOrderAndIsIdempotent(t *testing.T) {
	txs := []Transaction{
		tx("c", Expense, 300, "Shopping", "2024-02-01"),
		tx("a", Expense, 100, "Shopping", "2024-01-01"),
		tx("b", Expense, 200, "Travel", "2024-01-15"),
	}
	r := Range{Start: datePtr("2024-01-01"), End: datePtr("2024-02-01")}
	once := Filter(txs, r)
	twice := Filter(once, r)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("filter not idempotent:\n once: %+v\ntwice: %+v", once, twice)
	}
	if once[0].ID != "c" || once[1].ID != "a" || once[2].ID != "b" {
		t.Fatalf("input order not preserved: %+v", once)
	}
}

func TestFilterZeroRangeCopies(t *testing.T) {
	txs := []Transaction{tx("a", Expense, 100, "Shopping", "2024-01-01")}
	got := Filter(txs, Range{})
	if len(got) != 1 {
		t.Fatalf("zero range should keep everything, got %d", len(got))
	}
	got[0].ID = "mutated"
	if txs[0].ID == "mutated" {
		t.Fatal("Filter must return a copy, not a view over the input")
	}
}
