package core

import (
	"testing"
	"time"
)

func sample() []Transaction {
	d := func(day, hour int) time.Time {
		return time.Date(2025, 6, day, hour, 0, 0, 0, time.UTC)
	}
	groceries := tx(Expense, 50, d(1, 9))
	groceries.Description = "Groceries"
	salary := tx(Income, 3000, d(3, 8))
	salary.Description = "Monthly salary"
	bus := tx(Expense, 2.5, d(3, 18))
	bus.Description = "Bus ticket"
	bus.Category = "Transport"
	cafe := tx(Expense, 7, d(2, 13))
	cafe.Description = "Café breakfast"
	return []Transaction{groceries, salary, bus, cafe}
}

func TestFilterWildcardsReturnAllSorted(t *testing.T) {
	txs := sample()
	got := Filter{Search: "", Type: TypeAll, Category: CategoryAll}.Apply(txs)
	if len(got) != len(txs) {
		t.Fatalf("expected %d records, got %d", len(txs), len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Date.After(got[i-1].Date) {
			t.Fatalf("not sorted descending at index %d", i)
		}
	}
}

func TestFilterSearchCaseInsensitive(t *testing.T) {
	got := Filter{Search: "grocer"}.Apply(sample())
	if len(got) != 1 || got[0].Description != "Groceries" {
		t.Fatalf("expected Groceries match, got %v", got)
	}
	// Unicode folding, not just ASCII lowering.
	got = Filter{Search: "CAFÉ"}.Apply(sample())
	if len(got) != 1 || got[0].Description != "Café breakfast" {
		t.Fatalf("expected Café match, got %v", got)
	}
}

func TestFilterPredicatesAreANDed(t *testing.T) {
	got := Filter{Search: "t", Type: "expense", Category: "Transport"}.Apply(sample())
	if len(got) != 1 || got[0].Description != "Bus ticket" {
		t.Fatalf("expected only the bus ticket, got %v", got)
	}
	got = Filter{Type: "income"}.Apply(sample())
	if len(got) != 1 || got[0].Type != Income {
		t.Fatalf("expected one income record, got %v", got)
	}
}

func TestFilterSortIsStable(t *testing.T) {
	d := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	a := tx(Expense, 1, d)
	a.Description = "first"
	b := tx(Expense, 2, d)
	b.Description = "second"
	c := tx(Expense, 3, d)
	c.Description = "third"
	got := Filter{}.Apply([]Transaction{a, b, c})
	if got[0].Description != "first" || got[1].Description != "second" || got[2].Description != "third" {
		t.Fatalf("tie order not preserved: %v", got)
	}
}

func TestUsedCategories(t *testing.T) {
	got := UsedCategories(sample())
	want := []string{"Food", "Salary", "Transport"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
