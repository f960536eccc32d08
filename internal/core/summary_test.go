package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func tx(typ Type, amount float64, date time.Time) Transaction {
	category := "Food"
	if typ == Income {
		category = "Salary"
	}
	return Transaction{
		ID:          date.Format(time.RFC3339Nano) + string(typ),
		Description: "test",
		Amount:      decimal.NewFromFloat(amount),
		Type:        typ,
		Category:    category,
		Date:        date,
		CreatedAt:   date,
		Currency:    "INR",
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if !s.TotalIncome.IsZero() || !s.TotalExpense.IsZero() || !s.Balance.IsZero() {
		t.Fatalf("expected all zeros, got %+v", s)
	}
}

func TestSummarizeBalance(t *testing.T) {
	d1 := time.Date(2025, 5, 2, 12, 0, 0, 0, time.UTC)
	d2 := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	txs := []Transaction{
		tx(Income, 1000, d1),
		tx(Expense, 400, d1),
		tx(Expense, 600, d2),
	}
	s := Summarize(txs)
	if !s.TotalIncome.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("income = %s", s.TotalIncome)
	}
	if !s.TotalExpense.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("expense = %s", s.TotalExpense)
	}
	if !s.Balance.IsZero() {
		t.Fatalf("balance = %s", s.Balance)
	}
	if !s.Balance.Equal(s.TotalIncome.Sub(s.TotalExpense)) {
		t.Fatalf("balance invariant violated")
	}
}

func TestSummarizeIgnoresRecordCurrency(t *testing.T) {
	d := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	a := tx(Income, 10, d)
	a.Currency = "USD"
	b := tx(Income, 5, d)
	b.Currency = "JPY"
	s := Summarize([]Transaction{a, b})
	if !s.TotalIncome.Equal(decimal.NewFromInt(15)) {
		t.Fatalf("expected raw sum 15, got %s", s.TotalIncome)
	}
}
