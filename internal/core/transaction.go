package core

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	Income  Type = "income"
	Expense Type = "expense"
)

type (
	// Type tags a transaction as money coming in or going out.
	Type string

	// Transaction is a single income or expense record. It is immutable
	// once created; the collection replaces records wholesale on delete.
	Transaction struct {
		ID          string          `json:"id"`
		Description string          `json:"description"`
		Amount      decimal.Decimal `json:"amount"`
		Type        Type            `json:"type"`
		Category    string          `json:"category"`
		Date        time.Time       `json:"date"`
		CreatedAt   time.Time       `json:"createdAt"`
		// Currency is the display currency active when the record was
		// created. It never changes afterwards.
		Currency string `json:"currency"`
	}
)

var (
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrInvalidCategory  = errors.New("invalid category for type")
	ErrZeroDate         = errors.New("date cannot be zero")
)

// Categories maps each transaction type to its allowed category set.
// Category validity is a membership check against this table, fixed at
// construction time.
var Categories = map[Type][]string{
	Income:  {"Salary", "Freelance", "Investment", "Business", "Gift", "Other Income"},
	Expense: {"Food", "Transport", "Shopping", "Bills", "Entertainment", "Healthcare", "Education", "Other Expense"},
}

// NewTransaction builds a validated transaction. The description is
// trimmed, the id is assigned here and stable for the record's lifetime.
// A zero date defaults to now.
func NewTransaction(description string, amount decimal.Decimal, typ Type, category string, date time.Time, currency string) (Transaction, error) {
	now := time.Now()
	if date.IsZero() {
		date = now
	}
	tx := Transaction{
		ID:          uuid.NewString(),
		Description: strings.TrimSpace(description),
		Amount:      amount,
		Type:        typ,
		Category:    category,
		Date:        date,
		CreatedAt:   now,
		Currency:    currency,
	}
	if err := tx.Validate(); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

func (t Type) Valid() bool {
	return t == Income || t == Expense
}

// ValidCategory reports whether category belongs to the allowed set for typ.
func ValidCategory(typ Type, category string) bool {
	for _, c := range Categories[typ] {
		if c == category {
			return true
		}
	}
	return false
}

func (t Transaction) Validate() error {
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if strings.TrimSpace(t.Category) == "" || !ValidCategory(t.Type, t.Category) {
		return ErrInvalidCategory
	}
	if t.Date.IsZero() {
		return ErrZeroDate
	}
	return nil
}
