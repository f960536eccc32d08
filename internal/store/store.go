// Package store owns the tracker's persisted state: the transaction
// collection, the selected display currency and the dark-mode flag.
// Each lives under its own key in a kv.Store and is written through
// synchronously after every mutation.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/jeffrin-samuel/expense-tracker/internal/core"
	"github.com/jeffrin-samuel/expense-tracker/internal/currency"
	"github.com/jeffrin-samuel/expense-tracker/internal/kv"
	"github.com/jeffrin-samuel/expense-tracker/internal/log"
)

// Persisted entry keys. Kept verbatim from the original web app so an
// exported localStorage dump imports cleanly.
const (
	KeyTransactions = "expense-tracker-transactions"
	KeyCurrency     = "expense-tracker-currency"
	KeyDarkMode     = "expense-tracker-dark-mode"
)

// ErrNotFound reports a delete of an id that is not in the collection.
// Callers treat it as a no-op; it exists so they can log the miss.
var ErrNotFound = errors.New("transaction not found")

// TransactionStore holds the in-memory state and its kv backing. It is
// constructed explicitly and injected; there is no package-level instance.
type TransactionStore struct {
	mu  sync.Mutex
	kv  kv.Store
	log *log.Logger

	transactions []core.Transaction
	currency     string
	darkMode     bool
}

func New(backing kv.Store, logger *log.Logger) *TransactionStore {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &TransactionStore{
		kv:       backing,
		log:      logger.WithComponent(log.ComponentStore),
		currency: currency.DefaultCode,
	}
}

// Load rehydrates all three entries. A missing or unparseable entry
// falls back to its default silently (warn-logged, never an error):
// empty collection, INR, light theme.
func (s *TransactionStore) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactions = nil
	if raw, err := s.kv.Get(ctx, KeyTransactions); err == nil {
		var txs []core.Transaction
		if err := json.Unmarshal(raw, &txs); err != nil {
			s.log.WarnContext(ctx, "Corrupt transactions entry, starting empty",
				log.FieldOperation, log.OpLoad, log.FieldError, err)
		} else {
			s.transactions = txs
		}
	} else if !errors.Is(err, kv.ErrNotFound) {
		s.log.WarnContext(ctx, "Failed reading transactions entry, starting empty",
			log.FieldOperation, log.OpLoad, log.FieldError, err)
	}

	s.currency = currency.DefaultCode
	if raw, err := s.kv.Get(ctx, KeyCurrency); err == nil {
		var code string
		if err := json.Unmarshal(raw, &code); err != nil || !currency.Supported(code) {
			s.log.WarnContext(ctx, "Invalid currency entry, defaulting",
				log.FieldOperation, log.OpLoad, log.FieldCurrency, currency.DefaultCode)
		} else {
			s.currency = code
		}
	}

	s.darkMode = false
	if raw, err := s.kv.Get(ctx, KeyDarkMode); err == nil {
		var dark bool
		if err := json.Unmarshal(raw, &dark); err != nil {
			s.log.WarnContext(ctx, "Invalid dark-mode entry, defaulting to light",
				log.FieldOperation, log.OpLoad)
		} else {
			s.darkMode = dark
		}
	}

	s.log.InfoContext(ctx, "State loaded",
		log.FieldOperation, log.OpLoad,
		log.FieldCollection, len(s.transactions),
		log.FieldCurrency, s.currency,
		log.FieldDarkMode, s.darkMode)
}

// Add validates and prepends a transaction, then writes the collection
// through. The collection is untouched when validation or the write fails.
func (s *TransactionStore) Add(ctx context.Context, tx core.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]core.Transaction, 0, len(s.transactions)+1)
	next = append(next, tx)
	next = append(next, s.transactions...)
	if err := s.saveTransactions(ctx, next); err != nil {
		return err
	}
	s.transactions = next

	s.log.InfoContext(ctx, "Transaction added",
		log.FieldOperation, log.OpAdd,
		log.FieldTxID, tx.ID,
		log.FieldTxType, string(tx.Type),
		log.FieldCategory, tx.Category,
		log.FieldAmount, tx.Amount.String())
	return nil
}

// Delete removes the record with the given id. Deleting an absent id
// returns ErrNotFound and changes nothing; retrying a delete is a no-op.
func (s *TransactionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, t := range s.transactions {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}

	next := make([]core.Transaction, 0, len(s.transactions)-1)
	next = append(next, s.transactions[:idx]...)
	next = append(next, s.transactions[idx+1:]...)
	if err := s.saveTransactions(ctx, next); err != nil {
		return err
	}
	s.transactions = next

	s.log.InfoContext(ctx, "Transaction deleted",
		log.FieldOperation, log.OpDelete, log.FieldTxID, id)
	return nil
}

// SetCurrency switches the global display currency and persists it.
// Unknown codes are rejected; existing records keep their own currency.
func (s *TransactionStore) SetCurrency(ctx context.Context, code string) error {
	if !currency.Supported(code) {
		return fmt.Errorf("unsupported currency %q", code)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.saveJSON(ctx, KeyCurrency, code); err != nil {
		return err
	}
	s.currency = code
	s.log.InfoContext(ctx, "Currency changed", log.FieldCurrency, code)
	return nil
}

// SetDarkMode persists the theme flag.
func (s *TransactionStore) SetDarkMode(ctx context.Context, dark bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.saveJSON(ctx, KeyDarkMode, dark); err != nil {
		return err
	}
	s.darkMode = dark
	s.log.InfoContext(ctx, "Theme changed", log.FieldDarkMode, dark)
	return nil
}

// Transactions returns a copy of the collection, most recently created
// first.
func (s *TransactionStore) Transactions() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

func (s *TransactionStore) Currency() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currency
}

func (s *TransactionStore) DarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.darkMode
}

func (s *TransactionStore) saveTransactions(ctx context.Context, txs []core.Transaction) error {
	return s.saveJSON(ctx, KeyTransactions, txs)
}

func (s *TransactionStore) saveJSON(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}
