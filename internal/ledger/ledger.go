// Package ledger implements the accounting engine: mutation operations over
// a single user's transaction list plus the pure aggregation queries derived
// from it. The engine owns an in-memory, date-descending list loaded from an
// injected store at open time and written back after every mutation.
//
// The engine is single-session and synchronous: callers must serialize
// mutating calls, and long-lived callers should re-open against the store
// rather than holding one instance across sessions.
package ledger

import (
	"context"
	"fmt"
	"sort"

	"ledgerlite/internal/core"
)

// Store is the persistence collaborator. Ordering on load is not
// guaranteed; the engine re-sorts. Save receives the full updated
// collection after every mutation.
type Store interface {
	LoadTransactions(ctx context.Context, userID string) ([]core.Transaction, error)
	SaveTransactions(ctx context.Context, userID string, txs []core.Transaction) error
}

// Ledger is one user's open session over their transaction list.
type Ledger struct {
	userID       string
	store        Store
	transactions []core.Transaction
}

// Open loads the user's transactions from the store and returns a ready
// engine. The list is sorted most-recent-first regardless of load order.
func Open(ctx context.Context, store Store, userID string) (*Ledger, error) {
	txs, err := store.LoadTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	l := &Ledger{
		userID:       userID,
		store:        store,
		transactions: txs,
	}
	l.sortByDateDesc()
	return l, nil
}

// UserID returns the owner of this session.
func (l *Ledger) UserID() string {
	return l.userID
}

// Transactions returns a copy of the full list, most recent first.
func (l *Ledger) Transactions() []core.Transaction {
	out := make([]core.Transaction, len(l.transactions))
	copy(out, l.transactions)
	return out
}

// Add creates a user-entered transaction with a fresh random ID and
// persists the updated collection.
func (l *Ledger) Add(ctx context.Context, form core.TransactionForm) (core.Transaction, error) {
	tx, _, err := l.add(ctx, form, false, "")
	return tx, err
}

// AddSystemEntry creates a system-generated transaction. When explicitID is
// empty and the form carries a SourceFixedCostID, the ID is derived
// deterministically from (sourceFixedCostID, year, month), making the add
// idempotent per calendar month. A collision with an existing ID is a
// silent no-op: created reports false and no error is returned.
func (l *Ledger) AddSystemEntry(ctx context.Context, form core.TransactionForm, explicitID string) (tx core.Transaction, created bool, err error) {
	return l.add(ctx, form, true, explicitID)
}

func (l *Ledger) add(ctx context.Context, form core.TransactionForm, systemEntry bool, explicitID string) (core.Transaction, bool, error) {
	if err := form.Validate(); err != nil {
		return core.Transaction{}, false, fmt.Errorf("validate transaction: %w", err)
	}

	var id string
	switch {
	case systemEntry && explicitID != "":
		id = explicitID
	case systemEntry && form.SourceFixedCostID != "":
		id = core.FixedCostEntryID(form.SourceFixedCostID, form.Date.Year(), form.Date.Month())
	default:
		id = core.NewTransactionID()
	}

	if systemEntry {
		if existing, ok := l.byID(id); ok {
			// Idempotence guard: the entry for this month already exists.
			return existing, false, nil
		}
	}

	tx := core.Transaction{
		ID:                id,
		UserID:            l.userID,
		Type:              form.Type,
		Category:          form.Category,
		Description:       defaultDescription(form),
		Amount:            form.Amount,
		Date:              form.Date,
		SourceFixedCostID: form.SourceFixedCostID,
	}

	prev := l.transactions
	l.transactions = append([]core.Transaction{tx}, l.transactions...)
	l.sortByDateDesc()

	if err := l.store.SaveTransactions(ctx, l.userID, l.transactions); err != nil {
		l.transactions = prev
		return core.Transaction{}, false, fmt.Errorf("save transactions: %w", err)
	}
	return tx, true, nil
}

// Delete removes the transaction with the given ID if present and persists
// the updated collection. A missing ID is a no-op, not an error.
func (l *Ledger) Delete(ctx context.Context, id string) error {
	idx := -1
	for i, t := range l.transactions {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	prev := l.transactions
	l.transactions = append(append([]core.Transaction{}, l.transactions[:idx]...), l.transactions[idx+1:]...)

	if err := l.store.SaveTransactions(ctx, l.userID, l.transactions); err != nil {
		l.transactions = prev
		return fmt.Errorf("save transactions: %w", err)
	}
	return nil
}

func (l *Ledger) byID(id string) (core.Transaction, bool) {
	for _, t := range l.transactions {
		if t.ID == id {
			return t, true
		}
	}
	return core.Transaction{}, false
}

// sortByDateDesc keeps the list most-recent-first. The sort is stable so
// entries sharing a date keep their insertion order (newest prepended).
func (l *Ledger) sortByDateDesc() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].Date.After(l.transactions[j].Date)
	})
}

// defaultDescription supplies the engine defaults for savings-related
// categories when the caller left the description blank.
func defaultDescription(form core.TransactionForm) string {
	if form.Description != "" {
		return form.Description
	}
	switch form.Category {
	case core.CategoryAutoSavings:
		return "Auto-savings for " + core.MonthTitle(form.Date.Year(), form.Date.Month())
	case core.CategoryManualSavings:
		return "Manual Savings: " + form.Date.Format("2006-01-02")
	default:
		return ""
	}
}
