package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"ledgerlite/internal/core"
	"ledgerlite/internal/storage"
)

// fakeStore is an in-memory Store for service tests.
type fakeStore struct {
	transactions map[string][]core.Transaction
	fixedCosts   map[string][]core.FixedCostItem
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		transactions: make(map[string][]core.Transaction),
		fixedCosts:   make(map[string][]core.FixedCostItem),
	}
}

func (f *fakeStore) LoadTransactions(_ context.Context, userID string) ([]core.Transaction, error) {
	out := make([]core.Transaction, len(f.transactions[userID]))
	copy(out, f.transactions[userID])
	return out, nil
}

func (f *fakeStore) SaveTransactions(_ context.Context, userID string, txs []core.Transaction) error {
	snapshot := make([]core.Transaction, len(txs))
	copy(snapshot, txs)
	f.transactions[userID] = snapshot
	return nil
}

func (f *fakeStore) GetTransaction(_ context.Context, userID, id string) (core.Transaction, error) {
	for _, tx := range f.transactions[userID] {
		if tx.ID == id {
			return tx, nil
		}
	}
	return core.Transaction{}, storage.ErrNotFound
}

func (f *fakeStore) ListFixedCosts(_ context.Context, userID string) ([]core.FixedCostItem, error) {
	out := make([]core.FixedCostItem, len(f.fixedCosts[userID]))
	copy(out, f.fixedCosts[userID])
	return out, nil
}

func (f *fakeStore) AddFixedCost(_ context.Context, userID string, form core.FixedCostForm) (core.FixedCostItem, error) {
	if err := form.Validate(); err != nil {
		return core.FixedCostItem{}, err
	}
	item := core.FixedCostItem{
		ID:          uuid.NewString(),
		UserID:      userID,
		Category:    form.Category,
		Description: form.Description,
		Amount:      form.Amount,
	}
	f.fixedCosts[userID] = append(f.fixedCosts[userID], item)
	return item, nil
}

func (f *fakeStore) DeleteFixedCost(_ context.Context, userID, id string) error {
	items := f.fixedCosts[userID]
	for i, item := range items {
		if item.ID == id {
			f.fixedCosts[userID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return nil
}

func mustMoney(t *testing.T, s string) core.Money {
	t.Helper()
	m, err := core.ParseMoney(s)
	if err != nil {
		t.Fatalf("ParseMoney(%q) failed: %v", s, err)
	}
	return m
}

func TestAddTransactionPersistsAndReturnsID(t *testing.T) {
	store := newFakeStore()
	svc := NewLedgerService(store, nil)

	form := core.TransactionForm{
		Type:        core.Expense,
		Category:    "food",
		Description: "Dinner",
		Amount:      mustMoney(t, "23.40"),
		Date:        time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	tx, err := svc.AddTransaction(context.Background(), "local", form)
	if err != nil {
		t.Fatalf("AddTransaction failed: %v", err)
	}
	if tx.ID == "" {
		t.Fatal("expected generated ID")
	}

	saved := store.transactions["local"]
	if len(saved) != 1 {
		t.Fatalf("expected 1 saved transaction, got %d", len(saved))
	}
	if saved[0].ID != tx.ID {
		t.Errorf("saved ID %q does not match returned ID %q", saved[0].ID, tx.ID)
	}
}

func TestAddTransactionRejectsInvalidForm(t *testing.T) {
	store := newFakeStore()
	svc := NewLedgerService(store, nil)

	form := core.TransactionForm{
		Type:     "transfer",
		Category: "food",
		Amount:   mustMoney(t, "10"),
		Date:     time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	if _, err := svc.AddTransaction(context.Background(), "local", form); err == nil {
		t.Fatal("expected validation error for invalid type")
	}
	if len(store.transactions["local"]) != 0 {
		t.Error("invalid form must not be persisted")
	}
}

func TestAddManualSavingDefaults(t *testing.T) {
	store := newFakeStore()
	svc := NewLedgerService(store, nil)
	svc.now = func() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) }

	tx, err := svc.AddManualSaving(context.Background(), "local", mustMoney(t, "200"), "", time.Time{})
	if err != nil {
		t.Fatalf("AddManualSaving failed: %v", err)
	}
	if tx.Category != core.CategoryManualSavings {
		t.Errorf("category = %q, want %q", tx.Category, core.CategoryManualSavings)
	}
	if tx.Type != core.Expense {
		t.Errorf("type = %q, want expense", tx.Type)
	}
	if !strings.HasPrefix(tx.Description, "Manual Savings: ") {
		t.Errorf("description = %q, want dated default", tx.Description)
	}
	if !strings.Contains(tx.Description, "2024-03-15") {
		t.Errorf("description %q should carry the booking date", tx.Description)
	}
}

func TestAddManualSavingKeepsCustomDescription(t *testing.T) {
	store := newFakeStore()
	svc := NewLedgerService(store, nil)

	tx, err := svc.AddManualSaving(context.Background(), "local", mustMoney(t, "50"),
		"Vacation fund", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("AddManualSaving failed: %v", err)
	}
	if tx.Description != "Vacation fund" {
		t.Errorf("description = %q, want custom text preserved", tx.Description)
	}
}

func TestDeleteTransactionUnknownIDIsNoop(t *testing.T) {
	store := newFakeStore()
	svc := NewLedgerService(store, nil)

	if err := svc.DeleteTransaction(context.Background(), "local", "does-not-exist"); err != nil {
		t.Fatalf("deleting unknown ID should be a no-op, got: %v", err)
	}
}

func TestFixedCostLifecycle(t *testing.T) {
	store := newFakeStore()
	svc := NewLedgerService(store, nil)
	ctx := context.Background()

	item, err := svc.AddFixedCost(ctx, "local", core.FixedCostForm{
		Category:    "housing",
		Description: "Rent",
		Amount:      mustMoney(t, "1200"),
	})
	if err != nil {
		t.Fatalf("AddFixedCost failed: %v", err)
	}

	items, err := svc.ListFixedCosts(ctx, "local")
	if err != nil {
		t.Fatalf("ListFixedCosts failed: %v", err)
	}
	if len(items) != 1 || items[0].ID != item.ID {
		t.Fatalf("expected registered fixed cost, got %v", items)
	}

	if err := svc.DeleteFixedCost(ctx, "local", item.ID); err != nil {
		t.Fatalf("DeleteFixedCost failed: %v", err)
	}
	items, _ = svc.ListFixedCosts(ctx, "local")
	if len(items) != 0 {
		t.Fatalf("expected empty registry after delete, got %d items", len(items))
	}
}
