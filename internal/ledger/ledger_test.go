package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"ledgerlite/internal/core"
)

// memStore is a minimal in-memory Store for engine tests.
type memStore struct {
	collections map[string][]core.Transaction
	saves       int
	failSave    bool
}

func newMemStore() *memStore {
	return &memStore{collections: make(map[string][]core.Transaction)}
}

func (s *memStore) LoadTransactions(_ context.Context, userID string) ([]core.Transaction, error) {
	out := make([]core.Transaction, len(s.collections[userID]))
	copy(out, s.collections[userID])
	return out, nil
}

func (s *memStore) SaveTransactions(_ context.Context, userID string, txs []core.Transaction) error {
	if s.failSave {
		return errors.New("save failed")
	}
	s.saves++
	cp := make([]core.Transaction, len(txs))
	copy(cp, txs)
	s.collections[userID] = cp
	return nil
}

func money(t *testing.T, s string) core.Money {
	t.Helper()
	m, err := core.ParseMoney(s)
	if err != nil {
		t.Fatalf("parse money %q: %v", s, err)
	}
	return m
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func openTestLedger(t *testing.T) (*Ledger, *memStore) {
	t.Helper()
	store := newMemStore()
	l, err := Open(context.Background(), store, "user-1")
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	return l, store
}

func addTx(t *testing.T, l *Ledger, typ core.TransactionType, category, desc, amount string, when time.Time) core.Transaction {
	t.Helper()
	tx, err := l.Add(context.Background(), core.TransactionForm{
		Type:        typ,
		Category:    category,
		Description: desc,
		Amount:      money(t, amount),
		Date:        when,
	})
	if err != nil {
		t.Fatalf("add transaction: %v", err)
	}
	return tx
}

func TestAddKeepsDateDescendingOrder(t *testing.T) {
	l, store := openTestLedger(t)

	addTx(t, l, core.Expense, "food", "lunch", "20", date(2024, time.March, 10))
	addTx(t, l, core.Income, "salary", "pay", "3000", date(2024, time.March, 25))
	addTx(t, l, core.Expense, "housing", "rent", "1200", date(2024, time.March, 1))

	txs := l.Transactions()
	if len(txs) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(txs))
	}
	for i := 0; i < len(txs)-1; i++ {
		if txs[i].Date.Before(txs[i+1].Date) {
			t.Fatalf("transactions out of order at %d: %v before %v", i, txs[i].Date, txs[i+1].Date)
		}
	}
	if store.saves != 3 {
		t.Fatalf("expected 3 saves, got %d", store.saves)
	}
}

func TestAddAssignsUniqueRandomIDs(t *testing.T) {
	l, _ := openTestLedger(t)

	a := addTx(t, l, core.Expense, "food", "a", "10", date(2024, time.March, 5))
	b := addTx(t, l, core.Expense, "food", "b", "10", date(2024, time.March, 5))

	if a.ID == "" || b.ID == "" {
		t.Fatal("expected non-empty IDs")
	}
	if a.ID == b.ID {
		t.Fatalf("expected distinct IDs, both %q", a.ID)
	}
}

func TestAddRejectsInvalidForm(t *testing.T) {
	l, store := openTestLedger(t)

	cases := []core.TransactionForm{
		{Type: "transfer", Category: "food", Amount: money(t, "10"), Date: date(2024, time.March, 1)},
		{Type: core.Expense, Category: "", Amount: money(t, "10"), Date: date(2024, time.March, 1)},
		{Type: core.Expense, Category: "food", Amount: core.MoneyZero(), Date: date(2024, time.March, 1)},
		{Type: core.Expense, Category: "food", Amount: money(t, "10")},
	}
	for i, form := range cases {
		if _, err := l.Add(context.Background(), form); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
	if store.saves != 0 {
		t.Fatalf("invalid forms must not persist, got %d saves", store.saves)
	}
}

func TestAddRollsBackOnSaveFailure(t *testing.T) {
	l, store := openTestLedger(t)
	store.failSave = true

	_, err := l.Add(context.Background(), core.TransactionForm{
		Type:     core.Expense,
		Category: "food",
		Amount:   money(t, "10"),
		Date:     date(2024, time.March, 1),
	})
	if err == nil {
		t.Fatal("expected save error")
	}
	if len(l.Transactions()) != 0 {
		t.Fatalf("failed add must not leave a transaction behind, got %d", len(l.Transactions()))
	}
}

func TestDefaultDescriptions(t *testing.T) {
	l, _ := openTestLedger(t)

	auto, _, err := l.AddSystemEntry(context.Background(), core.TransactionForm{
		Type:     core.Expense,
		Category: core.CategoryAutoSavings,
		Amount:   money(t, "500"),
		Date:     date(2024, time.March, 31),
	}, core.AutoSavingsEntryID(2024, time.March))
	if err != nil {
		t.Fatalf("add auto-savings entry: %v", err)
	}
	if auto.Description != "Auto-savings for March 2024" {
		t.Fatalf("unexpected auto-savings description %q", auto.Description)
	}

	manual := addTx(t, l, core.Expense, core.CategoryManualSavings, "", "100", date(2024, time.March, 10))
	if manual.Description != "Manual Savings: 2024-03-10" {
		t.Fatalf("unexpected manual-savings description %q", manual.Description)
	}

	plain := addTx(t, l, core.Expense, "food", "", "10", date(2024, time.March, 10))
	if plain.Description != "" {
		t.Fatalf("expected empty description for plain category, got %q", plain.Description)
	}

	kept := addTx(t, l, core.Expense, core.CategoryManualSavings, "vacation fund", "50", date(2024, time.March, 11))
	if kept.Description != "vacation fund" {
		t.Fatalf("caller description must win, got %q", kept.Description)
	}
}

func TestDeleteIsTotal(t *testing.T) {
	l, store := openTestLedger(t)

	tx := addTx(t, l, core.Expense, "food", "lunch", "20", date(2024, time.March, 10))
	addTx(t, l, core.Income, "salary", "pay", "3000", date(2024, time.March, 25))

	if err := l.Delete(context.Background(), tx.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	for _, got := range l.Transactions() {
		if got.ID == tx.ID {
			t.Fatalf("deleted transaction %s still present", tx.ID)
		}
	}
	s := l.Summary(time.March, 2024)
	if !s.TotalExpenses.IsZero() {
		t.Fatalf("deleted expense still aggregated: %s", s.TotalExpenses)
	}

	savesBefore := store.saves
	if err := l.Delete(context.Background(), tx.ID); err != nil {
		t.Fatalf("second delete must be a no-op, got %v", err)
	}
	if store.saves != savesBefore {
		t.Fatal("no-op delete must not persist")
	}
	if err := l.Delete(context.Background(), "never-existed"); err != nil {
		t.Fatalf("deleting unknown id must be a no-op, got %v", err)
	}
}

func TestSummaryScenario(t *testing.T) {
	// Income 3000, housing 1000, manual savings 500 in March 2024:
	// the savings entry must not count as an expense.
	l, _ := openTestLedger(t)
	addTx(t, l, core.Income, "salary", "pay", "3000", date(2024, time.March, 5))
	addTx(t, l, core.Expense, "housing", "rent", "1000", date(2024, time.March, 1))
	addTx(t, l, core.Expense, core.CategoryManualSavings, "savings", "500", date(2024, time.March, 10))

	s := l.Summary(time.March, 2024)
	if !s.TotalIncome.Equal(money(t, "3000")) {
		t.Fatalf("totalIncome = %s, want 3000", s.TotalIncome)
	}
	if !s.TotalExpenses.Equal(money(t, "1000")) {
		t.Fatalf("totalExpenses = %s, want 1000", s.TotalExpenses)
	}
	if !s.NetBalance.Equal(money(t, "2000")) {
		t.Fatalf("netBalance = %s, want 2000", s.NetBalance)
	}
}

func TestSummaryAdditivity(t *testing.T) {
	l, _ := openTestLedger(t)
	addTx(t, l, core.Income, "salary", "", "1234.56", date(2024, time.May, 3))
	addTx(t, l, core.Income, "freelance", "", "210.44", date(2024, time.May, 12))
	addTx(t, l, core.Expense, "food", "", "99.99", date(2024, time.May, 20))
	addTx(t, l, core.Expense, "transport", "", "45.5", date(2024, time.May, 21))

	s := l.Summary(time.May, 2024)
	if !s.TotalIncome.Sub(s.TotalExpenses).Equal(s.NetBalance) {
		t.Fatalf("income %s - expenses %s != net %s", s.TotalIncome, s.TotalExpenses, s.NetBalance)
	}
}

func TestSummaryEmptyLedgerIsZero(t *testing.T) {
	l, _ := openTestLedger(t)
	s := l.Summary(time.January, 2024)
	if !s.TotalIncome.IsZero() || !s.TotalExpenses.IsZero() || !s.NetBalance.IsZero() {
		t.Fatalf("expected zeroed summary, got %+v", s)
	}
}

func TestSummaryMonthWindowIsInclusive(t *testing.T) {
	l, _ := openTestLedger(t)
	addTx(t, l, core.Expense, "food", "first", "10", date(2024, time.April, 1))
	addTx(t, l, core.Expense, "food", "last", "20", date(2024, time.April, 30))
	addTx(t, l, core.Expense, "food", "next month", "40", date(2024, time.May, 1))

	s := l.Summary(time.April, 2024)
	if !s.TotalExpenses.Equal(money(t, "30")) {
		t.Fatalf("totalExpenses = %s, want 30", s.TotalExpenses)
	}
}

func TestChartSeries(t *testing.T) {
	l, _ := openTestLedger(t)
	addTx(t, l, core.Income, "salary", "", "3000", date(2025, time.January, 5))
	addTx(t, l, core.Expense, "food", "", "300", date(2025, time.January, 15))
	addTx(t, l, core.Expense, core.CategoryManualSavings, "", "200", date(2025, time.January, 20))
	addTx(t, l, core.Expense, "housing", "", "1200", date(2024, time.December, 1))

	now := date(2025, time.January, 28)
	points := l.ChartSeries(3, now)
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}

	wantLabels := []string{"Nov 24", "Dec 24", "Jan 25"}
	for i, p := range points {
		if p.Label != wantLabels[i] {
			t.Fatalf("point %d label = %q, want %q", i, p.Label, wantLabels[i])
		}
	}
	if !points[0].Income.IsZero() || !points[0].Expenses.IsZero() {
		t.Fatalf("empty month must be zeroed, got %+v", points[0])
	}
	if !points[1].Expenses.Equal(money(t, "1200")) {
		t.Fatalf("Dec expenses = %s, want 1200", points[1].Expenses)
	}
	// Savings exclusion applies to the chart's expense sums too.
	if !points[2].Expenses.Equal(money(t, "300")) {
		t.Fatalf("Jan expenses = %s, want 300", points[2].Expenses)
	}
	if !points[2].Income.Equal(money(t, "3000")) {
		t.Fatalf("Jan income = %s, want 3000", points[2].Income)
	}
}

func TestChartSeriesYearBoundaryLabels(t *testing.T) {
	l, _ := openTestLedger(t)
	points := l.ChartSeries(6, date(2025, time.February, 10))
	want := []string{"Sep 24", "Oct 24", "Nov 24", "Dec 24", "Jan 25", "Feb 25"}
	for i, p := range points {
		if p.Label != want[i] {
			t.Fatalf("point %d label = %q, want %q", i, p.Label, want[i])
		}
	}
}

func TestCategoryBreakdown(t *testing.T) {
	l, _ := openTestLedger(t)
	addTx(t, l, core.Income, "salary", "", "3000", date(2024, time.March, 5))
	addTx(t, l, core.Income, "freelance", "", "500", date(2024, time.March, 8))
	addTx(t, l, core.Expense, "housing", "", "1200", date(2024, time.March, 1))
	addTx(t, l, core.Expense, "food", "", "150", date(2024, time.March, 9))
	addTx(t, l, core.Expense, "food", "", "50", date(2024, time.March, 15))
	addTx(t, l, core.Expense, core.CategoryManualSavings, "", "400", date(2024, time.March, 10))
	addTx(t, l, core.Expense, core.CategoryAutoSavings, "", "100", date(2024, time.February, 29))

	b := l.CategoryBreakdown(time.March, 2024)

	if len(b.IncomeByCategory) != 2 {
		t.Fatalf("expected 2 income categories, got %d", len(b.IncomeByCategory))
	}
	if b.IncomeByCategory[0].Category != "salary" {
		t.Fatalf("largest income category first, got %q", b.IncomeByCategory[0].Category)
	}

	if len(b.ExpenseByCategory) != 2 {
		t.Fatalf("expected 2 operational expense categories, got %d", len(b.ExpenseByCategory))
	}
	if b.ExpenseByCategory[0].Category != "housing" || b.ExpenseByCategory[1].Category != "food" {
		t.Fatalf("unexpected expense ordering: %+v", b.ExpenseByCategory)
	}
	if !b.ExpenseByCategory[1].Amount.Equal(money(t, "200")) {
		t.Fatalf("food sum = %s, want 200", b.ExpenseByCategory[1].Amount)
	}

	if !b.TotalOperationalExpenses.Equal(money(t, "1400")) {
		t.Fatalf("operational expenses = %s, want 1400", b.TotalOperationalExpenses)
	}
	if !b.NetOperationalBalance.Equal(money(t, "2100")) {
		t.Fatalf("net operational balance = %s, want 2100", b.NetOperationalBalance)
	}
}

func TestCategoryBreakdownTieOrder(t *testing.T) {
	// Equal amounts fall back to registry definition order: food before
	// transport.
	l, _ := openTestLedger(t)
	addTx(t, l, core.Expense, "transport", "", "100", date(2024, time.June, 2))
	addTx(t, l, core.Expense, "food", "", "100", date(2024, time.June, 3))

	b := l.CategoryBreakdown(time.June, 2024)
	if len(b.ExpenseByCategory) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(b.ExpenseByCategory))
	}
	if b.ExpenseByCategory[0].Category != "food" {
		t.Fatalf("tie must break by definition order, got %q first", b.ExpenseByCategory[0].Category)
	}
}

func TestCategoryBreakdownEmptyMonth(t *testing.T) {
	l, _ := openTestLedger(t)
	b := l.CategoryBreakdown(time.July, 2024)
	if len(b.IncomeByCategory) != 0 || len(b.ExpenseByCategory) != 0 {
		t.Fatalf("expected empty breakdown, got %+v", b)
	}
	if !b.TotalIncome.IsZero() || !b.TotalOperationalExpenses.IsZero() {
		t.Fatalf("expected zero totals, got %+v", b)
	}
}

func TestSavingsSummary(t *testing.T) {
	l, _ := openTestLedger(t)
	addTx(t, l, core.Expense, core.CategoryManualSavings, "", "400", date(2024, time.March, 10))
	addTx(t, l, core.Expense, core.CategoryAutoSavings, "", "250", date(2024, time.February, 29))
	addTx(t, l, core.Expense, core.CategoryManualSavings, "", "100", date(2024, time.January, 5))
	addTx(t, l, core.Expense, "food", "", "30", date(2024, time.March, 12))
	addTx(t, l, core.Income, "salary", "", "3000", date(2024, time.March, 1))

	s := l.SavingsSummary()
	if !s.ManualContributions.Equal(money(t, "500")) {
		t.Fatalf("manual = %s, want 500", s.ManualContributions)
	}
	if !s.AutomaticContributions.Equal(money(t, "250")) {
		t.Fatalf("automatic = %s, want 250", s.AutomaticContributions)
	}
	if !s.TotalSavings.Equal(money(t, "750")) {
		t.Fatalf("total = %s, want 750", s.TotalSavings)
	}
	if len(s.History) != 3 {
		t.Fatalf("expected 3 history entries, got %d", len(s.History))
	}
	for i := 0; i < len(s.History)-1; i++ {
		if s.History[i].Date.Before(s.History[i+1].Date) {
			t.Fatalf("history out of order at %d", i)
		}
	}
}

func TestSynchronizeFixedCostsIdempotent(t *testing.T) {
	l, _ := openTestLedger(t)
	fixed := []core.FixedCostItem{
		{ID: "fc-rent", UserID: "user-1", Category: "housing", Description: "Rent", Amount: money(t, "1200")},
		{ID: "fc-gym", UserID: "user-1", Category: "health", Description: "Gym", Amount: money(t, "45")},
	}

	created, err := l.SynchronizeFixedCosts(context.Background(), fixed, 4, 2024)
	if err != nil {
		t.Fatalf("synchronize: %v", err)
	}
	if created != 2 {
		t.Fatalf("expected 2 created, got %d", created)
	}

	created, err = l.SynchronizeFixedCosts(context.Background(), fixed, 4, 2024)
	if err != nil {
		t.Fatalf("second synchronize: %v", err)
	}
	if created != 0 {
		t.Fatalf("second run must create nothing, got %d", created)
	}

	var rent []core.Transaction
	for _, tx := range l.Transactions() {
		if tx.Description == "Fixed: Rent" {
			rent = append(rent, tx)
		}
	}
	if len(rent) != 1 {
		t.Fatalf("expected exactly one rent entry, got %d", len(rent))
	}
	got := rent[0]
	if !got.Amount.Equal(money(t, "1200")) {
		t.Fatalf("rent amount = %s, want 1200", got.Amount)
	}
	if !got.Date.Equal(date(2024, time.April, 1)) {
		t.Fatalf("rent date = %v, want 2024-04-01", got.Date)
	}
	if got.SourceFixedCostID != "fc-rent" {
		t.Fatalf("sourceFixedCostId = %q, want fc-rent", got.SourceFixedCostID)
	}
	if got.ID != core.FixedCostEntryID("fc-rent", 2024, time.April) {
		t.Fatalf("unexpected deterministic id %q", got.ID)
	}
}

func TestSynchronizeFixedCostsSeparateMonths(t *testing.T) {
	l, _ := openTestLedger(t)
	fixed := []core.FixedCostItem{
		{ID: "fc-rent", Category: "housing", Description: "Rent", Amount: money(t, "1200")},
	}

	if _, err := l.SynchronizeFixedCosts(context.Background(), fixed, 4, 2024); err != nil {
		t.Fatal(err)
	}
	if _, err := l.SynchronizeFixedCosts(context.Background(), fixed, 5, 2024); err != nil {
		t.Fatal(err)
	}
	if len(l.Transactions()) != 2 {
		t.Fatalf("distinct months must each get an entry, got %d", len(l.Transactions()))
	}
}

func TestProcessAutomaticSavingsBooksSurplus(t *testing.T) {
	l, _ := openTestLedger(t)
	addTx(t, l, core.Income, "salary", "", "4000", date(2024, time.March, 1))
	addTx(t, l, core.Expense, "housing", "", "3500", date(2024, time.March, 2))

	now := date(2024, time.April, 15)
	created, err := l.ProcessAutomaticSavings(context.Background(), 3, 2024, now)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if !created {
		t.Fatal("expected a transfer to be booked")
	}

	tx, ok := findByID(l, core.AutoSavingsEntryID(2024, time.March))
	if !ok {
		t.Fatal("expected deterministic auto-savings entry")
	}
	if tx.Category != core.CategoryAutoSavings {
		t.Fatalf("category = %q", tx.Category)
	}
	if !tx.Amount.Equal(money(t, "500")) {
		t.Fatalf("amount = %s, want 500", tx.Amount)
	}
	if !tx.Date.Equal(date(2024, time.March, 31)) {
		t.Fatalf("date = %v, want last day of March", tx.Date)
	}
	if tx.Description != "Auto-savings: March 2024 surplus" {
		t.Fatalf("description = %q", tx.Description)
	}
}

func TestProcessAutomaticSavingsIdempotent(t *testing.T) {
	l, _ := openTestLedger(t)
	addTx(t, l, core.Income, "salary", "", "4000", date(2024, time.March, 1))
	addTx(t, l, core.Expense, "housing", "", "3500", date(2024, time.March, 2))

	now := date(2024, time.April, 15)
	for i := 0; i < 3; i++ {
		if _, err := l.ProcessAutomaticSavings(context.Background(), 3, 2024, now); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}

	count := 0
	for _, tx := range l.Transactions() {
		if tx.Category == core.CategoryAutoSavings {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one transfer, got %d", count)
	}
}

func TestProcessAutomaticSavingsBlockedByOccupiedID(t *testing.T) {
	l, _ := openTestLedger(t)
	addTx(t, l, core.Income, "salary", "", "4000", date(2024, time.March, 1))

	// Any transaction holding the derived ID blocks the booking, even one
	// that is not a savings transfer.
	id := core.AutoSavingsEntryID(2024, time.March)
	if _, _, err := l.AddSystemEntry(context.Background(), core.TransactionForm{
		Type:        core.Expense,
		Category:    "food",
		Description: "Groceries",
		Amount:      money(t, "80"),
		Date:        date(2024, time.March, 10),
	}, id); err != nil {
		t.Fatalf("seed entry: %v", err)
	}

	created, err := l.ProcessAutomaticSavings(context.Background(), 3, 2024, date(2024, time.April, 15))
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if created {
		t.Fatal("occupied ID must block the transfer")
	}
	for _, tx := range l.Transactions() {
		if tx.Category == core.CategoryAutoSavings {
			t.Fatalf("unexpected transfer booked: %+v", tx)
		}
	}
}

func TestProcessAutomaticSavingsCurrentMonthGuard(t *testing.T) {
	l, _ := openTestLedger(t)
	addTx(t, l, core.Income, "salary", "", "9000", date(2024, time.April, 1))

	now := date(2024, time.April, 20)
	created, err := l.ProcessAutomaticSavings(context.Background(), 4, 2024, now)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if created {
		t.Fatal("current month must never be processed")
	}
	// Future months neither.
	created, err = l.ProcessAutomaticSavings(context.Background(), 5, 2024, now)
	if err != nil || created {
		t.Fatalf("future month must be skipped, created=%v err=%v", created, err)
	}
}

func TestProcessAutomaticSavingsNoSurplus(t *testing.T) {
	l, _ := openTestLedger(t)
	addTx(t, l, core.Income, "salary", "", "2000", date(2024, time.March, 1))
	addTx(t, l, core.Expense, "housing", "", "2500", date(2024, time.March, 2))

	created, err := l.ProcessAutomaticSavings(context.Background(), 3, 2024, date(2024, time.April, 15))
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if created {
		t.Fatal("deficit month must book nothing")
	}
	if len(l.Transactions()) != 2 {
		t.Fatalf("expected no new transactions, got %d", len(l.Transactions()))
	}
}

func TestProcessAutomaticSavingsExcludesSavingsFromSurplus(t *testing.T) {
	// Manual savings in the target month must not shrink the surplus; a
	// prior auto transfer must not either.
	l, _ := openTestLedger(t)
	addTx(t, l, core.Income, "salary", "", "3000", date(2024, time.March, 1))
	addTx(t, l, core.Expense, "housing", "", "2000", date(2024, time.March, 2))
	addTx(t, l, core.Expense, core.CategoryManualSavings, "", "800", date(2024, time.March, 5))

	created, err := l.ProcessAutomaticSavings(context.Background(), 3, 2024, date(2024, time.April, 1))
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if !created {
		t.Fatal("expected transfer despite manual savings")
	}
	tx, _ := findByID(l, core.AutoSavingsEntryID(2024, time.March))
	if !tx.Amount.Equal(money(t, "1000")) {
		t.Fatalf("surplus = %s, want 1000 (manual savings excluded)", tx.Amount)
	}
}

func TestOpenResortsUnorderedLoad(t *testing.T) {
	store := newMemStore()
	store.collections["user-1"] = []core.Transaction{
		{ID: "a", UserID: "user-1", Type: core.Expense, Category: "food", Amount: mustMoney("10"), Date: date(2024, time.March, 1)},
		{ID: "b", UserID: "user-1", Type: core.Expense, Category: "food", Amount: mustMoney("10"), Date: date(2024, time.March, 20)},
		{ID: "c", UserID: "user-1", Type: core.Expense, Category: "food", Amount: mustMoney("10"), Date: date(2024, time.March, 10)},
	}

	l, err := Open(context.Background(), store, "user-1")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	txs := l.Transactions()
	if txs[0].ID != "b" || txs[1].ID != "c" || txs[2].ID != "a" {
		t.Fatalf("expected b,c,a order, got %s,%s,%s", txs[0].ID, txs[1].ID, txs[2].ID)
	}
}

func findByID(l *Ledger, id string) (core.Transaction, bool) {
	for _, tx := range l.Transactions() {
		if tx.ID == id {
			return tx, true
		}
	}
	return core.Transaction{}, false
}

func mustMoney(s string) core.Money {
	m, err := core.ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}
