package core

import (
	"testing"
	"time"
)

func TestTransactionFormValidate(t *testing.T) {
	good := TransactionForm{
		Type:     Expense,
		Category: "food",
		Amount:   mustMoney(t, "12.50"),
		Date:     time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []TransactionForm{
		{Type: "transfer", Category: "food", Amount: mustMoney(t, "1"), Date: good.Date},
		{Type: Expense, Category: "", Amount: mustMoney(t, "1"), Date: good.Date},
		{Type: Expense, Category: "food", Amount: MoneyZero(), Date: good.Date},
		{Type: Expense, Category: "food", Amount: mustMoney(t, "1")},
	}
	for i, f := range bads {
		if err := f.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestFixedCostFormValidate(t *testing.T) {
	good := FixedCostForm{Category: "housing", Description: "Rent", Amount: mustMoney(t, "1200")}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []FixedCostForm{
		{Category: "", Description: "Rent", Amount: mustMoney(t, "1")},
		{Category: "housing", Description: "  ", Amount: mustMoney(t, "1")},
		{Category: "housing", Description: "Rent", Amount: MoneyZero()},
	}
	for i, f := range bads {
		if err := f.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func mustMoney(t *testing.T, s string) Money {
	t.Helper()
	m, err := ParseMoney(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return m
}
