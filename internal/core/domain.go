package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

type (
	TransactionType string

	// Transaction is an immutable ledger entry. Amount is always a positive
	// magnitude; the net effect (adds or subtracts) is derived from Type at
	// aggregation time.
	Transaction struct {
		ID                string          `json:"id"`
		UserID            string          `json:"user_id"`
		Type              TransactionType `json:"type"`
		Category          string          `json:"category"`
		Description       string          `json:"description"`
		Amount            Money           `json:"amount"`
		Date              time.Time       `json:"date"`
		SourceFixedCostID string          `json:"sourceFixedCostId,omitempty"`
	}

	// TransactionForm is the caller-supplied input for creating a transaction.
	// ID assignment and default descriptions are the engine's responsibility.
	TransactionForm struct {
		Type              TransactionType `json:"type"`
		Category          string          `json:"category"`
		Description       string          `json:"description"`
		Amount            Money           `json:"amount"`
		Date              time.Time       `json:"date"`
		SourceFixedCostID string          `json:"sourceFixedCostId,omitempty"`
	}

	// FixedCostItem is a recurring-expense template. It has no date: it
	// recurs every calendar month until deleted. Deleting a fixed cost never
	// touches transactions already generated from it.
	FixedCostItem struct {
		ID          string `json:"id"`
		UserID      string `json:"user_id"`
		Category    string `json:"category"`
		Description string `json:"description"`
		Amount      Money  `json:"amount"`
	}

	// FixedCostForm is the caller-supplied input for creating a fixed cost.
	FixedCostForm struct {
		Category    string `json:"category"`
		Description string `json:"description"`
		Amount      Money  `json:"amount"`
	}
)

var (
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyCategory    = errors.New("empty category")
	ErrEmptyDescription = errors.New("empty description")
	ErrZeroDate         = errors.New("date cannot be zero")
	ErrDescriptionLong  = errors.New("description too long (max 200 characters)")
)

func (t TransactionType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidType
	}
}

func (f TransactionForm) Validate() error {
	if err := f.Type.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(f.Category) == "" {
		return ErrEmptyCategory
	}
	if err := f.Amount.Validate(); err != nil {
		return err
	}
	if f.Date.IsZero() {
		return ErrZeroDate
	}
	if len(f.Description) > 200 {
		return ErrDescriptionLong
	}
	return nil
}

func (f FixedCostForm) Validate() error {
	if strings.TrimSpace(f.Category) == "" {
		return ErrEmptyCategory
	}
	if len(strings.TrimSpace(f.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(f.Description) > 200 {
		return ErrDescriptionLong
	}
	if err := f.Amount.Validate(); err != nil {
		return err
	}
	return nil
}
