package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Deterministic IDs double as idempotency keys for system-generated entries:
// re-applying a fixed cost or re-processing auto-savings for a month an
// entry already exists for collides on ID and is dropped. The formats below
// are stable; other components may rely on them for lookups.

// NewTransactionID returns a fresh random ID for a user-entered transaction.
func NewTransactionID() string {
	return uuid.NewString()
}

// FixedCostEntryID derives the ID for the transaction generated from a fixed
// cost in a given calendar month, e.g. "fc-8f1c...-2024-04".
func FixedCostEntryID(fixedCostID string, year int, month time.Month) string {
	return fmt.Sprintf("fc-%s-%04d-%02d", fixedCostID, year, int(month))
}

// AutoSavingsEntryID derives the ID for the automatic savings transfer of a
// given calendar month, e.g. "auto-save-2024-03". There is at most one per
// month, independent of any fixed cost.
func AutoSavingsEntryID(year int, month time.Month) string {
	return fmt.Sprintf("auto-save-%04d-%02d", year, int(month))
}
