package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"ledgerlite/internal/core"
)

// SynchronizeFixedCosts materializes each fixed cost as a transaction dated
// the 1st of (month, year). Idempotence rides entirely on the deterministic
// per-month entry ID: re-running for the same month is safe and creates no
// duplicates. Fixed costs removed from the input list are never cleaned up
// retroactively, history is immutable.
func (l *Ledger) SynchronizeFixedCosts(ctx context.Context, items []core.FixedCostItem, month int, year int) (int, error) {
	created := 0
	for _, fc := range items {
		form := core.TransactionForm{
			Type:              core.Expense,
			Category:          fc.Category,
			Description:       "Fixed: " + fc.Description,
			Amount:            fc.Amount,
			Date:              core.MonthStart(year, monthOf(month)),
			SourceFixedCostID: fc.ID,
		}
		_, ok, err := l.AddSystemEntry(ctx, form, "")
		if err != nil {
			return created, fmt.Errorf("apply fixed cost %s: %w", fc.ID, err)
		}
		if ok {
			created++
			slog.InfoContext(ctx, "Applied fixed cost",
				"fixed_cost_id", fc.ID,
				"description", fc.Description,
				"amount", fc.Amount.String(),
				"year", year,
				"month", month)
		}
	}
	return created, nil
}
