package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ledgerlite/internal/core"
)

// ProcessAutomaticSavings books the prior-month surplus as a transfer to
// savings, at most once per calendar month. Only months strictly before the
// month of now are processed: the still-open current month must not be
// distorted. A non-positive surplus is a normal, silent outcome.
//
// The surplus sum excludes savings-transfer categories from the expense
// side, so savings are never counted against themselves.
func (l *Ledger) ProcessAutomaticSavings(ctx context.Context, month int, year int, now time.Time) (bool, error) {
	target := core.MonthStart(year, monthOf(month))
	current := core.MonthStart(now.Year(), now.Month())
	if !target.Before(current) {
		return false, nil
	}

	// Occupancy of the derived ID alone blocks the booking, whatever
	// transaction holds it.
	id := core.AutoSavingsEntryID(year, monthOf(month))
	if _, ok := l.byID(id); ok {
		return false, nil
	}

	surplus := l.Summary(monthOf(month), year).NetBalance
	if !surplus.IsPositive() {
		return false, nil
	}

	form := core.TransactionForm{
		Type:        core.Expense,
		Category:    core.CategoryAutoSavings,
		Description: fmt.Sprintf("Auto-savings: %s surplus", core.MonthTitle(year, monthOf(month))),
		Amount:      surplus,
		Date:        core.LastDayOfMonth(year, monthOf(month)),
	}
	_, created, err := l.AddSystemEntry(ctx, form, id)
	if err != nil {
		return false, fmt.Errorf("book automatic savings: %w", err)
	}
	if created {
		slog.InfoContext(ctx, "Booked automatic savings transfer",
			"year", year,
			"month", month,
			"surplus", surplus.String())
	}
	return created, nil
}

func monthOf(m int) time.Month {
	return time.Month(m)
}
