package ledger

import (
	"sort"
	"time"

	"ledgerlite/internal/core"
)

// Aggregation queries. All of them are pure functions of the loaded
// transaction list: no side effects, deterministic, and total over any
// well-typed input including the empty list.

// Summary computes the totals for one calendar month. Savings-transfer
// categories never count toward TotalExpenses: they are transfers, not
// operational spend.
func (l *Ledger) Summary(month time.Month, year int) core.MonthlySummary {
	income := core.MoneyZero()
	expenses := core.MoneyZero()

	for _, t := range l.transactions {
		if !core.InMonth(t.Date, year, month) {
			continue
		}
		switch {
		case t.Type == core.Income:
			income = income.Add(t.Amount)
		case core.IsSavingsCategory(t.Category):
			// transfer to savings, not spend
		default:
			expenses = expenses.Add(t.Amount)
		}
	}

	return core.MonthlySummary{
		TotalIncome:   income,
		TotalExpenses: expenses,
		NetBalance:    income.Sub(expenses),
	}
}

// ChartSeries returns one data point per month for the trailing numMonths
// calendar months ending at the month of now, oldest first. The series is
// recomputed in full from the current list on every call.
func (l *Ledger) ChartSeries(numMonths int, now time.Time) []core.ChartDataPoint {
	if numMonths <= 0 {
		return nil
	}
	points := make([]core.ChartDataPoint, 0, numMonths)
	for i := numMonths - 1; i >= 0; i-- {
		// Anchoring on the 1st lets Date normalize month underflow safely.
		target := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		s := l.Summary(target.Month(), target.Year())
		points = append(points, core.ChartDataPoint{
			Label:    core.MonthLabel(target.Year(), target.Month()),
			Income:   s.TotalIncome,
			Expenses: s.TotalExpenses,
		})
	}
	return points
}

// CategoryBreakdown partitions one month's activity by category. Income is
// tracked for recognized income categories only; expenses cover operational
// categories (savings transfers excluded), with unrecognized keys passed
// through as opaque grouping labels.
func (l *Ledger) CategoryBreakdown(month time.Month, year int) core.CategoryBreakdown {
	incomeSums := make(map[string]core.Money)
	expenseSums := make(map[string]core.Money)
	incomeOrder := make([]string, 0)
	expenseOrder := make([]string, 0)

	totalIncome := core.MoneyZero()
	totalExpenses := core.MoneyZero()

	for _, t := range l.transactions {
		if !core.InMonth(t.Date, year, month) {
			continue
		}
		switch {
		case t.Type == core.Income:
			cat, ok := core.LookupCategory(t.Category)
			if !ok || cat.Type != core.Income {
				continue
			}
			if _, seen := incomeSums[t.Category]; !seen {
				incomeOrder = append(incomeOrder, t.Category)
			}
			incomeSums[t.Category] = incomeSums[t.Category].Add(t.Amount)
			totalIncome = totalIncome.Add(t.Amount)
		case core.IsSavingsCategory(t.Category):
			// excluded from operational breakdown
		default:
			if _, seen := expenseSums[t.Category]; !seen {
				expenseOrder = append(expenseOrder, t.Category)
			}
			expenseSums[t.Category] = expenseSums[t.Category].Add(t.Amount)
			totalExpenses = totalExpenses.Add(t.Amount)
		}
	}

	return core.CategoryBreakdown{
		IncomeByCategory:         rankedAmounts(incomeSums, incomeOrder),
		ExpenseByCategory:        rankedAmounts(expenseSums, expenseOrder),
		TotalIncome:              totalIncome,
		TotalOperationalExpenses: totalExpenses,
		NetOperationalBalance:    totalIncome.Sub(totalExpenses),
	}
}

// rankedAmounts builds the per-category slice: zero-activity categories are
// already absent, ordering is descending by amount with ties broken by
// registry definition order via a stable sort.
func rankedAmounts(sums map[string]core.Money, order []string) []core.CategoryAmount {
	out := make([]core.CategoryAmount, 0, len(sums))
	sort.SliceStable(order, func(i, j int) bool {
		return core.CategoryRank(order[i]) < core.CategoryRank(order[j])
	})
	for _, key := range order {
		out = append(out, core.CategoryAmount{
			Category: key,
			Label:    core.CategoryLabel(key),
			Amount:   sums[key],
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.Decimal().GreaterThan(out[j].Amount.Decimal())
	})
	return out
}

// SavingsSummary scans the whole ledger, no month filter: every expense
// tagged manual_savings or automatic_savings_transfer contributes, and the
// matching transactions come back as history, most recent first.
func (l *Ledger) SavingsSummary() core.SavingsSummary {
	manual := core.MoneyZero()
	automatic := core.MoneyZero()
	history := make([]core.Transaction, 0)

	for _, t := range l.transactions {
		if t.Type != core.Expense {
			continue
		}
		switch t.Category {
		case core.CategoryManualSavings:
			manual = manual.Add(t.Amount)
		case core.CategoryAutoSavings:
			automatic = automatic.Add(t.Amount)
		default:
			continue
		}
		history = append(history, t)
	}

	return core.SavingsSummary{
		TotalSavings:           manual.Add(automatic),
		ManualContributions:    manual,
		AutomaticContributions: automatic,
		History:                history,
	}
}
