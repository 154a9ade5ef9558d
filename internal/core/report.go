package core

// Derived report shapes. These are computed from the transaction list on
// every query, never stored.

// MonthlySummary holds totals for one calendar month. TotalExpenses covers
// operational spend only: savings-transfer categories are excluded.
type MonthlySummary struct {
	TotalIncome   Money `json:"totalIncome"`
	TotalExpenses Money `json:"totalExpenses"`
	NetBalance    Money `json:"netBalance"`
}

// ChartDataPoint is one month of a trailing chart series.
type ChartDataPoint struct {
	Label    string `json:"label"`
	Income   Money  `json:"income"`
	Expenses Money  `json:"expenses"`
}

// CategoryAmount is an amount aggregated under one category key.
type CategoryAmount struct {
	Category string `json:"category"`
	Label    string `json:"label"`
	Amount   Money  `json:"amount"`
}

// CategoryBreakdown partitions one month's activity by category. Categories
// with zero activity are omitted; entries are sorted by descending amount
// with ties broken by registry definition order.
type CategoryBreakdown struct {
	IncomeByCategory         []CategoryAmount `json:"incomeByCategory"`
	ExpenseByCategory        []CategoryAmount `json:"expenseByCategory"`
	TotalIncome              Money            `json:"totalIncome"`
	TotalOperationalExpenses Money            `json:"totalOperationalExpenses"`
	NetOperationalBalance    Money            `json:"netOperationalBalance"`
}

// SavingsSummary reports accumulated savings across the whole ledger.
type SavingsSummary struct {
	TotalSavings           Money         `json:"totalSavings"`
	ManualContributions    Money         `json:"manualContributions"`
	AutomaticContributions Money         `json:"automaticContributions"`
	History                []Transaction `json:"history"`
}
