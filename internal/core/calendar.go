package core

import (
	"fmt"
	"time"
)

// Calendar-month helpers. All ledger dates are calendar-date granularity in
// UTC; intra-day time carries no meaning.

// MonthStart returns midnight UTC on the 1st of the given month.
func MonthStart(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

// MonthEnd returns the last representable instant of the given month, so the
// window [MonthStart, MonthEnd] is inclusive of entries dated the last day.
func MonthEnd(year int, month time.Month) time.Time {
	return MonthStart(year, month).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// LastDayOfMonth returns midnight UTC on the final day of the given month.
func LastDayOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
}

// InMonth reports whether ts falls within the inclusive calendar-month
// window for (year, month).
func InMonth(ts time.Time, year int, month time.Month) bool {
	start := MonthStart(year, month)
	end := MonthEnd(year, month)
	return !ts.Before(start) && !ts.After(end)
}

// MonthLabel formats a chart label as short month name plus 2-digit year,
// e.g. "Jan 25".
func MonthLabel(year int, month time.Month) string {
	return fmt.Sprintf("%s %02d", month.String()[:3], year%100)
}

// MonthTitle formats a month for descriptions, e.g. "March 2024".
func MonthTitle(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", month.String(), year)
}
