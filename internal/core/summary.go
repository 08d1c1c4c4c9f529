package core

import "sort"

// MonthKey identifies a calendar month independent of day.
type MonthKey struct {
	Year  int
	Month int // 1-12
}

// MonthlySummary holds the income and expense totals for one month.
type MonthlySummary struct {
	IncomeCents  int64
	ExpenseCents int64
}

// SavingsCents returns income minus expense for the month.
func (s MonthlySummary) SavingsCents() int64 {
	return s.IncomeCents - s.ExpenseCents
}

// AggregateByMonth folds transactions into per-month summaries. The fold is
// order-agnostic and produces one entry per month that appears in the input;
// months without transactions are absent. Ordering for display is the
// caller's concern.
func AggregateByMonth(transactions []Transaction) map[MonthKey]MonthlySummary {
	stats := make(map[MonthKey]MonthlySummary)
	for _, tx := range transactions {
		key := MonthKey{Year: tx.Date.Year(), Month: int(tx.Date.Month())}
		s := stats[key]
		switch tx.Type {
		case Income:
			s.IncomeCents += tx.Amount.Cents
		case Expense:
			s.ExpenseCents += tx.Amount.Cents
		}
		stats[key] = s
	}
	return stats
}

// SortMonthsDesc returns the keys of a monthly aggregate newest-first, the
// order the dashboard presents them in.
func SortMonthsDesc(stats map[MonthKey]MonthlySummary) []MonthKey {
	keys := make([]MonthKey, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Year != keys[j].Year {
			return keys[i].Year > keys[j].Year
		}
		return keys[i].Month > keys[j].Month
	})
	return keys
}
