package core

import (
	"fmt"
	"sort"
)

// AggregateMode selects how the aggregator treats malformed records.
// Dashboards prefer Lenient (skip and count the anomaly); exports prefer
// Strict (fail the whole call) since a partially wrong document is worse
// than no document.
type AggregateMode int

const (
	Lenient AggregateMode = iota
	Strict
)

type (
	// MonthPoint is one entry of the monthly trend series: the income and
	// expense sums for a single calendar month that had transactions.
	MonthPoint struct {
		Year    int
		Month   int // 1-12
		Income  Money
		Expense Money
	}

	// Summary is the derived aggregate over one owner's filtered
	// transaction set. It is recomputed on every request and never
	// persisted: a pure function of (transactions, filter parameters).
	Summary struct {
		TotalIncome      Money
		TotalExpense     Money
		Balance          Money
		TransactionCount int
		// Per-type category breakdowns, normalized through the registry.
		// Only categories with at least one matching transaction appear.
		ExpenseByCategory map[string]Money
		IncomeByCategory  map[string]Money
		// MonthlyTrend is sparse and chronologically ascending: one entry
		// per (year, month) that had transactions, no gap synthesis.
		MonthlyTrend []MonthPoint
		// Skipped counts malformed records dropped in Lenient mode.
		Skipped int
	}
)

type monthKey struct {
	year  int
	month int
}

// Aggregate folds an already-filtered transaction slice into a Summary in a
// single pass. Running sums are kept per type, per (type, category) and per
// (year, month, type); the balance is computed once at the end rather than
// accumulated, so it is exact in integer cents for any input.
func Aggregate(txs []Transaction, mode AggregateMode) (Summary, error) {
	s := Summary{
		ExpenseByCategory: make(map[string]Money),
		IncomeByCategory:  make(map[string]Money),
	}
	months := make(map[monthKey]*MonthPoint)

	for i, t := range txs {
		if !t.Type.Valid() || t.Amount.Cents < 0 {
			if mode == Strict {
				return Summary{}, fmt.Errorf("malformed transaction %q (record %d): type=%q amount_cents=%d", t.ID, i, t.Type, t.Amount.Cents)
			}
			s.Skipped++
			continue
		}

		cat := NormalizeCategory(t.Type, t.Category)
		key := monthKey{year: t.Date.Year(), month: int(t.Date.Month())}
		mp, ok := months[key]
		if !ok {
			mp = &MonthPoint{Year: key.year, Month: key.month}
			months[key] = mp
		}

		switch t.Type {
		case Income:
			s.TotalIncome.Cents += t.Amount.Cents
			s.IncomeByCategory[cat] = Money{Cents: s.IncomeByCategory[cat].Cents + t.Amount.Cents}
			mp.Income.Cents += t.Amount.Cents
		case Expense:
			s.TotalExpense.Cents += t.Amount.Cents
			s.ExpenseByCategory[cat] = Money{Cents: s.ExpenseByCategory[cat].Cents + t.Amount.Cents}
			mp.Expense.Cents += t.Amount.Cents
		}
		s.TransactionCount++
	}

	s.Balance = Money{Cents: s.TotalIncome.Cents - s.TotalExpense.Cents}

	s.MonthlyTrend = make([]MonthPoint, 0, len(months))
	for _, mp := range months {
		s.MonthlyTrend = append(s.MonthlyTrend, *mp)
	}
	sort.Slice(s.MonthlyTrend, func(i, j int) bool {
		a, b := s.MonthlyTrend[i], s.MonthlyTrend[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.Month < b.Month
	})

	return s, nil
}

// Merge combines two partial summaries produced over disjoint partitions of
// the same transaction set. Sums and breakdowns are associative and
// commutative, so callers may split a large aggregation across workers and
// merge the parts; the trend's chronological sort happens once here.
func Merge(a, b Summary) Summary {
	out := Summary{
		TotalIncome:       Money{Cents: a.TotalIncome.Cents + b.TotalIncome.Cents},
		TotalExpense:      Money{Cents: a.TotalExpense.Cents + b.TotalExpense.Cents},
		TransactionCount:  a.TransactionCount + b.TransactionCount,
		Skipped:           a.Skipped + b.Skipped,
		ExpenseByCategory: mergeBreakdown(a.ExpenseByCategory, b.ExpenseByCategory),
		IncomeByCategory:  mergeBreakdown(a.IncomeByCategory, b.IncomeByCategory),
	}
	out.Balance = Money{Cents: out.TotalIncome.Cents - out.TotalExpense.Cents}

	months := make(map[monthKey]*MonthPoint)
	for _, src := range [][]MonthPoint{a.MonthlyTrend, b.MonthlyTrend} {
		for _, p := range src {
			key := monthKey{year: p.Year, month: p.Month}
			mp, ok := months[key]
			if !ok {
				mp = &MonthPoint{Year: p.Year, Month: p.Month}
				months[key] = mp
			}
			mp.Income.Cents += p.Income.Cents
			mp.Expense.Cents += p.Expense.Cents
		}
	}
	out.MonthlyTrend = make([]MonthPoint, 0, len(months))
	for _, mp := range months {
		out.MonthlyTrend = append(out.MonthlyTrend, *mp)
	}
	sort.Slice(out.MonthlyTrend, func(i, j int) bool {
		x, y := out.MonthlyTrend[i], out.MonthlyTrend[j]
		if x.Year != y.Year {
			return x.Year < y.Year
		}
		return x.Month < y.Month
	})
	return out
}

func mergeBreakdown(a, b map[string]Money) map[string]Money {
	out := make(map[string]Money, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = Money{Cents: out[k].Cents + v.Cents}
	}
	return out
}
