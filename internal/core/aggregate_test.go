package core

import (
	"strings"
	"testing"
)

func TestAggregateScenario(t *testing.T) {
	// The canonical worked example: two expenses in Food & Dining across
	// two months plus one salary payment.
	txs := []Transaction{
		tx("e1", Expense, 5000, "Food & Dining", "2024-01-15"),
		tx("i1", Income, 200000, "Salary", "2024-01-01"),
		tx("e2", Expense, 3000, "Food & Dining", "2024-02-01"),
	}

	s, err := Aggregate(txs, Strict)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	if s.TotalIncome.Cents != 200000 {
		t.Fatalf("total income = %d, want 200000", s.TotalIncome.Cents)
	}
	if s.TotalExpense.Cents != 8000 {
		t.Fatalf("total expense = %d, want 8000", s.TotalExpense.Cents)
	}
	if s.Balance.Cents != 192000 {
		t.Fatalf("balance = %d, want 192000", s.Balance.Cents)
	}
	if s.TransactionCount != 3 {
		t.Fatalf("count = %d, want 3", s.TransactionCount)
	}
	if len(s.ExpenseByCategory) != 1 || s.ExpenseByCategory["Food & Dining"].Cents != 8000 {
		t.Fatalf("expense breakdown wrong: %+v", s.ExpenseByCategory)
	}
	if len(s.IncomeByCategory) != 1 || s.IncomeByCategory["Salary"].Cents != 200000 {
		t.Fatalf("income breakdown wrong: %+v", s.IncomeByCategory)
	}

	want := []MonthPoint{
		{Year: 2024, Month: 1, Income: Money{Cents: 200000}, Expense: Money{Cents: 5000}},
		{Year: 2024, Month: 2, Income: Money{Cents: 0}, Expense: Money{Cents: 3000}},
	}
	if len(s.MonthlyTrend) != len(want) {
		t.Fatalf("trend length = %d, want %d", len(s.MonthlyTrend), len(want))
	}
	for i := range want {
		if s.MonthlyTrend[i] != want[i] {
			t.Fatalf("trend[%d] = %+v, want %+v", i, s.MonthlyTrend[i], want[i])
		}
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	s, err := Aggregate(nil, Strict)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if s.TotalIncome.Cents != 0 || s.TotalExpense.Cents != 0 || s.Balance.Cents != 0 {
		t.Fatalf("empty input must zero all totals: %+v", s)
	}
	if s.TransactionCount != 0 || len(s.ExpenseByCategory) != 0 || len(s.MonthlyTrend) != 0 {
		t.Fatalf("empty input must yield empty breakdown and trend: %+v", s)
	}
}

func TestAggregateBreakdownSumsMatchTotals(t *testing.T) {
	txs := []Transaction{
		tx("e1", Expense, 1250, "Food & Dining", "2024-03-01"),
		tx("e2", Expense, 999, "Travel", "2024-03-05"),
		tx("e3", Expense, 321, "Totally Unknown", "2024-04-09"),
		tx("i1", Income, 5000, "Salary", "2024-03-02"),
		tx("i2", Income, 750, "Mystery Windfall", "2024-04-11"),
	}
	s, err := Aggregate(txs, Lenient)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	var expSum, incSum int64
	for _, v := range s.ExpenseByCategory {
		expSum += v.Cents
	}
	for _, v := range s.IncomeByCategory {
		incSum += v.Cents
	}
	if expSum != s.TotalExpense.Cents {
		t.Fatalf("expense breakdown sum %d != total %d", expSum, s.TotalExpense.Cents)
	}
	if incSum != s.TotalIncome.Cents {
		t.Fatalf("income breakdown sum %d != total %d", incSum, s.TotalIncome.Cents)
	}

	// Unregistered categories land in the sentinel bucket, still summed.
	if s.ExpenseByCategory[OtherCategory].Cents != 321 {
		t.Fatalf("unknown expense category not folded into %q: %+v", OtherCategory, s.ExpenseByCategory)
	}
	if s.IncomeByCategory[OtherCategory].Cents != 750 {
		t.Fatalf("unknown income category not folded into %q: %+v", OtherCategory, s.IncomeByCategory)
	}
}

func TestAggregateNegativeBalance(t *testing.T) {
	txs := []Transaction{
		tx("e1", Expense, 10000, "Shopping", "2024-01-01"),
		tx("i1", Income, 2500, "Gifts", "2024-01-02"),
	}
	s, err := Aggregate(txs, Strict)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if s.Balance.Cents != -7500 {
		t.Fatalf("balance = %d, want -7500", s.Balance.Cents)
	}
}

func TestAggregateTrendOrderingAndUniqueness(t *testing.T) {
	txs := []Transaction{
		tx("a", Expense, 100, "Shopping", "2024-03-10"),
		tx("b", Expense, 100, "Shopping", "2023-12-31"),
		tx("c", Expense, 100, "Shopping", "2024-01-05"),
		tx("d", Expense, 100, "Shopping", "2024-03-20"),
	}
	s, err := Aggregate(txs, Strict)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	seen := make(map[[2]int]bool)
	prev := MonthPoint{}
	for i, p := range s.MonthlyTrend {
		key := [2]int{p.Year, p.Month}
		if seen[key] {
			t.Fatalf("duplicate trend entry for %d-%02d", p.Year, p.Month)
		}
		seen[key] = true
		if i > 0 {
			if p.Year < prev.Year || (p.Year == prev.Year && p.Month <= prev.Month) {
				t.Fatalf("trend not strictly ascending at index %d: %+v", i, s.MonthlyTrend)
			}
		}
		prev = p
	}
	// March sums merge into a single point.
	if len(s.MonthlyTrend) != 3 {
		t.Fatalf("expected 3 months, got %d", len(s.MonthlyTrend))
	}
	if last := s.MonthlyTrend[2]; last.Expense.Cents != 200 {
		t.Fatalf("March expense sum = %d, want 200", last.Expense.Cents)
	}
}

func TestAggregateMalformedRecords(t *testing.T) {
	bad := Transaction{ID: "bad", Type: TxType("transfer"), Amount: Money{Cents: 100}, Category: "Shopping"}
	txs := []Transaction{
		tx("a", Expense, 100, "Shopping", "2024-01-01"),
		bad,
	}

	// Strict: fail the whole call, naming the record.
	if _, err := Aggregate(txs, Strict); err == nil {
		t.Fatal("strict mode should fail on a malformed record")
	} else if !strings.Contains(err.Error(), "bad") {
		t.Fatalf("error should identify the record: %v", err)
	}

	// Lenient: skip and count.
	s, err := Aggregate(txs, Lenient)
	if err != nil {
		t.Fatalf("lenient mode should not fail: %v", err)
	}
	if s.Skipped != 1 || s.TransactionCount != 1 {
		t.Fatalf("lenient skip accounting wrong: skipped=%d count=%d", s.Skipped, s.TransactionCount)
	}
	if s.TotalExpense.Cents != 100 {
		t.Fatalf("lenient totals wrong: %d", s.TotalExpense.Cents)
	}
}

func TestAggregateAfterCategoryFilter(t *testing.T) {
	txs := []Transaction{
		tx("a", Expense, 100, "Food & Dining", "2024-01-01"),
		tx("b", Expense, 200, "Travel", "2024-01-02"),
	}
	s, err := Aggregate(Filter(txs, Range{Category: "Food & Dining"}), Strict)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(s.ExpenseByCategory) != 1 {
		t.Fatalf("breakdown should contain only the filtered category: %+v", s.ExpenseByCategory)
	}
	if _, ok := s.ExpenseByCategory["Food & Dining"]; !ok {
		t.Fatalf("missing filtered category: %+v", s.ExpenseByCategory)
	}
}

func TestMergePartialSummaries(t *testing.T) {
	txs := []Transaction{
		tx("a", Expense, 100, "Shopping", "2024-01-01"),
		tx("b", Income, 500, "Salary", "2024-01-15"),
		tx("c", Expense, 300, "Travel", "2024-02-01"),
		tx("d", Expense, 50, "Shopping", "2024-02-10"),
	}
	whole, err := Aggregate(txs, Strict)
	if err != nil {
		t.Fatalf("aggregate whole: %v", err)
	}

	left, err := Aggregate(txs[:2], Strict)
	if err != nil {
		t.Fatalf("aggregate left: %v", err)
	}
	right, err := Aggregate(txs[2:], Strict)
	if err != nil {
		t.Fatalf("aggregate right: %v", err)
	}
	merged := Merge(left, right)

	if merged.Balance != whole.Balance || merged.TotalIncome != whole.TotalIncome ||
		merged.TotalExpense != whole.TotalExpense || merged.TransactionCount != whole.TransactionCount {
		t.Fatalf("merged totals differ from whole:\nmerged: %+v\n whole: %+v", merged, whole)
	}
	if len(merged.MonthlyTrend) != len(whole.MonthlyTrend) {
		t.Fatalf("merged trend length %d != %d", len(merged.MonthlyTrend), len(whole.MonthlyTrend))
	}
	for i := range whole.MonthlyTrend {
		if merged.MonthlyTrend[i] != whole.MonthlyTrend[i] {
			t.Fatalf("merged trend[%d] = %+v, want %+v", i, merged.MonthlyTrend[i], whole.MonthlyTrend[i])
		}
	}
	for k, v := range whole.ExpenseByCategory {
		if merged.ExpenseByCategory[k] != v {
			t.Fatalf("merged breakdown[%q] = %v, want %v", k, merged.ExpenseByCategory[k], v)
		}
	}
}
