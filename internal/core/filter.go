package core

import "time"

// Range narrows a transaction slice by inclusive date bounds and an optional
// category. A nil bound leaves that side unbounded; an empty Category means
// no category restriction.
type Range struct {
	Start    *time.Time
	End      *time.Time
	Category string
}

// IsZero reports whether the range imposes no restriction at all.
func (r Range) IsZero() bool {
	return r.Start == nil && r.End == nil && r.Category == ""
}

// Matches reports whether a single transaction falls inside the range.
// Bounds are inclusive on both sides.
func (r Range) Matches(t Transaction) bool {
	if r.Category != "" && t.Category != r.Category {
		return false
	}
	if r.Start != nil && t.Date.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.Date.After(*r.End) {
		return false
	}
	return true
}

// Filter returns the transactions matching the range, preserving input
// order. It is total and side-effect free: no match yields an empty slice,
// never an error. Filtering an already-filtered slice with the same range
// returns an equal slice.
func Filter(txs []Transaction, r Range) []Transaction {
	if r.IsZero() {
		out := make([]Transaction, len(txs))
		copy(out, txs)
		return out
	}
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if r.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}
