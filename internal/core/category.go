package core

// OtherCategory is the sentinel bucket for categories the registry does not
// recognize. Unknown categories are still summed, never rejected, since the
// category set may evolve ahead of this table.
const OtherCategory = "Others"

// Fixed category taxonomy. Loaded once, read-only afterwards.
var (
	expenseCategories = []string{
		"Food & Dining",
		"Transportation",
		"Shopping",
		"Entertainment",
		"Bills & Utilities",
		"Healthcare",
		"Education",
		"Travel",
		"Home & Garden",
		"Personal Care",
		"Gifts & Donations",
		"Business",
		"Others",
	}

	incomeCategories = []string{
		"Salary",
		"Freelance",
		"Investment",
		"Business",
		"Rental",
		"Gifts",
		"Others",
	}

	expenseCategorySet = toSet(expenseCategories)
	incomeCategorySet  = toSet(incomeCategories)
)

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// Categories returns the valid category names for the given type, in their
// canonical display order. The returned slice is a copy.
func Categories(t TxType) []string {
	var src []string
	switch t {
	case Expense:
		src = expenseCategories
	case Income:
		src = incomeCategories
	default:
		return nil
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// IsValidCategory reports whether name is a registered category for type t.
func IsValidCategory(t TxType, name string) bool {
	switch t {
	case Expense:
		_, ok := expenseCategorySet[name]
		return ok
	case Income:
		_, ok := incomeCategorySet[name]
		return ok
	}
	return false
}

// NormalizeCategory maps a category to its registry name, folding anything
// unrecognized into the OtherCategory bucket.
func NormalizeCategory(t TxType, name string) string {
	if IsValidCategory(t, name) {
		return name
	}
	return OtherCategory
}
