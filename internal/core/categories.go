package core

// Reserved expense-category keys with special aggregation treatment.
// Transactions in these categories are transfers to savings, not operational
// spend: they are excluded from expense totals and from the surplus
// calculation, and reported through the savings summary instead.
const (
	CategoryManualSavings = "manual_savings"
	CategoryAutoSavings   = "automatic_savings_transfer"
)

// Category is the pure domain mapping for a category key. Presentation
// metadata (icons, colors) is owned entirely by the UI collaborator.
type Category struct {
	Key   string          `json:"key"`
	Label string          `json:"label"`
	Type  TransactionType `json:"type"`
}

var IncomeCategories = []Category{
	{Key: "salary", Label: "Salary", Type: Income},
	{Key: "freelance", Label: "Freelance", Type: Income},
	{Key: "investment", Label: "Investment", Type: Income},
	{Key: "gifts", Label: "Gifts", Type: Income},
	{Key: "other_income", Label: "Other Income", Type: Income},
}

var ExpenseCategories = []Category{
	{Key: "food", Label: "Food & Dining", Type: Expense},
	{Key: "groceries", Label: "Groceries", Type: Expense},
	{Key: "transport", Label: "Transport", Type: Expense},
	{Key: "housing", Label: "Housing (Rent/Mortgage)", Type: Expense},
	{Key: "utilities", Label: "Utilities (Water, Electricity)", Type: Expense},
	{Key: "subscriptions", Label: "Subscriptions", Type: Expense},
	{Key: "entertainment", Label: "Entertainment", Type: Expense},
	{Key: "health", Label: "Health & Wellness", Type: Expense},
	{Key: "clothing", Label: "Clothing", Type: Expense},
	{Key: "education", Label: "Education", Type: Expense},
	{Key: "other_expense", Label: "Other Expense", Type: Expense},
	{Key: CategoryManualSavings, Label: "Manual Savings", Type: Expense},
	{Key: CategoryAutoSavings, Label: "Automatic Savings Transfer", Type: Expense},
}

// categoryIndex maps key -> position in the combined definition order.
// Breakdown queries use it as the stable tie-breaker.
var categoryIndex = func() map[string]int {
	idx := make(map[string]int, len(IncomeCategories)+len(ExpenseCategories))
	for i, c := range AllCategories() {
		idx[c.Key] = i
	}
	return idx
}()

// AllCategories returns income categories followed by expense categories,
// in definition order.
func AllCategories() []Category {
	all := make([]Category, 0, len(IncomeCategories)+len(ExpenseCategories))
	all = append(all, IncomeCategories...)
	all = append(all, ExpenseCategories...)
	return all
}

// LookupCategory returns the registry entry for a key. Unknown keys are
// opaque pass-through labels for grouping purposes only.
func LookupCategory(key string) (Category, bool) {
	i, ok := categoryIndex[key]
	if !ok {
		return Category{}, false
	}
	return AllCategories()[i], true
}

// CategoryLabel returns the display label for a key, falling back to the
// key itself for unrecognized categories.
func CategoryLabel(key string) string {
	if c, ok := LookupCategory(key); ok {
		return c.Label
	}
	return key
}

// CategoryRank returns the definition-order rank of a key. Unknown keys
// rank after all registered ones, preserving their relative encounter order
// through stable sorting.
func CategoryRank(key string) int {
	if i, ok := categoryIndex[key]; ok {
		return i
	}
	return len(categoryIndex)
}

// IsSavingsCategory reports whether a key is one of the reserved
// savings-transfer categories.
func IsSavingsCategory(key string) bool {
	return key == CategoryManualSavings || key == CategoryAutoSavings
}
