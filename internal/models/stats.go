package models

// CategoryTotals доходы и расходы в одной категории.
type CategoryTotals struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// Stats сводка по всем транзакциям пользователя.
type Stats struct {
	TotalIncome  float64                   `json:"total_income"`
	TotalExpense float64                   `json:"total_expense"`
	Balance      float64                   `json:"balance"`
	ByCategory   map[string]CategoryTotals `json:"by_category"`
}
