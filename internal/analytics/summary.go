package analytics

import (
	"fintrack/internal/models"
	"fintrack/internal/money"
)

// Totals is the income/expense reduction of a transaction set.
type Totals struct {
	Income       money.Money
	Expense      money.Money
	IncomeCount  int
	ExpenseCount int
}

// Balance returns income minus expense.
func (t Totals) Balance() money.Money { return t.Income.Sub(t.Expense) }

// Count returns the number of transactions reduced.
func (t Totals) Count() int { return t.IncomeCount + t.ExpenseCount }

// Summarize partitions txs by type and sums each side exactly. Transactions
// with an unknown type are not counted on either side.
func Summarize(txs []models.Transaction) Totals {
	var t Totals
	for i := range txs {
		switch txs[i].Type {
		case models.TransactionTypeIncome:
			t.Income = t.Income.Add(txs[i].Amount)
			t.IncomeCount++
		case models.TransactionTypeExpense:
			t.Expense = t.Expense.Add(txs[i].Amount)
			t.ExpenseCount++
		}
	}
	return t
}

// MonthlySummary is the income, expense and balance of one user for one calendar month.
type MonthlySummary struct {
	TotalIncome      money.Money `json:"total_income"`
	TotalExpense     money.Money `json:"total_expense"`
	Balance          money.Money `json:"balance"`
	TransactionCount int         `json:"transaction_count"`
	Month            int         `json:"month"`
	Year             int         `json:"year"`
}

// NewMonthlySummary builds the summary for (month, year) from reduced totals.
func NewMonthlySummary(t Totals, month, year int) MonthlySummary {
	return MonthlySummary{
		TotalIncome:      t.Income,
		TotalExpense:     t.Expense,
		Balance:          t.Balance(),
		TransactionCount: t.Count(),
		Month:            month,
		Year:             year,
	}
}
