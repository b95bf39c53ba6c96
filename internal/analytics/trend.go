package analytics

import (
	"time"

	"fintrack/internal/models"
	"fintrack/internal/money"
	"fintrack/internal/timewindow"
)

// MonthlyTrendPoint is one month of a trend series.
type MonthlyTrendPoint struct {
	Month   string      `json:"month"` // YYYY-MM
	Income  money.Money `json:"income"`
	Expense money.Money `json:"expense"`
	Balance money.Money `json:"balance"`
}

// BuildTrend buckets txs into the months of Trailing(now, months) and returns
// exactly one point per month, oldest first. Months without activity are
// emitted as zero points so callers always receive a fixed-length series.
// Transactions outside the trailing window are ignored. Buckets are keyed in
// now's location.
func BuildTrend(txs []models.Transaction, now time.Time, months int) []MonthlyTrendPoint {
	window := timewindow.Trailing(now, months)
	starts := timewindow.TrailingMonths(now, months)

	points := make([]MonthlyTrendPoint, len(starts))
	index := make(map[string]int, len(starts))
	for i, start := range starts {
		label := timewindow.MonthLabel(start)
		points[i] = MonthlyTrendPoint{Month: label}
		index[label] = i
	}

	loc := now.Location()
	for i := range txs {
		tx := &txs[i]
		if !window.Contains(tx.Date) {
			continue
		}
		pos, ok := index[timewindow.MonthLabel(tx.Date.In(loc))]
		if !ok {
			continue
		}
		switch tx.Type {
		case models.TransactionTypeIncome:
			points[pos].Income = points[pos].Income.Add(tx.Amount)
		case models.TransactionTypeExpense:
			points[pos].Expense = points[pos].Expense.Add(tx.Amount)
		}
	}

	for i := range points {
		points[i].Balance = points[i].Income.Sub(points[i].Expense)
	}
	return points
}
