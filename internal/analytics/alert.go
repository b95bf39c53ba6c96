package analytics

import (
	"fmt"

	"fintrack/internal/money"
)

// Severity is the urgency tier of a budget alert.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// warningThresholdPercent is the share of income at which spending is flagged.
const warningThresholdPercent = 80

// BudgetAlert is a human-readable assessment of a month's spending.
type BudgetAlert struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// EvaluateBudget classifies a month's totals into exactly one alert:
//   - expense above income is an error reporting the overspend;
//   - otherwise expense at or above 80% of income is a warning;
//   - otherwise, including a month with no activity at all, info.
func EvaluateBudget(income, expense money.Money) BudgetAlert {
	if expense.GreaterThan(income) {
		return BudgetAlert{
			Message:  fmt.Sprintf("You've spent $%s more than you earned this month", expense.Sub(income)),
			Severity: SeverityError,
		}
	}
	if expense.IsPositive() && expense.GreaterThanOrEqual(income.Percent(warningThresholdPercent)) {
		return BudgetAlert{
			Message:  fmt.Sprintf("You've spent %d%% or more of your income this month", warningThresholdPercent),
			Severity: SeverityWarning,
		}
	}
	return BudgetAlert{
		Message:  "Your spending is under control this month",
		Severity: SeverityInfo,
	}
}
