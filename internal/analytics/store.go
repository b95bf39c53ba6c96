// Package analytics is the financial aggregation engine. It turns the raw
// transactions of one user into monthly summaries, category breakdowns,
// trailing trends, budget alerts, dashboard snapshots and report summaries.
//
// The aggregation functions are pure; only Engine talks to storage, through
// the read-only TransactionStore interface.
package analytics

import (
	"context"

	"fintrack/internal/models"
	"fintrack/internal/timewindow"
)

// TransactionQuery selects the transactions of a single user.
type TransactionQuery struct {
	// Window restricts transactions to those whose Date it contains. Nil means unbounded.
	Window     *timewindow.Window
	Type       *models.TransactionType
	CategoryID *string
	// Limit caps the number of rows. Zero means no limit.
	Limit int
	// NewestFirst orders by date descending, then id descending.
	NewestFirst bool
}

// TransactionStore is the read-only view of persisted transactions and
// categories the engine aggregates over. Implementations own retries; the
// engine propagates their errors unchanged.
type TransactionStore interface {
	ListTransactions(ctx context.Context, userID string, q TransactionQuery) ([]models.Transaction, error)
	ListCategories(ctx context.Context, userID string, categoryType *models.CategoryType) ([]models.Category, error)
}
