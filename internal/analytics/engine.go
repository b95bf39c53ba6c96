package analytics

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/money"
	"fintrack/internal/timewindow"
)

const (
	DefaultTrendMonths = 6
	DefaultRecentLimit = 10

	reportDateLayout = "2006-01-02"
	minSupportedYear = 1
	maxSupportedYear = 9999
)

// TransactionLine is a transaction enriched with its category's display fields.
type TransactionLine struct {
	ID            string                 `json:"id"`
	CategoryID    string                 `json:"category_id"`
	CategoryName  string                 `json:"category_name"`
	CategoryColor *string                `json:"category_color"`
	Type          models.TransactionType `json:"type"`
	Amount        money.Money            `json:"amount"`
	Description   string                 `json:"description"`
	Date          time.Time              `json:"date"`
}

// DashboardSnapshot is the composite view of a user's current month.
type DashboardSnapshot struct {
	CurrentMonthSummary MonthlySummary           `json:"current_month_summary"`
	RecentTransactions  []TransactionLine        `json:"recent_transactions"`
	CategoryBreakdown   []CategoryBreakdownEntry `json:"category_breakdown"`
	MonthlyTrend        []MonthlyTrendPoint      `json:"monthly_trend"`
	BudgetAlerts        []BudgetAlert            `json:"budget_alerts"`
	GeneratedAt         time.Time                `json:"generated_at"`
}

// ReportSummary aggregates an arbitrary inclusive date range.
type ReportSummary struct {
	StartDate         string                   `json:"start_date"`
	EndDate           string                   `json:"end_date"`
	TotalIncome       money.Money              `json:"total_income"`
	TotalExpense      money.Money              `json:"total_expense"`
	Balance           money.Money              `json:"balance"`
	TransactionCount  int                      `json:"transaction_count"`
	Transactions      []TransactionLine        `json:"transactions"`
	CategoryBreakdown []CategoryBreakdownEntry `json:"category_breakdown"`
}

// Engine computes aggregates for one user at a time. It holds no per-user
// state and is safe for concurrent use.
type Engine struct {
	store       TransactionStore
	now         func() time.Time
	loc         *time.Location
	trendMonths int
	recentLimit int
	log         *zap.SugaredLogger
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock the dashboard reads "now" from.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithLocation sets the timezone calendar months are resolved in.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// WithTrendMonths sets the number of months in the dashboard trend.
func WithTrendMonths(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.trendMonths = n
		}
	}
}

// WithRecentLimit sets how many recent transactions the dashboard lists.
func WithRecentLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.recentLimit = n
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// NewEngine creates an Engine reading from store.
func NewEngine(store TransactionStore, opts ...Option) *Engine {
	e := &Engine{
		store:       store,
		now:         time.Now,
		loc:         time.UTC,
		trendMonths: DefaultTrendMonths,
		recentLimit: DefaultRecentLimit,
		log:         zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Location returns the timezone the engine resolves calendar months in.
func (e *Engine) Location() *time.Location { return e.loc }

// ComputeMonthlySummary summarizes the calendar month (month, year).
// Invalid inputs fail before storage is touched.
func (e *Engine) ComputeMonthlySummary(ctx context.Context, userID string, month, year int) (*MonthlySummary, error) {
	if !timewindow.ValidMonth(month) {
		return nil, apperrors.ErrInvalidMonth
	}
	if year < minSupportedYear || year > maxSupportedYear {
		return nil, apperrors.ErrInvalidYear
	}

	window := timewindow.Month(year, time.Month(month), e.loc)
	txs, err := e.store.ListTransactions(ctx, userID, TransactionQuery{Window: &window})
	if err != nil {
		return nil, err
	}

	summary := NewMonthlySummary(Summarize(txs), month, year)
	e.log.Debugw("Monthly summary computed",
		"user_id", userID, "window", window.String(), "transactions", summary.TransactionCount)
	return &summary, nil
}

// ComputeDashboardSnapshot composes the current-month summary, the most recent
// transactions, the current-month breakdown, the trailing trend and the budget
// alert. Inputs are fetched concurrently; the first failure cancels the rest
// and no partial snapshot is returned.
func (e *Engine) ComputeDashboardSnapshot(ctx context.Context, userID string) (*DashboardSnapshot, error) {
	now := e.now().In(e.loc)
	monthWindow := timewindow.MonthOf(now)
	trendWindow := timewindow.Trailing(now, e.trendMonths)

	var (
		monthTxs   []models.Transaction
		recentTxs  []models.Transaction
		trendTxs   []models.Transaction
		categories []models.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		monthTxs, err = e.store.ListTransactions(gctx, userID, TransactionQuery{Window: &monthWindow})
		return err
	})
	g.Go(func() error {
		var err error
		recentTxs, err = e.store.ListTransactions(gctx, userID, TransactionQuery{Limit: e.recentLimit, NewestFirst: true})
		return err
	})
	g.Go(func() error {
		var err error
		trendTxs, err = e.store.ListTransactions(gctx, userID, TransactionQuery{Window: &trendWindow})
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = e.store.ListCategories(gctx, userID, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	index := IndexCategories(categories)
	totals := Summarize(monthTxs)
	snapshot := &DashboardSnapshot{
		CurrentMonthSummary: NewMonthlySummary(totals, int(now.Month()), now.Year()),
		RecentTransactions:  newTransactionLines(recentTxs, index),
		CategoryBreakdown:   BuildBreakdown(monthTxs, index),
		MonthlyTrend:        BuildTrend(trendTxs, now, e.trendMonths),
		BudgetAlerts:        []BudgetAlert{EvaluateBudget(totals.Income, totals.Expense)},
		GeneratedAt:         now,
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.log.Debugw("Dashboard snapshot composed",
		"user_id", userID,
		"month", monthWindow.String(),
		"transactions", totals.Count(),
		"alert", snapshot.BudgetAlerts[0].Severity,
	)
	return snapshot, nil
}

// ComputeReportSummary aggregates every transaction dated from startDate
// through endDate inclusive, whole days in the engine's location. A reversed
// range yields an empty report.
func (e *Engine) ComputeReportSummary(ctx context.Context, userID string, startDate, endDate time.Time) (*ReportSummary, error) {
	window := timewindow.DateRange(startDate, endDate, e.loc)
	report := &ReportSummary{
		StartDate:         startDate.Format(reportDateLayout),
		EndDate:           endDate.Format(reportDateLayout),
		Transactions:      []TransactionLine{},
		CategoryBreakdown: []CategoryBreakdownEntry{},
	}
	if window.Empty() {
		return report, nil
	}

	var (
		txs        []models.Transaction
		categories []models.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txs, err = e.store.ListTransactions(gctx, userID, TransactionQuery{Window: &window, NewestFirst: true})
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = e.store.ListCategories(gctx, userID, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	index := IndexCategories(categories)
	totals := Summarize(txs)
	report.TotalIncome = totals.Income
	report.TotalExpense = totals.Expense
	report.Balance = totals.Balance()
	report.TransactionCount = totals.Count()
	report.Transactions = newTransactionLines(txs, index)
	report.CategoryBreakdown = BuildBreakdown(txs, index)

	e.log.Debugw("Report summary computed",
		"user_id", userID, "window", window.String(), "transactions", report.TransactionCount)
	return report, nil
}

// newTransactionLines resolves category display fields and orders lines by
// date descending, then id descending.
func newTransactionLines(txs []models.Transaction, index CategoryIndex) []TransactionLine {
	lines := make([]TransactionLine, len(txs))
	for i := range txs {
		tx := &txs[i]
		name, color := index.Lookup(tx.CategoryID)
		lines[i] = TransactionLine{
			ID:            tx.ID,
			CategoryID:    tx.CategoryID,
			CategoryName:  name,
			CategoryColor: color,
			Type:          tx.Type,
			Amount:        tx.Amount,
			Description:   tx.Description,
			Date:          tx.Date,
		}
	}
	sort.SliceStable(lines, func(i, j int) bool {
		if !lines[i].Date.Equal(lines[j].Date) {
			return lines[i].Date.After(lines[j].Date)
		}
		return lines[i].ID > lines[j].ID
	})
	return lines
}
