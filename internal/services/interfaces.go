package services

import (
	"context"
	"time"

	"fintrack/internal/analytics"
	"fintrack/internal/models"
	"fintrack/internal/money"
	"fintrack/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, fullName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(userID, name string, categoryType models.CategoryType, color *string) (*models.Category, error)
	GetUserCategories(userID string, categoryType *models.CategoryType) ([]models.Category, error)
	GetCategoryByID(userID, categoryID string) (*models.Category, error)
	UpdateCategory(userID, categoryID string, update CategoryUpdate) (*models.Category, error)
	DeleteCategory(userID, categoryID string) error
}

// CategoryUpdate holds the optional fields of a category update. Type may be
// sent but must equal the stored type.
type CategoryUpdate struct {
	Name  *string
	Type  *models.CategoryType
	Color *string
}

// TransactionFilter holds optional filter parameters for listing transactions.
// Month only applies together with Year.
type TransactionFilter struct {
	Month      *int
	Year       *int
	Type       *models.TransactionType
	CategoryID *string
}

// TransactionUpdate holds the optional fields of a transaction update.
type TransactionUpdate struct {
	CategoryID  *string
	Amount      *money.Money
	Description *string
	Date        *time.Time
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID, categoryID string, transactionType models.TransactionType, amount money.Money, description string, date time.Time) (*models.Transaction, error)
	GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID string, update TransactionUpdate) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
}

// AnalyticsServicer exposes the aggregation engine to the API layer.
type AnalyticsServicer interface {
	GetMonthlySummary(ctx context.Context, userID string, month, year int) (*analytics.MonthlySummary, error)
	GetDashboard(ctx context.Context, userID string) (*analytics.DashboardSnapshot, error)
	GetReportSummary(ctx context.Context, userID string, startDate, endDate time.Time) (*analytics.ReportSummary, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
