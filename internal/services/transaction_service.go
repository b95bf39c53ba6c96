package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/money"
	"fintrack/internal/pagination"
	"fintrack/internal/timewindow"
)

// maxAmount is the largest value a numeric(12,2) column holds.
var maxAmount = money.MustParse("9999999999.99")

const maxDescriptionLength = 500

// transactionService handles transaction-related business logic.
type transactionService struct {
	db              *gorm.DB
	categoryService CategoryServicer
	loc             *time.Location
}

// NewTransactionService creates a new TransactionServicer. Month and year
// filters are resolved in loc.
func NewTransactionService(db *gorm.DB, categoryService CategoryServicer, loc *time.Location) TransactionServicer {
	if loc == nil {
		loc = time.UTC
	}
	return &transactionService{
		db:              db,
		categoryService: categoryService,
		loc:             loc,
	}
}

// CreateTransaction records a transaction in one of the user's categories.
// The transaction type must equal the category type.
func (s *transactionService) CreateTransaction(
	userID string,
	categoryID string,
	transactionType models.TransactionType,
	amount money.Money,
	description string,
	date time.Time,
) (*models.Transaction, error) {
	if !transactionType.Valid() {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	description = strings.TrimSpace(description)
	if err := validateDescription(description); err != nil {
		return nil, err
	}

	// Default date to now if not provided
	if date.IsZero() {
		date = time.Now()
	}

	category, err := s.categoryService.GetCategoryByID(userID, categoryID)
	if err != nil {
		return nil, err
	}
	if !category.Type.Matches(transactionType) {
		return nil, apperrors.ErrCategoryTypeMismatch
	}

	transaction := &models.Transaction{
		UserID:      userID,
		CategoryID:  category.ID,
		Type:        transactionType,
		Amount:      amount,
		Description: description,
		Date:        date.UTC(),
	}
	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	transaction.Category = category
	return transaction, nil
}

// GetUserTransactions retrieves a filtered page of transactions, newest first.
func (s *transactionService) GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	base, err := s.applyTransactionFilters(base, filter)
	if err != nil {
		return nil, err
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Preload("Category").
		Order("date DESC").
		Order("id DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page, totalItems)
	return &result, nil
}

func (s *transactionService) applyTransactionFilters(q *gorm.DB, f TransactionFilter) (*gorm.DB, error) {
	if f.Year != nil {
		if *f.Year < 1 || *f.Year > 9999 {
			return nil, apperrors.ErrInvalidYear
		}
		var w timewindow.Window
		if f.Month != nil {
			if !timewindow.ValidMonth(*f.Month) {
				return nil, apperrors.ErrInvalidMonth
			}
			w = timewindow.Month(*f.Year, time.Month(*f.Month), s.loc)
		} else {
			start := time.Date(*f.Year, time.January, 1, 0, 0, 0, 0, s.loc)
			w = timewindow.Window{Start: start, End: start.AddDate(1, 0, 0)}
		}
		w = w.In(time.UTC)
		q = q.Where("date >= ? AND date < ?", w.Start, w.End)
	}
	if f.Type != nil {
		if !f.Type.Valid() {
			return nil, apperrors.ErrInvalidTransactionType
		}
		q = q.Where("type = ?", *f.Type)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	return q, nil
}

// GetTransactionByID retrieves a transaction by ID for a specific user
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Preload("Category").
		Where("id = ? AND user_id = ?", transactionID, userID).
		First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction applies the provided fields. Moving a transaction to
// another category requires that category to have the transaction's type.
func (s *transactionService) UpdateTransaction(userID, transactionID string, update TransactionUpdate) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if update.CategoryID != nil && *update.CategoryID != transaction.CategoryID {
		category, err := s.categoryService.GetCategoryByID(userID, *update.CategoryID)
		if err != nil {
			return nil, err
		}
		if !category.Type.Matches(transaction.Type) {
			return nil, apperrors.ErrCategoryTypeMismatch
		}
		updates["category_id"] = category.ID
	}
	if update.Amount != nil {
		if err := validateAmount(*update.Amount); err != nil {
			return nil, err
		}
		updates["amount"] = *update.Amount
	}
	if update.Description != nil {
		description := strings.TrimSpace(*update.Description)
		if err := validateDescription(description); err != nil {
			return nil, err
		}
		updates["description"] = description
	}
	if update.Date != nil {
		updates["date"] = update.Date.UTC()
	}

	if len(updates) > 0 {
		if err := s.db.Model(&models.Transaction{}).
			Where("id = ? AND user_id = ?", transaction.ID, userID).
			Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.GetTransactionByID(userID, transactionID)
}

// DeleteTransaction permanently removes a transaction.
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return err
	}

	if err := s.db.Where("id = ? AND user_id = ?", transaction.ID, userID).
		Delete(&models.Transaction{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func validateAmount(amount money.Money) error {
	if !amount.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if amount.GreaterThan(maxAmount) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount exceeds the maximum of 9999999999.99")
	}
	if !amount.Decimal().Equal(amount.Decimal().Round(2)) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must have at most 2 decimal places")
	}
	return nil
}

func validateDescription(description string) error {
	if description == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if len(description) > maxDescriptionLength {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "description must be at most 500 characters")
	}
	return nil
}
