// Package store implements the read-only transaction accessor the analytics
// engine aggregates over, backed by GORM.
package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"fintrack/internal/analytics"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// GormStore reads transactions and categories through a GORM connection.
type GormStore struct {
	db *gorm.DB
}

var _ analytics.TransactionStore = (*GormStore)(nil)

// New creates a GormStore.
func New(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// ListTransactions returns the user's transactions matching q. Window bounds
// are compared in UTC, the zone transaction dates are persisted in.
func (s *GormStore) ListTransactions(ctx context.Context, userID string, q analytics.TransactionQuery) ([]models.Transaction, error) {
	query := s.db.WithContext(ctx).Model(&models.Transaction{}).Where("user_id = ?", userID)

	if q.Window != nil {
		w := q.Window.In(time.UTC)
		query = query.Where("date >= ?", w.Start)
		if w.Closed {
			query = query.Where("date <= ?", w.End)
		} else {
			query = query.Where("date < ?", w.End)
		}
	}
	if q.Type != nil {
		query = query.Where("type = ?", *q.Type)
	}
	if q.CategoryID != nil {
		query = query.Where("category_id = ?", *q.CategoryID)
	}
	if q.NewestFirst {
		query = query.Order("date DESC").Order("id DESC")
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	var transactions []models.Transaction
	if err := query.Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// ListCategories returns the user's categories, optionally restricted to one type.
func (s *GormStore) ListCategories(ctx context.Context, userID string, categoryType *models.CategoryType) ([]models.Category, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if categoryType != nil {
		query = query.Where("type = ?", *categoryType)
	}

	var categories []models.Category
	if err := query.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}
