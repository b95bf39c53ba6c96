package analytics

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/money"
)

// memStore is an in-memory TransactionStore that records every query it serves.
type memStore struct {
	mu           sync.Mutex
	transactions []models.Transaction
	categories   []models.Category
	queries      []TransactionQuery
	categoryHits int

	txErr       error
	categoryErr error
	// block makes ListTransactions wait for context cancellation.
	block bool
}

func (s *memStore) ListTransactions(ctx context.Context, userID string, q TransactionQuery) ([]models.Transaction, error) {
	s.mu.Lock()
	s.queries = append(s.queries, q)
	block, txErr := s.block, s.txErr
	s.mu.Unlock()

	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if txErr != nil {
		return nil, txErr
	}

	var out []models.Transaction
	for _, tx := range s.transactions {
		if tx.UserID != userID {
			continue
		}
		if q.Window != nil && !q.Window.Contains(tx.Date) {
			continue
		}
		if q.Type != nil && tx.Type != *q.Type {
			continue
		}
		if q.CategoryID != nil && tx.CategoryID != *q.CategoryID {
			continue
		}
		out = append(out, tx)
	}
	if q.NewestFirst {
		sort.Slice(out, func(i, j int) bool {
			if !out[i].Date.Equal(out[j].Date) {
				return out[i].Date.After(out[j].Date)
			}
			return out[i].ID > out[j].ID
		})
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (s *memStore) ListCategories(ctx context.Context, userID string, categoryType *models.CategoryType) ([]models.Category, error) {
	s.mu.Lock()
	s.categoryHits++
	categoryErr := s.categoryErr
	s.mu.Unlock()

	if categoryErr != nil {
		return nil, categoryErr
	}
	var out []models.Category
	for _, c := range s.categories {
		if c.UserID != userID {
			continue
		}
		if categoryType != nil && c.Type != *categoryType {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *memStore) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queries) + s.categoryHits
}

func (s *memStore) addCategory(userID, id, name string, t models.CategoryType, color string) models.Category {
	c := models.Category{UserID: userID, Name: name, Type: t}
	c.ID = id
	if color != "" {
		c.Color = &color
	}
	s.categories = append(s.categories, c)
	return c
}

func (s *memStore) addTx(userID, categoryID string, t models.TransactionType, amount string, date time.Time) models.Transaction {
	tx := models.Transaction{
		UserID:     userID,
		CategoryID: categoryID,
		Type:       t,
		Amount:     money.MustParse(amount),
		Date:       date,
	}
	tx.ID = fmt.Sprintf("tx-%04d", len(s.transactions)+1)
	s.transactions = append(s.transactions, tx)
	return tx
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 12, 0, 0, 0, time.UTC)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
