package services

import (
	"testing"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/money"
	"fintrack/internal/pagination"
	"fintrack/internal/testutil"
)

func intPtr(i int) *int { return &i }

func TestCreateTransaction(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db), time.UTC)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		date := time.Date(2024, time.March, 3, 15, 0, 0, 0, time.FixedZone("UTC-5", -5*60*60))
		tx, err := svc.CreateTransaction(user.ID, cat.ID, models.TransactionTypeExpense, money.MustParse("42.10"), " Lunch ", date)
		testutil.AssertNoError(t, err)

		if tx.ID == "" {
			t.Fatal("expected transaction ID to be set")
		}
		if tx.Description != "Lunch" {
			t.Errorf("expected trimmed description, got %q", tx.Description)
		}
		if tx.Date.Location() != time.UTC || !tx.Date.Equal(date) {
			t.Errorf("expected date stored as UTC equal to input, got %s", tx.Date)
		}

		stored, err := svc.GetTransactionByID(user.ID, tx.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertMoney(t, stored.Amount, "42.10")
		if stored.Category == nil || stored.Category.ID != cat.ID {
			t.Errorf("expected category preloaded, got %+v", stored.Category)
		}
	})

	t.Run("category_type_mismatch", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db), time.UTC)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeIncome)

		_, err := svc.CreateTransaction(user.ID, cat.ID, models.TransactionTypeExpense, money.MustParse("1"), "Lunch", time.Now())
		testutil.AssertAppError(t, err, "CATEGORY_TYPE_MISMATCH")
	})

	t.Run("other_users_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db), time.UTC)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, other.ID, models.CategoryTypeExpense)

		_, err := svc.CreateTransaction(user.ID, cat.ID, models.TransactionTypeExpense, money.MustParse("1"), "Lunch", time.Now())
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("invalid_amounts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db), time.UTC)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		for _, amount := range []string{"0", "-5", "0.001", "10000000000"} {
			_, err := svc.CreateTransaction(user.ID, cat.ID, models.TransactionTypeExpense, money.MustParse(amount), "Lunch", time.Now())
			testutil.AssertAppError(t, err, "INVALID_INPUT")
		}
	})

	t.Run("blank_description", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db), time.UTC)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		for _, desc := range []string{"", "   "} {
			_, err := svc.CreateTransaction(user.ID, cat.ID, models.TransactionTypeExpense, money.MustParse("1"), desc, time.Now())
			testutil.AssertAppError(t, err, "INVALID_INPUT")
		}

		var count int64
		db.Model(&models.Transaction{}).Count(&count)
		if count != 0 {
			t.Errorf("expected nothing stored, got %d rows", count)
		}
	})

	t.Run("invalid_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db), time.UTC)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		_, err := svc.CreateTransaction(user.ID, cat.ID, models.TransactionType("transfer"), money.MustParse("1"), "Lunch", time.Now())
		testutil.AssertAppError(t, err, "INVALID_TRANSACTION_TYPE")
	})
}

func TestGetUserTransactions(t *testing.T) {
	setup := func(t *testing.T) (TransactionServicer, *models.User, *models.Category, *models.Category, func()) {
		db := testutil.SetupTestDB(t)
		svc := NewTransactionService(db, NewCategoryService(db), time.UTC)
		user := testutil.CreateTestUser(t, db)
		food := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		salary := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeIncome)

		testutil.CreateTestTransaction(t, db, salary, "3000", time.Date(2024, time.January, 31, 12, 0, 0, 0, time.UTC))
		testutil.CreateTestTransaction(t, db, food, "25", time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC))
		testutil.CreateTestTransaction(t, db, food, "30", time.Date(2024, time.February, 29, 23, 0, 0, 0, time.UTC))
		testutil.CreateTestTransaction(t, db, food, "12", time.Date(2023, time.December, 24, 8, 0, 0, 0, time.UTC))

		return svc, user, food, salary, func() { testutil.TeardownTestDB(t, db) }
	}

	t.Run("newest_first", func(t *testing.T) {
		svc, user, _, _, teardown := setup(t)
		defer teardown()

		result, err := svc.GetUserTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 4 || len(result.Data) != 4 {
			t.Fatalf("expected 4 transactions, got %d/%d", len(result.Data), result.TotalItems)
		}
		if result.Limit != pagination.DefaultLimit {
			t.Errorf("expected default limit %d, got %d", pagination.DefaultLimit, result.Limit)
		}
		for i := 1; i < len(result.Data); i++ {
			if result.Data[i].Date.After(result.Data[i-1].Date) {
				t.Fatalf("transactions not newest first at %d", i)
			}
		}
	})

	t.Run("month_and_year", func(t *testing.T) {
		svc, user, _, _, teardown := setup(t)
		defer teardown()

		result, err := svc.GetUserTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{Month: intPtr(2), Year: intPtr(2024)})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 2 {
			t.Errorf("expected 2 February transactions, got %d", result.TotalItems)
		}
	})

	t.Run("year_only", func(t *testing.T) {
		svc, user, _, _, teardown := setup(t)
		defer teardown()

		result, err := svc.GetUserTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{Year: intPtr(2023)})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 1 {
			t.Errorf("expected 1 transaction in 2023, got %d", result.TotalItems)
		}
	})

	t.Run("type_and_category", func(t *testing.T) {
		svc, user, food, _, teardown := setup(t)
		defer teardown()

		income := models.TransactionTypeIncome
		result, err := svc.GetUserTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{Type: &income})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 1 {
			t.Errorf("expected 1 income transaction, got %d", result.TotalItems)
		}

		result, err = svc.GetUserTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{CategoryID: &food.ID})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 3 {
			t.Errorf("expected 3 food transactions, got %d", result.TotalItems)
		}
	})

	t.Run("limit_offset", func(t *testing.T) {
		svc, user, _, _, teardown := setup(t)
		defer teardown()

		result, err := svc.GetUserTransactions(user.ID, pagination.PageRequest{Limit: 2, Offset: 1}, TransactionFilter{})
		testutil.AssertNoError(t, err)
		if len(result.Data) != 2 || result.TotalItems != 4 || !result.HasMore {
			t.Errorf("unexpected page: %d items, total %d, has_more %v", len(result.Data), result.TotalItems, result.HasMore)
		}
		if result.Data[0].Date.Day() != 1 {
			t.Errorf("expected the Feb 1st transaction at offset 1, got %s", result.Data[0].Date)
		}
	})

	t.Run("invalid_month", func(t *testing.T) {
		svc, user, _, _, teardown := setup(t)
		defer teardown()

		_, err := svc.GetUserTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{Month: intPtr(13), Year: intPtr(2024)})
		testutil.AssertAppError(t, err, "INVALID_MONTH")
	})
}

func TestUpdateTransaction(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db), time.UTC)
		user := testutil.CreateTestUser(t, db)
		food := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		rent := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		tx := testutil.CreateTestTransaction(t, db, food, "10", time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))

		amount := money.MustParse("950.00")
		date := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)
		updated, err := svc.UpdateTransaction(user.ID, tx.ID, TransactionUpdate{
			CategoryID:  &rent.ID,
			Amount:      &amount,
			Description: strPtr("January rent"),
			Date:        &date,
		})
		testutil.AssertNoError(t, err)

		if updated.CategoryID != rent.ID {
			t.Errorf("expected category %s, got %s", rent.ID, updated.CategoryID)
		}
		if !updated.Amount.Equal(amount) {
			t.Errorf("expected amount 950.00, got %s", updated.Amount)
		}
		if updated.Description != "January rent" {
			t.Errorf("expected description 'January rent', got %q", updated.Description)
		}
		if !updated.Date.Equal(date) {
			t.Errorf("expected date %s, got %s", date, updated.Date)
		}
	})

	t.Run("category_type_mismatch", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db), time.UTC)
		user := testutil.CreateTestUser(t, db)
		food := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		salary := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeIncome)
		tx := testutil.CreateTestTransaction(t, db, food, "10", time.Now())

		_, err := svc.UpdateTransaction(user.ID, tx.ID, TransactionUpdate{CategoryID: &salary.ID})
		testutil.AssertAppError(t, err, "CATEGORY_TYPE_MISMATCH")
	})

	t.Run("blank_description", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db), time.UTC)
		user := testutil.CreateTestUser(t, db)
		food := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		tx := testutil.CreateTestTransaction(t, db, food, "10", time.Now())

		blank := "  "
		_, err := svc.UpdateTransaction(user.ID, tx.ID, TransactionUpdate{Description: &blank})
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		stored, err := svc.GetTransactionByID(user.ID, tx.ID)
		testutil.AssertNoError(t, err)
		if stored.Description != tx.Description {
			t.Errorf("expected description %q kept, got %q", tx.Description, stored.Description)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db), time.UTC)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.UpdateTransaction(user.ID, "01890000-0000-7000-8000-000000000000", TransactionUpdate{})
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}

func TestDeleteTransaction(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db), time.UTC)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		tx := testutil.CreateTestTransaction(t, db, cat, "10", time.Now())

		testutil.AssertNoError(t, svc.DeleteTransaction(user.ID, tx.ID))

		_, err := svc.GetTransactionByID(user.ID, tx.ID)
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})

	t.Run("other_users_transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db), time.UTC)
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, owner.ID, models.CategoryTypeExpense)
		tx := testutil.CreateTestTransaction(t, db, cat, "10", time.Now())

		err := svc.DeleteTransaction(other.ID, tx.ID)
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}
