package server

import (
	"net/http"
	"testing"
	"time"
	_ "time/tzdata"
)

// seedLedger records two months of activity and returns the category IDs.
func seedLedger(t *testing.T, app *testApp, token string) (salary, food, rent string) {
	t.Helper()
	salary = app.createCategory(t, token, "Salary", "income")
	food = app.createCategory(t, token, "Food", "expense")
	rent = app.createCategory(t, token, "Rent", "expense")

	app.createTransaction(t, token, salary, "income", "3000", "2024-02-01")
	app.createTransaction(t, token, food, "expense", "20", "2024-02-10")
	app.createTransaction(t, token, salary, "income", "3000", "2024-03-01")
	app.createTransaction(t, token, rent, "expense", "1200", "2024-03-02")
	app.createTransaction(t, token, food, "expense", "45.50", "2024-03-05")
	return salary, food, rent
}

func TestFinanceFlow_MonthlySummary(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "summary@test.com", "password123")
	seedLedger(t, app, token)

	rec := app.request("GET", "/api/v1/summary/monthly?month=3&year=2024", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["total_income"] != 3000.0 || result["total_expense"] != 1245.5 {
		t.Errorf("unexpected totals: %v", result)
	}
	if result["balance"] != 1754.5 {
		t.Errorf("expected balance 1754.5, got %v", result["balance"])
	}
	if result["transaction_count"] != 3.0 {
		t.Errorf("expected 3 transactions, got %v", result["transaction_count"])
	}

	t.Run("empty month is not an error", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/summary/monthly?month=7&year=2023", "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["balance"] != 0.0 || result["transaction_count"] != 0.0 {
			t.Errorf("expected zero summary, got %v", result)
		}
	})

	t.Run("rejects month 13", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/summary/monthly?month=13&year=2024", "", token)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if code := errorCode(t, rec); code != "INVALID_MONTH" {
			t.Errorf("expected INVALID_MONTH, got %v", code)
		}
	})
}

func TestFinanceFlow_Dashboard(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "dash@test.com", "password123")
	seedLedger(t, app, token)

	rec := app.request("GET", "/api/v1/dashboard", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)

	current := result["current_month_summary"].(map[string]interface{})
	if current["month"] != 3.0 || current["year"] != 2024.0 || current["balance"] != 1754.5 {
		t.Errorf("unexpected current month summary: %v", current)
	}

	recent := result["recent_transactions"].([]interface{})
	if len(recent) != 5 {
		t.Fatalf("expected 5 recent transactions, got %d", len(recent))
	}
	first := recent[0].(map[string]interface{})
	if first["amount"] != 45.5 || first["category_name"] != "Food" {
		t.Errorf("expected newest transaction first, got %v", first)
	}

	breakdown := result["category_breakdown"].([]interface{})
	if len(breakdown) != 3 {
		t.Fatalf("expected 3 breakdown entries, got %d", len(breakdown))
	}
	wantNames := []string{"Food", "Rent", "Salary"}
	for i, entry := range breakdown {
		if name := entry.(map[string]interface{})["category_name"]; name != wantNames[i] {
			t.Errorf("breakdown[%d]: expected %s, got %v", i, wantNames[i], name)
		}
	}

	trend := result["monthly_trend"].([]interface{})
	if len(trend) != 6 {
		t.Fatalf("expected 6 trend points, got %d", len(trend))
	}
	first = trend[0].(map[string]interface{})
	if first["month"] != "2023-10" || first["income"] != 0.0 {
		t.Errorf("expected zero point for 2023-10, got %v", first)
	}
	feb := trend[4].(map[string]interface{})
	if feb["month"] != "2024-02" || feb["income"] != 3000.0 || feb["expense"] != 20.0 {
		t.Errorf("unexpected February point: %v", feb)
	}

	alerts := result["budget_alerts"].([]interface{})
	if len(alerts) != 1 || alerts[0].(map[string]interface{})["severity"] != "info" {
		t.Errorf("expected a single info alert, got %v", alerts)
	}
}

func TestFinanceFlow_DashboardOverspend(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "over@test.com", "password123")
	salary := app.createCategory(t, token, "Salary", "income")
	rent := app.createCategory(t, token, "Rent", "expense")
	app.createTransaction(t, token, salary, "income", "1000", "2024-03-01")
	app.createTransaction(t, token, rent, "expense", "1200", "2024-03-02")

	rec := app.request("GET", "/api/v1/dashboard", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	alert := parseJSON(t, rec)["budget_alerts"].([]interface{})[0].(map[string]interface{})
	if alert["severity"] != "error" {
		t.Errorf("expected error severity, got %v", alert["severity"])
	}
	if alert["message"] != "You've spent $200.00 more than you earned this month" {
		t.Errorf("unexpected message %q", alert["message"])
	}
}

func TestFinanceFlow_ReportSummary(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "report@test.com", "password123")
	seedLedger(t, app, token)

	rec := app.request("GET", "/api/v1/reports/summary?start_date=2024-02-01&end_date=2024-02-29&format=excel", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["total_income"] != 3000.0 || result["total_expense"] != 20.0 || result["transaction_count"] != 2.0 {
		t.Errorf("unexpected report totals: %v", result)
	}
	if result["format"] != "excel" || result["start_date"] != "2024-02-01" || result["end_date"] != "2024-02-29" {
		t.Errorf("unexpected report header: %v", result)
	}

	t.Run("end date is inclusive", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/reports/summary?start_date=2024-03-05&end_date=2024-03-05", "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got := parseJSON(t, rec)["transaction_count"]; got != 1.0 {
			t.Errorf("expected 1 transaction on the end date, got %v", got)
		}
	})

	t.Run("reversed range is empty", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/reports/summary?start_date=2024-03-31&end_date=2024-02-01", "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["transaction_count"] != 0.0 || len(result["transactions"].([]interface{})) != 0 {
			t.Errorf("expected empty report, got %v", result)
		}
	})
}

func TestFinanceFlow_TransactionLifecycle(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "life@test.com", "password123")
	salary, food, rent := seedLedger(t, app, token)

	t.Run("list filters by month", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/transactions?month=3&year=2024&limit=2", "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["total_items"] != 3.0 || result["has_more"] != true {
			t.Errorf("unexpected page meta: %v", result)
		}
		if len(result["data"].([]interface{})) != 2 {
			t.Errorf("expected 2 items on the page, got %v", result["data"])
		}
	})

	t.Run("type must match category", func(t *testing.T) {
		rec := app.request("POST", "/api/v1/transactions",
			`{"category_id":"`+food+`","type":"income","amount":10,"description":"refund"}`, token)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if code := errorCode(t, rec); code != "CATEGORY_TYPE_MISMATCH" {
			t.Errorf("expected CATEGORY_TYPE_MISMATCH, got %v", code)
		}
	})

	t.Run("update moves between expense categories", func(t *testing.T) {
		id := app.createTransaction(t, token, food, "expense", "10", "2024-03-10")

		rec := app.request("PUT", "/api/v1/transactions/"+id, `{"category_id":"`+rent+`","amount":"15.25"}`, token)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		tx := parseJSON(t, rec)["transaction"].(map[string]interface{})
		if tx["category_id"] != rent || tx["amount"] != 15.25 {
			t.Errorf("unexpected updated transaction: %v", tx)
		}

		rec = app.request("PUT", "/api/v1/transactions/"+id, `{"category_id":"`+salary+`"}`, token)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 moving into an income category, got %d", rec.Code)
		}

		rec = app.request("DELETE", "/api/v1/transactions/"+id, "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		rec = app.request("GET", "/api/v1/transactions/"+id, "", token)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404 after delete, got %d", rec.Code)
		}
	})

	t.Run("category in use cannot be deleted", func(t *testing.T) {
		rec := app.request("DELETE", "/api/v1/categories/"+food, "", token)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		if code := errorCode(t, rec); code != "CATEGORY_IN_USE" {
			t.Errorf("expected CATEGORY_IN_USE, got %v", code)
		}
	})

	t.Run("category type is immutable", func(t *testing.T) {
		rec := app.request("PUT", "/api/v1/categories/"+food, `{"type":"income"}`, token)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if code := errorCode(t, rec); code != "CATEGORY_TYPE_IMMUTABLE" {
			t.Errorf("expected CATEGORY_TYPE_IMMUTABLE, got %v", code)
		}
	})
}

func TestFinanceFlow_UserIsolation(t *testing.T) {
	app := setupApp(t)
	ownerToken, _ := app.registerUser(t, "owner@test.com", "password123")
	_, food, _ := seedLedger(t, app, ownerToken)
	otherToken, _ := app.registerUser(t, "other@test.com", "password123")

	rec := app.request("GET", "/api/v1/categories/"+food, "", otherToken)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for another user's category, got %d", rec.Code)
	}

	rec = app.request("POST", "/api/v1/transactions",
		`{"category_id":"`+food+`","type":"expense","amount":5,"description":"sneaky"}`, otherToken)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 filing into another user's category, got %d", rec.Code)
	}

	rec = app.request("GET", "/api/v1/dashboard", "", otherToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	if len(result["recent_transactions"].([]interface{})) != 0 {
		t.Errorf("expected no recent transactions for a new user")
	}
	current := result["current_month_summary"].(map[string]interface{})
	if current["transaction_count"] != 0.0 {
		t.Errorf("expected empty summary, got %v", current)
	}
}

func TestFinanceFlow_CalendarDatesWestOfUTC(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	app := setupAppIn(t, ny)
	token, _ := app.registerUser(t, "newyork@test.com", "password123")
	food := app.createCategory(t, token, "Food", "expense")
	app.createTransaction(t, token, food, "expense", "12", "2024-02-29")
	app.createTransaction(t, token, food, "expense", "10", "2024-03-01")

	t.Run("monthly summary", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/summary/monthly?month=3&year=2024", "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["transaction_count"] != 1.0 || result["total_expense"] != 10.0 {
			t.Errorf("expected only the March 1st expense, got %v", result)
		}
	})

	t.Run("single day report", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/reports/summary?start_date=2024-03-01&end_date=2024-03-01", "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if count := parseJSON(t, rec)["transaction_count"]; count != 1.0 {
			t.Errorf("expected 1 transaction, got %v", count)
		}
	})

	t.Run("month filter", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/transactions?month=2&year=2024", "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		items, _ := parseJSON(t, rec)["data"].([]interface{})
		if len(items) != 1 {
			t.Errorf("expected 1 February transaction, got %d", len(items))
		}
	})
}
