// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"reflect"
	"regexp"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"fintrack/internal/models"
	"fintrack/internal/money"
)

// DateLayout is the calendar date format accepted by date-only fields.
const DateLayout = "2006-01-02"

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("hex_color", validateHexColor)
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("category_type", validateCategoryType)
		_ = v.RegisterValidation("report_format", validateReportFormat)
		_ = v.RegisterValidation("calendar_date", validateCalendarDate)
		v.RegisterCustomTypeFunc(moneyValue, money.Money{})
	}
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}

func validateTransactionType(fl validator.FieldLevel) bool {
	return models.TransactionType(fl.Field().String()).Valid()
}

func validateCategoryType(fl validator.FieldLevel) bool {
	return models.CategoryType(fl.Field().String()).Valid()
}

// ValidReportFormat reports whether format names a supported report output.
func ValidReportFormat(format string) bool {
	switch format {
	case "pdf", "excel":
		return true
	}
	return false
}

func validateReportFormat(fl validator.FieldLevel) bool {
	return ValidReportFormat(fl.Field().String())
}

func validateCalendarDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(DateLayout, fl.Field().String())
	return err == nil
}

// moneyValue lets numeric tags such as gt=0 apply to money.Money fields.
func moneyValue(field reflect.Value) interface{} {
	if m, ok := field.Interface().(money.Money); ok {
		return m.Decimal().InexactFloat64()
	}
	return nil
}
