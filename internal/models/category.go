package models

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// Valid reports whether t is a known category type.
func (t CategoryType) Valid() bool {
	return t == CategoryTypeIncome || t == CategoryTypeExpense
}

// Matches reports whether a transaction of type tt may be filed under this category type.
func (t CategoryType) Matches(tt TransactionType) bool {
	return string(t) == string(tt)
}

// Category groups transactions of a single type. The type is fixed at
// creation; changing it would rewrite the meaning of historical breakdowns.
type Category struct {
	Base
	UserID string       `gorm:"type:uuid;not null;index;uniqueIndex:idx_categories_user_name" json:"user_id"`
	Name   string       `gorm:"not null;uniqueIndex:idx_categories_user_name" json:"name"`
	Type   CategoryType `gorm:"not null" json:"type"`
	Color  *string      `json:"color"`
}
