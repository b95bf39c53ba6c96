package models

// User represents an account holder. Every category and transaction is owned by exactly one user.
type User struct {
	Base
	Email        string        `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string        `gorm:"not null" json:"-"`
	FullName     string        `gorm:"not null" json:"full_name"`
	Categories   []Category    `gorm:"foreignKey:UserID" json:"categories,omitempty"`
	Transactions []Transaction `gorm:"foreignKey:UserID" json:"transactions,omitempty"`
}
