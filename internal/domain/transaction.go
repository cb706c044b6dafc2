package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

type Transaction struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"userId"`
	CategoryID   int64           `json:"categoryId"`
	CategoryName string          `json:"categoryName,omitempty"`
	Icon         string          `json:"icon,omitempty"`
	Color        string          `json:"color,omitempty"`
	Title        string          `json:"title"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description,omitempty"`
	Type         TransactionType `json:"type"`
	Date         time.Time       `json:"date"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// TransactionFilters narrows listing queries; nil fields are ignored
type TransactionFilters struct {
	Month      *int
	Year       *int
	CategoryID *int64
	Type       *TransactionType
	StartDate  *time.Time
	EndDate    *time.Time
}

// TransactionRepository defines the interface for transaction persistence operations
type TransactionRepository interface {
	Create(transaction *Transaction) (*Transaction, error)
	GetByID(userID int64, id int64) (*Transaction, error)
	GetByUser(userID int64, filters *TransactionFilters) ([]*Transaction, error)
	Update(transaction *Transaction) (*Transaction, error)
	Delete(userID int64, id int64) error
	Count() (int64, error)
	SumByType(transactionType TransactionType) (decimal.Decimal, error)
}
