package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetPeriod is the recurring window a budget is measured against
type BudgetPeriod string

const (
	BudgetPeriodMonth BudgetPeriod = "month"
	BudgetPeriodWeek  BudgetPeriod = "week"
)

// Budget is a per-category spend ceiling. Amount is always >= 0.
type Budget struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"userId"`
	CategoryID   int64           `json:"categoryId"`
	CategoryName string          `json:"categoryName,omitempty"`
	Icon         string          `json:"icon,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Period       BudgetPeriod    `json:"period"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// BudgetWithSpend is a budget annotated with the summed expense spend of its
// category for one month. A budget whose category has no transactions in the
// month carries Spent = 0.
type BudgetWithSpend struct {
	BudgetID     int64
	CategoryName string
	Icon         string
	Amount       decimal.Decimal
	Period       BudgetPeriod
	Spent        decimal.Decimal
}

// Alert is the transient evaluation result for one budget. It is recomputed
// on every request and never persisted.
type Alert struct {
	BudgetID     int64           `json:"budgetId"`
	CategoryName string          `json:"categoryName"`
	Icon         string          `json:"icon"`
	BudgetAmount decimal.Decimal `json:"budgetAmount"`
	Spent        decimal.Decimal `json:"spent"`
	Percentage   float64         `json:"percentage"`
	IsExceeded   bool            `json:"isExceeded"`
}

// BudgetRepository defines the interface for budget persistence operations.
// GetWithSpend is the ledger read behind alert evaluation.
type BudgetRepository interface {
	Create(budget *Budget) (*Budget, error)
	GetByID(userID int64, id int64) (*Budget, error)
	GetByUser(userID int64) ([]*Budget, error)
	GetWithSpend(userID int64, month, year int) ([]*BudgetWithSpend, error)
	Update(userID int64, id int64, amount decimal.Decimal, period BudgetPeriod) (*Budget, error)
	Delete(userID int64, id int64) error
}
