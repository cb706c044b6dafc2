package domain

import "github.com/shopspring/decimal"

// CategorySummary is one row of the month's per-category breakdown
type CategorySummary struct {
	Name  string          `json:"name"`
	Icon  string          `json:"icon"`
	Color string          `json:"color"`
	Type  TransactionType `json:"type"`
	Total decimal.Decimal `json:"total"`
	Count int64           `json:"count"`
}

// MonthlySummary contains the main dashboard metrics for one month
type MonthlySummary struct {
	TotalIncome      decimal.Decimal   `json:"totalIncome"`
	TotalExpenses    decimal.Decimal   `json:"totalExpenses"`
	Balance          decimal.Decimal   `json:"balance"`
	ByCategory       []CategorySummary `json:"byCategory"`
	TransactionCount int64             `json:"transactionCount"`
	AvgTransaction   decimal.Decimal   `json:"avgTransaction"`
}

// MonthTrend is one month's income/expense totals for the trends chart
type MonthTrend struct {
	Month     int             `json:"month"`
	Year      int             `json:"year"`
	MonthName string          `json:"monthName"`
	Income    decimal.Decimal `json:"income"`
	Expenses  decimal.Decimal `json:"expenses"`
}

// DailyActivity is one day's totals within a month
type DailyActivity struct {
	Day      int             `json:"day"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

// TopCategory is one row of the admin global ranking
type TopCategory struct {
	Name  string          `json:"name"`
	Icon  string          `json:"icon"`
	Count int64           `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// AdminStats aggregates platform-wide totals for the admin dashboard
type AdminStats struct {
	TotalUsers        int64           `json:"totalUsers"`
	TotalTransactions int64           `json:"totalTransactions"`
	TotalIncome       decimal.Decimal `json:"totalIncome"`
	TotalExpenses     decimal.Decimal `json:"totalExpenses"`
	TopCategories     []TopCategory   `json:"topCategories"`
}

// DashboardRepository defines the aggregation reads behind the dashboard
type DashboardRepository interface {
	GetMonthlySummary(userID int64, month, year int) (*MonthlySummary, error)
	GetMonthlyTrends(userID int64) ([]*MonthTrend, error)
	GetDailyActivity(userID int64, month, year int) ([]*DailyActivity, error)
	GetTopCategories(limit int) ([]TopCategory, error)
}
