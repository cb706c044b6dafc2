package postgres

import (
	"context"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/util"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// DashboardRepository implements domain.DashboardRepository using PostgreSQL
type DashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a new DashboardRepository
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

// GetMonthlySummary aggregates one month of a user's activity
func (r *DashboardRepository) GetMonthlySummary(userID int64, month, year int) (*domain.MonthlySummary, error) {
	ctx := context.Background()

	summary := &domain.MonthlySummary{}

	err := r.pool.QueryRow(ctx,
		`SELECT
		   COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0),
		   COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0),
		   COUNT(*)
		 FROM transactions
		 WHERE user_id = $1
		   AND EXTRACT(MONTH FROM date) = $2
		   AND EXTRACT(YEAR FROM date) = $3`,
		userID, month, year).Scan(&summary.TotalIncome, &summary.TotalExpenses, &summary.TransactionCount)
	if err != nil {
		return nil, err
	}

	summary.Balance = summary.TotalIncome.Sub(summary.TotalExpenses)
	if summary.TransactionCount > 0 {
		summary.AvgTransaction = summary.TotalIncome.Add(summary.TotalExpenses).
			Div(decimal.NewFromInt(summary.TransactionCount))
	}

	rows, err := r.pool.Query(ctx,
		`SELECT COALESCE(c.name, ''), COALESCE(c.icon, ''), COALESCE(c.color, ''), t.type,
		        SUM(t.amount), COUNT(t.id)
		 FROM transactions t
		 LEFT JOIN categories c ON t.category_id = c.id
		 WHERE t.user_id = $1
		   AND EXTRACT(MONTH FROM t.date) = $2
		   AND EXTRACT(YEAR FROM t.date) = $3
		 GROUP BY c.id, c.name, c.icon, c.color, t.type
		 ORDER BY SUM(t.amount) DESC`,
		userID, month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var row domain.CategorySummary
		if err := rows.Scan(&row.Name, &row.Icon, &row.Color, &row.Type, &row.Total, &row.Count); err != nil {
			return nil, err
		}
		summary.ByCategory = append(summary.ByCategory, row)
	}
	return summary, rows.Err()
}

// GetMonthlyTrends returns per-month income/expense totals for every month
// that has at least one transaction, newest first
func (r *DashboardRepository) GetMonthlyTrends(userID int64) ([]*domain.MonthTrend, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx,
		`SELECT EXTRACT(YEAR FROM date)::int, EXTRACT(MONTH FROM date)::int,
		        COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0)
		 FROM transactions
		 WHERE user_id = $1
		 GROUP BY 1, 2
		 ORDER BY 1 DESC, 2 DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trends []*domain.MonthTrend
	for rows.Next() {
		var trend domain.MonthTrend
		if err := rows.Scan(&trend.Year, &trend.Month, &trend.Income, &trend.Expenses); err != nil {
			return nil, err
		}
		trend.MonthName = util.MonthName(trend.Month)
		trends = append(trends, &trend)
	}
	return trends, rows.Err()
}

// GetDailyActivity returns per-day totals within one month
func (r *DashboardRepository) GetDailyActivity(userID int64, month, year int) ([]*domain.DailyActivity, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx,
		`SELECT EXTRACT(DAY FROM date)::int,
		        COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE -amount END), 0)
		 FROM transactions
		 WHERE user_id = $1
		   AND EXTRACT(MONTH FROM date) = $2
		   AND EXTRACT(YEAR FROM date) = $3
		 GROUP BY 1
		 ORDER BY 1`, userID, month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var daily []*domain.DailyActivity
	for rows.Next() {
		var day domain.DailyActivity
		if err := rows.Scan(&day.Day, &day.Income, &day.Expenses, &day.Net); err != nil {
			return nil, err
		}
		daily = append(daily, &day)
	}
	return daily, rows.Err()
}

// GetTopCategories ranks categories by total amount across all users
func (r *DashboardRepository) GetTopCategories(limit int) ([]domain.TopCategory, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx,
		`SELECT COALESCE(c.name, ''), COALESCE(c.icon, ''), COUNT(t.id), COALESCE(SUM(t.amount), 0)
		 FROM transactions t
		 LEFT JOIN categories c ON t.category_id = c.id
		 GROUP BY c.id, c.name, c.icon
		 ORDER BY SUM(t.amount) DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var top []domain.TopCategory
	for rows.Next() {
		var row domain.TopCategory
		if err := rows.Scan(&row.Name, &row.Icon, &row.Count, &row.Total); err != nil {
			return nil, err
		}
		top = append(top, row)
	}
	return top, rows.Err()
}
