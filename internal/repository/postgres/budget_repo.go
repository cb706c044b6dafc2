package postgres

import (
	"context"
	"errors"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const budgetSelect = `
	SELECT b.id, b.user_id, b.category_id, COALESCE(c.name, ''), COALESCE(c.icon, ''),
	       b.amount, b.period, b.created_at
	FROM budgets b
	LEFT JOIN categories c ON b.category_id = c.id`

// BudgetRepository implements domain.BudgetRepository using PostgreSQL
type BudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new BudgetRepository
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

// Create inserts a budget; one budget per (user, category)
func (r *BudgetRepository) Create(budget *domain.Budget) (*domain.Budget, error) {
	ctx := context.Background()
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO budgets (user_id, category_id, amount, period)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		budget.UserID, budget.CategoryID, budget.Amount, budget.Period).Scan(&id)
	if err != nil {
		if isPgUniqueViolation(err) {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return r.GetByID(budget.UserID, id)
}

// GetByID retrieves one budget scoped to its owner
func (r *BudgetRepository) GetByID(userID int64, id int64) (*domain.Budget, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, budgetSelect+` WHERE b.id = $1 AND b.user_id = $2`, id, userID)
	budget, err := scanBudget(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}
	return budget, nil
}

// GetByUser lists a user's budgets ordered by category name
func (r *BudgetRepository) GetByUser(userID int64) ([]*domain.Budget, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, budgetSelect+` WHERE b.user_id = $1 ORDER BY c.name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []*domain.Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}
	return budgets, rows.Err()
}

// GetWithSpend returns every budget of the user annotated with the summed
// expense spend of its category for the given calendar month. Budgets drive
// the iteration: a category without a budget is not represented, and a budget
// without matching transactions carries spent = 0.
func (r *BudgetRepository) GetWithSpend(userID int64, month, year int) ([]*domain.BudgetWithSpend, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx,
		`SELECT b.id, COALESCE(c.name, ''), COALESCE(c.icon, ''), b.amount, b.period,
		        COALESCE(SUM(t.amount), 0) AS spent
		 FROM budgets b
		 LEFT JOIN categories c ON b.category_id = c.id
		 LEFT JOIN transactions t ON t.category_id = b.category_id
		   AND t.user_id = $1
		   AND t.type = 'expense'
		   AND EXTRACT(MONTH FROM t.date) = $2
		   AND EXTRACT(YEAR FROM t.date) = $3
		 WHERE b.user_id = $1
		 GROUP BY b.id, c.name, c.icon, b.amount, b.period`,
		userID, month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*domain.BudgetWithSpend
	for rows.Next() {
		var row domain.BudgetWithSpend
		if err := rows.Scan(&row.BudgetID, &row.CategoryName, &row.Icon, &row.Amount, &row.Period, &row.Spent); err != nil {
			return nil, err
		}
		results = append(results, &row)
	}
	return results, rows.Err()
}

// Update modifies a budget's amount and period
func (r *BudgetRepository) Update(userID int64, id int64, amount decimal.Decimal, period domain.BudgetPeriod) (*domain.Budget, error) {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx,
		`UPDATE budgets SET amount = $3, period = $4 WHERE id = $1 AND user_id = $2`,
		id, userID, amount, period)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrBudgetNotFound
	}
	return r.GetByID(userID, id)
}

// Delete removes a budget scoped to its owner
func (r *BudgetRepository) Delete(userID int64, id int64) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM budgets WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBudgetNotFound
	}
	return nil
}

func scanBudget(row pgx.Row) (*domain.Budget, error) {
	var budget domain.Budget
	err := row.Scan(
		&budget.ID,
		&budget.UserID,
		&budget.CategoryID,
		&budget.CategoryName,
		&budget.Icon,
		&budget.Amount,
		&budget.Period,
		&budget.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &budget, nil
}
