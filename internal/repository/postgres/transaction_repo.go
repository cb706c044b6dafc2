package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const transactionSelect = `
	SELECT t.id, t.user_id, t.category_id, COALESCE(c.name, ''), COALESCE(c.icon, ''), COALESCE(c.color, ''),
	       t.title, t.amount, t.description, t.type, t.date, t.created_at
	FROM transactions t
	LEFT JOIN categories c ON t.category_id = c.id`

// TransactionRepository implements domain.TransactionRepository using PostgreSQL
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create inserts a transaction
func (r *TransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	ctx := context.Background()
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO transactions (user_id, category_id, title, amount, description, type, date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		transaction.UserID, transaction.CategoryID, transaction.Title, transaction.Amount,
		transaction.Description, transaction.Type, transaction.Date).Scan(&id)
	if err != nil {
		return nil, err
	}
	return r.GetByID(transaction.UserID, id)
}

// GetByID retrieves one transaction scoped to its owner
func (r *TransactionRepository) GetByID(userID int64, id int64) (*domain.Transaction, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, transactionSelect+` WHERE t.id = $1 AND t.user_id = $2`, id, userID)
	transaction, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return transaction, nil
}

// GetByUser lists a user's transactions, newest first, applying any filters
func (r *TransactionRepository) GetByUser(userID int64, filters *domain.TransactionFilters) ([]*domain.Transaction, error) {
	ctx := context.Background()

	var conditions []string
	args := []interface{}{userID}
	conditions = append(conditions, "t.user_id = $1")

	if filters != nil {
		if filters.Month != nil && filters.Year != nil {
			args = append(args, *filters.Month)
			conditions = append(conditions, fmt.Sprintf("EXTRACT(MONTH FROM t.date) = $%d", len(args)))
			args = append(args, *filters.Year)
			conditions = append(conditions, fmt.Sprintf("EXTRACT(YEAR FROM t.date) = $%d", len(args)))
		}
		if filters.CategoryID != nil {
			args = append(args, *filters.CategoryID)
			conditions = append(conditions, fmt.Sprintf("t.category_id = $%d", len(args)))
		}
		if filters.Type != nil {
			args = append(args, *filters.Type)
			conditions = append(conditions, fmt.Sprintf("t.type = $%d", len(args)))
		}
		if filters.StartDate != nil {
			args = append(args, *filters.StartDate)
			conditions = append(conditions, fmt.Sprintf("t.date >= $%d", len(args)))
		}
		if filters.EndDate != nil {
			args = append(args, *filters.EndDate)
			conditions = append(conditions, fmt.Sprintf("t.date <= $%d", len(args)))
		}
	}

	query := transactionSelect + " WHERE " + strings.Join(conditions, " AND ") + " ORDER BY t.date DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}
	return transactions, rows.Err()
}

// Update modifies an existing transaction scoped to its owner
func (r *TransactionRepository) Update(transaction *domain.Transaction) (*domain.Transaction, error) {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx,
		`UPDATE transactions
		 SET category_id = $3, title = $4, amount = $5, description = $6, type = $7, date = $8
		 WHERE id = $1 AND user_id = $2`,
		transaction.ID, transaction.UserID, transaction.CategoryID, transaction.Title,
		transaction.Amount, transaction.Description, transaction.Type, transaction.Date)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(transaction.UserID, transaction.ID)
}

// Delete removes a transaction scoped to its owner
func (r *TransactionRepository) Delete(userID int64, id int64) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count returns the total number of transactions across all users
func (r *TransactionRepository) Count() (int64, error) {
	ctx := context.Background()
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&count)
	return count, err
}

// SumByType returns the platform-wide total for one transaction type
func (r *TransactionRepository) SumByType(transactionType domain.TransactionType) (decimal.Decimal, error) {
	ctx := context.Background()
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE type = $1`, transactionType).Scan(&total)
	return total, err
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var transaction domain.Transaction
	err := row.Scan(
		&transaction.ID,
		&transaction.UserID,
		&transaction.CategoryID,
		&transaction.CategoryName,
		&transaction.Icon,
		&transaction.Color,
		&transaction.Title,
		&transaction.Amount,
		&transaction.Description,
		&transaction.Type,
		&transaction.Date,
		&transaction.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}
