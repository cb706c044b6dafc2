package postgres

import (
	"context"
	"time"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	notificationColumns = "id, user_id, type, title, message, icon, is_read, created_at"

	// List caps match the web client's polling queries
	maxNotifications       = 100
	maxUnreadNotifications = 50
)

// NotificationRepository implements domain.NotificationRepository using PostgreSQL
type NotificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

// Create appends a notification. A non-empty dedup key is enforced unique per
// user by a partial index; a violation surfaces as domain.ErrAlreadyExists so
// racing evaluators converge on one row.
func (r *NotificationRepository) Create(notification *domain.Notification) (*domain.Notification, error) {
	ctx := context.Background()

	var dedupKey *string
	if notification.DedupKey != "" {
		dedupKey = &notification.DedupKey
	}

	icon := notification.Icon
	if icon == "" {
		icon = domain.DefaultNotificationIcon
	}

	row := r.pool.QueryRow(ctx,
		`INSERT INTO notifications (user_id, type, title, message, icon, is_read, dedup_key, created_at)
		 VALUES ($1, $2, $3, $4, $5, FALSE, $6, NOW())
		 RETURNING `+notificationColumns,
		notification.UserID, notification.Type, notification.Title, notification.Message, icon, dedupKey)

	created, err := scanNotification(row)
	if err != nil {
		if isPgUniqueViolation(err) {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return created, nil
}

// GetByUser lists a user's notifications, newest first
func (r *NotificationRepository) GetByUser(userID int64, unreadOnly bool) ([]*domain.Notification, error) {
	ctx := context.Background()

	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE user_id = $1`
	limit := maxNotifications
	if unreadOnly {
		query += ` AND is_read = FALSE`
		limit = maxUnreadNotifications
	}
	query += ` ORDER BY created_at DESC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*domain.Notification
	for rows.Next() {
		notification, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, notification)
	}
	return notifications, rows.Err()
}

// ExistsSince reports whether a notification of the given type for the given
// category was created on/after since. The category match uses the message
// prefix convention "Category: ...".
func (r *NotificationRepository) ExistsSince(userID int64, notificationType domain.NotificationType, categoryName string, since time.Time) (bool, error) {
	ctx := context.Background()
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM notifications
		   WHERE user_id = $1
		     AND type = $2
		     AND message LIKE $3
		     AND created_at >= $4
		 )`,
		userID, notificationType, categoryName+":%", since).Scan(&exists)
	return exists, err
}

// MarkRead flags one notification as read, scoped to its owner
func (r *NotificationRepository) MarkRead(userID int64, id int64) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkAllRead flags all of a user's unread notifications as read
func (r *NotificationRepository) MarkAllRead(userID int64) error {
	ctx := context.Background()
	_, err := r.pool.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`, userID)
	return err
}

func scanNotification(row pgx.Row) (*domain.Notification, error) {
	var notification domain.Notification
	err := row.Scan(
		&notification.ID,
		&notification.UserID,
		&notification.Type,
		&notification.Title,
		&notification.Message,
		&notification.Icon,
		&notification.IsRead,
		&notification.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &notification, nil
}
