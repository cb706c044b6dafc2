package domain

import "time"

// NotificationType tags the origin of a notification
type NotificationType string

const (
	NotificationTransaction        NotificationType = "transaction"
	NotificationBudget             NotificationType = "budget"
	NotificationSystem             NotificationType = "system"
	NotificationAlert              NotificationType = "alert"
	NotificationExpenseAdded       NotificationType = "expense_added"
	NotificationIncomeAdded        NotificationType = "income_added"
	NotificationTransactionUpdated NotificationType = "transaction_updated"
	NotificationTransactionDeleted NotificationType = "transaction_deleted"
	NotificationBudgetCreated      NotificationType = "budget_created"
	NotificationBudgetUpdated      NotificationType = "budget_updated"
	NotificationBudgetDeleted      NotificationType = "budget_deleted"
	NotificationBudgetExceeded     NotificationType = "budget_exceeded"
)

// DefaultNotificationIcon is used when the caller does not pick one
const DefaultNotificationIcon = "🔔"

// Notification is an append-only record surfaced to the user. The evaluator
// never mutates existing rows; read-state changes happen through MarkRead.
type Notification struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"userId"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Icon      string           `json:"icon"`
	IsRead    bool             `json:"isRead"`
	CreatedAt time.Time        `json:"createdAt"`
	// DedupKey enforces at-most-one semantics at the persistence layer for
	// notification kinds that carry one (budget_exceeded). Empty otherwise.
	DedupKey string `json:"-"`
}

// NotificationRepository defines the interface for the notification sink.
// Create returns ErrAlreadyExists when a row with the same non-empty dedup
// key already exists; callers treat that as "another caller already notified".
type NotificationRepository interface {
	Create(notification *Notification) (*Notification, error)
	GetByUser(userID int64, unreadOnly bool) ([]*Notification, error)
	// ExistsSince reports whether a notification of the given type whose
	// message starts with the category prefix was created on/after since.
	ExistsSince(userID int64, notificationType NotificationType, categoryName string, since time.Time) (bool, error)
	MarkRead(userID int64, id int64) error
	MarkAllRead(userID int64) error
}
