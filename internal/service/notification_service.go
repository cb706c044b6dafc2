package service

import (
	"errors"
	"time"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/metrics"
	"github.com/centavo/centavo-backend/internal/websocket"
	"github.com/rs/zerolog/log"
)

// NotificationService handles the notification feed and acts as the sink for
// event-driven notifications raised by other services
type NotificationService struct {
	repo      domain.NotificationRepository
	publisher websocket.EventPublisher
	metrics   metrics.Recorder
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(repo domain.NotificationRepository, publisher websocket.EventPublisher, recorder metrics.Recorder) *NotificationService {
	return &NotificationService{repo: repo, publisher: publisher, metrics: recorder}
}

// List returns the user's notifications, optionally unread only
func (s *NotificationService) List(userID int64, unreadOnly bool) ([]*domain.Notification, error) {
	return s.repo.GetByUser(userID, unreadOnly)
}

// Create appends a notification and pushes it to connected clients. Used by
// the explicit creation endpoint; errors are surfaced.
func (s *NotificationService) Create(notification *domain.Notification) (*domain.Notification, error) {
	created, err := s.repo.Create(notification)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordNotificationCreated(string(created.Type))
	s.publisher.Publish(created.UserID, websocket.NotificationCreated(created))
	return created, nil
}

// Notify appends a notification on a best-effort basis. Persistence failures
// are logged and swallowed: the operation that triggered the notification is
// more valuable than the side-channel record, so it must not be aborted.
// Returns the created notification, or nil when nothing was stored.
func (s *NotificationService) Notify(notification *domain.Notification) *domain.Notification {
	created, err := s.repo.Create(notification)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			// Another caller raced past the existence check and already
			// notified; the unique dedup index kept a single row.
			s.metrics.RecordNotificationDeduped()
			return nil
		}
		s.metrics.RecordNotificationFailure()
		log.Error().
			Err(err).
			Int64("user_id", notification.UserID).
			Str("type", string(notification.Type)).
			Msg("Failed to create notification")
		return nil
	}
	s.metrics.RecordNotificationCreated(string(created.Type))
	s.publisher.Publish(created.UserID, websocket.NotificationCreated(created))
	return created
}

// ExistsSince reports whether a notification of the given type for the given
// category exists on/after since
func (s *NotificationService) ExistsSince(userID int64, notificationType domain.NotificationType, categoryName string, since time.Time) (bool, error) {
	return s.repo.ExistsSince(userID, notificationType, categoryName, since)
}

// MarkRead flags one notification as read
func (s *NotificationService) MarkRead(userID int64, id int64) error {
	if err := s.repo.MarkRead(userID, id); err != nil {
		return err
	}
	s.publisher.Publish(userID, websocket.NotificationRead(map[string]int64{"id": id}))
	return nil
}

// MarkAllRead flags all of the user's notifications as read
func (s *NotificationService) MarkAllRead(userID int64) error {
	if err := s.repo.MarkAllRead(userID); err != nil {
		return err
	}
	s.publisher.Publish(userID, websocket.NotificationRead(map[string]string{"scope": "all"}))
	return nil
}
