package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/middleware"
	"github.com/centavo/centavo-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationService *service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// CreateNotificationRequest represents the create notification request body
type CreateNotificationRequest struct {
	Type    string `json:"type" validate:"required"`
	Title   string `json:"title" validate:"required,max=255"`
	Message string `json:"message"`
	Icon    string `json:"icon"`
}

// List returns the user's notifications, newest first
// GET /notifications
func (h *NotificationHandler) List(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	unreadOnly := c.QueryParam("unread") == "true"

	notifications, err := h.notificationService.List(userID, unreadOnly)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to list notifications")
		return NewInternalError(c, "Failed to list notifications")
	}

	return c.JSON(http.StatusOK, notifications)
}

// Create stores a notification for the current user
// POST /notifications
func (h *NotificationHandler) Create(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateNotificationRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return NewValidationError(c, "Validation failed", validationErrors(err))
	}

	notification, err := h.notificationService.Create(&domain.Notification{
		UserID:  userID,
		Type:    domain.NotificationType(req.Type),
		Title:   req.Title,
		Message: req.Message,
		Icon:    req.Icon,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return NewConflictError(c, "Notification already exists")
		}
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to create notification")
		return NewInternalError(c, "Failed to create notification")
	}

	return c.JSON(http.StatusCreated, notification)
}

// MarkRead marks one notification as read
// PATCH /notifications/:id
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid notification ID", nil)
	}

	if err := h.notificationService.MarkRead(userID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return NewNotFoundError(c, "Notification not found")
		}
		log.Error().Err(err).Int64("user_id", userID).Int64("notification_id", id).Msg("Failed to mark notification read")
		return NewInternalError(c, "Failed to mark notification read")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Notification marked as read"})
}

// MarkAllRead marks every unread notification as read
// PATCH /notifications/read-all
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	if err := h.notificationService.MarkAllRead(userID); err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to mark notifications read")
		return NewInternalError(c, "Failed to mark notifications read")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "All notifications marked as read"})
}
