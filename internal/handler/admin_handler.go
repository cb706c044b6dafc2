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

// AdminHandler handles the admin surface
type AdminHandler struct {
	adminService *service.AdminService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// UpdateUserRequest represents the admin user update request body
type UpdateUserRequest struct {
	Role     *string `json:"role,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// ListUsers returns every registered account
// GET /admin/users
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.adminService.ListUsers()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users")
		return NewInternalError(c, "Failed to list users")
	}

	return c.JSON(http.StatusOK, users)
}

// UpdateUser changes a user's role or active flag
// PATCH /admin/users/:id
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	adminID := middleware.GetUserID(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid user ID", nil)
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	update := &domain.UserUpdate{IsActive: req.IsActive}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		update.Role = &role
	}

	user, err := h.adminService.UpdateUser(adminID, id, update)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "role", Message: "Must be one of: user, admin"},
			})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return NewForbiddenError(c, "Cannot demote or deactivate your own account")
		}
		if errors.Is(err, domain.ErrNotFound) {
			return NewNotFoundError(c, "User not found")
		}
		log.Error().Err(err).Int64("user_id", id).Msg("Failed to update user")
		return NewInternalError(c, "Failed to update user")
	}

	return c.JSON(http.StatusOK, user)
}

// DeleteUser removes an account and all its data
// DELETE /admin/users/:id
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	adminID := middleware.GetUserID(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid user ID", nil)
	}

	if err := h.adminService.DeleteUser(adminID, id); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return NewForbiddenError(c, "Cannot delete your own account")
		}
		if errors.Is(err, domain.ErrNotFound) {
			return NewNotFoundError(c, "User not found")
		}
		log.Error().Err(err).Int64("user_id", id).Msg("Failed to delete user")
		return NewInternalError(c, "Failed to delete user")
	}

	return c.NoContent(http.StatusNoContent)
}

// Stats aggregates platform-wide totals
// GET /admin/stats
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.adminService.Stats()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load admin stats")
		return NewInternalError(c, "Failed to load admin stats")
	}

	return c.JSON(http.StatusOK, stats)
}
