package handler

import (
	"errors"
	"net/http"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/middleware"
	"github.com/centavo/centavo-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// SettingsHandler handles user preference updates
type SettingsHandler struct {
	authService *service.AuthService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(authService *service.AuthService) *SettingsHandler {
	return &SettingsHandler{authService: authService}
}

// BudgetSettingsRequest represents the budget settings request body
type BudgetSettingsRequest struct {
	MonthlyBudget     string `json:"monthlyBudget" validate:"required"`
	PreferredCurrency string `json:"preferredCurrency"`
}

// UpdateBudget stores the user's personal budget preferences
// PUT /settings/budget
func (h *SettingsHandler) UpdateBudget(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req BudgetSettingsRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return NewValidationError(c, "Validation failed", validationErrors(err))
	}

	monthlyBudget, err := decimal.NewFromString(req.MonthlyBudget)
	if err != nil {
		return NewValidationError(c, "Invalid monthlyBudget", []ValidationError{
			{Field: "monthlyBudget", Message: "Must be a valid decimal number"},
		})
	}

	user, err := h.authService.UpdateBudgetSettings(userID, monthlyBudget, req.PreferredCurrency)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAmount) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "monthlyBudget", Message: "Must be zero or positive"},
			})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return NewNotFoundError(c, "User not found")
		}
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to update budget settings")
		return NewInternalError(c, "Failed to update budget settings")
	}

	return c.JSON(http.StatusOK, user)
}
