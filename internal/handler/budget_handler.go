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
	"github.com/shopspring/decimal"
)

// BudgetHandler handles budget-related HTTP requests, including the alert
// check endpoint
type BudgetHandler struct {
	budgetService *service.BudgetService
	alertService  *service.AlertService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService, alertService *service.AlertService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, alertService: alertService}
}

// BudgetRequest represents the create/update budget request body
type BudgetRequest struct {
	CategoryID int64  `json:"categoryId"`
	Amount     string `json:"amount" validate:"required"`
	Period     string `json:"period"`
}

// List returns the user's budgets
// GET /budgets
func (h *BudgetHandler) List(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	budgets, err := h.budgetService.List(userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to list budgets")
		return NewInternalError(c, "Failed to list budgets")
	}

	return c.JSON(http.StatusOK, budgets)
}

// Create sets a budget for a category
// POST /budgets
func (h *BudgetHandler) Create(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req BudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return NewValidationError(c, "Validation failed", validationErrors(err))
	}
	if req.CategoryID <= 0 {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "categoryId", Message: "Category ID is required"},
		})
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	budget, err := h.budgetService.Create(userID, req.CategoryID, amount, domain.BudgetPeriod(req.Period))
	if err != nil {
		return h.mapBudgetError(c, userID, err, "Failed to create budget")
	}

	return c.JSON(http.StatusCreated, budget)
}

// Update changes a budget's amount and period
// PUT /budgets/:id
func (h *BudgetHandler) Update(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	var req BudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return NewValidationError(c, "Validation failed", validationErrors(err))
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	budget, err := h.budgetService.Update(userID, id, amount, domain.BudgetPeriod(req.Period))
	if err != nil {
		return h.mapBudgetError(c, userID, err, "Failed to update budget")
	}

	return c.JSON(http.StatusOK, budget)
}

// Delete removes a budget
// DELETE /budgets/:id
func (h *BudgetHandler) Delete(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	if err := h.budgetService.Delete(userID, id); err != nil {
		return h.mapBudgetError(c, userID, err, "Failed to delete budget")
	}

	return c.NoContent(http.StatusNoContent)
}

// Check evaluates the user's budgets against their spend and returns the
// alerts at or above the warning threshold. Exceeded budgets also produce a
// deduplicated notification as a side effect.
// GET /budgets/check
func (h *BudgetHandler) Check(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var month, year int
	if monthStr := c.QueryParam("month"); monthStr != "" {
		parsed, err := strconv.Atoi(monthStr)
		if err != nil {
			return NewValidationError(c, "Invalid month", []ValidationError{
				{Field: "month", Message: "Must be a number between 1 and 12"},
			})
		}
		month = parsed
	}
	if yearStr := c.QueryParam("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			return NewValidationError(c, "Invalid year", nil)
		}
		year = parsed
	}

	alerts, err := h.alertService.Evaluate(userID, month, year)
	if err != nil {
		if errors.Is(err, domain.ErrIncompletePeriod) {
			return NewValidationError(c, "Incomplete period", []ValidationError{
				{Field: "month", Message: "Month and year must be supplied together"},
			})
		}
		if errors.Is(err, domain.ErrInvalidMonth) {
			return NewValidationError(c, "Invalid month", []ValidationError{
				{Field: "month", Message: "Must be a number between 1 and 12"},
			})
		}
		if errors.Is(err, domain.ErrUnauthorized) {
			return NewUnauthorizedError(c, "Authentication required")
		}
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to evaluate budget alerts")
		return NewInternalError(c, "Failed to evaluate budget alerts")
	}

	return c.JSON(http.StatusOK, alerts)
}

func (h *BudgetHandler) mapBudgetError(c echo.Context, userID int64, err error, fallback string) error {
	if errors.Is(err, domain.ErrInvalidAmount) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must be zero or positive"},
		})
	}
	if errors.Is(err, domain.ErrInvalidPeriod) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "period", Message: "Must be one of: month, week"},
		})
	}
	if errors.Is(err, domain.ErrCategoryNotFound) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "categoryId", Message: "Category not found"},
		})
	}
	if errors.Is(err, domain.ErrAlreadyExists) {
		return NewConflictError(c, "A budget for this category already exists")
	}
	if errors.Is(err, domain.ErrNotFound) {
		return NewNotFoundError(c, "Budget not found")
	}
	log.Error().Err(err).Int64("user_id", userID).Msg(fallback)
	return NewInternalError(c, fallback)
}
