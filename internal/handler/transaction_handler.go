package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/middleware"
	"github.com/centavo/centavo-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// TransactionRequest represents the create/update transaction request body
type TransactionRequest struct {
	CategoryID  int64   `json:"categoryId"`
	Title       string  `json:"title" validate:"required,max=255"`
	Amount      string  `json:"amount" validate:"required"`
	Description string  `json:"description"`
	Type        string  `json:"type" validate:"required,oneof=income expense"`
	Date        *string `json:"date,omitempty"`
}

func (r *TransactionRequest) toInput(c echo.Context) (*service.TransactionInput, error) {
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return nil, NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	var date *time.Time
	if r.Date != nil && *r.Date != "" {
		parsed, err := time.Parse("2006-01-02", *r.Date)
		if err != nil {
			return nil, NewValidationError(c, "Invalid date", []ValidationError{
				{Field: "date", Message: "Must be in YYYY-MM-DD format"},
			})
		}
		date = &parsed
	}

	return &service.TransactionInput{
		CategoryID:  r.CategoryID,
		Title:       r.Title,
		Amount:      amount,
		Description: r.Description,
		Type:        domain.TransactionType(r.Type),
		Date:        date,
	}, nil
}

// Create adds a transaction
// POST /transactions
func (h *TransactionHandler) Create(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return NewValidationError(c, "Validation failed", validationErrors(err))
	}

	input, err := req.toInput(c)
	if err != nil {
		return err
	}

	transaction, err := h.transactionService.Create(userID, input)
	if err != nil {
		return h.mapTransactionError(c, userID, err, "Failed to create transaction")
	}

	log.Info().Int64("user_id", userID).Int64("transaction_id", transaction.ID).Str("title", transaction.Title).Msg("Transaction created")

	return c.JSON(http.StatusCreated, transaction)
}

// List returns the user's transactions with optional filters
// GET /transactions
func (h *TransactionHandler) List(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	filters := &domain.TransactionFilters{}

	if monthStr := c.QueryParam("month"); monthStr != "" {
		month, err := strconv.Atoi(monthStr)
		if err != nil || month < 1 || month > 12 {
			return NewValidationError(c, "Invalid month", []ValidationError{
				{Field: "month", Message: "Must be between 1 and 12"},
			})
		}
		filters.Month = &month
	}

	if yearStr := c.QueryParam("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return NewValidationError(c, "Invalid year", nil)
		}
		filters.Year = &year
	}

	if categoryStr := c.QueryParam("categoryId"); categoryStr != "" {
		categoryID, err := strconv.ParseInt(categoryStr, 10, 64)
		if err != nil {
			return NewValidationError(c, "Invalid categoryId", nil)
		}
		filters.CategoryID = &categoryID
	}

	if typeStr := c.QueryParam("type"); typeStr != "" {
		transactionType := domain.TransactionType(typeStr)
		if transactionType != domain.TransactionTypeIncome && transactionType != domain.TransactionTypeExpense {
			return NewValidationError(c, "Invalid type", []ValidationError{
				{Field: "type", Message: "Must be one of: income, expense"},
			})
		}
		filters.Type = &transactionType
	}

	if startStr := c.QueryParam("startDate"); startStr != "" {
		parsed, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			return NewValidationError(c, "Invalid startDate format (use YYYY-MM-DD)", nil)
		}
		filters.StartDate = &parsed
	}

	if endStr := c.QueryParam("endDate"); endStr != "" {
		parsed, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			return NewValidationError(c, "Invalid endDate format (use YYYY-MM-DD)", nil)
		}
		filters.EndDate = &parsed
	}

	transactions, err := h.transactionService.List(userID, filters)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to list transactions")
		return NewInternalError(c, "Failed to list transactions")
	}

	return c.JSON(http.StatusOK, transactions)
}

// Update modifies a transaction
// PUT /transactions/:id
func (h *TransactionHandler) Update(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return NewValidationError(c, "Validation failed", validationErrors(err))
	}

	input, err := req.toInput(c)
	if err != nil {
		return err
	}

	transaction, err := h.transactionService.Update(userID, id, input)
	if err != nil {
		return h.mapTransactionError(c, userID, err, "Failed to update transaction")
	}

	return c.JSON(http.StatusOK, transaction)
}

// Delete removes a transaction
// DELETE /transactions/:id
func (h *TransactionHandler) Delete(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	if err := h.transactionService.Delete(userID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		log.Error().Err(err).Int64("user_id", userID).Int64("transaction_id", id).Msg("Failed to delete transaction")
		return NewInternalError(c, "Failed to delete transaction")
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *TransactionHandler) mapTransactionError(c echo.Context, userID int64, err error, fallback string) error {
	if errors.Is(err, domain.ErrInvalidAmount) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must be positive"},
		})
	}
	if errors.Is(err, domain.ErrCategoryNotFound) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "categoryId", Message: "Category not found"},
		})
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return NewValidationError(c, "Validation failed", nil)
	}
	if errors.Is(err, domain.ErrNotFound) {
		return NewNotFoundError(c, "Transaction not found")
	}
	log.Error().Err(err).Int64("user_id", userID).Msg(fallback)
	return NewInternalError(c, fallback)
}
