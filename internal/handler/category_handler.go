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

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoryRequest represents the create/update category request body
type CategoryRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
	Type  string `json:"type" validate:"required,oneof=income expense"`
}

// List returns the categories visible to the user
// GET /categories
func (h *CategoryHandler) List(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	categories, err := h.categoryService.List(userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to list categories")
		return NewInternalError(c, "Failed to list categories")
	}

	return c.JSON(http.StatusOK, categories)
}

// Create adds a personal category
// POST /categories
func (h *CategoryHandler) Create(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return NewValidationError(c, "Validation failed", validationErrors(err))
	}

	category, err := h.categoryService.Create(userID, req.Name, req.Icon, req.Color, domain.CategoryType(req.Type))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return NewValidationError(c, "Validation failed", nil)
		}
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to create category")
		return NewInternalError(c, "Failed to create category")
	}

	return c.JSON(http.StatusCreated, category)
}

// Update modifies a category
// PUT /categories/:id
func (h *CategoryHandler) Update(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return NewValidationError(c, "Validation failed", validationErrors(err))
	}

	category, err := h.categoryService.Update(userID, middleware.GetRole(c), id, req.Name, req.Icon, req.Color, domain.CategoryType(req.Type))
	if err != nil {
		return h.mapCategoryError(c, userID, id, err, "Failed to update category")
	}

	return c.JSON(http.StatusOK, category)
}

// Delete removes a category
// DELETE /categories/:id
func (h *CategoryHandler) Delete(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	if err := h.categoryService.Delete(userID, middleware.GetRole(c), id); err != nil {
		return h.mapCategoryError(c, userID, id, err, "Failed to delete category")
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *CategoryHandler) mapCategoryError(c echo.Context, userID, id int64, err error, fallback string) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return NewValidationError(c, "Validation failed", nil)
	}
	if errors.Is(err, domain.ErrForbidden) {
		return NewForbiddenError(c, "Cannot modify this category")
	}
	if errors.Is(err, domain.ErrNotFound) {
		return NewNotFoundError(c, "Category not found")
	}
	log.Error().Err(err).Int64("user_id", userID).Int64("category_id", id).Msg(fallback)
	return NewInternalError(c, fallback)
}
