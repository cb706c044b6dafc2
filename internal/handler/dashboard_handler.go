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

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Summary returns the month's totals and category breakdown
// GET /dashboard/summary
func (h *DashboardHandler) Summary(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	month, year, err := parsePeriodParams(c)
	if err != nil {
		return err
	}

	summary, err := h.dashboardService.Summary(userID, month, year)
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
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to load dashboard summary")
		return NewInternalError(c, "Failed to load dashboard summary")
	}

	return c.JSON(http.StatusOK, summary)
}

// MonthlyTrends returns recent months' income/expense totals
// GET /dashboard/monthly-trends
func (h *DashboardHandler) MonthlyTrends(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	trends, err := h.dashboardService.MonthlyTrends(userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to load monthly trends")
		return NewInternalError(c, "Failed to load monthly trends")
	}

	return c.JSON(http.StatusOK, trends)
}

// DailyActivity returns per-day totals for one month
// GET /dashboard/daily-activity
func (h *DashboardHandler) DailyActivity(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	month, year, err := parsePeriodParams(c)
	if err != nil {
		return err
	}

	activity, err := h.dashboardService.DailyActivity(userID, month, year)
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
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to load daily activity")
		return NewInternalError(c, "Failed to load daily activity")
	}

	return c.JSON(http.StatusOK, activity)
}

// parsePeriodParams reads optional month/year query params; both zero means
// the current period
func parsePeriodParams(c echo.Context) (int, int, error) {
	var month, year int
	if monthStr := c.QueryParam("month"); monthStr != "" {
		parsed, err := strconv.Atoi(monthStr)
		if err != nil {
			return 0, 0, NewValidationError(c, "Invalid month", []ValidationError{
				{Field: "month", Message: "Must be a number between 1 and 12"},
			})
		}
		month = parsed
	}
	if yearStr := c.QueryParam("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			return 0, 0, NewValidationError(c, "Invalid year", nil)
		}
		year = parsed
	}
	return month, year, nil
}
