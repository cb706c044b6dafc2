package service

import (
	"time"

	"github.com/centavo/centavo-backend/internal/domain"
)

// DashboardService serves the aggregated views behind the dashboard screens
type DashboardService struct {
	dashboardRepo domain.DashboardRepository
	now           func() time.Time
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(dashboardRepo domain.DashboardRepository) *DashboardService {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		now:           time.Now,
	}
}

// Summary returns the month's totals and category breakdown. A zero month and
// year select the current month on the server clock.
func (s *DashboardService) Summary(userID int64, month, year int) (*domain.MonthlySummary, error) {
	month, year, err := s.resolvePeriod(month, year)
	if err != nil {
		return nil, err
	}
	return s.dashboardRepo.GetMonthlySummary(userID, month, year)
}

// MonthlyTrends returns recent months' income/expense totals
func (s *DashboardService) MonthlyTrends(userID int64) ([]*domain.MonthTrend, error) {
	return s.dashboardRepo.GetMonthlyTrends(userID)
}

// DailyActivity returns per-day totals for one month
func (s *DashboardService) DailyActivity(userID int64, month, year int) ([]*domain.DailyActivity, error) {
	month, year, err := s.resolvePeriod(month, year)
	if err != nil {
		return nil, err
	}
	return s.dashboardRepo.GetDailyActivity(userID, month, year)
}

func (s *DashboardService) resolvePeriod(month, year int) (int, int, error) {
	if month == 0 && year == 0 {
		now := s.now()
		return int(now.Month()), now.Year(), nil
	}
	if month == 0 || year == 0 {
		return 0, 0, domain.ErrIncompletePeriod
	}
	if month < 1 || month > 12 {
		return 0, 0, domain.ErrInvalidMonth
	}
	return month, year, nil
}
