package service

import (
	"fmt"
	"time"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/metrics"
	"github.com/centavo/centavo-backend/internal/util"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	// AlertThresholdPercent is the spend ratio from which a budget shows up
	// in the alert list
	AlertThresholdPercent = 80

	exceededTitle = "⚠️ Presupuesto excedido"
	exceededIcon  = "AlertTriangle"
)

var alertThreshold = decimal.NewFromInt(AlertThresholdPercent)

// NotificationSink is the evaluator's side channel. Notify tolerates and
// swallows persistence failures.
type NotificationSink interface {
	ExistsSince(userID int64, notificationType domain.NotificationType, categoryName string, since time.Time) (bool, error)
	Notify(notification *domain.Notification) *domain.Notification
}

// AlertService evaluates spend-vs-budget ratios for a user and period and
// raises at most one budget_exceeded notification per category per period.
// It is stateless and safe for concurrent use across users.
type AlertService struct {
	budgetRepo domain.BudgetRepository
	sink       NotificationSink
	metrics    metrics.Recorder
	now        func() time.Time
}

// NewAlertService creates a new AlertService
func NewAlertService(budgetRepo domain.BudgetRepository, sink NotificationSink, recorder metrics.Recorder) *AlertService {
	return &AlertService{
		budgetRepo: budgetRepo,
		sink:       sink,
		metrics:    recorder,
		now:        time.Now,
	}
}

// Evaluate computes the alert list for the user's budgets in the given
// calendar month. Month and year of zero default to the current month on the
// server clock. The returned list always reflects live computed spend and is
// independent of whether any notifications were recorded.
func (s *AlertService) Evaluate(userID int64, month, year int) ([]domain.Alert, error) {
	start := s.now()

	if userID <= 0 {
		s.metrics.RecordAlertEvaluation("unauthorized", s.now().Sub(start), 0)
		return nil, domain.ErrUnauthorized
	}
	if month == 0 && year == 0 {
		month, year = util.CurrentMonthYear(s.now())
	}
	if month == 0 || year == 0 {
		s.metrics.RecordAlertEvaluation("invalid_input", s.now().Sub(start), 0)
		return nil, domain.ErrIncompletePeriod
	}
	if month < 1 || month > 12 {
		s.metrics.RecordAlertEvaluation("invalid_input", s.now().Sub(start), 0)
		return nil, domain.ErrInvalidMonth
	}

	// Ledger read. Budgets drive the iteration: categories without a budget
	// never alert, budgets without transactions carry spent = 0.
	rows, err := s.budgetRepo.GetWithSpend(userID, month, year)
	if err != nil {
		s.metrics.RecordAlertEvaluation("error", s.now().Sub(start), 0)
		return nil, fmt.Errorf("loading budgets with spend: %w", err)
	}

	alerts := make([]domain.Alert, 0)
	for _, row := range rows {
		percentage := decimal.Zero
		if row.Amount.IsPositive() {
			percentage = row.Spent.Div(row.Amount).Mul(decimal.NewFromInt(100))
		}
		if percentage.LessThan(alertThreshold) {
			continue
		}

		// Exceeded is strictly spent > amount. Spent == amount reads 100%
		// but is not exceeded; the two conditions are tracked independently.
		alert := domain.Alert{
			BudgetID:     row.BudgetID,
			CategoryName: row.CategoryName,
			Icon:         row.Icon,
			BudgetAmount: row.Amount,
			Spent:        row.Spent,
			Percentage:   percentage.InexactFloat64(),
			IsExceeded:   row.Spent.GreaterThan(row.Amount),
		}
		alerts = append(alerts, alert)

		if alert.IsExceeded {
			s.notifyExceeded(userID, &alert, row.Period, month, year)
		}
	}

	s.metrics.RecordAlertEvaluation("success", s.now().Sub(start), len(alerts))
	return alerts, nil
}

// notifyExceeded records a budget_exceeded notification unless one already
// exists for this category in the budget's current period. Failures on this
// path never propagate: the alert list matters more than the notification.
func (s *AlertService) notifyExceeded(userID int64, alert *domain.Alert, period domain.BudgetPeriod, month, year int) {
	periodStart := s.periodStart(period, month, year)

	exists, err := s.sink.ExistsSince(userID, domain.NotificationBudgetExceeded, alert.CategoryName, periodStart)
	if err != nil {
		// Fall through to the insert: the unique dedup index still prevents
		// a duplicate row if one already exists.
		log.Warn().
			Err(err).
			Int64("user_id", userID).
			Str("category", alert.CategoryName).
			Msg("Notification existence check failed")
	} else if exists {
		return
	}

	percentage := decimal.NewFromFloat(alert.Percentage).Round(0).IntPart()
	message := fmt.Sprintf("%s: $%s de $%s (%d%%)",
		alert.CategoryName,
		util.FormatMoney(alert.Spent),
		util.FormatMoney(alert.BudgetAmount),
		percentage)

	s.sink.Notify(&domain.Notification{
		UserID:   userID,
		Type:     domain.NotificationBudgetExceeded,
		Title:    exceededTitle,
		Message:  message,
		Icon:     exceededIcon,
		DedupKey: dedupKey(alert.CategoryName, periodStart),
	})
}

// periodStart returns the start of the dedup window for a budget. Month
// budgets use the start of the evaluated calendar month; week budgets use the
// start of the current ISO week, so they can re-alert every week.
func (s *AlertService) periodStart(period domain.BudgetPeriod, month, year int) time.Time {
	if period == domain.BudgetPeriodWeek {
		return util.StartOfISOWeek(s.now())
	}
	return util.StartOfMonth(year, month)
}

func dedupKey(categoryName string, periodStart time.Time) string {
	return fmt.Sprintf("%s:%s:%s", domain.NotificationBudgetExceeded, categoryName, periodStart.Format("2006-01-02"))
}
