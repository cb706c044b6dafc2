package service

import (
	"fmt"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/util"
	"github.com/centavo/centavo-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// BudgetService handles budget management
type BudgetService struct {
	budgetRepo    domain.BudgetRepository
	categoryRepo  domain.CategoryRepository
	notifications *NotificationService
	publisher     websocket.EventPublisher
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(budgetRepo domain.BudgetRepository, categoryRepo domain.CategoryRepository, notifications *NotificationService, publisher websocket.EventPublisher) *BudgetService {
	return &BudgetService{
		budgetRepo:    budgetRepo,
		categoryRepo:  categoryRepo,
		notifications: notifications,
		publisher:     publisher,
	}
}

// List returns the user's budgets
func (s *BudgetService) List(userID int64) ([]*domain.Budget, error) {
	return s.budgetRepo.GetByUser(userID)
}

// Create sets a budget for a category
func (s *BudgetService) Create(userID int64, categoryID int64, amount decimal.Decimal, period domain.BudgetPeriod) (*domain.Budget, error) {
	if amount.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}
	if period == "" {
		period = domain.BudgetPeriodMonth
	}
	if period != domain.BudgetPeriodMonth && period != domain.BudgetPeriodWeek {
		return nil, domain.ErrInvalidPeriod
	}

	category, err := s.categoryRepo.GetByID(categoryID)
	if err != nil {
		return nil, err
	}

	created, err := s.budgetRepo.Create(&domain.Budget{
		UserID:     userID,
		CategoryID: categoryID,
		Amount:     amount,
		Period:     period,
	})
	if err != nil {
		return nil, err
	}

	s.notifications.Notify(&domain.Notification{
		UserID:  userID,
		Type:    domain.NotificationBudgetCreated,
		Title:   "Presupuesto creado",
		Message: fmt.Sprintf("%s: $%s (%s)", category.Name, util.FormatMoney(amount), periodLabel(period)),
		Icon:    "PiggyBank",
	})
	s.publisher.Publish(userID, websocket.BudgetCreated(created))

	return created, nil
}

// Update changes a budget's amount and period
func (s *BudgetService) Update(userID int64, id int64, amount decimal.Decimal, period domain.BudgetPeriod) (*domain.Budget, error) {
	if amount.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}
	if period != domain.BudgetPeriodMonth && period != domain.BudgetPeriodWeek {
		return nil, domain.ErrInvalidPeriod
	}

	updated, err := s.budgetRepo.Update(userID, id, amount, period)
	if err != nil {
		return nil, err
	}

	s.notifications.Notify(&domain.Notification{
		UserID:  userID,
		Type:    domain.NotificationBudgetUpdated,
		Title:   "Presupuesto actualizado",
		Message: fmt.Sprintf("%s: $%s (%s)", updated.CategoryName, util.FormatMoney(amount), periodLabel(period)),
		Icon:    "PiggyBank",
	})
	s.publisher.Publish(userID, websocket.BudgetUpdated(updated))

	return updated, nil
}

// Delete removes a budget
func (s *BudgetService) Delete(userID int64, id int64) error {
	existing, err := s.budgetRepo.GetByID(userID, id)
	if err != nil {
		return err
	}

	if err := s.budgetRepo.Delete(userID, id); err != nil {
		return err
	}

	s.notifications.Notify(&domain.Notification{
		UserID:  userID,
		Type:    domain.NotificationBudgetDeleted,
		Title:   "Presupuesto eliminado",
		Message: fmt.Sprintf("%s: $%s", existing.CategoryName, util.FormatMoney(existing.Amount)),
		Icon:    "Trash2",
	})
	s.publisher.Publish(userID, websocket.BudgetDeleted(map[string]int64{"id": id}))

	return nil
}

func periodLabel(period domain.BudgetPeriod) string {
	if period == domain.BudgetPeriodWeek {
		return "semanal"
	}
	return "mensual"
}
