package service

import (
	"errors"
	"testing"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/metrics"
	"github.com/centavo/centavo-backend/internal/testutil"
	"github.com/centavo/centavo-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

func newBudgetFixture() (*BudgetService, *testutil.MockBudgetRepository, *testutil.MockCategoryRepository, *testutil.MockNotificationRepository) {
	budgetRepo := testutil.NewMockBudgetRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	notificationRepo := testutil.NewMockNotificationRepository()
	notificationService := NewNotificationService(notificationRepo, websocket.NopPublisher{}, metrics.NopRecorder{})
	return NewBudgetService(budgetRepo, categoryRepo, notificationService, websocket.NopPublisher{}), budgetRepo, categoryRepo, notificationRepo
}

func TestBudgetCreate_Success(t *testing.T) {
	budgetService, _, categoryRepo, notificationRepo := newBudgetFixture()
	categoryRepo.AddCategory(&domain.Category{Name: "Comida", Type: domain.CategoryTypeExpense})

	budget, err := budgetService.Create(1, 1, decimal.NewFromInt(500), "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if budget.Period != domain.BudgetPeriodMonth {
		t.Errorf("Expected default period month, got %s", budget.Period)
	}

	if len(notificationRepo.Notifications) != 1 {
		t.Fatalf("Expected 1 notification, got %d", len(notificationRepo.Notifications))
	}
	notification := notificationRepo.Notifications[0]
	if notification.Type != domain.NotificationBudgetCreated {
		t.Errorf("Expected type budget_created, got %s", notification.Type)
	}
	if notification.Message != "Comida: $500 (mensual)" {
		t.Errorf("Unexpected message: %q", notification.Message)
	}
}

func TestBudgetCreate_NegativeAmount(t *testing.T) {
	budgetService, _, categoryRepo, _ := newBudgetFixture()
	categoryRepo.AddCategory(&domain.Category{Name: "Comida", Type: domain.CategoryTypeExpense})

	if _, err := budgetService.Create(1, 1, decimal.NewFromInt(-10), domain.BudgetPeriodMonth); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Errorf("Expected ErrInvalidAmount, got %v", err)
	}
}

func TestBudgetCreate_ZeroAmountAllowed(t *testing.T) {
	budgetService, _, categoryRepo, _ := newBudgetFixture()
	categoryRepo.AddCategory(&domain.Category{Name: "Comida", Type: domain.CategoryTypeExpense})

	if _, err := budgetService.Create(1, 1, decimal.Zero, domain.BudgetPeriodMonth); err != nil {
		t.Errorf("Zero-amount budgets are valid, got %v", err)
	}
}

func TestBudgetCreate_InvalidPeriod(t *testing.T) {
	budgetService, _, categoryRepo, _ := newBudgetFixture()
	categoryRepo.AddCategory(&domain.Category{Name: "Comida", Type: domain.CategoryTypeExpense})

	if _, err := budgetService.Create(1, 1, decimal.NewFromInt(100), "daily"); !errors.Is(err, domain.ErrInvalidPeriod) {
		t.Errorf("Expected ErrInvalidPeriod, got %v", err)
	}
}

func TestBudgetCreate_UnknownCategory(t *testing.T) {
	budgetService, _, _, _ := newBudgetFixture()

	if _, err := budgetService.Create(1, 42, decimal.NewFromInt(100), domain.BudgetPeriodMonth); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Errorf("Expected ErrCategoryNotFound, got %v", err)
	}
}

func TestBudgetUpdate_Success(t *testing.T) {
	budgetService, budgetRepo, categoryRepo, notificationRepo := newBudgetFixture()
	categoryRepo.AddCategory(&domain.Category{Name: "Comida", Type: domain.CategoryTypeExpense})
	budgetRepo.Create(&domain.Budget{UserID: 1, CategoryID: 1, CategoryName: "Comida", Amount: decimal.NewFromInt(500), Period: domain.BudgetPeriodMonth})

	budget, err := budgetService.Update(1, 1, decimal.NewFromInt(800), domain.BudgetPeriodWeek)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !budget.Amount.Equal(decimal.NewFromInt(800)) || budget.Period != domain.BudgetPeriodWeek {
		t.Errorf("Unexpected budget after update: %+v", budget)
	}
	if len(notificationRepo.Notifications) != 1 {
		t.Fatalf("Expected 1 notification, got %d", len(notificationRepo.Notifications))
	}
	if notificationRepo.Notifications[0].Message != "Comida: $800 (semanal)" {
		t.Errorf("Unexpected message: %q", notificationRepo.Notifications[0].Message)
	}
}

func TestBudgetUpdate_WrongOwner(t *testing.T) {
	budgetService, budgetRepo, _, _ := newBudgetFixture()
	budgetRepo.Create(&domain.Budget{UserID: 2, CategoryID: 1, Amount: decimal.NewFromInt(500), Period: domain.BudgetPeriodMonth})

	if _, err := budgetService.Update(1, 1, decimal.NewFromInt(800), domain.BudgetPeriodMonth); !errors.Is(err, domain.ErrBudgetNotFound) {
		t.Errorf("Expected ErrBudgetNotFound for wrong owner, got %v", err)
	}
}

func TestBudgetDelete_Success(t *testing.T) {
	budgetService, budgetRepo, _, notificationRepo := newBudgetFixture()
	budgetRepo.Create(&domain.Budget{UserID: 1, CategoryID: 1, CategoryName: "Comida", Amount: decimal.NewFromInt(500), Period: domain.BudgetPeriodMonth})

	if err := budgetService.Delete(1, 1); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(budgetRepo.Budgets) != 0 {
		t.Error("Expected the budget to be removed")
	}
	if len(notificationRepo.Notifications) != 1 {
		t.Fatalf("Expected 1 notification, got %d", len(notificationRepo.Notifications))
	}
	if notificationRepo.Notifications[0].Type != domain.NotificationBudgetDeleted {
		t.Errorf("Expected type budget_deleted, got %s", notificationRepo.Notifications[0].Type)
	}
}

func TestBudgetDelete_Unknown(t *testing.T) {
	budgetService, _, _, _ := newBudgetFixture()

	if err := budgetService.Delete(1, 99); !errors.Is(err, domain.ErrBudgetNotFound) {
		t.Errorf("Expected ErrBudgetNotFound, got %v", err)
	}
}

func TestBudgetLifecycle_PublishesEvents(t *testing.T) {
	budgetRepo := testutil.NewMockBudgetRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	notificationRepo := testutil.NewMockNotificationRepository()
	notificationService := NewNotificationService(notificationRepo, websocket.NopPublisher{}, metrics.NopRecorder{})
	publisher := &testutil.MockEventPublisher{}
	budgetService := NewBudgetService(budgetRepo, categoryRepo, notificationService, publisher)
	categoryRepo.AddCategory(&domain.Category{Name: "Comida", Type: domain.CategoryTypeExpense})

	created, err := budgetService.Create(7, 1, decimal.NewFromInt(500), domain.BudgetPeriodMonth)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := budgetService.Update(7, created.ID, decimal.NewFromInt(800), domain.BudgetPeriodWeek); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := budgetService.Delete(7, created.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := []string{"budget.created", "budget.updated", "budget.deleted"}
	got := publisher.EventTypes()
	if len(got) != len(want) {
		t.Fatalf("Expected %d events, got %v", len(want), got)
	}
	for i, eventType := range want {
		if got[i] != eventType {
			t.Errorf("Expected event %q at position %d, got %q", eventType, i, got[i])
		}
	}
	for _, published := range publisher.Events {
		if published.UserID != 7 {
			t.Errorf("Expected events addressed to user 7, got %d", published.UserID)
		}
	}
}
