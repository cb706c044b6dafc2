package service

import (
	"errors"
	"testing"
	"time"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/metrics"
	"github.com/centavo/centavo-backend/internal/testutil"
	"github.com/centavo/centavo-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

func newTransactionFixture() (*TransactionService, *testutil.MockTransactionRepository, *testutil.MockCategoryRepository, *testutil.MockNotificationRepository) {
	transactionRepo := testutil.NewMockTransactionRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	notificationRepo := testutil.NewMockNotificationRepository()
	notificationService := NewNotificationService(notificationRepo, websocket.NopPublisher{}, metrics.NopRecorder{})
	return NewTransactionService(transactionRepo, categoryRepo, notificationService, websocket.NopPublisher{}), transactionRepo, categoryRepo, notificationRepo
}

func expenseInput(amount int64) *TransactionInput {
	return &TransactionInput{
		CategoryID: 1,
		Title:      "Supermercado",
		Amount:     decimal.NewFromInt(amount),
		Type:       domain.TransactionTypeExpense,
	}
}

func TestTransactionCreate_Expense_Notifies(t *testing.T) {
	transactionService, _, categoryRepo, notificationRepo := newTransactionFixture()
	categoryRepo.AddCategory(&domain.Category{Name: "Comida", Type: domain.CategoryTypeExpense})

	transaction, err := transactionService.Create(1, expenseInput(1250))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if transaction.ID == 0 {
		t.Error("Expected an assigned ID")
	}
	if transaction.Date.IsZero() {
		t.Error("Expected the date to default to now")
	}

	if len(notificationRepo.Notifications) != 1 {
		t.Fatalf("Expected 1 notification, got %d", len(notificationRepo.Notifications))
	}
	notification := notificationRepo.Notifications[0]
	if notification.Type != domain.NotificationExpenseAdded {
		t.Errorf("Expected type expense_added, got %s", notification.Type)
	}
	if notification.Title != "Gasto registrado" {
		t.Errorf("Unexpected title: %q", notification.Title)
	}
	if notification.Message != "Supermercado: $1,250" {
		t.Errorf("Unexpected message: %q", notification.Message)
	}
	if notification.Icon != "TrendingDown" {
		t.Errorf("Expected icon TrendingDown, got %s", notification.Icon)
	}
}

func TestTransactionCreate_Income_Notifies(t *testing.T) {
	transactionService, _, categoryRepo, notificationRepo := newTransactionFixture()
	categoryRepo.AddCategory(&domain.Category{Name: "Salario", Type: domain.CategoryTypeIncome})

	input := &TransactionInput{
		CategoryID: 1,
		Title:      "Pago mensual",
		Amount:     decimal.NewFromInt(3000),
		Type:       domain.TransactionTypeIncome,
	}
	if _, err := transactionService.Create(1, input); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	notification := notificationRepo.Notifications[0]
	if notification.Type != domain.NotificationIncomeAdded {
		t.Errorf("Expected type income_added, got %s", notification.Type)
	}
	if notification.Title != "Ingreso registrado" {
		t.Errorf("Unexpected title: %q", notification.Title)
	}
	if notification.Icon != "TrendingUp" {
		t.Errorf("Expected icon TrendingUp, got %s", notification.Icon)
	}
}

func TestTransactionCreate_Validation(t *testing.T) {
	transactionService, _, categoryRepo, _ := newTransactionFixture()
	categoryRepo.AddCategory(&domain.Category{Name: "Comida", Type: domain.CategoryTypeExpense})

	cases := []struct {
		name  string
		input *TransactionInput
		want  error
	}{
		{"empty title", &TransactionInput{CategoryID: 1, Amount: decimal.NewFromInt(10), Type: domain.TransactionTypeExpense}, domain.ErrInvalidInput},
		{"negative amount", &TransactionInput{CategoryID: 1, Title: "x", Amount: decimal.NewFromInt(-10), Type: domain.TransactionTypeExpense}, domain.ErrInvalidAmount},
		{"bad type", &TransactionInput{CategoryID: 1, Title: "x", Amount: decimal.NewFromInt(10), Type: "transfer"}, domain.ErrInvalidInput},
		{"missing category", &TransactionInput{Title: "x", Amount: decimal.NewFromInt(10), Type: domain.TransactionTypeExpense}, domain.ErrInvalidInput},
	}

	for _, tc := range cases {
		if _, err := transactionService.Create(1, tc.input); !errors.Is(err, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestTransactionCreate_UnknownCategory(t *testing.T) {
	transactionService, _, _, _ := newTransactionFixture()

	if _, err := transactionService.Create(1, expenseInput(100)); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Errorf("Expected ErrCategoryNotFound, got %v", err)
	}
}

func TestTransactionUpdate_KeepsDateWhenOmitted(t *testing.T) {
	transactionService, transactionRepo, categoryRepo, notificationRepo := newTransactionFixture()
	categoryRepo.AddCategory(&domain.Category{Name: "Comida", Type: domain.CategoryTypeExpense})

	date := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	transactionRepo.Create(&domain.Transaction{
		UserID: 1, CategoryID: 1, Title: "Supermercado",
		Amount: decimal.NewFromInt(100), Type: domain.TransactionTypeExpense, Date: date,
	})

	updated, err := transactionService.Update(1, 1, expenseInput(150))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !updated.Date.Equal(date) {
		t.Errorf("Expected original date to survive, got %v", updated.Date)
	}
	if !updated.Amount.Equal(decimal.NewFromInt(150)) {
		t.Errorf("Expected amount 150, got %v", updated.Amount)
	}

	if len(notificationRepo.Notifications) != 1 {
		t.Fatalf("Expected 1 notification, got %d", len(notificationRepo.Notifications))
	}
	if notificationRepo.Notifications[0].Type != domain.NotificationTransactionUpdated {
		t.Errorf("Expected type transaction_updated, got %s", notificationRepo.Notifications[0].Type)
	}
}

func TestTransactionUpdate_WrongOwner(t *testing.T) {
	transactionService, transactionRepo, categoryRepo, _ := newTransactionFixture()
	categoryRepo.AddCategory(&domain.Category{Name: "Comida", Type: domain.CategoryTypeExpense})
	transactionRepo.Create(&domain.Transaction{
		UserID: 2, CategoryID: 1, Title: "Ajeno",
		Amount: decimal.NewFromInt(100), Type: domain.TransactionTypeExpense, Date: time.Now(),
	})

	if _, err := transactionService.Update(1, 1, expenseInput(150)); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for wrong owner, got %v", err)
	}
}

func TestTransactionDelete_Notifies(t *testing.T) {
	transactionService, transactionRepo, _, notificationRepo := newTransactionFixture()
	transactionRepo.Create(&domain.Transaction{
		UserID: 1, CategoryID: 1, Title: "Supermercado",
		Amount: decimal.NewFromInt(100), Type: domain.TransactionTypeExpense, Date: time.Now(),
	})

	if err := transactionService.Delete(1, 1); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(transactionRepo.Transactions) != 0 {
		t.Error("Expected the transaction to be removed")
	}
	if len(notificationRepo.Notifications) != 1 {
		t.Fatalf("Expected 1 notification, got %d", len(notificationRepo.Notifications))
	}
	if notificationRepo.Notifications[0].Type != domain.NotificationTransactionDeleted {
		t.Errorf("Expected type transaction_deleted, got %s", notificationRepo.Notifications[0].Type)
	}
}

func TestTransactionLifecycle_PublishesEvents(t *testing.T) {
	transactionRepo := testutil.NewMockTransactionRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	notificationRepo := testutil.NewMockNotificationRepository()
	notificationService := NewNotificationService(notificationRepo, websocket.NopPublisher{}, metrics.NopRecorder{})
	publisher := &testutil.MockEventPublisher{}
	transactionService := NewTransactionService(transactionRepo, categoryRepo, notificationService, publisher)
	categoryRepo.AddCategory(&domain.Category{Name: "Comida", Type: domain.CategoryTypeExpense})

	created, err := transactionService.Create(7, expenseInput(100))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := transactionService.Update(7, created.ID, expenseInput(150)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := transactionService.Delete(7, created.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := []string{"transaction.created", "transaction.updated", "transaction.deleted"}
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
