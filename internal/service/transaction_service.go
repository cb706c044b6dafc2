package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/util"
	"github.com/centavo/centavo-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// TransactionService handles transaction business logic
type TransactionService struct {
	transactionRepo domain.TransactionRepository
	categoryRepo    domain.CategoryRepository
	notifications   *NotificationService
	publisher       websocket.EventPublisher
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactionRepo domain.TransactionRepository, categoryRepo domain.CategoryRepository, notifications *NotificationService, publisher websocket.EventPublisher) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		notifications:   notifications,
		publisher:       publisher,
	}
}

// TransactionInput carries the caller-supplied fields of a transaction
type TransactionInput struct {
	CategoryID  int64
	Title       string
	Amount      decimal.Decimal
	Description string
	Type        domain.TransactionType
	Date        *time.Time
}

func (in *TransactionInput) validate() error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" || in.CategoryID == 0 {
		return domain.ErrInvalidInput
	}
	if len(in.Title) > domain.MaxTitleLength {
		return domain.ErrInvalidInput
	}
	if in.Amount.IsNegative() {
		return domain.ErrInvalidAmount
	}
	if in.Type != domain.TransactionTypeIncome && in.Type != domain.TransactionTypeExpense {
		return domain.ErrInvalidInput
	}
	return nil
}

// Create records a transaction and raises the matching notification
func (s *TransactionService) Create(userID int64, input *TransactionInput) (*domain.Transaction, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	if _, err := s.categoryRepo.GetByID(input.CategoryID); err != nil {
		return nil, err
	}

	date := time.Now()
	if input.Date != nil {
		date = *input.Date
	}

	created, err := s.transactionRepo.Create(&domain.Transaction{
		UserID:      userID,
		CategoryID:  input.CategoryID,
		Title:       input.Title,
		Amount:      input.Amount,
		Description: input.Description,
		Type:        input.Type,
		Date:        date,
	})
	if err != nil {
		return nil, err
	}

	notificationType := domain.NotificationIncomeAdded
	title := "Ingreso registrado"
	icon := "TrendingUp"
	if created.Type == domain.TransactionTypeExpense {
		notificationType = domain.NotificationExpenseAdded
		title = "Gasto registrado"
		icon = "TrendingDown"
	}
	s.notifications.Notify(&domain.Notification{
		UserID:  userID,
		Type:    notificationType,
		Title:   title,
		Message: fmt.Sprintf("%s: $%s", created.Title, util.FormatMoney(created.Amount)),
		Icon:    icon,
	})
	s.publisher.Publish(userID, websocket.TransactionCreated(created))

	return created, nil
}

// List returns the user's transactions with optional filters
func (s *TransactionService) List(userID int64, filters *domain.TransactionFilters) ([]*domain.Transaction, error) {
	return s.transactionRepo.GetByUser(userID, filters)
}

// Update modifies one of the user's transactions
func (s *TransactionService) Update(userID int64, id int64, input *TransactionInput) (*domain.Transaction, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	existing, err := s.transactionRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	date := existing.Date
	if input.Date != nil {
		date = *input.Date
	}

	updated, err := s.transactionRepo.Update(&domain.Transaction{
		ID:          id,
		UserID:      userID,
		CategoryID:  input.CategoryID,
		Title:       input.Title,
		Amount:      input.Amount,
		Description: input.Description,
		Type:        input.Type,
		Date:        date,
	})
	if err != nil {
		return nil, err
	}

	s.notifications.Notify(&domain.Notification{
		UserID:  userID,
		Type:    domain.NotificationTransactionUpdated,
		Title:   "Transacción actualizada",
		Message: fmt.Sprintf("%s: $%s", updated.Title, util.FormatMoney(updated.Amount)),
		Icon:    "Pencil",
	})
	s.publisher.Publish(userID, websocket.TransactionUpdated(updated))

	return updated, nil
}

// Delete removes one of the user's transactions
func (s *TransactionService) Delete(userID int64, id int64) error {
	existing, err := s.transactionRepo.GetByID(userID, id)
	if err != nil {
		return err
	}

	if err := s.transactionRepo.Delete(userID, id); err != nil {
		return err
	}

	s.notifications.Notify(&domain.Notification{
		UserID:  userID,
		Type:    domain.NotificationTransactionDeleted,
		Title:   "Transacción eliminada",
		Message: fmt.Sprintf("%s: $%s", existing.Title, util.FormatMoney(existing.Amount)),
		Icon:    "Trash2",
	})
	s.publisher.Publish(userID, websocket.TransactionDeleted(map[string]int64{"id": id}))

	return nil
}
