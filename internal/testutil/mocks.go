package testutil

import (
	"sort"
	"strings"
	"time"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// PublishedEvent pairs an event with the user it was addressed to
type PublishedEvent struct {
	UserID int64
	Event  websocket.Event
}

// MockEventPublisher records published events for assertions
type MockEventPublisher struct {
	Events []PublishedEvent
}

// Publish implements websocket.EventPublisher
func (m *MockEventPublisher) Publish(userID int64, event websocket.Event) {
	m.Events = append(m.Events, PublishedEvent{UserID: userID, Event: event})
}

// EventTypes returns the published event types in order
func (m *MockEventPublisher) EventTypes() []string {
	types := make([]string, 0, len(m.Events))
	for _, published := range m.Events {
		types = append(types, published.Event.Type)
	}
	return types
}

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	Users   map[int64]*domain.User
	ByEmail map[string]*domain.User
	NextID  int64
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:   make(map[int64]*domain.User),
		ByEmail: make(map[string]*domain.User),
		NextID:  1,
	}
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	if user.ID == 0 {
		user.ID = m.NextID
		m.NextID++
	}
	m.Users[user.ID] = user
	m.ByEmail[user.Email] = user
}

// Create creates a new user
func (m *MockUserRepository) Create(user *domain.User) (*domain.User, error) {
	if _, ok := m.ByEmail[user.Email]; ok {
		return nil, domain.ErrEmailTaken
	}
	user.ID = m.NextID
	m.NextID++
	user.IsActive = true
	user.CreatedAt = time.Now()
	m.Users[user.ID] = user
	m.ByEmail[user.Email] = user
	return user, nil
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(id int64) (*domain.User, error) {
	if user, ok := m.Users[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByEmail retrieves a user by email
func (m *MockUserRepository) GetByEmail(email string) (*domain.User, error) {
	if user, ok := m.ByEmail[strings.ToLower(email)]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetAll returns every user ordered by ID
func (m *MockUserRepository) GetAll() ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(m.Users))
	for _, user := range m.Users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// Update applies an admin update to a user
func (m *MockUserRepository) Update(id int64, update *domain.UserUpdate) (*domain.User, error) {
	user, ok := m.Users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if update.Role != nil {
		user.Role = *update.Role
	}
	if update.IsActive != nil {
		user.IsActive = *update.IsActive
	}
	return user, nil
}

// UpdateBudgetSettings stores budget preferences
func (m *MockUserRepository) UpdateBudgetSettings(id int64, monthlyBudget decimal.Decimal, preferredCurrency string) (*domain.User, error) {
	user, ok := m.Users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user.MonthlyBudget = &monthlyBudget
	user.PreferredCurrency = preferredCurrency
	return user, nil
}

// Delete removes a user
func (m *MockUserRepository) Delete(id int64) error {
	user, ok := m.Users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	delete(m.ByEmail, user.Email)
	delete(m.Users, id)
	return nil
}

// Count returns the number of users
func (m *MockUserRepository) Count() (int64, error) {
	return int64(len(m.Users)), nil
}

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	Categories map[int64]*domain.Category
	NextID     int64
	CreateErr  error
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories: make(map[int64]*domain.Category),
		NextID:     1,
	}
}

// AddCategory adds a category to the mock repository (helper for tests)
func (m *MockCategoryRepository) AddCategory(category *domain.Category) {
	if category.ID == 0 {
		category.ID = m.NextID
		m.NextID++
	}
	m.Categories[category.ID] = category
}

// Create creates a new category
func (m *MockCategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	category.ID = m.NextID
	m.NextID++
	category.CreatedAt = time.Now()
	m.Categories[category.ID] = category
	return category, nil
}

// GetByID retrieves a category by ID
func (m *MockCategoryRepository) GetByID(id int64) (*domain.Category, error) {
	if category, ok := m.Categories[id]; ok {
		return category, nil
	}
	return nil, domain.ErrCategoryNotFound
}

// GetVisible returns the user's categories plus the global ones
func (m *MockCategoryRepository) GetVisible(userID int64) ([]*domain.Category, error) {
	categories := make([]*domain.Category, 0)
	for _, category := range m.Categories {
		if category.UserID == nil || *category.UserID == userID {
			categories = append(categories, category)
		}
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

// GetAll returns every category
func (m *MockCategoryRepository) GetAll() ([]*domain.Category, error) {
	categories := make([]*domain.Category, 0, len(m.Categories))
	for _, category := range m.Categories {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

// Update modifies a category
func (m *MockCategoryRepository) Update(id int64, name, icon, color string, categoryType domain.CategoryType) (*domain.Category, error) {
	category, ok := m.Categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	category.Name = name
	category.Icon = icon
	category.Color = color
	category.Type = categoryType
	return category, nil
}

// Delete removes a category
func (m *MockCategoryRepository) Delete(id int64) error {
	if _, ok := m.Categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(m.Categories, id)
	return nil
}

// MockTransactionRepository is a mock implementation of domain.TransactionRepository
type MockTransactionRepository struct {
	Transactions map[int64]*domain.Transaction
	NextID       int64
}

// NewMockTransactionRepository creates a new MockTransactionRepository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		Transactions: make(map[int64]*domain.Transaction),
		NextID:       1,
	}
}

// Create creates a new transaction
func (m *MockTransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	transaction.ID = m.NextID
	m.NextID++
	transaction.CreatedAt = time.Now()
	m.Transactions[transaction.ID] = transaction
	return transaction, nil
}

// GetByID retrieves a transaction scoped to a user
func (m *MockTransactionRepository) GetByID(userID int64, id int64) (*domain.Transaction, error) {
	transaction, ok := m.Transactions[id]
	if !ok || transaction.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return transaction, nil
}

// GetByUser returns the user's transactions, ignoring filters
func (m *MockTransactionRepository) GetByUser(userID int64, filters *domain.TransactionFilters) ([]*domain.Transaction, error) {
	transactions := make([]*domain.Transaction, 0)
	for _, transaction := range m.Transactions {
		if transaction.UserID == userID {
			transactions = append(transactions, transaction)
		}
	}
	sort.Slice(transactions, func(i, j int) bool { return transactions[i].ID < transactions[j].ID })
	return transactions, nil
}

// Update replaces a transaction
func (m *MockTransactionRepository) Update(transaction *domain.Transaction) (*domain.Transaction, error) {
	existing, ok := m.Transactions[transaction.ID]
	if !ok || existing.UserID != transaction.UserID {
		return nil, domain.ErrNotFound
	}
	m.Transactions[transaction.ID] = transaction
	return transaction, nil
}

// Delete removes a transaction scoped to a user
func (m *MockTransactionRepository) Delete(userID int64, id int64) error {
	transaction, ok := m.Transactions[id]
	if !ok || transaction.UserID != userID {
		return domain.ErrNotFound
	}
	delete(m.Transactions, id)
	return nil
}

// Count returns the number of transactions across all users
func (m *MockTransactionRepository) Count() (int64, error) {
	return int64(len(m.Transactions)), nil
}

// SumByType totals transaction amounts of one type across all users
func (m *MockTransactionRepository) SumByType(transactionType domain.TransactionType) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, transaction := range m.Transactions {
		if transaction.Type == transactionType {
			total = total.Add(transaction.Amount)
		}
	}
	return total, nil
}

// MockBudgetRepository is a mock implementation of domain.BudgetRepository
type MockBudgetRepository struct {
	Budgets        map[int64]*domain.Budget
	NextID         int64
	SpendRows      []*domain.BudgetWithSpend
	GetWithSpendFn func(userID int64, month, year int) ([]*domain.BudgetWithSpend, error)
}

// NewMockBudgetRepository creates a new MockBudgetRepository
func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{
		Budgets: make(map[int64]*domain.Budget),
		NextID:  1,
	}
}

// Create creates a new budget
func (m *MockBudgetRepository) Create(budget *domain.Budget) (*domain.Budget, error) {
	budget.ID = m.NextID
	m.NextID++
	budget.CreatedAt = time.Now()
	m.Budgets[budget.ID] = budget
	return budget, nil
}

// GetByID retrieves a budget scoped to a user
func (m *MockBudgetRepository) GetByID(userID int64, id int64) (*domain.Budget, error) {
	budget, ok := m.Budgets[id]
	if !ok || budget.UserID != userID {
		return nil, domain.ErrBudgetNotFound
	}
	return budget, nil
}

// GetByUser returns the user's budgets
func (m *MockBudgetRepository) GetByUser(userID int64) ([]*domain.Budget, error) {
	budgets := make([]*domain.Budget, 0)
	for _, budget := range m.Budgets {
		if budget.UserID == userID {
			budgets = append(budgets, budget)
		}
	}
	sort.Slice(budgets, func(i, j int) bool { return budgets[i].ID < budgets[j].ID })
	return budgets, nil
}

// GetWithSpend returns the injected spend rows or calls GetWithSpendFn
func (m *MockBudgetRepository) GetWithSpend(userID int64, month, year int) ([]*domain.BudgetWithSpend, error) {
	if m.GetWithSpendFn != nil {
		return m.GetWithSpendFn(userID, month, year)
	}
	return m.SpendRows, nil
}

// Update changes a budget's amount and period
func (m *MockBudgetRepository) Update(userID int64, id int64, amount decimal.Decimal, period domain.BudgetPeriod) (*domain.Budget, error) {
	budget, ok := m.Budgets[id]
	if !ok || budget.UserID != userID {
		return nil, domain.ErrBudgetNotFound
	}
	budget.Amount = amount
	budget.Period = period
	return budget, nil
}

// Delete removes a budget scoped to a user
func (m *MockBudgetRepository) Delete(userID int64, id int64) error {
	budget, ok := m.Budgets[id]
	if !ok || budget.UserID != userID {
		return domain.ErrBudgetNotFound
	}
	delete(m.Budgets, id)
	return nil
}

// MockNotificationRepository is a mock implementation of
// domain.NotificationRepository. It enforces the same dedup-key uniqueness
// the real table does.
type MockNotificationRepository struct {
	Notifications []*domain.Notification
	NextID        int64
	CreateErr     error
	ExistsErr     error
	// Clock stamps CreatedAt on inserts; tests that reason about dedup
	// windows pin it
	Clock func() time.Time
}

// NewMockNotificationRepository creates a new MockNotificationRepository
func NewMockNotificationRepository() *MockNotificationRepository {
	return &MockNotificationRepository{NextID: 1, Clock: time.Now}
}

// Create appends a notification, rejecting duplicate dedup keys
func (m *MockNotificationRepository) Create(notification *domain.Notification) (*domain.Notification, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	if notification.DedupKey != "" {
		for _, existing := range m.Notifications {
			if existing.UserID == notification.UserID && existing.DedupKey == notification.DedupKey {
				return nil, domain.ErrAlreadyExists
			}
		}
	}
	stored := *notification
	stored.ID = m.NextID
	m.NextID++
	if stored.Icon == "" {
		stored.Icon = domain.DefaultNotificationIcon
	}
	stored.CreatedAt = m.Clock()
	m.Notifications = append(m.Notifications, &stored)
	return &stored, nil
}

// GetByUser returns the user's notifications, newest first
func (m *MockNotificationRepository) GetByUser(userID int64, unreadOnly bool) ([]*domain.Notification, error) {
	notifications := make([]*domain.Notification, 0)
	for _, notification := range m.Notifications {
		if notification.UserID != userID {
			continue
		}
		if unreadOnly && notification.IsRead {
			continue
		}
		notifications = append(notifications, notification)
	}
	sort.Slice(notifications, func(i, j int) bool { return notifications[i].ID > notifications[j].ID })
	return notifications, nil
}

// ExistsSince mirrors the message-prefix match of the real repository
func (m *MockNotificationRepository) ExistsSince(userID int64, notificationType domain.NotificationType, categoryName string, since time.Time) (bool, error) {
	if m.ExistsErr != nil {
		return false, m.ExistsErr
	}
	for _, notification := range m.Notifications {
		if notification.UserID == userID &&
			notification.Type == notificationType &&
			strings.HasPrefix(notification.Message, categoryName+":") &&
			!notification.CreatedAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

// MarkRead flags one notification as read
func (m *MockNotificationRepository) MarkRead(userID int64, id int64) error {
	for _, notification := range m.Notifications {
		if notification.ID == id && notification.UserID == userID {
			notification.IsRead = true
			return nil
		}
	}
	return domain.ErrNotFound
}

// MarkAllRead flags every notification of the user as read
func (m *MockNotificationRepository) MarkAllRead(userID int64) error {
	for _, notification := range m.Notifications {
		if notification.UserID == userID {
			notification.IsRead = true
		}
	}
	return nil
}

// MockDashboardRepository is a mock implementation of domain.DashboardRepository
type MockDashboardRepository struct {
	Summary       *domain.MonthlySummary
	Trends        []*domain.MonthTrend
	Activity      []*domain.DailyActivity
	TopCategories []domain.TopCategory
	Err           error
}

// NewMockDashboardRepository creates a new MockDashboardRepository
func NewMockDashboardRepository() *MockDashboardRepository {
	return &MockDashboardRepository{}
}

// GetMonthlySummary returns the injected summary
func (m *MockDashboardRepository) GetMonthlySummary(userID int64, month, year int) (*domain.MonthlySummary, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Summary, nil
}

// GetMonthlyTrends returns the injected trends
func (m *MockDashboardRepository) GetMonthlyTrends(userID int64) ([]*domain.MonthTrend, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Trends, nil
}

// GetDailyActivity returns the injected activity
func (m *MockDashboardRepository) GetDailyActivity(userID int64, month, year int) ([]*domain.DailyActivity, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Activity, nil
}

// GetTopCategories returns the injected ranking
func (m *MockDashboardRepository) GetTopCategories(limit int) ([]domain.TopCategory, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.TopCategories, nil
}
