package service

import (
	"github.com/centavo/centavo-backend/internal/domain"
)

const topCategoriesLimit = 5

// AdminService backs the admin surface: user management and platform stats
type AdminService struct {
	userRepo        domain.UserRepository
	transactionRepo domain.TransactionRepository
	dashboardRepo   domain.DashboardRepository
}

// NewAdminService creates a new AdminService
func NewAdminService(userRepo domain.UserRepository, transactionRepo domain.TransactionRepository, dashboardRepo domain.DashboardRepository) *AdminService {
	return &AdminService{
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		dashboardRepo:   dashboardRepo,
	}
}

// ListUsers returns every registered account
func (s *AdminService) ListUsers() ([]*domain.User, error) {
	return s.userRepo.GetAll()
}

// UpdateUser changes a user's role or active flag. An admin cannot demote or
// deactivate their own account.
func (s *AdminService) UpdateUser(adminID int64, id int64, update *domain.UserUpdate) (*domain.User, error) {
	if update.Role != nil && *update.Role != domain.RoleUser && *update.Role != domain.RoleAdmin {
		return nil, domain.ErrInvalidInput
	}
	if adminID == id {
		if update.Role != nil && *update.Role != domain.RoleAdmin {
			return nil, domain.ErrForbidden
		}
		if update.IsActive != nil && !*update.IsActive {
			return nil, domain.ErrForbidden
		}
	}
	return s.userRepo.Update(id, update)
}

// DeleteUser removes an account and all its data. Self-deletion through the
// admin surface is rejected.
func (s *AdminService) DeleteUser(adminID int64, id int64) error {
	if adminID == id {
		return domain.ErrForbidden
	}
	return s.userRepo.Delete(id)
}

// Stats aggregates platform-wide totals
func (s *AdminService) Stats() (*domain.AdminStats, error) {
	totalUsers, err := s.userRepo.Count()
	if err != nil {
		return nil, err
	}

	totalTransactions, err := s.transactionRepo.Count()
	if err != nil {
		return nil, err
	}

	totalIncome, err := s.transactionRepo.SumByType(domain.TransactionTypeIncome)
	if err != nil {
		return nil, err
	}

	totalExpenses, err := s.transactionRepo.SumByType(domain.TransactionTypeExpense)
	if err != nil {
		return nil, err
	}

	topCategories, err := s.dashboardRepo.GetTopCategories(topCategoriesLimit)
	if err != nil {
		return nil, err
	}

	return &domain.AdminStats{
		TotalUsers:        totalUsers,
		TotalTransactions: totalTransactions,
		TotalIncome:       totalIncome,
		TotalExpenses:     totalExpenses,
		TopCategories:     topCategories,
	}, nil
}
