package service

import (
	"strings"

	"github.com/centavo/centavo-backend/internal/domain"
)

// CategoryService handles category management. Personal categories are scoped
// to their owner; global ones (nil UserID) are admin-managed.
type CategoryService struct {
	categoryRepo domain.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// List returns the categories visible to the user
func (s *CategoryService) List(userID int64) ([]*domain.Category, error) {
	return s.categoryRepo.GetVisible(userID)
}

// Create adds a personal category for the user
func (s *CategoryService) Create(userID int64, name, icon, color string, categoryType domain.CategoryType) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > domain.MaxCategoryNameLength {
		return nil, domain.ErrInvalidInput
	}
	if categoryType != domain.CategoryTypeIncome && categoryType != domain.CategoryTypeExpense {
		return nil, domain.ErrInvalidInput
	}
	if icon == "" {
		icon = "📦"
	}
	if color == "" {
		color = "#6b7280"
	}

	return s.categoryRepo.Create(&domain.Category{
		UserID: &userID,
		Name:   name,
		Icon:   icon,
		Color:  color,
		Type:   categoryType,
	})
}

// Update modifies a category. Users may only touch their own categories;
// admins may also edit global ones.
func (s *CategoryService) Update(userID int64, role domain.Role, id int64, name, icon, color string, categoryType domain.CategoryType) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > domain.MaxCategoryNameLength {
		return nil, domain.ErrInvalidInput
	}
	if categoryType != domain.CategoryTypeIncome && categoryType != domain.CategoryTypeExpense {
		return nil, domain.ErrInvalidInput
	}

	existing, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !canManage(existing, userID, role) {
		return nil, domain.ErrForbidden
	}

	return s.categoryRepo.Update(id, name, icon, color, categoryType)
}

// Delete removes a category under the same ownership rules as Update
func (s *CategoryService) Delete(userID int64, role domain.Role, id int64) error {
	existing, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if !canManage(existing, userID, role) {
		return domain.ErrForbidden
	}

	return s.categoryRepo.Delete(id)
}

func canManage(category *domain.Category, userID int64, role domain.Role) bool {
	if role == domain.RoleAdmin {
		return true
	}
	return category.UserID != nil && *category.UserID == userID
}
