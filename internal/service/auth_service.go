package service

import (
	"strings"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration and credential verification
type AuthService struct {
	userRepo     domain.UserRepository
	categoryRepo domain.CategoryRepository
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo domain.UserRepository, categoryRepo domain.CategoryRepository) *AuthService {
	return &AuthService{userRepo: userRepo, categoryRepo: categoryRepo}
}

// Register creates a new account and seeds its default categories
func (s *AuthService) Register(email, password, fullName string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}
	if fullName == "" {
		fullName = "User"
	}

	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.Create(&domain.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		Role:         domain.RoleUser,
	})
	if err != nil {
		return nil, err
	}

	// Seed the default category set for the new user. A failed seed is not
	// fatal to registration; the user can still create categories manually.
	for _, category := range domain.DefaultCategories {
		seeded := category
		seeded.UserID = &user.ID
		if _, err := s.categoryRepo.Create(&seeded); err != nil {
			log.Error().Err(err).Int64("user_id", user.ID).Str("category", category.Name).Msg("Failed to seed default category")
		}
	}

	return user, nil
}

// Login verifies credentials and returns the account
func (s *AuthService) Login(email, password string) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, domain.ErrBadCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrBadCredentials
	}
	return user, nil
}

// GetUser returns the account for an ID
func (s *AuthService) GetUser(id int64) (*domain.User, error) {
	return s.userRepo.GetByID(id)
}

// UpdateBudgetSettings stores the user's personal budget preferences
func (s *AuthService) UpdateBudgetSettings(id int64, monthlyBudget decimal.Decimal, preferredCurrency string) (*domain.User, error) {
	if monthlyBudget.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}
	if preferredCurrency == "" {
		preferredCurrency = "USD"
	}
	return s.userRepo.UpdateBudgetSettings(id, monthlyBudget, preferredCurrency)
}
