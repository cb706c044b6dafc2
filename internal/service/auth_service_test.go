package service

import (
	"errors"
	"testing"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/testutil"
	"github.com/shopspring/decimal"
)

func newAuthFixture() (*AuthService, *testutil.MockUserRepository, *testutil.MockCategoryRepository) {
	userRepo := testutil.NewMockUserRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	return NewAuthService(userRepo, categoryRepo), userRepo, categoryRepo
}

func TestRegister_Success_SeedsDefaultCategories(t *testing.T) {
	authService, _, categoryRepo := newAuthFixture()

	user, err := authService.Register("Ana@Example.com", "secret123", "Ana")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.Email != "ana@example.com" {
		t.Errorf("Expected normalized email, got %s", user.Email)
	}
	if user.Role != domain.RoleUser {
		t.Errorf("Expected role user, got %s", user.Role)
	}
	if user.PasswordHash == "secret123" || user.PasswordHash == "" {
		t.Error("Password must be stored hashed")
	}
	if len(categoryRepo.Categories) != len(domain.DefaultCategories) {
		t.Errorf("Expected %d seeded categories, got %d", len(domain.DefaultCategories), len(categoryRepo.Categories))
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	authService, _, _ := newAuthFixture()

	if _, err := authService.Register("ana@example.com", "secret123", "Ana"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := authService.Register("ana@example.com", "other456", "Ana"); !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("Expected ErrEmailTaken, got %v", err)
	}
}

func TestRegister_EmptyCredentials(t *testing.T) {
	authService, _, _ := newAuthFixture()

	if _, err := authService.Register("", "secret123", ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for empty email, got %v", err)
	}
	if _, err := authService.Register("ana@example.com", "", ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for empty password, got %v", err)
	}
}

func TestRegister_SeedFailureIsNotFatal(t *testing.T) {
	authService, _, categoryRepo := newAuthFixture()
	categoryRepo.CreateErr = errors.New("insert failed")

	if _, err := authService.Register("ana@example.com", "secret123", "Ana"); err != nil {
		t.Fatalf("Registration must survive a failed category seed, got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	authService, _, _ := newAuthFixture()

	registered, err := authService.Register("ana@example.com", "secret123", "Ana")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	user, err := authService.Login("ana@example.com", "secret123")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("Expected user %d, got %d", registered.ID, user.ID)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	authService, _, _ := newAuthFixture()

	if _, err := authService.Register("ana@example.com", "secret123", "Ana"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := authService.Login("ana@example.com", "wrong"); !errors.Is(err, domain.ErrBadCredentials) {
		t.Errorf("Expected ErrBadCredentials, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	authService, _, _ := newAuthFixture()

	if _, err := authService.Login("nadie@example.com", "secret123"); !errors.Is(err, domain.ErrBadCredentials) {
		t.Errorf("Expected ErrBadCredentials, got %v", err)
	}
}

func TestLogin_InactiveAccount(t *testing.T) {
	authService, userRepo, _ := newAuthFixture()

	user, err := authService.Register("ana@example.com", "secret123", "Ana")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	userRepo.Users[user.ID].IsActive = false

	if _, err := authService.Login("ana@example.com", "secret123"); !errors.Is(err, domain.ErrUserInactive) {
		t.Errorf("Expected ErrUserInactive, got %v", err)
	}
}

func TestUpdateBudgetSettings(t *testing.T) {
	authService, _, _ := newAuthFixture()

	user, err := authService.Register("ana@example.com", "secret123", "Ana")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	updated, err := authService.UpdateBudgetSettings(user.ID, decimal.NewFromInt(1500), "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if updated.MonthlyBudget == nil || !updated.MonthlyBudget.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("Unexpected monthly budget: %v", updated.MonthlyBudget)
	}
	if updated.PreferredCurrency != "USD" {
		t.Errorf("Expected default currency USD, got %s", updated.PreferredCurrency)
	}

	if _, err := authService.UpdateBudgetSettings(user.ID, decimal.NewFromInt(-1), "USD"); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Errorf("Expected ErrInvalidAmount, got %v", err)
	}
}
