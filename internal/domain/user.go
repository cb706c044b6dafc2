package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role controls access to the admin surface
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a registered account
type User struct {
	ID                int64            `json:"id"`
	Email             string           `json:"email"`
	PasswordHash      string           `json:"-"`
	FullName          string           `json:"fullName"`
	Role              Role             `json:"role"`
	IsActive          bool             `json:"isActive"`
	MonthlyBudget     *decimal.Decimal `json:"monthlyBudget,omitempty"`
	PreferredCurrency string           `json:"preferredCurrency"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
}

// UserUpdate carries the admin-editable fields; nil means "leave unchanged"
type UserUpdate struct {
	Role     *Role
	IsActive *bool
}

// UserRepository defines the interface for user persistence operations
type UserRepository interface {
	Create(user *User) (*User, error)
	GetByID(id int64) (*User, error)
	GetByEmail(email string) (*User, error)
	GetAll() ([]*User, error)
	Update(id int64, update *UserUpdate) (*User, error)
	UpdateBudgetSettings(id int64, monthlyBudget decimal.Decimal, preferredCurrency string) (*User, error)
	Delete(id int64) error
	Count() (int64, error)
}
