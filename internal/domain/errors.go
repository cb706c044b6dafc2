package domain

import (
	"errors"
	"fmt"
)

// Domain errors. The resource-specific not-found errors wrap ErrNotFound so
// callers can match either the specific or the generic sentinel.
var (
	ErrNotFound         = errors.New("resource not found")
	ErrAlreadyExists    = errors.New("resource already exists")
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrInternal         = errors.New("internal error")
	ErrUserNotFound     = fmt.Errorf("user: %w", ErrNotFound)
	ErrUserInactive     = errors.New("user is inactive")
	ErrCategoryNotFound = fmt.Errorf("category: %w", ErrNotFound)
	ErrBudgetNotFound   = fmt.Errorf("budget: %w", ErrNotFound)
	ErrEmailTaken       = fmt.Errorf("email already registered: %w", ErrAlreadyExists)
	ErrBadCredentials   = errors.New("invalid credentials")
	ErrInvalidAmount    = errors.New("amount must be zero or positive")
	ErrInvalidPeriod    = errors.New("period must be month or week")
	ErrInvalidMonth     = fmt.Errorf("month must be between 1 and 12: %w", ErrInvalidInput)
	ErrIncompletePeriod = fmt.Errorf("month and year must be supplied together: %w", ErrInvalidInput)
)

// Validation constants
const (
	MaxTitleLength        = 255
	MaxCategoryNameLength = 100
)
