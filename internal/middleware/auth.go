package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// SessionCookieName is the cookie the web client stores its token in
const SessionCookieName = "auth_token"

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// UserIDKey is the context key for the authenticated user's ID
	UserIDKey contextKey = "user_id"
	// RoleKey is the context key for the authenticated user's role
	RoleKey contextKey = "role"
	// EmailKey is the context key for the authenticated user's email
	EmailKey contextKey = "email"
)

// UserProvider resolves a user ID to an account, so inactive or deleted
// accounts are rejected even when they hold a valid token
type UserProvider interface {
	GetByID(id int64) (*domain.User, error)
}

// AuthMiddleware validates session tokens and injects the identity into the
// request context; handlers receive an explicit user ID, never a raw cookie
type AuthMiddleware struct {
	tokens *service.TokenService
	users  UserProvider
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(tokens *service.TokenService, users UserProvider) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users}
}

// Authenticate returns an Echo middleware that validates session tokens taken
// from the auth cookie or, failing that, a Bearer header
func (m *AuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session token")
			}

			claims, err := m.tokens.Parse(token)
			if err != nil {
				log.Debug().Err(err).Msg("Token validation failed")
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			user, err := m.users.GetByID(claims.UserID)
			if err != nil {
				log.Debug().Err(err).Int64("user_id", claims.UserID).Msg("User lookup failed")
				return echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
			}
			if !user.IsActive {
				return echo.NewHTTPError(http.StatusUnauthorized, "account disabled")
			}

			ctx := context.WithValue(c.Request().Context(), UserIDKey, user.ID)
			ctx = context.WithValue(ctx, RoleKey, user.Role)
			ctx = context.WithValue(ctx, EmailKey, user.Email)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// RequireAdmin returns a middleware that rejects non-admin users.
// It must run after Authenticate.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if GetRole(c) != domain.RoleAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "admin access required")
			}
			return next(c)
		}
	}
}

func extractToken(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}

// GetUserID extracts the authenticated user's ID from the context; zero means
// no authenticated user
func GetUserID(c echo.Context) int64 {
	if id, ok := c.Request().Context().Value(UserIDKey).(int64); ok {
		return id
	}
	return 0
}

// GetRole extracts the authenticated user's role from the context
func GetRole(c echo.Context) domain.Role {
	if role, ok := c.Request().Context().Value(RoleKey).(domain.Role); ok {
		return role
	}
	return ""
}

// GetEmail extracts the authenticated user's email from the context
func GetEmail(c echo.Context) string {
	if email, ok := c.Request().Context().Value(EmailKey).(string); ok {
		return email
	}
	return ""
}
