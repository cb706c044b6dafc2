package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type stubUserProvider struct {
	users map[int64]*domain.User
}

func (s *stubUserProvider) GetByID(id int64) (*domain.User, error) {
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

func newAuthFixture(t *testing.T) (*AuthMiddleware, *service.TokenService, *stubUserProvider) {
	t.Helper()
	tokens := service.NewTokenService("test-secret", time.Hour)
	users := &stubUserProvider{users: make(map[int64]*domain.User)}
	return NewAuthMiddleware(tokens, users), tokens, users
}

func runAuth(t *testing.T, m *AuthMiddleware, req *http.Request) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var passed echo.Context
	err := m.Authenticate()(func(c echo.Context) error {
		passed = c
		return nil
	})(c)
	return passed, err
}

func TestAuthenticate_CookieToken(t *testing.T) {
	m, tokens, users := newAuthFixture(t)
	user := &domain.User{ID: 7, Email: "ana@example.com", Role: domain.RoleAdmin, IsActive: true}
	users.users[7] = user

	token, err := tokens.Issue(user)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})

	c, err := runAuth(t, m, req)
	if err != nil {
		t.Fatalf("Expected authentication to pass, got %v", err)
	}
	if GetUserID(c) != 7 {
		t.Errorf("Expected user ID 7 in context, got %d", GetUserID(c))
	}
	if GetRole(c) != domain.RoleAdmin {
		t.Errorf("Expected role admin in context, got %s", GetRole(c))
	}
	if GetEmail(c) != "ana@example.com" {
		t.Errorf("Expected email in context, got %s", GetEmail(c))
	}
}

func TestAuthenticate_BearerFallback(t *testing.T) {
	m, tokens, users := newAuthFixture(t)
	user := &domain.User{ID: 7, Email: "ana@example.com", Role: domain.RoleUser, IsActive: true}
	users.users[7] = user

	token, err := tokens.Issue(user)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	if _, err := runAuth(t, m, req); err != nil {
		t.Errorf("Expected bearer authentication to pass, got %v", err)
	}
}

func TestAuthenticate_MissingToken(t *testing.T) {
	m, _, _ := newAuthFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := runAuth(t, m, req)

	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %v", err)
	}
}

func TestAuthenticate_GarbageToken(t *testing.T) {
	m, _, _ := newAuthFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "garbage"})

	_, err := runAuth(t, m, req)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %v", err)
	}
}

func TestAuthenticate_InactiveUser(t *testing.T) {
	m, tokens, users := newAuthFixture(t)
	user := &domain.User{ID: 7, Email: "ana@example.com", Role: domain.RoleUser, IsActive: false}
	users.users[7] = user

	token, err := tokens.Issue(user)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})

	_, err = runAuth(t, m, req)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for inactive account, got %v", err)
	}
}

func TestAuthenticate_DeletedUser(t *testing.T) {
	m, tokens, _ := newAuthFixture(t)

	// Token is valid but the account no longer exists
	token, err := tokens.Issue(&domain.User{ID: 99, Email: "gone@example.com", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})

	_, err = runAuth(t, m, req)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for deleted account, got %v", err)
	}
}

func TestRequireAdmin(t *testing.T) {
	e := echo.New()

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	adminReq := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(adminReq, httptest.NewRecorder())
	setIdentity(c, 1, domain.RoleAdmin)
	if err := RequireAdmin()(next)(c); err != nil {
		t.Errorf("Admin should pass, got %v", err)
	}

	userReq := httptest.NewRequest(http.MethodGet, "/", nil)
	c = e.NewContext(userReq, httptest.NewRecorder())
	setIdentity(c, 2, domain.RoleUser)
	err := RequireAdmin()(next)(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for non-admin, got %v", err)
	}
}

func setIdentity(c echo.Context, userID int64, role domain.Role) {
	ctx := context.WithValue(c.Request().Context(), UserIDKey, userID)
	ctx = context.WithValue(ctx, RoleKey, role)
	c.SetRequest(c.Request().WithContext(ctx))
}
