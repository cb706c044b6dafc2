package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/metrics"
	"github.com/centavo/centavo-backend/internal/middleware"
	"github.com/centavo/centavo-backend/internal/service"
	"github.com/centavo/centavo-backend/internal/testutil"
	"github.com/centavo/centavo-backend/internal/websocket"
	"github.com/labstack/echo/v4"
)

func newRoutedServer(t *testing.T, limiter *middleware.RateLimiter) (*echo.Echo, *service.TokenService, *testutil.MockUserRepository) {
	t.Helper()

	userRepo := testutil.NewMockUserRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	transactionRepo := testutil.NewMockTransactionRepository()
	budgetRepo := testutil.NewMockBudgetRepository()
	notificationRepo := testutil.NewMockNotificationRepository()
	dashboardRepo := testutil.NewMockDashboardRepository()

	tokenService := service.NewTokenService("test-secret", time.Hour)
	authService := service.NewAuthService(userRepo, categoryRepo)
	notificationService := service.NewNotificationService(notificationRepo, websocket.NopPublisher{}, metrics.NopRecorder{})
	transactionService := service.NewTransactionService(transactionRepo, categoryRepo, notificationService, websocket.NopPublisher{})
	categoryService := service.NewCategoryService(categoryRepo)
	budgetService := service.NewBudgetService(budgetRepo, categoryRepo, notificationService, websocket.NopPublisher{})
	alertService := service.NewAlertService(budgetRepo, notificationService, metrics.NopRecorder{})
	dashboardService := service.NewDashboardService(dashboardRepo)
	adminService := service.NewAdminService(userRepo, transactionRepo, dashboardRepo)

	e := newTestEcho()
	RegisterRoutes(e,
		middleware.NewAuthMiddleware(tokenService, userRepo),
		limiter.Middleware(),
		NewAuthHandler(authService, tokenService, time.Hour, false),
		NewTransactionHandler(transactionService),
		NewCategoryHandler(categoryService),
		NewBudgetHandler(budgetService, alertService),
		NewNotificationHandler(notificationService),
		NewDashboardHandler(dashboardService),
		NewSettingsHandler(authService),
		NewAdminHandler(adminService),
		NewWebSocketHandler(websocket.NewHub(), tokenService, nil),
	)
	return e, tokenService, userRepo
}

func TestRoutes_RateLimitKeyedByAuthenticatedUser(t *testing.T) {
	limiter := middleware.NewRateLimiterWithConfig(10, 1)
	defer limiter.Stop()

	e, tokenService, userRepo := newRoutedServer(t, limiter)

	alice := &domain.User{Email: "alice@example.com", Role: domain.RoleUser, IsActive: true}
	bob := &domain.User{Email: "bob@example.com", Role: domain.RoleUser, IsActive: true}
	userRepo.AddUser(alice)
	userRepo.AddUser(bob)

	issue := func(user *domain.User) string {
		token, err := tokenService.Issue(user)
		if err != nil {
			t.Fatalf("Expected no error issuing token, got %v", err)
		}
		return token
	}
	aliceToken := issue(alice)
	bobToken := issue(bob)

	// All requests share one source IP; only the user identity differs
	do := func(token string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
		req.RemoteAddr = "10.0.0.9:1234"
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := do(aliceToken); code != http.StatusOK {
		t.Fatalf("Alice's first request should pass, got %d", code)
	}
	if code := do(bobToken); code != http.StatusOK {
		t.Errorf("Bob should have a separate bucket, got %d", code)
	}
	if code := do(aliceToken); code != http.StatusTooManyRequests {
		t.Errorf("Expected 429 for Alice's second request, got %d", code)
	}
}

func TestRoutes_UnauthenticatedAuthRoutesLimitedByIP(t *testing.T) {
	limiter := middleware.NewRateLimiterWithConfig(10, 1)
	defer limiter.Stop()

	e, _, _ := newRoutedServer(t, limiter)

	do := func() int {
		req := newLoginRequest()
		req.RemoteAddr = "10.0.0.9:1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := do(); code == http.StatusTooManyRequests {
		t.Fatalf("First login attempt should not be limited, got %d", code)
	}
	if code := do(); code != http.StatusTooManyRequests {
		t.Errorf("Expected 429 for the second login attempt from the same IP, got %d", code)
	}
}

func newLoginRequest() *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}
