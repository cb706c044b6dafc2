package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 5)
	defer rl.Stop()

	// First 5 requests spend the burst
	for i := 0; i < 5; i++ {
		if !rl.Allow("user:1") {
			t.Errorf("Request %d should be allowed", i+1)
		}
	}

	if rl.Allow("user:1") {
		t.Error("Request 6 should be rate limited")
	}
}

func TestRateLimiter_SeparateKeys(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 3)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		if !rl.Allow("user:1") {
			t.Errorf("user:1 request %d should be allowed", i+1)
		}
	}
	if rl.Allow("user:1") {
		t.Error("user:1 should be rate limited")
	}

	// A different key keeps its full burst
	for i := 0; i < 3; i++ {
		if !rl.Allow("user:2") {
			t.Errorf("user:2 request %d should be allowed", i+1)
		}
	}
}

func TestRateLimitMiddleware_PerUserBuckets(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiterWithConfig(10, 1)
	defer rl.Stop()

	handler := rl.Middleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	// Authenticated requests from the same IP are keyed by user
	do := func(userID int64) error {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		c := e.NewContext(req, httptest.NewRecorder())
		ctx := context.WithValue(c.Request().Context(), UserIDKey, userID)
		c.SetRequest(c.Request().WithContext(ctx))
		return handler(c)
	}

	if err := do(1); err != nil {
		t.Fatalf("User 1 first request should pass, got %v", err)
	}
	if err := do(2); err != nil {
		t.Fatalf("User 2 should have its own bucket, got %v", err)
	}
	err := do(1)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusTooManyRequests {
		t.Errorf("Expected 429 for user 1's second request, got %v", err)
	}
}

func TestRateLimitMiddleware_Returns429(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiterWithConfig(10, 1)
	defer rl.Stop()

	handler := rl.Middleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"

	rec := httptest.NewRecorder()
	if err := handler(e.NewContext(req, rec)); err != nil {
		t.Fatalf("First request should pass, got %v", err)
	}

	rec = httptest.NewRecorder()
	err := handler(e.NewContext(req, rec))
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusTooManyRequests {
		t.Errorf("Expected 429, got %v", err)
	}
}
