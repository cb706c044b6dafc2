package service

import (
	"errors"
	"testing"
	"time"

	"github.com/centavo/centavo-backend/internal/domain"
)

func TestTokenRoundtrip(t *testing.T) {
	tokenService := NewTokenService("test-secret", time.Hour)

	user := &domain.User{ID: 42, Email: "ana@example.com", Role: domain.RoleAdmin}
	token, err := tokenService.Issue(user)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	claims, err := tokenService.Parse(token)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("Expected user ID 42, got %d", claims.UserID)
	}
	if claims.Email != "ana@example.com" {
		t.Errorf("Expected email ana@example.com, got %s", claims.Email)
	}
	if claims.Role != domain.RoleAdmin {
		t.Errorf("Expected role admin, got %s", claims.Role)
	}
}

func TestTokenParse_WrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := issuer.Issue(&domain.User{ID: 1, Email: "ana@example.com", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if _, err := verifier.Parse(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized, got %v", err)
	}
}

func TestTokenParse_Expired(t *testing.T) {
	tokenService := NewTokenService("test-secret", -time.Minute)

	token, err := tokenService.Issue(&domain.User{ID: 1, Email: "ana@example.com", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if _, err := tokenService.Parse(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized for expired token, got %v", err)
	}
}

func TestTokenParse_Garbage(t *testing.T) {
	tokenService := NewTokenService("test-secret", time.Hour)

	if _, err := tokenService.Parse("not.a.token"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized, got %v", err)
	}
}
