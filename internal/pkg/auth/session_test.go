package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/schoolsys/registrar/internal/app/models"
)

func testUser() *models.User {
	return &models.User{
		ID:       42,
		Username: "jdoe",
		Role:     models.RoleRegistrar,
	}
}

func TestSessionRoundTrip(t *testing.T) {
	svc := NewSessionService(SessionConfig{
		SecretKey: "test-secret",
		TTL:       time.Hour,
		Issuer:    "registrar",
	})

	token, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	if claims.UserID != 42 {
		t.Errorf("Expected user ID 42, got %d", claims.UserID)
	}
	if claims.Username != "jdoe" {
		t.Errorf("Expected username 'jdoe', got '%s'", claims.Username)
	}
	if claims.Role != string(models.RoleRegistrar) {
		t.Errorf("Expected role 'registrar', got '%s'", claims.Role)
	}
	if claims.ID == "" {
		t.Errorf("Expected a token ID to be set")
	}
}

func TestValidate_Expired(t *testing.T) {
	svc := NewSessionService(SessionConfig{
		SecretKey: "test-secret",
		TTL:       -time.Minute,
		Issuer:    "registrar",
	})

	token, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := svc.Validate(token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("Expected ErrExpiredToken, got %v", err)
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	issuer := NewSessionService(SessionConfig{SecretKey: "secret-a", TTL: time.Hour})
	verifier := NewSessionService(SessionConfig{SecretKey: "secret-b", TTL: time.Hour})

	token, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := verifier.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}
}

func TestValidate_Garbage(t *testing.T) {
	svc := NewSessionService(SessionConfig{SecretKey: "test-secret", TTL: time.Hour})

	if _, err := svc.Validate("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}
}
