package jwt_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/pkg/jwt"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := jwt.NewService("test-secret", time.Hour)
	staffID := uuid.New()

	token, err := svc.GenerateAccessToken(staffID, "admin")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := svc.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.StaffID != staffID {
		t.Errorf("staff id = %s, want %s", claims.StaffID, staffID)
	}
	if claims.Role != "admin" {
		t.Errorf("role = %s, want admin", claims.Role)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := jwt.NewService("test-secret", -time.Minute)

	token, err := svc.GenerateAccessToken(uuid.New(), "reception")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := svc.ValidateAccessToken(token); !errors.Is(err, jwt.ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestWrongSecretRejected(t *testing.T) {
	token, err := jwt.NewService("secret-a", time.Hour).GenerateAccessToken(uuid.New(), "admin")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := jwt.NewService("secret-b", time.Hour).ValidateAccessToken(token); !errors.Is(err, jwt.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
