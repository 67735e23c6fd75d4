package service

import (
	"errors"
	"testing"
	"time"

	"github.com/wheat-next/internal/config"
)

func newAuthService(secret string) *AuthService {
	cfg := &config.Config{}
	cfg.JWT.SecretKey = secret
	cfg.JWT.ExpireHours = 24
	return NewAuthService(cfg)
}

func TestGenerateAndParseJWT(t *testing.T) {
	svc := newAuthService("test-secret-key-0123456789abcdef")

	token, expiresAt, err := svc.GenerateJWT("user-1")
	if err != nil {
		t.Fatalf("generate jwt failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}
	if time.Until(expiresAt) <= 0 {
		t.Fatalf("expected future expiry, got %v", expiresAt)
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse jwt failed: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Fatalf("unexpected user_id: %s", claims.UserID)
	}
}

func TestGenerateJWTRequiresUserID(t *testing.T) {
	svc := newAuthService("test-secret-key-0123456789abcdef")

	if _, _, err := svc.GenerateJWT("  "); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParseJWTRejectsTampered(t *testing.T) {
	svc := newAuthService("test-secret-key-0123456789abcdef")

	token, _, err := svc.GenerateJWT("user-1")
	if err != nil {
		t.Fatalf("generate jwt failed: %v", err)
	}

	if _, err := svc.ParseJWT(token + "x"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}

	other := newAuthService("another-secret-key-0123456789abcd")
	if _, err := other.ParseJWT(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token across secrets, got %v", err)
	}
}
