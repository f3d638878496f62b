package helpers

import (
	"os"
	"testing"
	"time"
)

func TestMain(m *testing.M) {
	os.Setenv("SECRET_KEY", "test-secret")
	os.Exit(m.Run())
}

func TestTokenRoundtrip(t *testing.T) {
	token, refreshToken, err := GenerateAllTokens("shop@example.com", "Shop Owner", "user-1", "customer", 24*time.Hour)
	if err != nil {
		t.Fatalf("GenerateAllTokens: %v", err)
	}
	if token == "" || refreshToken == "" {
		t.Fatal("empty token returned")
	}

	claims, msg := ValidateToken(token)
	if msg != "" {
		t.Fatalf("ValidateToken: %s", msg)
	}
	if claims.Email != "shop@example.com" {
		t.Errorf("email claim = %q", claims.Email)
	}
	if claims.Uid != "user-1" {
		t.Errorf("uid claim = %q", claims.Uid)
	}
	if claims.Role != "customer" {
		t.Errorf("role claim = %q", claims.Role)
	}
}

func TestTokenCarriesAdminRole(t *testing.T) {
	token, _, err := GenerateAllTokens("admin@example.com", "Admin", "user-2", "admin", time.Hour)
	if err != nil {
		t.Fatalf("GenerateAllTokens: %v", err)
	}
	claims, msg := ValidateToken(token)
	if msg != "" {
		t.Fatalf("ValidateToken: %s", msg)
	}
	if claims.Role != "admin" {
		t.Errorf("role claim = %q, want admin", claims.Role)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	token, _, err := GenerateAllTokens("shop@example.com", "Shop Owner", "user-1", "customer", -time.Hour)
	if err != nil {
		t.Fatalf("GenerateAllTokens: %v", err)
	}
	claims, msg := ValidateToken(token)
	if msg == "" {
		t.Fatal("expired token was accepted")
	}
	if claims != nil {
		t.Errorf("claims returned for expired token: %+v", claims)
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	if claims, msg := ValidateToken("not-a-token"); msg == "" || claims != nil {
		t.Error("garbage token was accepted")
	}
}
