package auth

import (
	"strings"
	"testing"
	"time"
)

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"bearer token", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"lowercase bearer", "bearer abc.def.ghi", "abc.def.ghi", false},
		{"empty header", "", "", true},
		{"missing scheme", "abc.def.ghi", "", true},
		{"wrong scheme", "Basic dXNlcjpwYXNz", "", true},
		{"empty token", "Bearer   ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractToken(tt.header)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractToken(%q) error = %v, wantErr %v", tt.header, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ExtractToken(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}

func TestGenerateAndVerifyToken(t *testing.T) {
	auth, err := NewJWTAuth("test-secret-key", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, err := auth.GenerateToken("user-123", "user@example.com", "admin")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	user, err := auth.VerifyAccessToken(token)
	if err != nil {
		t.Fatalf("failed to verify token: %v", err)
	}
	if user.ID != "user-123" || user.Email != "user@example.com" || user.Role != "admin" {
		t.Errorf("claims did not round-trip: %+v", user)
	}
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	issuerAuth, _ := NewJWTAuth("key-one", time.Minute)
	verifierAuth, _ := NewJWTAuth("key-two", time.Minute)

	token, err := issuerAuth.GenerateToken("user-123", "user@example.com", "user")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	if _, err := verifierAuth.VerifyAccessToken(token); err == nil {
		t.Error("token signed with a different key must not verify")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	auth, _ := NewJWTAuth("test-secret-key", -time.Minute)

	token, err := auth.GenerateToken("user-123", "user@example.com", "user")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	if _, err := auth.VerifyAccessToken(token); err == nil {
		t.Error("expired token must not verify")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	auth, _ := NewJWTAuth("test-secret-key", 0)

	if _, err := auth.VerifyAccessToken("not.a.token"); err == nil {
		t.Error("garbage input must not verify")
	}
	if _, err := auth.VerifyAccessToken(strings.Repeat("a", 64)); err == nil {
		t.Error("garbage input must not verify")
	}
}

func TestNewJWTAuthValidation(t *testing.T) {
	if _, err := NewJWTAuth("", time.Minute); err == nil {
		t.Error("empty secret must be rejected")
	}

	auth, err := NewJWTAuth("secret", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if auth.AccessTokenExpiry != 15*time.Minute {
		t.Errorf("zero expiry should default to 15m, got %v", auth.AccessTokenExpiry)
	}
}
