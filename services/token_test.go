package services

import (
	"testing"
	"time"

	"labchat/models"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	token, err := GenerateToken(models.User{Username: "alice"})
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	username, err := VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken error: %v", err)
	}
	if username != "alice" {
		t.Errorf("subject = %q, want alice", username)
	}
}

func TestVerifyTokenExpired(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	claims := jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(-time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign test token: %v", err)
	}
	if _, err := VerifyToken(signed); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestVerifyTokenWithoutExpiry(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "alice"}).
		SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign test token: %v", err)
	}
	if _, err := VerifyToken(signed); err == nil {
		t.Fatal("expected error for token without expiration")
	}
}

func TestVerifyTokenWrongKey(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	claims := jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("sign test token: %v", err)
	}
	if _, err := VerifyToken(signed); err == nil {
		t.Fatal("expected error for token signed with a different key")
	}
}

func TestVerifyTokenMissingSubject(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	claims := jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign test token: %v", err)
	}
	if _, err := VerifyToken(signed); err == nil {
		t.Fatal("expected error for token without a subject")
	}
}

func TestVerifyTokenGarbage(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	if _, err := VerifyToken("not.a.token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
