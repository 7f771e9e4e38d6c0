package services

import (
	"context"
	"strconv"
	"testing"

	"labchat/models"
)

func TestResolveUserIDByName(t *testing.T) {
	db := openTestDB(t)
	user := models.User{Username: "alice", Password: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}

	identity := NewIdentity(db)
	id, err := identity.ResolveUserIDByName(context.Background(), "alice")
	if err != nil {
		t.Fatalf("ResolveUserIDByName error: %v", err)
	}
	if id != strconv.FormatUint(uint64(user.ID), 10) {
		t.Errorf("resolved id = %q, want %d", id, user.ID)
	}
}

func TestResolveUserIDByNameUnknown(t *testing.T) {
	identity := NewIdentity(openTestDB(t))
	if _, err := identity.ResolveUserIDByName(context.Background(), "nobody"); err == nil {
		t.Fatal("expected error for unknown username")
	}
}

func TestIdentityVerifyCredential(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	identity := NewIdentity(openTestDB(t))

	token, err := GenerateToken(models.User{Username: "alice"})
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	username, err := identity.VerifyCredential(context.Background(), token)
	if err != nil {
		t.Fatalf("VerifyCredential error: %v", err)
	}
	if username != "alice" {
		t.Errorf("subject = %q, want alice", username)
	}
}
