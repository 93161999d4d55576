package auth_test

import (
	"strings"
	"testing"

	"github.com/linkdeck/linkdeck/internal/auth"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := auth.HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("hash = %q, want a bcrypt hash", hash)
	}

	if !auth.CheckPassword(hash, "correct horse battery staple") {
		t.Error("correct password rejected")
	}
	if auth.CheckPassword(hash, "wrong password") {
		t.Error("wrong password accepted")
	}
}

func TestCheckPassword_InvalidHash(t *testing.T) {
	if auth.CheckPassword("not-a-hash", "anything") {
		t.Error("garbage hash accepted")
	}
}
