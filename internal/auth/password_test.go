package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("SecurePass123!", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "SecurePass123!" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !VerifyPassword(hash, "SecurePass123!") {
		t.Error("VerifyPassword() should accept the original password")
	}
	if VerifyPassword(hash, "wrong-password") {
		t.Error("VerifyPassword() should reject a wrong password")
	}
}

func TestHashPassword_Salted(t *testing.T) {
	first, err := HashPassword("same-input", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	second, err := HashPassword("same-input", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password should differ via embedded salt")
	}
}

// A corrupt or truncated stored hash must read as a mismatch, never abort.
func TestVerifyPassword_MalformedHash(t *testing.T) {
	for _, hash := range []string{"", "not-a-bcrypt-hash", "$2a$xx$garbage"} {
		if VerifyPassword(hash, "anything") {
			t.Errorf("VerifyPassword(%q) should fail for malformed hash", hash)
		}
	}
}
