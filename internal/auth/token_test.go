package auth

import (
	"encoding/hex"
	"testing"
)

func TestNewSessionToken(t *testing.T) {
	token, err := NewSessionToken()
	if err != nil {
		t.Fatalf("NewSessionToken() error = %v", err)
	}

	raw, err := hex.DecodeString(token)
	if err != nil {
		t.Fatalf("token should be hex encoded: %v", err)
	}
	if len(raw) != tokenBytes {
		t.Errorf("token entropy = %d bytes, want %d", len(raw), tokenBytes)
	}
}

func TestNewSessionToken_Unique(t *testing.T) {
	seen := make(map[string]struct{}, 100)
	for i := 0; i < 100; i++ {
		token, err := NewSessionToken()
		if err != nil {
			t.Fatalf("NewSessionToken() error = %v", err)
		}
		if _, dup := seen[token]; dup {
			t.Fatal("duplicate session token generated")
		}
		seen[token] = struct{}{}
	}
}
