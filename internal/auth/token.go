package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// tokenBytes is the entropy of a session token. 32 bytes gives 256 bits,
// enough that tokens are unguessable and collisions are not a concern.
const tokenBytes = 32

// NewSessionToken returns a fresh opaque bearer token. The token is both the
// session identifier and the credential, so it must come from a
// cryptographically secure source.
func NewSessionToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
