package domain

import "errors"

// Sentinel errors shared between repositories, services and handlers.
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrEmailTaken      = errors.New("email already registered")

	// ErrInvalidCredentials is returned for unknown email, missing password
	// hash and wrong password alike, so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidProviderToken collapses every provider verification failure
	// (network error, non-2xx, missing email) into one opaque outcome.
	ErrInvalidProviderToken = errors.New("invalid provider token")
)
