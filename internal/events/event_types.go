package events

import (
	"time"

	"github.com/riadov001/Myjantesappv2/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAccountRegistered EventType = "account_registered"
	EventAccountLoggedIn   EventType = "account_logged_in"
	EventAccountLinked     EventType = "account_linked"
	EventSessionRevoked    EventType = "session_revoked"
)

// Event represents a domain event emitted by the auth services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	AccountID string    `json:"account_id"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// AccountRegisteredPayload payload.
type AccountRegisteredPayload struct {
	Email    string              `json:"email"`
	Provider domain.AuthProvider `json:"provider"`
}

// AccountLoggedInPayload payload.
type AccountLoggedInPayload struct {
	Provider domain.AuthProvider `json:"provider"`
}

// AccountLinkedPayload records a sign-in method being attached to an
// account that previously authenticated another way.
type AccountLinkedPayload struct {
	PreviousProvider domain.AuthProvider `json:"previous_provider"`
	NewProvider      domain.AuthProvider `json:"new_provider"`
}

// SessionRevokedPayload payload.
type SessionRevokedPayload struct {
	Explicit bool `json:"explicit"`
}
