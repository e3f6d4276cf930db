package domain

import "time"

// Session is an opaque bearer credential granting access to one account.
// The token doubles as the identifier; there is no renewal state, a session
// is either valid or absent-or-expired.
type Session struct {
	Token     string
	AccountID string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is no longer usable at the given time.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
