package domain

import "time"

// AuthProvider identifies how an account most recently authenticated.
type AuthProvider string

const (
	ProviderLocal    AuthProvider = "local"
	ProviderGoogle   AuthProvider = "google"
	ProviderFacebook AuthProvider = "facebook"
	ProviderApple    AuthProvider = "apple"
)

// Role represents the account's access level. Role changes happen through
// privileged admin tooling, never through the auth endpoints.
type Role string

const (
	RoleClient     Role = "client"
	RoleEmployee   Role = "employee"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// Account is the domain model for a user identity. A single account may be
// reachable through several sign-in methods; AuthProvider and
// ProviderSubjectID reflect the most recently verified one.
type Account struct {
	ID                string
	Email             string
	PasswordHash      *string
	Name              string
	AvatarURL         *string
	AuthProvider      AuthProvider
	ProviderSubjectID *string
	Role              Role
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ExternalIdentity is the normalized result of a provider token verification.
type ExternalIdentity struct {
	SubjectID string
	Email     string
	Name      string
	AvatarURL string
}
