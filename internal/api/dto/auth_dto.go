package dto

import "github.com/riadov001/Myjantesappv2/internal/domain"

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest payload for password login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GoogleOAuthRequest carries the Google ID token.
type GoogleOAuthRequest struct {
	IDToken string `json:"idToken"`
}

// FacebookOAuthRequest carries the Facebook access token.
type FacebookOAuthRequest struct {
	AccessToken string `json:"accessToken"`
}

// AppleFullName mirrors the name object Apple provides on first sign-in.
type AppleFullName struct {
	GivenName  string `json:"givenName"`
	FamilyName string `json:"familyName"`
}

// AppleOAuthRequest carries the Sign in with Apple payload. User is Apple's
// stable subject identifier; email and fullName are only present the first
// time a user authorizes the app.
type AppleOAuthRequest struct {
	IdentityToken string         `json:"identityToken"`
	User          string         `json:"user"`
	Email         string         `json:"email"`
	FullName      *AppleFullName `json:"fullName"`
}

// AccountView is the client-facing account representation. Password hashes
// and provider subject identifiers never leave the service.
type AccountView struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	Name         string  `json:"name"`
	ProfileImage *string `json:"profileImage"`
	Role         string  `json:"role"`
}

// NewAccountView maps a domain account to its public view.
func NewAccountView(account *domain.Account) AccountView {
	return AccountView{
		ID:           account.ID,
		Email:        account.Email,
		Name:         account.Name,
		ProfileImage: account.AvatarURL,
		Role:         string(account.Role),
	}
}

// MessageResponse is a plain acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}
