package provider

import (
	"strings"

	"github.com/riadov001/Myjantesappv2/internal/domain"
)

// applePlaceholderDomain is used when Apple withholds the email, which it
// does on every sign-in after the first. The reserved .invalid TLD guarantees
// the synthesized address can never collide with a routable mailbox.
const applePlaceholderDomain = "privaterelay.invalid"

// AppleClaim is the client-asserted payload from Sign in with Apple.
// Signature verification of the identity token is delegated to the Apple SDK
// on the device; the server trusts the stable subject identifier.
type AppleClaim struct {
	SubjectID  string
	Email      string
	GivenName  string
	FamilyName string
}

// AppleIdentity normalizes an Apple sign-in claim. Unlike Google and
// Facebook this involves no network round trip, so there is no failure mode
// beyond a missing subject identifier.
func AppleIdentity(claim AppleClaim) (*domain.ExternalIdentity, error) {
	if claim.SubjectID == "" {
		return nil, domain.ErrInvalidProviderToken
	}

	email := claim.Email
	if email == "" {
		email = claim.SubjectID + "@" + applePlaceholderDomain
	}

	name := strings.TrimSpace(claim.GivenName + " " + claim.FamilyName)

	return &domain.ExternalIdentity{
		SubjectID: claim.SubjectID,
		Email:     email,
		Name:      name,
	}, nil
}
