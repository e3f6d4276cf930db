// Package provider turns provider-supplied proofs (ID tokens, access tokens,
// Apple sign-in payloads) into a normalized external identity. Every failure
// mode, from a network timeout to a token the provider rejects, surfaces as
// domain.ErrInvalidProviderToken; provider-internal detail stays in the logs.
package provider

import (
	"context"

	"github.com/riadov001/Myjantesappv2/internal/domain"
)

// Verifier validates a provider-supplied proof of identity.
type Verifier interface {
	Provider() domain.AuthProvider
	Verify(ctx context.Context, proof string) (*domain.ExternalIdentity, error)
}
