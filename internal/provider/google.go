package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/riadov001/Myjantesappv2/internal/domain"
)

// GoogleVerifier checks a Google ID token against the tokeninfo endpoint.
type GoogleVerifier struct {
	tokenInfoURL string
	client       *http.Client
	logger       *zap.Logger
}

// NewGoogleVerifier builds a verifier with a bounded request timeout.
func NewGoogleVerifier(tokenInfoURL string, timeout time.Duration, logger *zap.Logger) *GoogleVerifier {
	return &GoogleVerifier{
		tokenInfoURL: tokenInfoURL,
		client:       &http.Client{Timeout: timeout},
		logger:       logger,
	}
}

// Provider identifies this verifier.
func (v *GoogleVerifier) Provider() domain.AuthProvider {
	return domain.ProviderGoogle
}

type googleTokenInfo struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Verify sends the ID token to Google and maps the response. Acceptance
// requires a 2xx status and a non-empty email.
func (v *GoogleVerifier) Verify(ctx context.Context, idToken string) (*domain.ExternalIdentity, error) {
	endpoint := v.tokenInfoURL + "?" + url.Values{"id_token": {idToken}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, domain.ErrInvalidProviderToken
	}

	resp, err := v.client.Do(req)
	if err != nil {
		v.logger.Warn("google tokeninfo request failed", zap.Error(err))
		return nil, domain.ErrInvalidProviderToken
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		v.logger.Warn("google tokeninfo rejected token", zap.Int("status", resp.StatusCode))
		return nil, domain.ErrInvalidProviderToken
	}

	var info googleTokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		v.logger.Warn("google tokeninfo response malformed", zap.Error(err))
		return nil, domain.ErrInvalidProviderToken
	}
	if info.Email == "" {
		return nil, domain.ErrInvalidProviderToken
	}

	return &domain.ExternalIdentity{
		SubjectID: info.Sub,
		Email:     info.Email,
		Name:      info.Name,
		AvatarURL: info.Picture,
	}, nil
}
