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

// FacebookVerifier checks a Facebook access token against the Graph API.
type FacebookVerifier struct {
	graphURL string
	client   *http.Client
	logger   *zap.Logger
}

// NewFacebookVerifier builds a verifier with a bounded request timeout.
func NewFacebookVerifier(graphURL string, timeout time.Duration, logger *zap.Logger) *FacebookVerifier {
	return &FacebookVerifier{
		graphURL: graphURL,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// Provider identifies this verifier.
func (v *FacebookVerifier) Provider() domain.AuthProvider {
	return domain.ProviderFacebook
}

type facebookProfile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	} `json:"picture"`
}

// Verify exchanges the access token for the caller's profile. Acceptance
// requires a 2xx status and a non-empty email.
func (v *FacebookVerifier) Verify(ctx context.Context, accessToken string) (*domain.ExternalIdentity, error) {
	query := url.Values{
		"fields":       {"id,name,email,picture"},
		"access_token": {accessToken},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.graphURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, domain.ErrInvalidProviderToken
	}

	resp, err := v.client.Do(req)
	if err != nil {
		v.logger.Warn("facebook graph request failed", zap.Error(err))
		return nil, domain.ErrInvalidProviderToken
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		v.logger.Warn("facebook graph rejected token", zap.Int("status", resp.StatusCode))
		return nil, domain.ErrInvalidProviderToken
	}

	var profile facebookProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		v.logger.Warn("facebook graph response malformed", zap.Error(err))
		return nil, domain.ErrInvalidProviderToken
	}
	if profile.Email == "" {
		return nil, domain.ErrInvalidProviderToken
	}

	return &domain.ExternalIdentity{
		SubjectID: profile.ID,
		Email:     profile.Email,
		Name:      profile.Name,
		AvatarURL: profile.Picture.Data.URL,
	}, nil
}
