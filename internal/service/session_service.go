package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/riadov001/Myjantesappv2/internal/auth"
	"github.com/riadov001/Myjantesappv2/internal/domain"
	"github.com/riadov001/Myjantesappv2/internal/events"
	"github.com/riadov001/Myjantesappv2/internal/repository"
)

// SessionService issues, resolves and revokes opaque session tokens.
// Sessions are never renewed on use; a token is valid strictly before its
// expiry and absent afterwards.
type SessionService struct {
	sessions   repository.SessionRepository
	accounts   repository.AccountRepository
	cache      SessionCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
	ttl        time.Duration
	now        func() time.Time
}

// SessionDependencies encapsulates requirements for the session service.
// Cache is optional; nil disables caching.
type SessionDependencies struct {
	SessionRepo repository.SessionRepository
	AccountRepo repository.AccountRepository
	Cache       SessionCache
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewSessionService builds the service.
func NewSessionService(ttl time.Duration, deps SessionDependencies) *SessionService {
	return &SessionService{
		sessions:   deps.SessionRepo,
		accounts:   deps.AccountRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		ttl:        ttl,
		now:        time.Now,
	}
}

// Create issues a fresh session for the account.
func (s *SessionService) Create(ctx context.Context, accountID string) (*domain.Session, error) {
	token, err := auth.NewSessionToken()
	if err != nil {
		return nil, err
	}

	session := &domain.Session{
		Token:     token,
		AccountID: accountID,
		ExpiresAt: s.now().Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, session); err != nil {
			s.logger.Warn("session cache set failed", zap.Error(err))
		}
	}
	return session, nil
}

// Resolve returns the account owning a valid session token. Unknown and
// expired tokens both resolve to domain.ErrSessionNotFound; expiry is never
// extended on use.
func (s *SessionService) Resolve(ctx context.Context, token string) (*domain.Account, error) {
	if token == "" {
		return nil, domain.ErrSessionNotFound
	}

	session, cached := s.fromCache(ctx, token)
	if session == nil {
		var err error
		session, err = s.sessions.GetByToken(ctx, token)
		if err != nil {
			return nil, err
		}
	}

	if session.Expired(s.now()) {
		if cached && s.cache != nil {
			_ = s.cache.Delete(ctx, token)
		}
		return nil, domain.ErrSessionNotFound
	}

	if !cached && s.cache != nil {
		if err := s.cache.Set(ctx, session); err != nil {
			s.logger.Warn("session cache set failed", zap.Error(err))
		}
	}

	account, err := s.accounts.GetByID(ctx, session.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return account, nil
}

// Revoke deletes the session. Revoking an unknown, expired or already
// revoked token is a no-op.
func (s *SessionService) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.DeleteByToken(ctx, token); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.Delete(ctx, token)
	}

	if s.dispatcher != nil {
		s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventSessionRevoked,
			Timestamp: s.now(),
			Payload:   events.SessionRevokedPayload{Explicit: true},
		})
	}
	return nil
}

func (s *SessionService) fromCache(ctx context.Context, token string) (*domain.Session, bool) {
	if s.cache == nil {
		return nil, false
	}
	session, err := s.cache.Get(ctx, token)
	if err != nil || session == nil {
		return nil, false
	}
	return session, true
}
