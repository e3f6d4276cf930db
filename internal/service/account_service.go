package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/riadov001/Myjantesappv2/internal/auth"
	"github.com/riadov001/Myjantesappv2/internal/domain"
	"github.com/riadov001/Myjantesappv2/internal/events"
	"github.com/riadov001/Myjantesappv2/internal/repository"
)

// AccountService resolves credentials and external identities to accounts.
// It owns the linking policy: an account is matched by provider subject
// first, then by email, so a user who registered with a password and later
// signs in with Google on the same address keeps a single account.
type AccountService struct {
	accounts   repository.AccountRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
}

// AccountDependencies encapsulates requirements for the account service.
type AccountDependencies struct {
	AccountRepo repository.AccountRepository
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewAccountService builds the service.
func NewAccountService(bcryptCost int, deps AccountDependencies) *AccountService {
	return &AccountService{
		accounts:   deps.AccountRepo,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		bcryptCost: bcryptCost,
	}
}

// Register creates a new password-based account.
func (s *AccountService) Register(ctx context.Context, email, password, name string) (*domain.Account, error) {
	email = normalizeEmail(email)

	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	if name == "" {
		name = emailLocalPart(email)
	}

	account := &domain.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: &hash,
		Name:         name,
		AuthProvider: domain.ProviderLocal,
		Role:         domain.RoleClient,
	}
	// The unique index is the real guard; a concurrent registration racing
	// past the pre-check above still surfaces as ErrEmailTaken here.
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventAccountRegistered, account.ID, events.AccountRegisteredPayload{
		Email:    account.Email,
		Provider: domain.ProviderLocal,
	})
	return account, nil
}

// Login authenticates a password-based account. Unknown email, an account
// without a password hash and a wrong password are indistinguishable to the
// caller.
func (s *AccountService) Login(ctx context.Context, email, password string) (*domain.Account, error) {
	account, err := s.accounts.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if account.PasswordHash == nil || !auth.VerifyPassword(*account.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	s.publish(ctx, events.EventAccountLoggedIn, account.ID, events.AccountLoggedInPayload{
		Provider: domain.ProviderLocal,
	})
	return account, nil
}

// ResolveExternal finds or creates the account for a verified external
// identity. Lookup order is subject id first, then email; it only fails on
// storage errors.
func (s *AccountService) ResolveExternal(ctx context.Context, provider domain.AuthProvider, identity *domain.ExternalIdentity) (*domain.Account, error) {
	account, err := s.accounts.GetByProviderSubject(ctx, provider, identity.SubjectID)
	if errors.Is(err, domain.ErrAccountNotFound) {
		account, err = s.accounts.GetByEmail(ctx, normalizeEmail(identity.Email))
	}
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return s.createExternal(ctx, provider, identity)
		}
		return nil, err
	}

	return s.relink(ctx, account, provider, identity)
}

func (s *AccountService) createExternal(ctx context.Context, provider domain.AuthProvider, identity *domain.ExternalIdentity) (*domain.Account, error) {
	name := identity.Name
	if name == "" {
		name = emailLocalPart(identity.Email)
	}

	subjectID := identity.SubjectID
	account := &domain.Account{
		ID:                uuid.NewString(),
		Email:             normalizeEmail(identity.Email),
		Name:              name,
		AuthProvider:      provider,
		ProviderSubjectID: &subjectID,
		Role:              domain.RoleClient,
	}
	if identity.AvatarURL != "" {
		avatar := identity.AvatarURL
		account.AvatarURL = &avatar
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventAccountRegistered, account.ID, events.AccountRegisteredPayload{
		Email:    account.Email,
		Provider: provider,
	})
	return account, nil
}

// relink moves the account onto the incoming provider when it last
// authenticated another way. Provider-supplied name and avatar only fill
// gaps; a value the user already has is never clobbered.
func (s *AccountService) relink(ctx context.Context, account *domain.Account, provider domain.AuthProvider, identity *domain.ExternalIdentity) (*domain.Account, error) {
	previous := account.AuthProvider
	changed := account.AuthProvider != provider ||
		account.ProviderSubjectID == nil ||
		*account.ProviderSubjectID != identity.SubjectID

	if !changed {
		s.publish(ctx, events.EventAccountLoggedIn, account.ID, events.AccountLoggedInPayload{
			Provider: provider,
		})
		return account, nil
	}

	subjectID := identity.SubjectID
	account.AuthProvider = provider
	account.ProviderSubjectID = &subjectID
	if account.Name == "" && identity.Name != "" {
		account.Name = identity.Name
	}
	if account.AvatarURL == nil && identity.AvatarURL != "" {
		avatar := identity.AvatarURL
		account.AvatarURL = &avatar
	}

	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventAccountLinked, account.ID, events.AccountLinkedPayload{
		PreviousProvider: previous,
		NewProvider:      provider,
	})
	return account, nil
}

// GetByID loads an account, typically for session resolution.
func (s *AccountService) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return s.accounts.GetByID(ctx, id)
}

func (s *AccountService) publish(ctx context.Context, eventType events.EventType, accountID string, payload any) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		AccountID: accountID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func emailLocalPart(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
