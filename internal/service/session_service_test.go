package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/riadov001/Myjantesappv2/internal/domain"
)

func newSessionFixture(t *testing.T, cache SessionCache) (*SessionService, *FakeSessionRepository, *domain.Account) {
	t.Helper()

	accounts := NewFakeAccountRepository()
	account := &domain.Account{
		ID:           "acc-1",
		Email:        "alice@example.com",
		Name:         "Alice",
		AuthProvider: domain.ProviderLocal,
		Role:         domain.RoleClient,
	}
	if err := accounts.Create(context.Background(), account); err != nil {
		t.Fatalf("seed account: %v", err)
	}

	sessions := NewFakeSessionRepository()
	svc := NewSessionService(30*24*time.Hour, SessionDependencies{
		SessionRepo: sessions,
		AccountRepo: accounts,
		Cache:       cache,
		Logger:      zap.NewNop(),
	})
	return svc, sessions, account
}

func TestSessionService_CreateAndResolve(t *testing.T) {
	svc, _, account := newSessionFixture(t, nil)
	ctx := context.Background()

	session, err := svc.Create(ctx, account.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(session.Token) != 64 {
		t.Errorf("token length = %d, want 64 hex chars", len(session.Token))
	}

	resolved, err := svc.Resolve(ctx, session.Token)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if resolved.ID != account.ID {
		t.Errorf("resolved account = %q, want %q", resolved.ID, account.ID)
	}
}

func TestSessionService_Resolve_UnknownToken(t *testing.T) {
	svc, _, _ := newSessionFixture(t, nil)

	if _, err := svc.Resolve(context.Background(), "fabricated"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("Resolve() error = %v, want ErrSessionNotFound", err)
	}
	if _, err := svc.Resolve(context.Background(), ""); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("Resolve(\"\") error = %v, want ErrSessionNotFound", err)
	}
}

// A token is valid strictly before its expiry and absent at or after it.
func TestSessionService_Resolve_ExpiryBoundary(t *testing.T) {
	svc, _, account := newSessionFixture(t, nil)
	ctx := context.Background()

	created := time.Now()
	svc.now = func() time.Time { return created }

	session, err := svc.Create(ctx, account.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	svc.now = func() time.Time { return session.ExpiresAt.Add(-time.Second) }
	if _, err := svc.Resolve(ctx, session.Token); err != nil {
		t.Fatalf("Resolve() just before expiry error = %v", err)
	}

	svc.now = func() time.Time { return session.ExpiresAt }
	if _, err := svc.Resolve(ctx, session.Token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("Resolve() at expiry error = %v, want ErrSessionNotFound", err)
	}

	svc.now = func() time.Time { return session.ExpiresAt.Add(time.Hour) }
	if _, err := svc.Resolve(ctx, session.Token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("Resolve() after expiry error = %v, want ErrSessionNotFound", err)
	}
}

// Resolution must not extend the session lifetime.
func TestSessionService_Resolve_NoSlidingRenewal(t *testing.T) {
	svc, sessions, account := newSessionFixture(t, nil)
	ctx := context.Background()

	session, err := svc.Create(ctx, account.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	originalExpiry := session.ExpiresAt

	for i := 0; i < 3; i++ {
		if _, err := svc.Resolve(ctx, session.Token); err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
	}

	stored, err := sessions.GetByToken(ctx, session.Token)
	if err != nil {
		t.Fatalf("GetByToken() error = %v", err)
	}
	if !stored.ExpiresAt.Equal(originalExpiry) {
		t.Errorf("ExpiresAt moved from %v to %v on use", originalExpiry, stored.ExpiresAt)
	}
}

func TestSessionService_Revoke_Idempotent(t *testing.T) {
	svc, sessions, account := newSessionFixture(t, nil)
	ctx := context.Background()

	session, err := svc.Create(ctx, account.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.Revoke(ctx, session.Token); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}
	if _, err := svc.Resolve(ctx, session.Token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("Resolve() after revoke error = %v, want ErrSessionNotFound", err)
	}

	// Revoking again, or revoking tokens that never existed, is a no-op.
	if err := svc.Revoke(ctx, session.Token); err != nil {
		t.Errorf("second Revoke() error = %v", err)
	}
	if err := svc.Revoke(ctx, "fabricated"); err != nil {
		t.Errorf("Revoke(fabricated) error = %v", err)
	}
	if err := svc.Revoke(ctx, ""); err != nil {
		t.Errorf("Revoke(\"\") error = %v", err)
	}
	if sessions.Count() != 0 {
		t.Errorf("session count = %d, want 0", sessions.Count())
	}
}

func TestSessionService_MultipleSessionsPerAccount(t *testing.T) {
	svc, sessions, account := newSessionFixture(t, nil)
	ctx := context.Background()

	first, err := svc.Create(ctx, account.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	second, err := svc.Create(ctx, account.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if first.Token == second.Token {
		t.Fatal("two sessions must have distinct tokens")
	}

	// Revoking one device leaves the other signed in.
	if err := svc.Revoke(ctx, first.Token); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}
	if _, err := svc.Resolve(ctx, second.Token); err != nil {
		t.Errorf("Resolve() of surviving session error = %v", err)
	}
	if sessions.Count() != 1 {
		t.Errorf("session count = %d, want 1", sessions.Count())
	}
}

func TestSessionService_CachePopulatedAndInvalidated(t *testing.T) {
	cache := NewFakeSessionCache()
	svc, sessions, account := newSessionFixture(t, cache)
	ctx := context.Background()

	session, err := svc.Create(ctx, account.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if !cache.Contains(session.Token) {
		t.Error("session should be cached on create")
	}

	// Serving from cache must work even when the store would miss.
	sessions.getErr = errors.New("store unavailable")
	if _, err := svc.Resolve(ctx, session.Token); err != nil {
		t.Fatalf("Resolve() from cache error = %v", err)
	}
	sessions.getErr = nil

	if err := svc.Revoke(ctx, session.Token); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}
	if cache.Contains(session.Token) {
		t.Error("revoke must evict the cache entry")
	}
}
