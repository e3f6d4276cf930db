package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/riadov001/Myjantesappv2/internal/domain"
)

// FakeAccountRepository is a test-only in-memory implementation of
// repository.AccountRepository. It enforces the same email uniqueness the
// Postgres index does and exposes error fields for behavior injection.
type FakeAccountRepository struct {
	mu        sync.RWMutex
	accounts  map[string]*domain.Account
	createErr error
	updateErr error
	getErr    error
}

// NewFakeAccountRepository builds an empty fake.
func NewFakeAccountRepository() *FakeAccountRepository {
	return &FakeAccountRepository{accounts: make(map[string]*domain.Account)}
}

func (f *FakeAccountRepository) Create(_ context.Context, account *domain.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.accounts {
		if strings.EqualFold(existing.Email, account.Email) {
			return domain.ErrEmailTaken
		}
	}
	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now
	stored := *account
	f.accounts[account.ID] = &stored
	return nil
}

func (f *FakeAccountRepository) Update(_ context.Context, account *domain.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.accounts[account.ID]; !ok {
		return domain.ErrAccountNotFound
	}
	account.UpdatedAt = time.Now()
	stored := *account
	f.accounts[account.ID] = &stored
	return nil
}

func (f *FakeAccountRepository) GetByID(_ context.Context, id string) (*domain.Account, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	account, ok := f.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	copied := *account
	return &copied, nil
}

func (f *FakeAccountRepository) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, account := range f.accounts {
		if strings.EqualFold(account.Email, email) {
			copied := *account
			return &copied, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (f *FakeAccountRepository) GetByProviderSubject(_ context.Context, provider domain.AuthProvider, subjectID string) (*domain.Account, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, account := range f.accounts {
		if account.AuthProvider == provider &&
			account.ProviderSubjectID != nil &&
			*account.ProviderSubjectID == subjectID {
			copied := *account
			return &copied, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

// FakeSessionRepository is a test-only in-memory implementation of
// repository.SessionRepository.
type FakeSessionRepository struct {
	mu        sync.RWMutex
	sessions  map[string]*domain.Session
	createErr error
	getErr    error
	deleteErr error
}

// NewFakeSessionRepository builds an empty fake.
func NewFakeSessionRepository() *FakeSessionRepository {
	return &FakeSessionRepository{sessions: make(map[string]*domain.Session)}
}

func (f *FakeSessionRepository) Create(_ context.Context, session *domain.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	session.CreatedAt = time.Now()
	stored := *session
	f.sessions[session.Token] = &stored
	return nil
}

func (f *FakeSessionRepository) GetByToken(_ context.Context, token string) (*domain.Session, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	session, ok := f.sessions[token]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (f *FakeSessionRepository) DeleteByToken(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.sessions, token)
	return nil
}

func (f *FakeSessionRepository) DeleteExpired(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	var deleted int64
	now := time.Now()
	for token, session := range f.sessions {
		if session.Expired(now) {
			delete(f.sessions, token)
			deleted++
		}
	}
	return deleted, nil
}

// Count reports how many sessions the fake holds.
func (f *FakeSessionRepository) Count() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.sessions)
}

// FakeSessionCache is a map-backed SessionCache for cache-path tests.
type FakeSessionCache struct {
	mu      sync.RWMutex
	entries map[string]*domain.Session
}

// NewFakeSessionCache builds an empty cache.
func NewFakeSessionCache() *FakeSessionCache {
	return &FakeSessionCache{entries: make(map[string]*domain.Session)}
}

func (f *FakeSessionCache) Get(_ context.Context, token string) (*domain.Session, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	session, ok := f.entries[token]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (f *FakeSessionCache) Set(_ context.Context, session *domain.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *session
	f.entries[session.Token] = &stored
	return nil
}

func (f *FakeSessionCache) Delete(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, token)
	return nil
}

// Contains reports whether a token is cached.
func (f *FakeSessionCache) Contains(token string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.entries[token]
	return ok
}
