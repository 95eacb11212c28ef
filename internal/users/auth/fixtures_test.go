// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/apperr"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/sec"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/users/auth"
)

const (
	testSecret   = "0123456789abcdef0123456789abcdef"
	testPassword = "password1"
	aliceEmail   = "alice@example.com"
)

// # In-Memory Account Repository

type memAccounts struct {
	mu     sync.Mutex
	byID   map[int64]*auth.Account
	nextID int64
	now    func() time.Time
}

func newMemAccounts(now func() time.Time) *memAccounts {
	return &memAccounts{byID: make(map[int64]*auth.Account), now: now}
}

func (m *memAccounts) FindByID(_ context.Context, id int64) (*auth.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.byID[id]
	if !ok {
		return nil, auth.ErrAccountNotFound
	}
	clone := *account
	return &clone, nil
}

func (m *memAccounts) FindByEmail(_ context.Context, email string) (*auth.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, account := range m.byID {
		if account.Email == email {
			clone := *account
			return &clone, nil
		}
	}
	return nil, auth.ErrAccountNotFound
}

func (m *memAccounts) Create(_ context.Context, account *auth.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.byID {
		if existing.Email == account.Email {
			return apperr.DuplicateEmail()
		}
	}

	m.nextID++
	account.ID = m.nextID
	account.CreatedAt = m.now().UTC()

	clone := *account
	m.byID[account.ID] = &clone
	return nil
}

func (m *memAccounts) UpdatePassword(_ context.Context, id int64, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.byID[id]
	if !ok {
		return auth.ErrAccountNotFound
	}
	account.PasswordHash = hash
	return nil
}

func (m *memAccounts) setStatus(id int64, status sec.AccountStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[id].Status = status
}

func (m *memAccounts) remove(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
}

// # In-Memory Session Store

type memSessions struct {
	mu        sync.Mutex
	byToken   map[string]auth.Session
	err       error
	deleteErr error
}

func newMemSessions() *memSessions {
	return &memSessions{byToken: make(map[string]auth.Session)}
}

func (m *memSessions) Insert(_ context.Context, session *auth.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.byToken[session.Token] = *session
	return nil
}

func (m *memSessions) FindByToken(_ context.Context, token string) (*auth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	session, ok := m.byToken[token]
	if !ok {
		return nil, auth.ErrSessionNotFound
	}
	return &session, nil
}

func (m *memSessions) DeleteAllForAccount(_ context.Context, accountID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	var removed int64
	for token, session := range m.byToken {
		if session.AccountID == accountID {
			delete(m.byToken, token)
			removed++
		}
	}
	return removed, nil
}

func (m *memSessions) DeleteByToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.byToken, token)
	return nil
}

func (m *memSessions) count(accountID int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, session := range m.byToken {
		if session.AccountID == accountID {
			n++
		}
	}
	return n
}

// # Clock

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// # Harness

type harness struct {
	clock    *testClock
	accounts *memAccounts
	sessions *memSessions
	registry *auth.SessionRegistry
	codec    *sec.TokenCodec
	service  *auth.Service
	gate     *auth.Gate
}

const testTTL = 7 * 24 * time.Hour

func newHarness(t *testing.T) *harness {
	t.Helper()

	clock := &testClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}

	hasher, err := sec.NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)

	codec, err := sec.NewTokenCodec([]byte(testSecret), "evolve-nova", clock.Now)
	require.NoError(t, err)

	accounts := newMemAccounts(clock.Now)
	sessions := newMemSessions()
	registry := auth.NewSessionRegistry(sessions, clock.Now)

	service := auth.NewService(accounts, registry, codec, hasher, auth.Config{
		TokenTTL:       testTTL,
		PasswordPolicy: sec.DefaultPasswordPolicy,
	})

	return &harness{
		clock:    clock,
		accounts: accounts,
		sessions: sessions,
		registry: registry,
		codec:    codec,
		service:  service,
		gate:     auth.NewGate(accounts, registry, codec),
	}
}

func (h *harness) registerAlice(t *testing.T) *auth.Account {
	t.Helper()
	account, err := h.service.Register(context.Background(), auth.RegisterInput{
		Name:     "Alice",
		Email:    aliceEmail,
		Password: testPassword,
	})
	require.NoError(t, err)
	return account
}

func (h *harness) loginAlice(t *testing.T) *auth.LoginResult {
	t.Helper()
	result, err := h.service.Login(context.Background(), auth.LoginInput{
		Email:    aliceEmail,
		Password: testPassword,
	})
	require.NoError(t, err)
	return result
}
