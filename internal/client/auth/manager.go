package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/rentalauth/internal/client/storage"
	"github.com/dmitrijs2005/rentalauth/internal/client/token"
	"github.com/dmitrijs2005/rentalauth/internal/logging"
	"github.com/google/uuid"
)

// DefaultTokenKey is the storage key of the session token.
const DefaultTokenKey = "authToken"

type Option func(*Manager)

func WithLogger(l logging.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// WithVerifier makes the Manager verify token signatures instead of only
// decoding them.
func WithVerifier(v token.Verifier) Option {
	return func(m *Manager) { m.decoder = v }
}

// WithClock overrides time.Now for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithTokenKey overrides DefaultTokenKey.
func WithTokenKey(key string) Option {
	return func(m *Manager) { m.tokenKey = key }
}

type subscription struct {
	id int
	fn func(Principal)
}

// Manager holds the authentication state of one client session.
type Manager struct {
	store    storage.Store
	checker  CredentialChecker
	decoder  token.Decoder
	log      logging.Logger
	now      func() time.Time
	tokenKey string

	mu      sync.Mutex
	current Principal
	subs    []subscription
	nextID  int
}

// NewManager returns a Manager starting unauthenticated.
func NewManager(store storage.Store, checker CredentialChecker, opts ...Option) *Manager {
	m := &Manager{
		store:    store,
		checker:  checker,
		decoder:  token.Unverified{},
		log:      logging.Nop{},
		now:      time.Now,
		tokenKey: DefaultTokenKey,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Current returns the in-memory principal without touching storage.
func (m *Manager) Current() Principal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// State derives the authentication state from the stored token.
// Errors are returned only for storage failures.
func (m *Manager) State(ctx context.Context) (Principal, error) {
	raw, ok, err := m.store.Get(ctx, m.tokenKey)
	if err != nil {
		return Anonymous(), fmt.Errorf("read token: %w", err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return m.Current(), nil
	}

	tok, err := m.decoder.Decode(raw)
	if err != nil {
		m.log.Warn(ctx, "stored token rejected", "error", err)
		return Anonymous(), nil
	}

	if tok.Expired(m.now()) {
		if err := m.store.Remove(ctx, m.tokenKey); err != nil {
			return Anonymous(), fmt.Errorf("remove expired token: %w", err)
		}
		m.setCurrent(Anonymous())
		m.log.Info(ctx, "expired token removed", "expired_at", tok.ExpiresAt)
		return Anonymous(), nil
	}

	return NewPrincipal(tok.Claims), nil
}

// Login checks the credentials and, on success, makes the checked identity
// current and notifies subscribers once. Every failure yields false.
func (m *Manager) Login(ctx context.Context, username, credential string) bool {
	log := m.log.With("attempt_id", uuid.NewString(), "username", username)

	id, err := m.checker.Check(ctx, username, credential)
	if err != nil {
		log.Info(ctx, "login denied", "error", err)
		return false
	}
	if id.Name == "" {
		log.Warn(ctx, "login denied", "error", "checker returned an empty identity")
		return false
	}

	// a token left from an earlier session would otherwise win in State
	if err := m.store.Remove(ctx, m.tokenKey); err != nil {
		log.Warn(ctx, "stale token not removed", "error", err)
	}

	p := id.Principal()
	m.setCurrent(p)
	m.notify(p)

	log.Info(ctx, "login succeeded")
	return true
}

// MarkAuthenticated stores raw as the session token and makes its claims
// current. A token that does not decode is rejected before anything is
// stored.
func (m *Manager) MarkAuthenticated(ctx context.Context, raw string) error {
	tok, err := m.decoder.Decode(raw)
	if err != nil {
		return err
	}

	if err := m.store.Set(ctx, m.tokenKey, raw); err != nil {
		return fmt.Errorf("store token: %w", err)
	}

	p := NewPrincipal(tok.Claims)
	m.setCurrent(p)
	m.notify(p)

	m.log.Info(ctx, "authenticated from token", "name", p.Name())
	return nil
}

// MarkLoggedOut removes the stored token and resets the state. Subscribers
// are notified even if the removal fails; that error is returned.
func (m *Manager) MarkLoggedOut(ctx context.Context) error {
	err := m.store.Remove(ctx, m.tokenKey)

	m.setCurrent(Anonymous())
	m.notify(Anonymous())

	if err != nil {
		m.log.Error(ctx, "logout: token not removed", "error", err)
		return fmt.Errorf("remove token: %w", err)
	}
	m.log.Info(ctx, "logged out")
	return nil
}

// Logout is MarkLoggedOut.
func (m *Manager) Logout(ctx context.Context) error {
	return m.MarkLoggedOut(ctx)
}

// Subscribe registers fn for state changes. The returned function removes
// the subscription and may be called more than once.
func (m *Manager) Subscribe(fn func(Principal)) (unsubscribe func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	id := m.nextID
	m.subs = append(m.subs, subscription{id: id, fn: fn})

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, s := range m.subs {
			if s.id == id {
				m.subs = append(m.subs[:i:i], m.subs[i+1:]...)
				return
			}
		}
	}
}

func (m *Manager) setCurrent(p Principal) {
	m.mu.Lock()
	m.current = p
	m.mu.Unlock()
}

func (m *Manager) notify(p Principal) {
	m.mu.Lock()
	subs := make([]subscription, len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	for _, s := range subs {
		s.fn(p)
	}
}
