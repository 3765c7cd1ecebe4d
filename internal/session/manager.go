package session

// Package session owns the authentication token and the cached user profile.
// It is the sole mutator of both: other layers receive profile snapshots and
// may request a refresh, but never write token or balance fields themselves.

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/amreinch/removebg-pro/internal/model"
)

// Manager coordinates login, signup, logout, and profile refresh against the
// remote service. Profile-affecting calls are serialized: issuing a second
// one while the first is in flight fails synchronously with model.ErrBusy,
// so a stale response can never overwrite a fresher balance.
type Manager struct {
	mu      sync.RWMutex
	api     AuthAPI
	store   TokenStore
	profile *model.UserProfile
	busy    bool

	// gen is bumped on every logout/clear; a commit carrying a stale
	// generation is discarded, so an in-flight call can never resurrect a
	// session the user already ended.
	gen uint64

	onChange []func(*model.UserProfile) // callbacks for UI updates
	log      *logrus.Entry
}

// NewManager creates a session manager over the given API and token store
func NewManager(api AuthAPI, store TokenStore, logger *logrus.Logger) *Manager {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Manager{
		api:   api,
		store: store,
		log:   logger.WithField("component", "session"),
	}
}

// AddChangeCallback registers a callback invoked with the new profile
// snapshot after every session change. A nil snapshot means logged out.
// Callbacks run in registration order, outside the manager's lock.
func (m *Manager) AddChangeCallback(callback func(*model.UserProfile)) {
	m.onChange = append(m.onChange, callback)
}

// Profile returns the cached profile snapshot, or nil when logged out
func (m *Manager) Profile() *model.UserProfile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.profile
}

// Token returns the current session token, or "" when logged out
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.Token()
}

// IsLoggedIn reports whether a validated session is present
func (m *Manager) IsLoggedIn() bool {
	return m.Profile() != nil
}

// Login authenticates and caches the resulting profile. Token and profile
// are committed together; a failure at either step leaves the previous
// session untouched.
func (m *Manager) Login(ctx context.Context, email, password string) (*model.UserProfile, error) {
	if err := m.acquire(); err != nil {
		return nil, err
	}
	defer m.release()

	gen := m.generation()

	token, err := m.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	profile, err := m.api.Profile(ctx, token)
	if err != nil {
		return nil, err
	}

	if !m.commit(gen, token, profile) {
		return nil, model.ErrUnauthenticated
	}
	m.log.WithField("email", profile.Email).Info("logged in")
	return profile, nil
}

// Signup registers a new account and caches its profile. The starting credit
// allotment is whatever the server reports.
func (m *Manager) Signup(ctx context.Context, email, password, fullName string) (*model.UserProfile, error) {
	if err := m.acquire(); err != nil {
		return nil, err
	}
	defer m.release()

	gen := m.generation()

	token, err := m.api.Signup(ctx, email, password, fullName)
	if err != nil {
		return nil, err
	}

	profile, err := m.api.Profile(ctx, token)
	if err != nil {
		return nil, err
	}

	if !m.commit(gen, token, profile) {
		return nil, model.ErrUnauthenticated
	}
	m.log.WithField("email", profile.Email).Info("account created")
	return profile, nil
}

// RefreshProfile re-fetches the profile for the persisted token. On an
// unauthenticated response the session is cleared silently: this is the
// expected stale-token path, not a failure, so callers must not surface an
// error notification for it.
func (m *Manager) RefreshProfile(ctx context.Context) (*model.UserProfile, error) {
	if err := m.acquire(); err != nil {
		return nil, err
	}
	defer m.release()

	gen := m.generation()

	token := m.Token()
	if token == "" {
		return nil, model.ErrUnauthenticated
	}

	profile, err := m.api.Profile(ctx, token)
	if model.IsUnauthenticated(err) {
		m.log.Info("session expired, clearing token")
		m.clear()
		return nil, model.ErrUnauthenticated
	}
	if err != nil {
		// Transient failure: keep the cached profile rather than flapping
		// the UI to logged-out.
		return nil, err
	}

	// A logout issued while the fetch was in flight wins
	if !m.commit(gen, token, profile) {
		return nil, model.ErrUnauthenticated
	}
	return profile, nil
}

// ApplyServerBalance writes a server-reported credit balance into the cached
// profile. This is the only balance write-back path besides a full refresh;
// the client never computes balances itself.
func (m *Manager) ApplyServerBalance(remaining int) {
	m.mu.Lock()
	if m.profile == nil {
		m.mu.Unlock()
		return
	}
	updated := *m.profile
	updated.CreditsBalance = remaining
	m.profile = &updated
	m.mu.Unlock()

	m.log.WithField("balance", remaining).Debug("applied server balance")
	m.notifyChange(&updated)
}

// Logout clears the token and cached profile. Idempotent.
func (m *Manager) Logout() {
	m.log.Info("logged out")
	m.clear()
}

// acquire takes the single-flight slot for a profile-affecting call
func (m *Manager) acquire() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.busy {
		return model.ErrBusy
	}
	m.busy = true
	return nil
}

// release frees the single-flight slot
func (m *Manager) release() {
	m.mu.Lock()
	m.busy = false
	m.mu.Unlock()
}

// generation reads the current logout generation
func (m *Manager) generation() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gen
}

// commit atomically replaces token and profile, then notifies. It reports
// false when a logout superseded the call, in which case nothing is stored.
func (m *Manager) commit(gen uint64, token string, profile *model.UserProfile) bool {
	m.mu.Lock()
	if m.gen != gen {
		m.mu.Unlock()
		m.log.Debug("discarding superseded session commit")
		return false
	}
	m.store.SetToken(token)
	m.profile = profile
	m.mu.Unlock()

	m.notifyChange(profile)
	return true
}

// clear drops token and profile, invalidates in-flight commits, then
// notifies with nil
func (m *Manager) clear() {
	m.mu.Lock()
	m.gen++
	m.store.ClearToken()
	m.profile = nil
	m.mu.Unlock()

	m.notifyChange(nil)
}

// notifyChange calls the registered change callbacks
func (m *Manager) notifyChange(profile *model.UserProfile) {
	for _, callback := range m.onChange {
		callback(profile)
	}
}
