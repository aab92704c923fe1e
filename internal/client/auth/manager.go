// Package auth owns the access-token lifecycle: storage, staleness checks,
// and the single-flight refresh. It is an explicit injectable service — no
// package-level token state.
package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/orator-app/orator-cli/internal/client/api"
	"github.com/orator-app/orator-cli/internal/client/repositories/metadata"
	"github.com/orator-app/orator-cli/internal/common"
	"github.com/orator-app/orator-cli/internal/logging"
)

// RemoteSession is the slice of the API surface the manager needs. The full
// api.Client satisfies it.
type RemoteSession interface {
	Refresh(ctx context.Context, email string) (string, error)
	Logout(ctx context.Context) error
}

// Manager holds the single current token. At most one refresh is in flight
// process-wide; concurrent callers share its outcome.
type Manager struct {
	remote RemoteSession
	store  metadata.Repository
	log    logging.Logger

	flight singleflight.Group
	now    func() time.Time

	mu        sync.Mutex
	listeners []func()
}

func NewManager(remote RemoteSession, store metadata.Repository, log logging.Logger) *Manager {
	return &Manager{
		remote: remote,
		store:  store,
		log:    log,
		now:    time.Now,
	}
}

// OnUnauthorized registers a listener fired when the session becomes
// irrecoverably invalid (e.g. to force the UI back to the login view).
func (m *Manager) OnUnauthorized(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

func (m *Manager) emitUnauthorized() {
	m.mu.Lock()
	listeners := make([]func(), len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

// Token returns the stored token verbatim, "" when logged out. No side
// effects.
func (m *Manager) Token(ctx context.Context) (string, error) {
	v, err := m.store.Get(ctx, common.MetaKeyAccessToken)
	if err != nil {
		return "", fmt.Errorf("reading stored token: %w", err)
	}
	return string(v), nil
}

// SetToken overwrites the stored token; called on login, signup, and
// successful refresh. The subject claim is cached alongside as the signed-in
// email.
func (m *Manager) SetToken(ctx context.Context, token string) error {
	if err := m.store.Set(ctx, common.MetaKeyAccessToken, []byte(token)); err != nil {
		return fmt.Errorf("storing token: %w", err)
	}
	if sub := Subject(token); sub != "" {
		if err := m.store.Set(ctx, common.MetaKeyUserEmail, []byte(sub)); err != nil {
			return fmt.Errorf("storing user email: %w", err)
		}
	}
	return nil
}

// IsUsable reports whether the token can still be sent. Fails closed on any
// decode problem or a missing/past expiry.
func (m *Manager) IsUsable(token string) bool {
	c, err := DecodeClaims(token)
	if err != nil {
		return false
	}
	return c.usableAt(m.now())
}

// Refresh exchanges the held identity for a new access token. Concurrent
// callers are collapsed onto one network call and observe the same outcome.
//
// Failure handling:
//   - session-invalid (401/403, redirect, or no response at all): the stored
//     token is deleted, the unauthorized signal fires once, and
//     common.ErrRefreshExpired is returned;
//   - timeout: the token is retained and common.ErrRefreshTimeout is
//     returned, so the caller may try again later;
//   - anything else: the token is retained and the error is surfaced.
func (m *Manager) Refresh(ctx context.Context) (string, error) {
	v, err, _ := m.flight.Do("refresh", func() (any, error) {
		return m.refresh(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (m *Manager) refresh(ctx context.Context) (string, error) {
	current, err := m.Token(ctx)
	if err != nil {
		return "", err
	}
	if current == "" {
		return "", common.ErrNoStoredToken
	}

	// The refresh endpoint is keyed by identity, not by presenting the
	// expiring token. A token too mangled to yield a subject cannot be
	// refreshed, which ends the session.
	email := Subject(current)
	if email == "" {
		m.dropSession(ctx)
		return "", common.ErrRefreshExpired
	}

	token, err := m.remote.Refresh(ctx, email)
	if err != nil {
		switch {
		case api.IsTimeout(err):
			return "", common.ErrRefreshTimeout
		case api.IsSessionInvalid(err):
			m.dropSession(ctx)
			return "", common.ErrRefreshExpired
		default:
			return "", fmt.Errorf("refreshing token: %w", err)
		}
	}

	if err := m.SetToken(ctx, token); err != nil {
		return "", err
	}
	return token, nil
}

// dropSession deletes the stored token and raises the unauthorized signal.
func (m *Manager) dropSession(ctx context.Context) {
	if err := m.store.Delete(ctx, common.MetaKeyAccessToken); err != nil {
		m.log.Error(ctx, "failed to delete stored token", "error", err)
	}
	m.emitUnauthorized()
}

// Logout calls the remote logout best-effort and deletes local session
// state. The unauthorized signal is not raised: this is a user action, not a
// session failure.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.remote.Logout(ctx); err != nil {
		m.log.Warn(ctx, "remote logout failed", "error", err)
	}
	if err := m.store.Delete(ctx, common.MetaKeyAccessToken); err != nil {
		return fmt.Errorf("deleting stored token: %w", err)
	}
	if err := m.store.Delete(ctx, common.MetaKeyUserEmail); err != nil {
		return fmt.Errorf("deleting stored email: %w", err)
	}
	return nil
}

// UserEmail returns the cached signed-in email, falling back to the token's
// subject claim.
func (m *Manager) UserEmail(ctx context.Context) (string, error) {
	v, err := m.store.Get(ctx, common.MetaKeyUserEmail)
	if err != nil {
		return "", err
	}
	if len(v) > 0 {
		return string(v), nil
	}
	token, err := m.Token(ctx)
	if err != nil {
		return "", err
	}
	return Subject(token), nil
}
