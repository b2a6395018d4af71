// Package session owns the authenticated identity of the running client: the
// bearer token and the profile snapshot. Views only read it and invoke the
// lifecycle operations; nothing else mutates it.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/cloudsync/internal/client/models"
	"github.com/dmitrijs2005/cloudsync/internal/common"
	"github.com/dmitrijs2005/cloudsync/internal/logging"
)

// API is the slice of the transport the session drives.
type API interface {
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)
	Activate(ctx context.Context, code string) error
	Logout(ctx context.Context) error
	RefreshToken(ctx context.Context) (string, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	Profile(ctx context.Context) (models.User, error)
	UpdateProfile(ctx context.Context, req models.UserUpdateRequest) (models.User, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
}

// Store persists the token and the profile snapshot between runs.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Clear(ctx context.Context) error
}

// Manager is the session state machine. It is a process-wide singleton
// shared by all views; all methods are safe for concurrent use.
type Manager struct {
	api   API
	store Store
	log   logging.Logger

	mu    sync.Mutex
	state State
	token string
	user  *models.User
	subs  []func(State)
}

// NewManager returns a Manager in the Uninitialized state. Call Restore once
// before rendering protected views.
func NewManager(api API, store Store, log logging.Logger) *Manager {
	return &Manager{api: api, store: store, log: log, state: StateUninitialized}
}

// Token implements api.TokenSource.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// State returns the current lifecycle phase.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Loading reports whether the initial restore has not completed yet.
// Protected views must not render while this is true.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == StateUninitialized || m.state == StateRestoring
}

// IsAuthenticated reports whether a session is currently established.
func (m *Manager) IsAuthenticated() bool {
	return m.State() == StateAuthenticated
}

// User returns a copy of the profile snapshot and whether one is present.
func (m *Manager) User() (models.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return models.User{}, false
	}
	return *m.user, true
}

// Subscribe registers fn to be called after every state transition. The
// realtime channel uses this to open and close its connection.
func (m *Manager) Subscribe(fn func(State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

// setState transitions and notifies subscribers outside the lock.
func (m *Manager) setState(s State) {
	m.mu.Lock()
	if m.state == s {
		m.mu.Unlock()
		return
	}
	m.state = s
	subs := make([]func(State), len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(s)
	}
}

// Restore is invoked once at startup. It reads the persisted token; when one
// exists the profile is re-fetched from the server rather than trusting the
// cached snapshot, so a stale or revoked token ends in Anonymous with the
// store cleared.
func (m *Manager) Restore(ctx context.Context) error {
	m.mu.Lock()
	if m.state != StateUninitialized {
		m.mu.Unlock()
		return fmt.Errorf("restore from state %s: %w", m.state, common.ErrSessionRestoring)
	}
	m.state = StateRestoring
	m.mu.Unlock()

	raw, err := m.store.Get(ctx, common.StoreKeyAccessToken)
	if err != nil || len(raw) == 0 {
		if err != nil {
			m.log.Warn(ctx, "local store read failed", "error", err)
		}
		m.setState(StateAnonymous)
		return nil
	}

	m.mu.Lock()
	m.token = string(raw)
	m.mu.Unlock()

	user, err := m.api.Profile(ctx)
	if err != nil {
		m.log.Info(ctx, "persisted token rejected, clearing session", "error", err)
		m.clearLocked(ctx)
		m.setState(StateAnonymous)
		return nil
	}

	m.mu.Lock()
	m.user = &user
	m.mu.Unlock()
	m.persistUser(ctx, user)
	m.setState(StateAuthenticated)
	return nil
}

// Login authenticates, persists the returned token and a fresh profile, and
// transitions to Authenticated. On failure the state is left unchanged and
// the error is returned for the form to render.
func (m *Manager) Login(ctx context.Context, emailOrUsername, password string) error {
	resp, err := m.api.Login(ctx, models.LoginRequest{EmailOrUsername: emailOrUsername, Password: password})
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	m.mu.Lock()
	m.token = resp.Token
	m.mu.Unlock()
	if err := m.store.Set(ctx, common.StoreKeyAccessToken, []byte(resp.Token)); err != nil {
		m.log.Warn(ctx, "persisting token failed", "error", err)
	}

	// Profile derived from the auth response; replaced by an authoritative
	// fetch when the server answers.
	user := models.User{
		ID:        resp.ID,
		Email:     resp.Email,
		Username:  resp.Username,
		FirstName: resp.FirstName,
		LastName:  resp.LastName,
		Enabled:   true,
		Roles:     resp.Roles,
	}
	if fetched, err := m.api.Profile(ctx); err == nil {
		user = fetched
	} else {
		m.log.Warn(ctx, "profile fetch after login failed, using login response", "error", err)
	}

	m.mu.Lock()
	m.user = &user
	m.mu.Unlock()
	m.persistUser(ctx, user)
	m.setState(StateAuthenticated)
	return nil
}

// Logout ends the session. The server call is best effort; local credentials
// are cleared unconditionally and the method never fails. Safe to call from
// any state, any number of times.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.api.Logout(ctx); err != nil {
		m.log.Warn(ctx, "server logout failed, clearing local session anyway", "error", err)
	}
	m.clearLocked(ctx)
	m.setState(StateAnonymous)
}

// HandleUnauthorized is the transport's 401 hook. The transition happens
// exactly once even when several concurrent requests all come back 401.
func (m *Manager) HandleUnauthorized() {
	m.mu.Lock()
	if m.token == "" && m.state == StateAnonymous {
		m.mu.Unlock()
		return
	}
	m.token = ""
	m.user = nil
	m.mu.Unlock()

	// The store mirrors the in-memory state; use a fresh context because the
	// originating request's one may already be cancelled.
	ctx := context.Background()
	if err := m.store.Clear(ctx); err != nil {
		m.log.Warn(ctx, "clearing local store failed", "error", err)
	}
	m.log.Info(ctx, "session expired, returning to login")
	m.setState(StateAnonymous)
}

// UpdateProfile sends only the changed fields. Server fields win on
// conflict; fields absent from the response keep their prior local values.
// Errors propagate so the calling form can keep unsaved edits.
func (m *Manager) UpdateProfile(ctx context.Context, req models.UserUpdateRequest) (models.User, error) {
	m.mu.Lock()
	if m.user == nil {
		m.mu.Unlock()
		return models.User{}, common.ErrNotAuthenticated
	}
	current := *m.user
	m.mu.Unlock()

	updated, err := m.api.UpdateProfile(ctx, req)
	if err != nil {
		return models.User{}, fmt.Errorf("update profile: %w", err)
	}

	merged := current.Merge(updated)
	m.mu.Lock()
	m.user = &merged
	m.mu.Unlock()
	m.persistUser(ctx, merged)
	return merged, nil
}

// Refresh re-fetches the profile unconditionally and overwrites the local
// snapshot. Used after ambient server-side changes.
func (m *Manager) Refresh(ctx context.Context) error {
	user, err := m.api.Profile(ctx)
	if err != nil {
		return fmt.Errorf("refresh profile: %w", err)
	}
	m.mu.Lock()
	m.user = &user
	m.mu.Unlock()
	m.persistUser(ctx, user)
	return nil
}

// RefreshToken trades the current token for a fresh one and persists it.
func (m *Manager) RefreshToken(ctx context.Context) error {
	token, err := m.api.RefreshToken(ctx)
	if err != nil {
		return fmt.Errorf("refresh token: %w", err)
	}
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	if err := m.store.Set(ctx, common.StoreKeyAccessToken, []byte(token)); err != nil {
		m.log.Warn(ctx, "persisting refreshed token failed", "error", err)
	}
	return nil
}

// TokenExpiresWithin reports whether the bearer token carries an exp claim
// that falls inside d. The token is parsed without verification — the server
// remains the authority; this only schedules the refresh call.
func (m *Manager) TokenExpiresWithin(d time.Duration) bool {
	token := m.Token()
	if token == "" {
		return false
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Until(exp.Time) < d
}

// StartTokenWatcher periodically refreshes the token shortly before it
// expires. Runs until ctx is cancelled.
func (m *Manager) StartTokenWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !m.IsAuthenticated() {
				continue
			}
			if !m.TokenExpiresWithin(2 * interval) {
				continue
			}
			reqCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := m.RefreshToken(reqCtx); err != nil {
				m.log.Warn(reqCtx, "token refresh failed", "error", err)
			}
			cancel()
		case <-ctx.Done():
			return
		}
	}
}

// Register creates an account. The session stays Anonymous: the account must
// be activated and logged into explicitly.
func (m *Manager) Register(ctx context.Context, req models.RegisterRequest) error {
	if _, err := m.api.Register(ctx, req); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}

// Activate enables an account using the emailed code.
func (m *Manager) Activate(ctx context.Context, code string) error {
	return m.api.Activate(ctx, code)
}

// ForgotPassword requests a reset email.
func (m *Manager) ForgotPassword(ctx context.Context, email string) error {
	return m.api.ForgotPassword(ctx, email)
}

// ResetPassword completes the emailed reset flow.
func (m *Manager) ResetPassword(ctx context.Context, token, newPassword string) error {
	return m.api.ResetPassword(ctx, token, newPassword)
}

// ChangePassword changes the password of the authenticated user.
func (m *Manager) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	return m.api.ChangePassword(ctx, oldPassword, newPassword)
}

// clearLocked wipes the in-memory credentials and the persisted copies.
func (m *Manager) clearLocked(ctx context.Context) {
	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.mu.Unlock()
	if err := m.store.Clear(ctx); err != nil {
		m.log.Warn(ctx, "clearing local store failed", "error", err)
	}
}

// persistUser mirrors the profile snapshot into the local store.
func (m *Manager) persistUser(ctx context.Context, u models.User) {
	data, err := json.Marshal(u)
	if err != nil {
		m.log.Warn(ctx, "marshalling profile snapshot failed", "error", err)
		return
	}
	if err := m.store.Set(ctx, common.StoreKeyUser, data); err != nil {
		m.log.Warn(ctx, "persisting profile snapshot failed", "error", err)
	}
}
