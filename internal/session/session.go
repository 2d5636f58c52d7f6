// Package session owns the authenticated-user lifecycle: credential
// submission, token persistence, profile hydration, trading-terminal
// connect/disconnect, and teardown.
package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"mt5-backoffice/internal/api"
	"mt5-backoffice/internal/config"
	apperrors "mt5-backoffice/internal/errors"
	"mt5-backoffice/internal/logging"
	"mt5-backoffice/internal/models"
	"mt5-backoffice/internal/security"
)

// Result is the outcome of a login or signup attempt. Error carries the
// backend's human-readable message and is only set when Success is false.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Manager mediates between the UI layer and the backend's authentication,
// profile, and MT5 connectivity endpoints. All state mutations run under
// one mutex: concurrent login/signup/hydrate calls are serialized, and the
// last call to complete determines the final state.
type Manager struct {
	client    *api.Client
	logger    zerolog.Logger
	tokenPath string
	mt5       config.MT5Credentials

	mu      sync.Mutex
	user    *models.Profile
	token   string
	loading bool
}

// NewManager creates a session manager. Any token persisted at tokenPath
// is loaded and attached to the client immediately; the session stays in
// the loading state until Hydrate resolves it.
func NewManager(client *api.Client, mt5 config.MT5Credentials, tokenPath string, logger zerolog.Logger) *Manager {
	m := &Manager{
		client:    client,
		logger:    logger,
		tokenPath: tokenPath,
		mt5:       mt5,
	}

	if token, err := m.loadToken(); err == nil && token != "" {
		m.token = token
		m.loading = true
		client.SetToken(token)
	}

	return m
}

// Hydrate fetches the profile for a persisted token. On failure the token
// is treated as invalid and the session is forcibly logged out; the
// returned error is informational only, the session is already resolved
// to the unauthenticated state when it is non-nil.
func (m *Manager) Hydrate(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	defer func() { m.loading = false }()

	if m.token == "" {
		return nil
	}

	var profile models.Profile
	if err := m.client.Get(ctx, "/api/user/profile", &profile); err != nil {
		m.logger.Warn().Err(err).Msg("Profile hydration failed, clearing session")
		m.logoutLocked(ctx)
		return apperrors.Wrap(apperrors.ErrSessionExpired, "hydration failed")
	}

	m.user = &profile
	m.logger.Debug().Str("user_id", profile.ID).Msg("Session hydrated")
	return nil
}

// Login submits credentials to the backend. On success the returned token
// is persisted and attached to the client before the dependent MT5
// connect call is issued. The MT5 connect outcome is logged and swallowed.
func (m *Manager) Login(ctx context.Context, email, password string) Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	var resp models.AuthResponse
	err := m.client.Post(ctx, "/api/auth/login", models.LoginRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		m.logger.Warn().Err(err).Str("email", email).Msg("Login failed")
		return Result{Success: false, Error: api.ErrorDetail(err, "Login failed")}
	}

	m.establishLocked(ctx, resp)
	return Result{Success: true}
}

// Signup registers a new account. The success path is identical to Login:
// token persisted, profile stored, best-effort MT5 connect.
func (m *Manager) Signup(ctx context.Context, req models.SignupRequest) Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	var resp models.AuthResponse
	if err := m.client.Post(ctx, "/api/auth/register", req, &resp); err != nil {
		m.logger.Warn().Err(err).Str("email", req.Email).Msg("Registration failed")
		return Result{Success: false, Error: api.ErrorDetail(err, "Registration failed")}
	}

	m.establishLocked(ctx, resp)
	return Result{Success: true}
}

// establishLocked installs an authenticated session from an auth response.
// Token storage happens before the MT5 connect so the connect request is
// authenticated. Callers must hold m.mu.
func (m *Manager) establishLocked(ctx context.Context, resp models.AuthResponse) {
	if err := m.saveToken(resp.AccessToken); err != nil {
		// The session is still valid in memory; persistence failure only
		// costs auto-login after a restart.
		m.logger.Warn().Err(err).Msg("Failed to persist session token")
	}
	m.client.SetToken(resp.AccessToken)

	m.token = resp.AccessToken
	user := resp.User
	m.user = &user

	m.logger.Debug().
		Str("token", security.MaskToken(resp.AccessToken)).
		Msg("Session token attached")
	logging.LogSessionEvent(logging.WithUser(m.logger, user.ID), "establish", "authenticated")

	m.connectMT5(ctx)
}

// connectMT5 asks the backend to bridge the user to the MT5 terminal with
// the operator-level credentials. Failure never affects the auth flow.
func (m *Manager) connectMT5(ctx context.Context) {
	err := m.client.Post(ctx, "/api/mt5/connect", map[string]interface{}{
		"user":     m.mt5.User,
		"password": m.mt5.Password,
		"host":     m.mt5.Host,
		"port":     m.mt5.Port,
	}, nil)
	if err != nil {
		m.logger.Warn().Err(err).Msg("MT5 connect failed")
		return
	}
	m.logger.Debug().Msg("MT5 terminal connected")
}

// Logout tears the session down. The backend disconnect is best-effort;
// the local session always ends logged out, even when the network call
// fails.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logoutLocked(ctx)
}

func (m *Manager) logoutLocked(ctx context.Context) {
	if m.token != "" {
		if err := m.client.Post(ctx, "/api/mt5/disconnect", nil, nil); err != nil {
			m.logger.Warn().Err(err).Msg("MT5 disconnect failed")
		}
	}

	if err := m.removeToken(); err != nil {
		m.logger.Warn().Err(err).Msg("Failed to remove session token file")
	}
	m.client.ClearToken()
	m.token = ""
	m.user = nil
	logging.LogSessionEvent(m.logger, "logout", "logged_out")
}

// CurrentUser returns the hydrated profile, or nil.
func (m *Manager) CurrentUser() *models.Profile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// CurrentToken returns the bearer token, or the empty string.
func (m *Manager) CurrentToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// IsLoading reports whether the first hydration is still unresolved.
func (m *Manager) IsLoading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// tokenFile is the persisted session shape.
type tokenFile struct {
	AccessToken string    `json:"access_token"`
	SavedAt     time.Time `json:"saved_at"`
}

func (m *Manager) loadToken() (string, error) {
	data, err := os.ReadFile(m.tokenPath)
	if err != nil {
		return "", err
	}
	var tf tokenFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return "", err
	}
	return tf.AccessToken, nil
}

func (m *Manager) saveToken(token string) error {
	if err := os.MkdirAll(filepath.Dir(m.tokenPath), 0700); err != nil {
		return err
	}
	data, err := json.Marshal(tokenFile{AccessToken: token, SavedAt: time.Now()})
	if err != nil {
		return err
	}
	// Restricted permissions: the token is a live credential.
	return os.WriteFile(m.tokenPath, data, 0600)
}

func (m *Manager) removeToken() error {
	if err := os.Remove(m.tokenPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
