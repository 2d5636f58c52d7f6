package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"mt5-backoffice/internal/api"
	"mt5-backoffice/internal/config"
	apperrors "mt5-backoffice/internal/errors"
	"mt5-backoffice/internal/models"
)

// fakeBackend simulates the back-office REST API for session tests.
type fakeBackend struct {
	mu          sync.Mutex
	tokenSeq    int64
	validTokens map[string]bool

	loginStatus      int
	loginDetail      string
	loginEmptyBody   bool
	userRole         string
	connectStatus    int
	disconnectStatus int

	connectCalls    int64
	disconnectCalls int64
	profileCalls    int64

	server *httptest.Server
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{
		validTokens:      make(map[string]bool),
		connectStatus:    http.StatusOK,
		disconnectStatus: http.StatusOK,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", fb.handleAuth)
	mux.HandleFunc("/api/auth/register", fb.handleAuth)
	mux.HandleFunc("/api/user/profile", fb.handleProfile)
	mux.HandleFunc("/api/mt5/connect", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&fb.connectCalls, 1)
		writeStatus(w, fb.connectStatus)
	})
	mux.HandleFunc("/api/mt5/disconnect", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&fb.disconnectCalls, 1)
		writeStatus(w, fb.disconnectStatus)
	})

	fb.server = httptest.NewServer(mux)
	t.Cleanup(fb.server.Close)
	return fb
}

func writeStatus(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if status >= 400 {
		json.NewEncoder(w).Encode(map[string]string{"detail": "backend error"})
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
}

func (fb *fakeBackend) handleAuth(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if fb.loginStatus >= 400 {
		w.WriteHeader(fb.loginStatus)
		if !fb.loginEmptyBody {
			json.NewEncoder(w).Encode(map[string]string{"detail": fb.loginDetail})
		}
		return
	}

	var creds struct {
		Email string `json:"email"`
	}
	json.NewDecoder(r.Body).Decode(&creds)

	fb.tokenSeq++
	token := fmt.Sprintf("tok-%d", fb.tokenSeq)
	fb.validTokens[token] = true

	role := fb.userRole
	if role == "" {
		role = "user"
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"access_token": token,
		"token_type":   "bearer",
		"user": map[string]interface{}{
			"id":         "u-1",
			"name":       "Test User",
			"email":      creds.Email,
			"balance":    100.0,
			"role":       role,
			"kyc_status": "pending",
			"is_active":  true,
			"created_at": "2026-08-01T10:00:00",
		},
	})
}

func (fb *fakeBackend) handleProfile(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt64(&fb.profileCalls, 1)

	fb.mu.Lock()
	defer fb.mu.Unlock()

	auth := r.Header.Get("Authorization")
	w.Header().Set("Content-Type", "application/json")
	if len(auth) < 8 || !fb.validTokens[auth[len("Bearer "):]] {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Could not validate credentials"})
		return
	}

	role := fb.userRole
	if role == "" {
		role = "user"
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"id":         "u-1",
		"name":       "Test User",
		"email":      "test@example.com",
		"balance":    100.0,
		"role":       role,
		"kyc_status": "pending",
		"is_active":  true,
		"created_at": "2026-08-01T10:00:00",
	})
}

// issueToken registers a token as valid, as if minted in a prior run.
func (fb *fakeBackend) issueToken(token string) {
	fb.mu.Lock()
	fb.validTokens[token] = true
	fb.mu.Unlock()
}

func newTestManager(t *testing.T, fb *fakeBackend, tokenPath string) *Manager {
	t.Helper()
	client := api.NewClient(api.Config{
		BaseURL: fb.server.URL,
		Timeout: 5 * time.Second,
		Logger:  zerolog.Nop(),
	})
	mt5 := config.MT5Credentials{User: "backofficeApi", Host: "127.0.0.1", Port: 443}
	return NewManager(client, mt5, tokenPath, zerolog.Nop())
}

func tokenOnDisk(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading token file: %v", err)
	}
	var tf tokenFile
	if err := json.Unmarshal(data, &tf); err != nil {
		t.Fatalf("decoding token file: %v", err)
	}
	return tf.AccessToken
}

func TestLoginPersistsTokenAndSurvivesRestart(t *testing.T) {
	fb := newFakeBackend(t)
	tokenPath := filepath.Join(t.TempDir(), "session.json")

	m := newTestManager(t, fb, tokenPath)
	result := m.Login(context.Background(), "test@example.com", "secret")
	if !result.Success {
		t.Fatalf("login failed: %s", result.Error)
	}
	if m.CurrentUser() == nil {
		t.Fatal("expected profile after login")
	}
	if m.CurrentToken() == "" {
		t.Fatal("expected token after login")
	}

	info, err := os.Stat(tokenPath)
	if err != nil {
		t.Fatalf("token file not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("token file mode = %o, want 0600", perm)
	}
	if got := tokenOnDisk(t, tokenPath); got != m.CurrentToken() {
		t.Errorf("persisted token %q does not match session token %q", got, m.CurrentToken())
	}

	// A new manager with the same token file behaves like a process restart:
	// the token is picked up and hydration restores the profile.
	restarted := newTestManager(t, fb, tokenPath)
	if !restarted.IsLoading() {
		t.Fatal("expected loading state with a persisted token")
	}
	if err := restarted.Hydrate(context.Background()); err != nil {
		t.Fatalf("hydration failed: %v", err)
	}
	if restarted.IsLoading() {
		t.Error("loading should resolve after hydration")
	}
	if restarted.CurrentUser() == nil {
		t.Fatal("expected profile after hydration")
	}
	if restarted.CurrentToken() != m.CurrentToken() {
		t.Error("restarted session should carry the persisted token")
	}
}

func TestHydrateRejectsInvalidToken(t *testing.T) {
	fb := newFakeBackend(t)
	dir := t.TempDir()
	tokenPath := filepath.Join(dir, "session.json")

	stale, _ := json.Marshal(tokenFile{AccessToken: "tok-stale", SavedAt: time.Now()})
	if err := os.WriteFile(tokenPath, stale, 0600); err != nil {
		t.Fatal(err)
	}

	m := newTestManager(t, fb, tokenPath)
	err := m.Hydrate(context.Background())
	if !apperrors.Is(err, apperrors.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if m.CurrentUser() != nil || m.CurrentToken() != "" {
		t.Error("invalid token must resolve to the logged-out state")
	}
	if m.IsLoading() {
		t.Error("loading should resolve even on failed hydration")
	}
	if _, err := os.Stat(tokenPath); !os.IsNotExist(err) {
		t.Error("stale token file should be removed")
	}

	// Hydrating the resolved session again is a no-op.
	calls := atomic.LoadInt64(&fb.profileCalls)
	if err := m.Hydrate(context.Background()); err != nil {
		t.Fatalf("second hydration should be a no-op, got %v", err)
	}
	if atomic.LoadInt64(&fb.profileCalls) != calls {
		t.Error("no-token hydration must not hit the backend")
	}
}

func TestHydrateWithoutTokenSkipsBackend(t *testing.T) {
	fb := newFakeBackend(t)
	m := newTestManager(t, fb, filepath.Join(t.TempDir(), "session.json"))

	if m.IsLoading() {
		t.Error("fresh session must not start in the loading state")
	}
	if err := m.Hydrate(context.Background()); err != nil {
		t.Fatalf("hydration of empty session failed: %v", err)
	}
	if atomic.LoadInt64(&fb.profileCalls) != 0 {
		t.Error("hydration without a token must not call the backend")
	}
}

func TestLogoutClearsStateDespiteBackendFailure(t *testing.T) {
	fb := newFakeBackend(t)
	fb.disconnectStatus = http.StatusInternalServerError
	tokenPath := filepath.Join(t.TempDir(), "session.json")

	m := newTestManager(t, fb, tokenPath)
	if result := m.Login(context.Background(), "test@example.com", "secret"); !result.Success {
		t.Fatalf("login failed: %s", result.Error)
	}

	m.Logout(context.Background())

	if atomic.LoadInt64(&fb.disconnectCalls) != 1 {
		t.Error("logout should attempt the backend disconnect")
	}
	if m.CurrentUser() != nil || m.CurrentToken() != "" {
		t.Error("logout must clear the in-memory session")
	}
	if _, err := os.Stat(tokenPath); !os.IsNotExist(err) {
		t.Error("logout must remove the token file")
	}

	// Logging out an already logged-out session stays clean and does not
	// call the disconnect endpoint again.
	m.Logout(context.Background())
	if atomic.LoadInt64(&fb.disconnectCalls) != 1 {
		t.Error("logout without a token must skip the backend disconnect")
	}
}

func TestConcurrentLoginsSettleConsistently(t *testing.T) {
	fb := newFakeBackend(t)
	tokenPath := filepath.Join(t.TempDir(), "session.json")
	m := newTestManager(t, fb, tokenPath)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if result := m.Login(context.Background(), "test@example.com", "secret"); !result.Success {
				t.Errorf("login failed: %s", result.Error)
			}
		}()
	}
	wg.Wait()

	token := m.CurrentToken()
	if token == "" || m.CurrentUser() == nil {
		t.Fatal("expected an authenticated session after concurrent logins")
	}
	if got := tokenOnDisk(t, tokenPath); got != token {
		t.Errorf("persisted token %q diverged from session token %q", got, token)
	}
	if atomic.LoadInt64(&fb.connectCalls) != 2 {
		t.Errorf("expected one MT5 connect per login, got %d", fb.connectCalls)
	}
}

func TestLoginFailureSurfacesBackendDetail(t *testing.T) {
	fb := newFakeBackend(t)
	fb.loginStatus = http.StatusUnauthorized
	fb.loginDetail = "Incorrect email or password"
	tokenPath := filepath.Join(t.TempDir(), "session.json")

	m := newTestManager(t, fb, tokenPath)
	result := m.Login(context.Background(), "test@example.com", "wrong")
	if result.Success {
		t.Fatal("expected login failure")
	}
	if result.Error != "Incorrect email or password" {
		t.Errorf("error = %q, want backend detail", result.Error)
	}
	if m.CurrentUser() != nil || m.CurrentToken() != "" {
		t.Error("failed login must leave the session logged out")
	}
	if _, err := os.Stat(tokenPath); !os.IsNotExist(err) {
		t.Error("failed login must not write a token file")
	}
}

func TestLoginFailureFallbackMessage(t *testing.T) {
	fb := newFakeBackend(t)
	fb.loginStatus = http.StatusInternalServerError
	fb.loginEmptyBody = true

	m := newTestManager(t, fb, filepath.Join(t.TempDir(), "session.json"))
	result := m.Login(context.Background(), "test@example.com", "secret")
	if result.Success {
		t.Fatal("expected login failure")
	}
	if result.Error != "Login failed" {
		t.Errorf("error = %q, want fallback message", result.Error)
	}
}

func TestSignupFallbackMessage(t *testing.T) {
	fb := newFakeBackend(t)
	fb.loginStatus = http.StatusBadRequest
	fb.loginEmptyBody = true

	m := newTestManager(t, fb, filepath.Join(t.TempDir(), "session.json"))
	result := m.Signup(context.Background(), signupRequest("jane@example.com"))
	if result.Success {
		t.Fatal("expected signup failure")
	}
	if result.Error != "Registration failed" {
		t.Errorf("error = %q, want fallback message", result.Error)
	}
}

func TestSignupEstablishesUserSession(t *testing.T) {
	fb := newFakeBackend(t)
	tokenPath := filepath.Join(t.TempDir(), "session.json")

	m := newTestManager(t, fb, tokenPath)
	result := m.Signup(context.Background(), signupRequest("jane@example.com"))
	if !result.Success {
		t.Fatalf("signup failed: %s", result.Error)
	}

	user, err := m.RequireAuth()
	if err != nil {
		t.Fatalf("expected authenticated session: %v", err)
	}
	if user.Role != "user" {
		t.Errorf("new accounts must get the user role, got %q", user.Role)
	}
	if _, err := m.RequireAdmin(); !apperrors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("non-admin must be rejected by the admin guard, got %v", err)
	}
	if _, err := os.Stat(tokenPath); err != nil {
		t.Errorf("signup must persist the token: %v", err)
	}
	if atomic.LoadInt64(&fb.connectCalls) != 1 {
		t.Error("signup should attempt the MT5 connect")
	}
}

func TestAdminRolePassesAdminGuard(t *testing.T) {
	fb := newFakeBackend(t)
	fb.userRole = "admin"

	m := newTestManager(t, fb, filepath.Join(t.TempDir(), "session.json"))
	result := m.Login(context.Background(), "ops@example.com", "secret")
	if !result.Success {
		t.Fatalf("login failed: %s", result.Error)
	}

	user, err := m.RequireAdmin()
	if err != nil {
		t.Fatalf("admin role must pass the admin guard: %v", err)
	}
	if user.Role != "admin" {
		t.Errorf("role = %q, want admin", user.Role)
	}
	if user.ID != "u-1" {
		t.Errorf("id = %q", user.ID)
	}
}

func TestMT5ConnectFailureDoesNotAffectLogin(t *testing.T) {
	fb := newFakeBackend(t)
	fb.connectStatus = http.StatusBadGateway

	m := newTestManager(t, fb, filepath.Join(t.TempDir(), "session.json"))
	result := m.Login(context.Background(), "test@example.com", "secret")
	if !result.Success {
		t.Fatalf("login must succeed despite MT5 failure: %s", result.Error)
	}
	if m.CurrentUser() == nil {
		t.Error("session must be established despite MT5 failure")
	}
	if atomic.LoadInt64(&fb.connectCalls) != 1 {
		t.Error("MT5 connect should have been attempted")
	}
}

func TestLoginSurvivesTokenPersistFailure(t *testing.T) {
	fb := newFakeBackend(t)
	// A directory at the token path makes the write fail.
	tokenPath := t.TempDir()

	m := newTestManager(t, fb, tokenPath)
	result := m.Login(context.Background(), "test@example.com", "secret")
	if !result.Success {
		t.Fatalf("login must succeed despite persistence failure: %s", result.Error)
	}
	if m.CurrentUser() == nil || m.CurrentToken() == "" {
		t.Error("in-memory session must be valid despite persistence failure")
	}
}

func TestRequireAuthWhenLoggedOut(t *testing.T) {
	fb := newFakeBackend(t)
	m := newTestManager(t, fb, filepath.Join(t.TempDir(), "session.json"))

	if _, err := m.RequireAuth(); !apperrors.Is(err, apperrors.ErrNotAuthenticated) {
		t.Errorf("expected ErrNotAuthenticated, got %v", err)
	}
	if _, err := m.RequireAdmin(); !apperrors.Is(err, apperrors.ErrNotAuthenticated) {
		t.Errorf("admin guard on logged-out session should report ErrNotAuthenticated, got %v", err)
	}
}

func signupRequest(email string) models.SignupRequest {
	return models.SignupRequest{
		Name:     "Jane Doe",
		Email:    email,
		Password: "secret123",
	}
}
