package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/teemow/tubemetrics/internal/logging"
)

// RefreshWindow is how close to expiry a token may get before it is
// refreshed ahead of use. A token expiring at or before now+RefreshWindow
// is treated as stale.
const RefreshWindow = 5 * time.Minute

// GoogleRevokeURL is the endpoint a grant is revoked against.
const GoogleRevokeURL = "https://oauth2.googleapis.com/revoke"

// Result labels reported through the MetricsRecorder.
const (
	resultSuccess = "success"
	resultFailure = "failure"
	resultExpired = "expired"
)

// MetricsRecorder receives auth lifecycle outcomes. It is satisfied by
// *instrumentation.Metrics; a nil recorder disables recording.
type MetricsRecorder interface {
	RecordOAuthAuth(ctx context.Context, result string)
	RecordOAuthTokenRefresh(ctx context.Context, result string)
}

// sessionHandle is the cached authenticated state: the current token and
// the client configuration it refreshes against.
type sessionHandle struct {
	cfg   *oauth2.Config
	token *oauth2.Token
}

// SessionManager owns the process-wide authenticated session: one cached
// handle, the persisted record behind it, and every transition between
// them. The slot moves Empty -> Cached on successful acquisition and
// back to Empty on refresh failure or revocation; all transitions are
// serialized behind the mutex. A second process sharing the same token
// file is not coordinated with (no file locking).
type SessionManager struct {
	mu     sync.Mutex
	handle *sessionHandle

	store   *Store
	flow    ConsentFlow
	logger  *slog.Logger
	metrics MetricsRecorder

	// Overridable seams. Tests pin the clock, point the revocation
	// endpoint at a fake, and substitute credential loading.
	now        func() time.Time
	revokeURL  string
	loadConfig func() (*oauth2.Config, error)
}

// NewSessionManager creates a session manager over the given store and
// consent flow. A nil logger falls back to slog.Default.
func NewSessionManager(store *Store, flow ConsentFlow, logger *slog.Logger) *SessionManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionManager{
		store:      store,
		flow:       flow,
		logger:     logger,
		now:        time.Now,
		revokeURL:  GoogleRevokeURL,
		loadConfig: LoadClientConfig,
	}
}

// SetMetrics attaches a recorder for auth and refresh outcomes.
func (m *SessionManager) SetMetrics(rec MetricsRecorder) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metrics = rec
}

// TokenPath returns the location of the persisted token file.
func (m *SessionManager) TokenPath() string {
	return m.store.Path()
}

// HasStoredToken reports whether a token file exists, without reading
// or validating it.
func (m *SessionManager) HasStoredToken() bool {
	return m.store.Exists()
}

// StoredToken loads the persisted credential record without touching
// the network. Status reporting uses it; the record may be stale.
func (m *SessionManager) StoredToken() (*PersistedToken, error) {
	return m.store.Load()
}

// Token returns an access token valid for at least RefreshWindow,
// walking the fallback chain: the cached handle, then reconstruction
// from the persisted record, then interactive consent. Failures of the
// first two steps are non-fatal and fall through; only credential
// resolution and the interactive flow itself surface errors.
func (m *SessionManager) Token(ctx context.Context) (*oauth2.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tokenLocked(ctx)
}

func (m *SessionManager) tokenLocked(ctx context.Context) (*oauth2.Token, error) {
	tok, err := m.cachedOrStoredLocked(ctx)
	if err == nil {
		return tok, nil
	}
	if !errors.Is(err, ErrNoToken) {
		m.logger.Debug("stored session unusable, re-authenticating",
			logging.Operation("get_token"),
			logging.Err(err))
	}
	return m.authenticateLocked(ctx)
}

// cachedOrStoredLocked runs the non-interactive part of the chain:
// cached handle first, then the persisted record. It never launches the
// consent flow.
func (m *SessionManager) cachedOrStoredLocked(ctx context.Context) (*oauth2.Token, error) {
	if m.handle != nil {
		if err := m.ensureFreshLocked(ctx); err == nil {
			return m.handle.token, nil
		} else {
			// ensureFresh already emptied the slot; the persisted
			// record gets one chance before interactive consent.
			m.logger.Debug("cached session rejected",
				logging.Operation("get_token"),
				logging.Err(err))
		}
	}

	rec, err := m.store.Load()
	if err != nil {
		return nil, err
	}
	if rec.RefreshToken == "" {
		return nil, &TokenExpiredError{Reason: "stored token has no refresh token"}
	}

	cfg, err := m.loadConfig()
	if err != nil {
		return nil, err
	}

	m.handle = &sessionHandle{cfg: cfg, token: rec.Token()}
	if err := m.ensureFreshLocked(ctx); err != nil {
		return nil, err
	}
	return m.handle.token, nil
}

// ensureFreshLocked refreshes the cached handle's token when its expiry
// is unknown or within RefreshWindow. Any failure, including failing to
// persist the refreshed fields, empties the slot and reports
// TokenExpiredError so the caller falls into re-authentication.
func (m *SessionManager) ensureFreshLocked(ctx context.Context) error {
	h := m.handle
	if h == nil {
		return &TokenExpiredError{Reason: "no cached session"}
	}

	threshold := m.now().Add(RefreshWindow)
	if exp := h.token.Expiry; !exp.IsZero() && exp.After(threshold) {
		return nil
	}

	if h.token.RefreshToken == "" {
		m.handle = nil
		m.recordRefresh(ctx, resultExpired)
		return &TokenExpiredError{Reason: "no refresh token available"}
	}

	// Seed the source with only the refresh token to force a real
	// refresh call rather than reuse of the stale access token.
	src := h.cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: h.token.RefreshToken})
	refreshed, err := src.Token()
	if err != nil {
		m.handle = nil
		m.recordRefresh(ctx, resultExpired)
		return &TokenExpiredError{Reason: "refresh rejected", Err: err}
	}

	// Providers rarely rotate the refresh token on refresh; keep the
	// old one when none comes back. Disk only ever gets the volatile
	// fields either way.
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = h.token.RefreshToken
	}
	h.token = refreshed

	if err := m.store.UpdateAccessFields(refreshed.AccessToken, refreshed.Expiry); err != nil {
		m.handle = nil
		m.recordRefresh(ctx, resultFailure)
		return &TokenExpiredError{Reason: "failed to persist refreshed token", Err: err}
	}

	m.recordRefresh(ctx, resultSuccess)
	m.logger.Debug("access token refreshed",
		logging.Operation("refresh"),
		slog.Time("expiry", refreshed.Expiry))
	return nil
}

// Authenticate runs the interactive consent flow unconditionally,
// persists the granted token and installs it as the cached session.
func (m *SessionManager) Authenticate(ctx context.Context) (*oauth2.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authenticateLocked(ctx)
}

func (m *SessionManager) authenticateLocked(ctx context.Context) (*oauth2.Token, error) {
	cfg, err := m.loadConfig()
	if err != nil {
		// CredentialsNotFoundError passes through untouched: this is
		// the one failure authentication cannot route around.
		m.recordAuth(ctx, resultFailure)
		return nil, err
	}

	if err := m.store.EnsureDir(); err != nil {
		m.recordAuth(ctx, resultFailure)
		return nil, &AuthenticationError{Op: "prepare token directory", Err: err}
	}

	tok, err := m.flow.Authorize(ctx, cfg)
	if err != nil {
		m.recordAuth(ctx, resultFailure)
		return nil, &AuthenticationError{Op: "interactive consent", Err: err}
	}
	if tok.RefreshToken == "" {
		m.recordAuth(ctx, resultFailure)
		return nil, &AuthenticationError{
			Op:  "interactive consent",
			Err: errors.New("no refresh token granted; revoke the app's access at https://myaccount.google.com/permissions and try again"),
		}
	}

	rec := &PersistedToken{
		Type:         authorizedUserType,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RefreshToken: tok.RefreshToken,
		AccessToken:  tok.AccessToken,
	}
	rec.SetExpiry(tok.Expiry)
	if err := m.store.Save(rec); err != nil {
		m.recordAuth(ctx, resultFailure)
		return nil, &AuthenticationError{Op: "persist token", Err: err}
	}

	m.handle = &sessionHandle{cfg: cfg, token: tok}
	m.recordAuth(ctx, resultSuccess)
	m.logger.Info("interactive authentication completed",
		logging.Operation("authenticate"),
		slog.String("token_path", m.store.Path()),
		slog.String("access_token", logging.SanitizeToken(tok.AccessToken)))
	return tok, nil
}

// Revoke obtains a current token through the full chain, revokes the
// grant remotely and clears all local state. Local cleanup happens
// regardless of the remote outcome; a failure to delete the token file
// is logged, not returned.
func (m *SessionManager) Revoke(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tok, err := m.tokenLocked(ctx)
	if err != nil {
		m.clearLocalLocked()
		return fmt.Errorf("cannot obtain token to revoke: %w", err)
	}

	revokeErr := m.revokeRemote(ctx, tok)
	m.clearLocalLocked()

	if revokeErr != nil {
		return fmt.Errorf("remote revocation failed (local credentials cleared): %w", revokeErr)
	}
	m.logger.Info("authorization revoked",
		logging.Operation("revoke"),
		logging.Status(logging.StatusSuccess))
	return nil
}

func (m *SessionManager) revokeRemote(ctx context.Context, tok *oauth2.Token) error {
	// Revoking the refresh token invalidates the whole grant; fall back
	// to the access token when that is all we have.
	target := tok.RefreshToken
	if target == "" {
		target = tok.AccessToken
	}

	form := url.Values{"token": {target}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.revokeURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build revoke request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("revoke request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("revoke endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

func (m *SessionManager) clearLocalLocked() {
	m.handle = nil
	if err := m.store.Delete(); err != nil {
		m.logger.Warn("failed to delete token file after revocation",
			logging.Operation("revoke"),
			logging.Err(err))
	}
}

// IsAuthenticated reports whether a usable session exists without ever
// prompting the user: it probes the cached handle and the persisted
// record, refreshing if needed, and swallows every failure to false.
func (m *SessionManager) IsAuthenticated(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	tok, err := m.cachedOrStoredLocked(ctx)
	return err == nil && tok.AccessToken != ""
}

// managerTokenSource routes every token request back through the session
// manager so it stays the sole refresher and persistence writer.
type managerTokenSource struct {
	ctx context.Context
	m   *SessionManager
}

func (s *managerTokenSource) Token() (*oauth2.Token, error) {
	return s.m.Token(s.ctx)
}

// HTTPClient returns an HTTP client whose requests carry a fresh access
// token from this session manager. The transport is pinned to HTTP/1.1
// to avoid HTTP/2 stream errors seen with Google API endpoints.
func (m *SessionManager) HTTPClient(ctx context.Context) (*http.Client, error) {
	// Fail eagerly so callers see credential problems at construction
	// time rather than on the first API call.
	if _, err := m.Token(ctx); err != nil {
		return nil, err
	}

	client := oauth2.NewClient(ctx, &managerTokenSource{ctx: ctx, m: m})

	transport := client.Transport.(*oauth2.Transport)
	transport.Base = &http.Transport{
		ForceAttemptHTTP2: false,
	}

	return client, nil
}

func (m *SessionManager) recordAuth(ctx context.Context, result string) {
	if m.metrics != nil {
		m.metrics.RecordOAuthAuth(ctx, result)
	}
}

func (m *SessionManager) recordRefresh(ctx context.Context, result string) {
	if m.metrics != nil {
		m.metrics.RecordOAuthTokenRefresh(ctx, result)
	}
}
