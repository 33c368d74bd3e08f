package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/teemow/tubemetrics/internal/analytics"
	"github.com/teemow/tubemetrics/internal/google"
	"github.com/teemow/tubemetrics/internal/instrumentation"
	"github.com/teemow/tubemetrics/internal/logging"
	"github.com/teemow/tubemetrics/internal/quota"
	"github.com/teemow/tubemetrics/internal/youtube"
)

// ServerContext holds the context for the MCP server
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	session *google.SessionManager
	guard   *quota.Guard

	// API clients are built on first use so the server can start
	// before the owner has authenticated.
	youtubeClient   *youtube.Client
	analyticsClient *analytics.Client

	metrics     *instrumentation.Metrics
	auditLogger *instrumentation.AuditLogger

	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a new server context around one OAuth session.
// Clients are lazily initialized when first needed; creating the context
// never triggers the consent flow.
func NewServerContext(ctx context.Context, session *google.SessionManager) (*ServerContext, error) {
	if session == nil {
		return nil, fmt.Errorf("session manager is required")
	}

	shutdownCtx, cancel := context.WithCancel(ctx)

	return &ServerContext{
		ctx:     shutdownCtx,
		cancel:  cancel,
		session: session,
		guard: quota.NewGuardWithLogger(quota.DefaultQPS, quota.DefaultBurst,
			quota.DefaultMaxRetries, logging.DefaultLogger()),
	}, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Session returns the OAuth session manager shared by all clients.
func (sc *ServerContext) Session() *google.SessionManager {
	return sc.session
}

// Guard returns the quota guard shared by all API clients.
func (sc *ServerContext) Guard() *quota.Guard {
	return sc.guard
}

// YouTubeClient returns the Data API client, creating it on first use.
// Creation runs the token chain, so the first call on a fresh install
// launches the consent flow. Failures are not cached; the next call
// retries.
func (sc *ServerContext) YouTubeClient() (*youtube.Client, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.youtubeClient != nil {
		return sc.youtubeClient, nil
	}

	client, err := youtube.NewClient(sc.ctx, sc.session, sc.guard)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube client: %w", err)
	}

	sc.youtubeClient = client
	return client, nil
}

// AnalyticsClient returns the Analytics API client, creating it on first
// use. Same lifecycle behavior as YouTubeClient.
func (sc *ServerContext) AnalyticsClient() (*analytics.Client, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.analyticsClient != nil {
		return sc.analyticsClient, nil
	}

	client, err := analytics.NewClient(sc.ctx, sc.session, sc.guard)
	if err != nil {
		return nil, fmt.Errorf("failed to create Analytics client: %w", err)
	}

	sc.analyticsClient = client
	return client, nil
}

// SetYouTubeClient sets the Data API client. Used by tests to inject
// fakes.
func (sc *ServerContext) SetYouTubeClient(client *youtube.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.youtubeClient = client
}

// SetAnalyticsClient sets the Analytics API client. Used by tests to
// inject fakes.
func (sc *ServerContext) SetAnalyticsClient(client *analytics.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.analyticsClient = client
}

// Metrics returns the metrics recorder, or nil when instrumentation is
// disabled.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetMetrics sets the metrics recorder.
func (sc *ServerContext) SetMetrics(m *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = m
}

// AuditLogger returns the audit logger, or nil when audit logging is
// disabled.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// SetAuditLogger sets the audit logger.
func (sc *ServerContext) SetAuditLogger(l *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = l
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
