// Package server provides the MCP server context, health checks, and
// the Prometheus metrics server for the tubemetrics application.
//
// # Key Components
//
// ServerContext manages the OAuth session and the YouTube Data and
// Analytics API clients with lazy initialization and caching. The
// clients share one quota guard so burst-heavy tool invocations are
// rate limited as a group. It also carries the instrumentation metrics
// recorder and audit logger for tool handlers.
//
// MetricsServer serves Prometheus metrics on a dedicated port, separate
// from the MCP transport, with /healthz and /readyz probes backed by
// HealthChecker.
package server
