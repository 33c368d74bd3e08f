// Package logging provides structured logging utilities for the tubemetrics application.
//
// This package centralizes logging patterns to ensure consistent, structured logging
// throughout the codebase using the standard library's slog package.
//
// # Key Features
//
//   - Structured logging with slog
//   - Channel identity anonymization for log correlation
//   - Consistent attribute naming across the codebase
//   - Logger adapter interface for flexibility
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "analytics.query")
//	logger.Info("running report",
//	    logging.Status("success"))
//
// Sanitize sensitive data before logging:
//
//	logger.Info("channel resolved",
//	    logging.OwnerHash(channelID))
//
// # Security Considerations
//
// This package is designed with security in mind:
//   - Channel IDs are hashed to prevent identity leakage while allowing correlation
//   - Tokens are never logged directly
package logging
