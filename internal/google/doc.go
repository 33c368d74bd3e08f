// Package google owns the OAuth2 credential lifecycle for the YouTube APIs.
//
// It resolves the OAuth client configuration from an ordered list of
// candidate locations, persists the granted user token as an
// authorized_user JSON record with owner-only permissions, and manages a
// single cached authenticated session per process: tokens are refreshed
// ahead of expiry, rebuilt from disk after restarts, and re-acquired
// through an interactive browser consent flow when nothing usable remains.
//
// The SessionManager is the only writer of the token file and the only
// holder of the cached handle. The interactive flow is injected via the
// ConsentFlow interface so callers and tests can substitute their own.
package google
