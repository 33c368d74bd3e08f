package google

import (
	"fmt"
	"strings"
)

// CredentialsNotFoundError indicates that no OAuth client configuration
// file exists at any candidate location. The message enumerates every
// path that was checked so the user knows exactly where to put one.
type CredentialsNotFoundError struct {
	Checked []string
}

func (e *CredentialsNotFoundError) Error() string {
	var sb strings.Builder
	sb.WriteString("no OAuth client credentials found; checked:\n")
	for _, p := range e.Checked {
		fmt.Fprintf(&sb, "  - %s\n", p)
	}
	sb.WriteString("create an OAuth client ID (Desktop app) in the Google Cloud console, ")
	sb.WriteString("download it as JSON to one of the paths above, ")
	sb.WriteString("or set " + EnvCredentialsPath + " to its location")
	return sb.String()
}

// AuthenticationError wraps a failure while establishing credentials:
// an unreadable or malformed credentials file, a failed consent flow,
// or a failed code exchange.
type AuthenticationError struct {
	Op  string
	Err error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed (%s): %v", e.Op, e.Err)
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// TokenExpiredError indicates the stored grant can no longer produce a
// usable access token. It is raised only by the refresh path: either no
// refresh token exists or the provider rejected the refresh (for example
// after the user revoked access). Recovery is re-authentication, never a
// retry.
type TokenExpiredError struct {
	Reason string
	Err    error
}

func (e *TokenExpiredError) Error() string {
	msg := "token expired"
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg + " (re-authentication required)"
}

func (e *TokenExpiredError) Unwrap() error {
	return e.Err
}
