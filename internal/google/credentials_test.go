package google

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const installedCredentialsJSON = `{
  "installed": {
    "client_id": "cid.apps.googleusercontent.com",
    "client_secret": "csecret",
    "redirect_uris": ["http://localhost", "urn:ietf:wg:oauth:2.0:oob"],
    "auth_uri": "https://accounts.google.com/o/oauth2/auth",
    "token_uri": "https://oauth2.googleapis.com/token"
  }
}`

const webCredentialsJSON = `{
  "web": {
    "client_id": "web-cid.apps.googleusercontent.com",
    "client_secret": "web-secret",
    "redirect_uris": ["https://example.com/callback"],
    "auth_uri": "https://accounts.google.com/o/oauth2/auth",
    "token_uri": "https://oauth2.googleapis.com/token"
  }
}`

func writeCredentials(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credentials.json")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvCredentialsPath, path)
}

func TestLoadClientConfig(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		wantClientID string
		wantRedirect string
	}{
		{
			name:         "installed shape",
			content:      installedCredentialsJSON,
			wantClientID: "cid.apps.googleusercontent.com",
			wantRedirect: "http://localhost",
		},
		{
			name:         "web shape",
			content:      webCredentialsJSON,
			wantClientID: "web-cid.apps.googleusercontent.com",
			wantRedirect: "https://example.com/callback",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writeCredentials(t, tt.content)

			cfg, err := LoadClientConfig()
			if err != nil {
				t.Fatalf("LoadClientConfig() error = %v", err)
			}
			if cfg.ClientID != tt.wantClientID {
				t.Errorf("ClientID = %q, want %q", cfg.ClientID, tt.wantClientID)
			}
			if cfg.RedirectURL != tt.wantRedirect {
				t.Errorf("RedirectURL = %q, want first redirect URI %q", cfg.RedirectURL, tt.wantRedirect)
			}
			if len(cfg.Scopes) != len(Scopes) {
				t.Errorf("Scopes count = %d, want %d", len(cfg.Scopes), len(Scopes))
			}
		})
	}
}

func TestLoadClientConfig_Missing(t *testing.T) {
	t.Setenv(EnvCredentialsPath, "")
	t.Setenv("HOME", t.TempDir())

	_, err := LoadClientConfig()
	var notFound *CredentialsNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error type = %T, want *CredentialsNotFoundError", err)
	}
}

func TestLoadClientConfig_MalformedIsAuthError(t *testing.T) {
	// A file that exists but cannot be parsed is an authentication
	// problem, not a missing-credentials problem.
	writeCredentials(t, `{"installed": "nope"`)

	_, err := LoadClientConfig()
	if err == nil {
		t.Fatal("expected an error for malformed credentials")
	}
	var authErr *AuthenticationError
	if !errors.As(err, &authErr) {
		t.Fatalf("error type = %T, want *AuthenticationError", err)
	}
	var notFound *CredentialsNotFoundError
	if errors.As(err, &notFound) {
		t.Error("malformed credentials must not report CredentialsNotFoundError")
	}
}
