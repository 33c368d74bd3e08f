package google

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
)

// authorizedUserType is the fixed type marker of the token record,
// matching the authorized_user layout used by Google client libraries.
const authorizedUserType = "authorized_user"

// ErrNoToken is returned by Store.Load when no token file exists.
var ErrNoToken = errors.New("no stored token")

// PersistedToken is the on-disk credential record. The refresh token is
// required; access_token and expiry_date are volatile and may be absent.
// expiry_date is epoch milliseconds, matching the wire format other
// Google tooling reads and writes for this file.
type PersistedToken struct {
	Type         string `json:"type"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RefreshToken string `json:"refresh_token"`
	AccessToken  string `json:"access_token,omitempty"`
	ExpiryDate   int64  `json:"expiry_date,omitempty"`
}

// Expiry converts the epoch-millis expiry_date to a time.Time.
// The zero time means no expiry is recorded.
func (t *PersistedToken) Expiry() time.Time {
	if t.ExpiryDate == 0 {
		return time.Time{}
	}
	return time.UnixMilli(t.ExpiryDate)
}

// SetExpiry records the expiry in epoch milliseconds; the zero time
// clears the field.
func (t *PersistedToken) SetExpiry(exp time.Time) {
	if exp.IsZero() {
		t.ExpiryDate = 0
		return
	}
	t.ExpiryDate = exp.UnixMilli()
}

// Token converts the record into its oauth2 equivalent.
func (t *PersistedToken) Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  t.AccessToken,
		TokenType:    "Bearer",
		RefreshToken: t.RefreshToken,
		Expiry:       t.Expiry(),
	}
}

// Store persists a single user credential as JSON on disk. It is the
// sole source of truth across process restarts.
type Store struct {
	path string
}

// NewStore creates a store writing to the given path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// NewDefaultStore creates a store at the standard token location
// (see DefaultTokenPath).
func NewDefaultStore() (*Store, error) {
	path, err := DefaultTokenPath()
	if err != nil {
		return nil, err
	}
	return NewStore(path), nil
}

// Path returns the token file location.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether a token file is present, without reading it.
func (s *Store) Exists() bool {
	info, err := os.Stat(s.path)
	return err == nil && !info.IsDir()
}

// EnsureDir creates the directory that will hold the token file.
func (s *Store) EnsureDir() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	return nil
}

// Load reads and parses the token record. A missing file yields
// ErrNoToken; a malformed file yields a wrapped decode error. A record
// without a refresh token loads fine; refusing it is the refresh path's
// job, not the store's.
func (s *Store) Load() (*PersistedToken, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoToken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var tok PersistedToken
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("failed to parse token file %s: %w", s.path, err)
	}
	return &tok, nil
}

// Save writes the full record with owner-only permissions, creating the
// parent directory if needed. Records without a refresh token are
// rejected: every record this process writes must survive a restart.
func (s *Store) Save(tok *PersistedToken) error {
	if tok.RefreshToken == "" {
		return fmt.Errorf("refusing to save token record without refresh_token")
	}
	if tok.Type == "" {
		tok.Type = authorizedUserType
	}

	if err := s.EnsureDir(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode token record: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// UpdateAccessFields rewrites only the volatile fields of the stored
// record after a refresh. The refresh token and client identity fields
// are carried over untouched. Fails if no prior record can be read.
func (s *Store) UpdateAccessFields(accessToken string, expiry time.Time) error {
	tok, err := s.Load()
	if err != nil {
		return fmt.Errorf("cannot update token fields: %w", err)
	}
	tok.AccessToken = accessToken
	tok.SetExpiry(expiry)
	return s.Save(tok)
}

// Delete removes the token file. A file that is already gone is not an
// error.
func (s *Store) Delete() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete token file: %w", err)
	}
	return nil
}
