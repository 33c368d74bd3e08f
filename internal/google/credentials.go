package google

import (
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// LoadClientConfig resolves the credentials file and parses it into an
// OAuth2 config carrying the requested scopes. Both Google client shapes
// ("web" and "installed") are accepted; the first redirect URI is used.
//
// A missing file at every candidate location is a CredentialsNotFoundError;
// an existing file that cannot be read or parsed is an AuthenticationError.
func LoadClientConfig() (*oauth2.Config, error) {
	path, err := ResolveCredentialsFile()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &AuthenticationError{Op: "read credentials file", Err: err}
	}

	cfg, err := google.ConfigFromJSON(data, Scopes...)
	if err != nil {
		return nil, &AuthenticationError{Op: "parse credentials file", Err: err}
	}
	return cfg, nil
}
