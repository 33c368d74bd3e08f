package google

import (
	"fmt"
	"os"
	"path/filepath"
)

// Environment variables that override the default file locations.
const (
	EnvCredentialsPath = "TUBEMETRICS_CREDENTIALS_PATH"
	EnvTokenPath       = "TUBEMETRICS_TOKEN_PATH"
)

const (
	configDirName       = ".tubemetrics"
	credentialsFileName = "credentials.json"
	tokenFileName       = "token.json"
)

// ConfigDir returns the per-user configuration directory
// (~/.tubemetrics) that holds credentials and the token by default.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, configDirName), nil
}

// DefaultTokenPath returns the location of the persisted token file:
// the TUBEMETRICS_TOKEN_PATH override if set, else ~/.tubemetrics/token.json.
func DefaultTokenPath() (string, error) {
	if p := os.Getenv(EnvTokenPath); p != "" {
		return p, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, tokenFileName), nil
}

// credentialSource is one candidate location for the OAuth client file.
type credentialSource struct {
	name string
	path string
}

// credentialSources returns the candidate locations in resolution order:
// the TUBEMETRICS_CREDENTIALS_PATH override first, then the per-user
// config dir, then the install dir. The first existing candidate wins,
// so a set-but-missing override falls through to the later locations.
func credentialSources() []credentialSource {
	var sources []credentialSource
	if p := os.Getenv(EnvCredentialsPath); p != "" {
		sources = append(sources, credentialSource{
			name: "environment override",
			path: p,
		})
	}
	if dir, err := ConfigDir(); err == nil {
		sources = append(sources, credentialSource{
			name: "user config dir",
			path: filepath.Join(dir, credentialsFileName),
		})
	}
	if exe, err := os.Executable(); err == nil {
		sources = append(sources, credentialSource{
			name: "install dir",
			path: filepath.Join(filepath.Dir(exe), credentialsFileName),
		})
	}
	return sources
}

// ResolveCredentialsFile walks the candidate locations and returns the
// first one that exists. When none do it fails with a
// CredentialsNotFoundError listing every checked path.
func ResolveCredentialsFile() (string, error) {
	sources := credentialSources()
	checked := make([]string, 0, len(sources))
	for _, src := range sources {
		checked = append(checked, src.path)
		if info, err := os.Stat(src.path); err == nil && !info.IsDir() {
			return src.path, nil
		}
	}
	return "", &CredentialsNotFoundError{Checked: checked}
}
