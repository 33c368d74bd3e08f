package google

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/exec"
	"runtime"
	"time"

	"golang.org/x/oauth2"
)

// DefaultConsentTimeout bounds how long the browser flow waits for the
// user to complete consent.
const DefaultConsentTimeout = 5 * time.Minute

// ConsentFlow obtains a user-authorized token for the given OAuth client
// configuration. Implementations drive whatever interaction the grant
// requires; the session manager stays agnostic of the mechanics.
type ConsentFlow interface {
	Authorize(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error)
}

// BrowserFlow runs the installed-app loopback flow: it starts a listener
// on a random localhost port, opens the system browser at the consent
// URL and waits for the provider to redirect back with an authorization
// code, which it exchanges for a token.
type BrowserFlow struct {
	// Timeout bounds the wait for user consent; zero means
	// DefaultConsentTimeout.
	Timeout time.Duration

	// Out is where the consent URL is printed as a fallback when the
	// browser cannot be opened; defaults to os.Stderr. Never stdout:
	// that belongs to the stdio transport.
	Out io.Writer

	// OpenURL launches the browser; defaults to the platform handler.
	OpenURL func(url string) error
}

// Authorize implements ConsentFlow.
func (f *BrowserFlow) Authorize(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("failed to start callback listener: %w", err)
	}
	defer ln.Close()

	// Copy the config so the loopback redirect never leaks into the
	// caller's long-lived configuration.
	flowCfg := *cfg
	flowCfg.RedirectURL = fmt.Sprintf("http://%s/callback", ln.Addr().String())

	state, err := randomToken()
	if err != nil {
		return nil, err
	}
	verifier := oauth2.GenerateVerifier()

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			errCh <- fmt.Errorf("state mismatch in OAuth callback")
			return
		}
		if errMsg := q.Get("error"); errMsg != "" {
			http.Error(w, "authorization declined", http.StatusBadRequest)
			errCh <- fmt.Errorf("authorization declined: %s", errMsg)
			return
		}
		code := q.Get("code")
		if code == "" {
			http.Error(w, "missing authorization code", http.StatusBadRequest)
			errCh <- fmt.Errorf("no authorization code in callback")
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, "Authorization complete. You can close this tab and return to the terminal.")
		codeCh <- code
	})

	srv := &http.Server{Handler: mux}
	go func() { _ = srv.Serve(ln) }()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	// access_type=offline plus prompt=consent so Google issues a refresh
	// token even when the user has granted this client before.
	authURL := flowCfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
		oauth2.S256ChallengeOption(verifier),
	)

	out := f.Out
	if out == nil {
		out = os.Stderr
	}
	fmt.Fprintf(out, "Open this URL in your browser to authorize access:\n\n  %s\n\n", authURL)

	open := f.OpenURL
	if open == nil {
		open = openBrowser
	}
	if err := open(authURL); err != nil {
		fmt.Fprintf(out, "Could not open a browser automatically: %v\n", err)
	}

	timeout := f.Timeout
	if timeout == 0 {
		timeout = DefaultConsentTimeout
	}

	select {
	case code := <-codeCh:
		tok, err := flowCfg.Exchange(ctx, code, oauth2.VerifierOption(verifier))
		if err != nil {
			return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
		}
		return tok, nil
	case err := <-errCh:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(timeout):
		return nil, fmt.Errorf("timed out after %s waiting for authorization", timeout)
	}
}

func randomToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate state token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// openBrowser launches the platform's URL handler.
func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
