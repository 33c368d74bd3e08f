package google

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

// browse simulates the user completing consent: it parses the auth URL
// handed to the browser and hits the loopback callback with the given
// query values ("STATE" is substituted with the real state parameter).
func browse(params map[string]string) func(authURL string) error {
	return func(authURL string) error {
		go func() {
			u, err := url.Parse(authURL)
			if err != nil {
				return
			}
			q := u.Query()
			redirect := q.Get("redirect_uri")

			cb := url.Values{}
			for k, v := range params {
				if v == "STATE" {
					v = q.Get("state")
				}
				cb.Set(k, v)
			}
			resp, err := http.Get(redirect + "?" + cb.Encode())
			if err == nil {
				resp.Body.Close()
			}
		}()
		return nil
	}
}

func flowTestConfig(t *testing.T, handler http.HandlerFunc) *oauth2.Config {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &oauth2.Config{
		ClientID:     "cid",
		ClientSecret: "csecret",
		Scopes:       Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   srv.URL + "/auth",
			TokenURL:  srv.URL + "/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

func TestBrowserFlow_Authorize(t *testing.T) {
	var gotCode, gotVerifier string
	cfg := flowTestConfig(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotCode = r.Form.Get("code")
		gotVerifier = r.Form.Get("code_verifier")
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"access_token":"AT1","refresh_token":"RT1","token_type":"Bearer","expires_in":3600}`)
	})

	var authURL string
	browser := browse(map[string]string{"state": "STATE", "code": "CODE1"})
	flow := &BrowserFlow{
		Timeout: 5 * time.Second,
		Out:     io.Discard,
		OpenURL: func(u string) error {
			authURL = u
			return browser(u)
		},
	}

	tok, err := flow.Authorize(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "AT1", tok.AccessToken)
	assert.Equal(t, "RT1", tok.RefreshToken)

	assert.Equal(t, "CODE1", gotCode)
	assert.NotEmpty(t, gotVerifier, "exchange must carry the PKCE verifier")

	assert.Contains(t, authURL, "access_type=offline")
	assert.Contains(t, authURL, "prompt=consent")
	assert.Contains(t, authURL, "code_challenge=")
}

func TestBrowserFlow_StateMismatch(t *testing.T) {
	cfg := flowTestConfig(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("token endpoint must not be called on state mismatch")
	})

	flow := &BrowserFlow{
		Timeout: 5 * time.Second,
		Out:     io.Discard,
		OpenURL: browse(map[string]string{"state": "forged", "code": "CODE1"}),
	}

	_, err := flow.Authorize(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "state mismatch")
}

func TestBrowserFlow_UserDeclined(t *testing.T) {
	cfg := flowTestConfig(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("token endpoint must not be called when consent is declined")
	})

	flow := &BrowserFlow{
		Timeout: 5 * time.Second,
		Out:     io.Discard,
		OpenURL: browse(map[string]string{"state": "STATE", "error": "access_denied"}),
	}

	_, err := flow.Authorize(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authorization declined")
}

func TestBrowserFlow_MissingCode(t *testing.T) {
	cfg := flowTestConfig(t, func(w http.ResponseWriter, r *http.Request) {})

	flow := &BrowserFlow{
		Timeout: 5 * time.Second,
		Out:     io.Discard,
		OpenURL: browse(map[string]string{"state": "STATE"}),
	}

	_, err := flow.Authorize(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no authorization code")
}

func TestBrowserFlow_Timeout(t *testing.T) {
	cfg := flowTestConfig(t, func(w http.ResponseWriter, r *http.Request) {})

	flow := &BrowserFlow{
		Timeout: 50 * time.Millisecond,
		Out:     io.Discard,
		OpenURL: func(string) error { return nil },
	}

	start := time.Now()
	_, err := flow.Authorize(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestBrowserFlow_ContextCancelled(t *testing.T) {
	cfg := flowTestConfig(t, func(w http.ResponseWriter, r *http.Request) {})

	ctx, cancel := context.WithCancel(context.Background())
	flow := &BrowserFlow{
		Timeout: 5 * time.Second,
		Out:     io.Discard,
		OpenURL: func(string) error {
			cancel()
			return nil
		},
	}

	_, err := flow.Authorize(ctx, cfg)
	assert.ErrorIs(t, err, context.Canceled)
}
