package auth_tools

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/tubemetrics/internal/google"
)

// fakeSession implements the session interface without touching disk or
// the network.
type fakeSession struct {
	hasToken      bool
	authenticated bool
	stored        *google.PersistedToken
	storedErr     error
	revokeErr     error
	revokeCalls   int
}

func (f *fakeSession) HasStoredToken() bool                      { return f.hasToken }
func (f *fakeSession) IsAuthenticated(ctx context.Context) bool  { return f.authenticated }
func (f *fakeSession) TokenPath() string                         { return "/home/test/.tubemetrics/token.json" }
func (f *fakeSession) StoredToken() (*google.PersistedToken, error) {
	return f.stored, f.storedErr
}
func (f *fakeSession) Revoke(ctx context.Context) error {
	f.revokeCalls++
	return f.revokeErr
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want mcp.TextContent", result.Content[0])
	}
	return text.Text
}

func TestHandleCheckStatus_NoToken(t *testing.T) {
	sess := &fakeSession{hasToken: false}

	result, err := handleCheckStatus(context.Background(), sess)
	if err != nil {
		t.Fatalf("handleCheckStatus() error = %v", err)
	}
	if result.IsError {
		t.Error("handleCheckStatus() returned error result for missing token")
	}

	text := resultText(t, result)
	if !strings.Contains(text, "Not authorized") {
		t.Errorf("status output missing guidance, got:\n%s", text)
	}
	if !strings.Contains(text, "/home/test/.tubemetrics/token.json") {
		t.Errorf("status output missing token path, got:\n%s", text)
	}
}

func TestHandleCheckStatus_ValidToken(t *testing.T) {
	tok := &google.PersistedToken{RefreshToken: "refresh"}
	tok.SetExpiry(time.Now().Add(30 * time.Minute))
	sess := &fakeSession{hasToken: true, authenticated: true, stored: tok}

	result, err := handleCheckStatus(context.Background(), sess)
	if err != nil {
		t.Fatalf("handleCheckStatus() error = %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "(valid)") {
		t.Errorf("status output missing expiry validity, got:\n%s", text)
	}
	if !strings.Contains(text, "Usable") {
		t.Errorf("status output missing usability line, got:\n%s", text)
	}
	if !strings.Contains(text, "youtube.readonly") {
		t.Errorf("status output missing scopes, got:\n%s", text)
	}
}

func TestHandleCheckStatus_ExpiredAccessToken(t *testing.T) {
	tok := &google.PersistedToken{RefreshToken: "refresh"}
	tok.SetExpiry(time.Now().Add(-1 * time.Hour))
	sess := &fakeSession{hasToken: true, authenticated: true, stored: tok}

	result, err := handleCheckStatus(context.Background(), sess)
	if err != nil {
		t.Fatalf("handleCheckStatus() error = %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "expired, refreshes on next use") {
		t.Errorf("expired access token not reported, got:\n%s", text)
	}
}

func TestHandleCheckStatus_UnusableSession(t *testing.T) {
	tok := &google.PersistedToken{RefreshToken: "revoked-upstream"}
	sess := &fakeSession{hasToken: true, authenticated: false, stored: tok}

	result, err := handleCheckStatus(context.Background(), sess)
	if err != nil {
		t.Fatalf("handleCheckStatus() error = %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "re-consent") {
		t.Errorf("unusable session should suggest re-consent, got:\n%s", text)
	}
}

func TestDescribeExpiry(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		expiry time.Time
		want   string
	}{
		{
			name:   "zero time",
			expiry: time.Time{},
			want:   "none recorded",
		},
		{
			name:   "in the past",
			expiry: now.Add(-time.Hour),
			want:   "2026-03-15T11:00:00Z (expired, refreshes on next use)",
		},
		{
			name:   "in the future",
			expiry: now.Add(time.Hour),
			want:   "2026-03-15T13:00:00Z (valid)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := describeExpiry(tt.expiry, now); got != tt.want {
				t.Errorf("describeExpiry() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHandleRevoke_NoToken(t *testing.T) {
	sess := &fakeSession{hasToken: false}

	result, err := handleRevoke(context.Background(), sess)
	if err != nil {
		t.Fatalf("handleRevoke() error = %v", err)
	}
	if !result.IsError {
		t.Error("handleRevoke() should return an error result when no token is stored")
	}
	if sess.revokeCalls != 0 {
		t.Errorf("Revoke called %d times, want 0", sess.revokeCalls)
	}
}

func TestHandleRevoke_Success(t *testing.T) {
	sess := &fakeSession{hasToken: true}

	result, err := handleRevoke(context.Background(), sess)
	if err != nil {
		t.Fatalf("handleRevoke() error = %v", err)
	}
	if result.IsError {
		t.Errorf("handleRevoke() returned error result: %s", resultText(t, result))
	}
	if sess.revokeCalls != 1 {
		t.Errorf("Revoke called %d times, want 1", sess.revokeCalls)
	}
	if !strings.Contains(resultText(t, result), "revoked") {
		t.Error("success message should confirm revocation")
	}
}

func TestHandleRevoke_RemoteFailure(t *testing.T) {
	sess := &fakeSession{
		hasToken:  true,
		revokeErr: errors.New("revoke endpoint returned status 503"),
	}

	result, err := handleRevoke(context.Background(), sess)
	if err != nil {
		t.Fatalf("handleRevoke() error = %v", err)
	}
	if !result.IsError {
		t.Error("handleRevoke() should return an error result on remote failure")
	}

	text := resultText(t, result)
	if !strings.Contains(text, "Local credentials have been cleared") {
		t.Errorf("remote failure should still report local cleanup, got:\n%s", text)
	}
}
