package auth_tools

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/tubemetrics/internal/format"
	"github.com/teemow/tubemetrics/internal/google"
	"github.com/teemow/tubemetrics/internal/server"
	"github.com/teemow/tubemetrics/internal/tools/common"
)

// session is the slice of the Google session manager the auth tools use.
// *google.SessionManager satisfies it.
type session interface {
	HasStoredToken() bool
	IsAuthenticated(ctx context.Context) bool
	TokenPath() string
	StoredToken() (*google.PersistedToken, error)
	Revoke(ctx context.Context) error
}

// RegisterAuthTools registers the authorization tools with the MCP server
func RegisterAuthTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Check authorization status tool
	checkStatusTool := mcp.NewTool("auth_check_status",
		mcp.WithDescription("Check the Google authorization status: whether a token is stored, whether it is currently usable, and when the access token expires. Never starts a consent flow."),
	)

	s.AddTool(checkStatusTool, common.InstrumentedToolHandler(
		"auth_check_status", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCheckStatus(ctx, sc.Session())
		}))

	// Revoke authorization tool
	revokeTool := mcp.NewTool("auth_revoke",
		mcp.WithDescription("Revoke the stored Google authorization. Invalidates the grant at Google and deletes the local token file."),
	)

	s.AddTool(revokeTool, common.InstrumentedToolHandler(
		"auth_revoke", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleRevoke(ctx, sc.Session())
		}))

	return nil
}

func handleCheckStatus(ctx context.Context, sess session) (*mcp.CallToolResult, error) {
	pairs := [][2]string{
		{"Token file", sess.TokenPath()},
	}

	if !sess.HasStoredToken() {
		pairs = append(pairs, [2]string{"Stored token", "no"})
		result := "Authorization status:\n\n" + format.KV(pairs) +
			"\nNot authorized. Run \"tubemetrics auth login\" or call any YouTube tool to start the browser consent flow."
		return mcp.NewToolResultText(result), nil
	}
	pairs = append(pairs, [2]string{"Stored token", "yes"})

	if tok, err := sess.StoredToken(); err == nil {
		pairs = append(pairs, [2]string{"Access token expiry", describeExpiry(tok.Expiry(), time.Now())})
	}

	if sess.IsAuthenticated(ctx) {
		pairs = append(pairs, [2]string{"Usable", "yes"})
	} else {
		pairs = append(pairs, [2]string{"Usable", "no (refresh failed; run \"tubemetrics auth login\" to re-consent)"})
	}

	result := "Authorization status:\n\n" + format.KV(pairs) + "\nRequested scopes:\n"
	for _, scope := range google.Scopes {
		result += fmt.Sprintf("  - %s\n", scope)
	}
	return mcp.NewToolResultText(result), nil
}

// describeExpiry renders the access-token expiry for status output. An
// expired access token is normal between calls; the refresh token keeps
// the grant usable.
func describeExpiry(expiry, now time.Time) string {
	switch {
	case expiry.IsZero():
		return "none recorded"
	case expiry.Before(now):
		return expiry.Format(time.RFC3339) + " (expired, refreshes on next use)"
	default:
		return expiry.Format(time.RFC3339) + " (valid)"
	}
}

func handleRevoke(ctx context.Context, sess session) (*mcp.CallToolResult, error) {
	if !sess.HasStoredToken() {
		return mcp.NewToolResultError("no stored authorization to revoke"), nil
	}

	if err := sess.Revoke(ctx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to revoke authorization: %v\n\nLocal credentials have been cleared. If the grant is still listed at https://myaccount.google.com/permissions, remove it there.", err)), nil
	}

	return mcp.NewToolResultText("✅ Authorization revoked. The grant was invalidated at Google and the local token file was deleted. Run \"tubemetrics auth login\" to authorize again."), nil
}
