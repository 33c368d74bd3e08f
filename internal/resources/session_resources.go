package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/tubemetrics/internal/google"
	"github.com/teemow/tubemetrics/internal/server"
	"github.com/teemow/tubemetrics/internal/youtube"
)

// session is the slice of the Google session manager the status
// resource reads. *google.SessionManager satisfies it.
type session interface {
	HasStoredToken() bool
	IsAuthenticated(ctx context.Context) bool
	TokenPath() string
	StoredToken() (*google.PersistedToken, error)
}

// channelClient is the slice of the Data API client the profile
// resource reads. *youtube.Client satisfies it.
type channelClient interface {
	MyChannel(ctx context.Context) (*youtube.ChannelInfo, error)
}

// RegisterSessionResources registers resources describing the current
// authorization and its channel
func RegisterSessionResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Authorization status resource
	statusResource := mcp.NewResource(
		"auth://status",
		"Authorization Status",
		mcp.WithResourceDescription("Stored-token presence, freshness, and requested scopes. Contains no secret material."),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(statusResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleAuthStatus(ctx, request, sc.Session())
	})

	// Channel profile resource
	profileResource := mcp.NewResource(
		"channel://profile",
		"Channel Profile",
		mcp.WithResourceDescription("Profile and lifetime statistics of the authenticated channel"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(profileResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		client, err := sc.YouTubeClient()
		if err != nil {
			return nil, fmt.Errorf("no YouTube client available: %w", err)
		}
		return handleChannelProfile(ctx, request, client)
	})

	return nil
}

// handleAuthStatus reports the authorization state. Token material
// itself never appears in the output.
func handleAuthStatus(ctx context.Context, request mcp.ReadResourceRequest, sess session) ([]mcp.ResourceContents, error) {
	status := map[string]interface{}{
		"tokenPath":      sess.TokenPath(),
		"hasStoredToken": sess.HasStoredToken(),
		"authenticated":  sess.IsAuthenticated(ctx),
		"scopes":         google.Scopes,
	}

	if tok, err := sess.StoredToken(); err == nil {
		if exp := tok.Expiry(); !exp.IsZero() {
			status["accessTokenExpiry"] = exp.Format(time.RFC3339)
			status["accessTokenExpired"] = exp.Before(time.Now())
		}
	}

	jsonData, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal auth status: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}

// handleChannelProfile returns the authenticated channel's profile
func handleChannelProfile(ctx context.Context, request mcp.ReadResourceRequest, client channelClient) ([]mcp.ResourceContents, error) {
	info, err := client.MyChannel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get channel profile: %w", err)
	}

	profile := map[string]interface{}{
		"id":              info.ID,
		"title":           info.Title,
		"description":     info.Description,
		"customUrl":       info.CustomURL,
		"country":         info.Country,
		"publishedAt":     info.PublishedAt,
		"views":           info.Views,
		"videos":          info.Videos,
		"uploadsPlaylist": info.UploadsPlaylist,
	}
	if info.HiddenSubscribers {
		profile["subscribersHidden"] = true
	} else {
		profile["subscribers"] = info.Subscribers
	}

	jsonData, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal channel profile: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
