package channel_tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/tubemetrics/internal/format"
	"github.com/teemow/tubemetrics/internal/instrumentation"
	"github.com/teemow/tubemetrics/internal/logging"
	"github.com/teemow/tubemetrics/internal/server"
	"github.com/teemow/tubemetrics/internal/tools/common"
	"github.com/teemow/tubemetrics/internal/youtube"
)

// dataClient is the slice of the Data API client these tools use.
// *youtube.Client satisfies it.
type dataClient interface {
	MyChannel(ctx context.Context) (*youtube.ChannelInfo, error)
	RecentUploads(ctx context.Context, maxResults int64) ([]youtube.VideoInfo, error)
	Videos(ctx context.Context, ids []string) ([]youtube.VideoInfo, error)
	SearchMyVideos(ctx context.Context, query string, maxResults int64) ([]youtube.VideoInfo, error)
	Playlists(ctx context.Context, maxResults int64) ([]youtube.PlaylistInfo, error)
}

// maxResultsFromArgs extracts max_results, clamping to [1, cap]. JSON
// numbers arrive as float64.
func maxResultsFromArgs(args map[string]interface{}, def, cap int64) int64 {
	v, ok := args["max_results"].(float64)
	if !ok {
		return def
	}
	n := int64(v)
	if n < 1 {
		return def
	}
	if n > cap {
		return cap
	}
	return n
}

// RegisterChannelTools registers all Data API tools with the MCP server
func RegisterChannelTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Channel info tool
	getInfoTool := mcp.NewTool("channel_get_info",
		mcp.WithDescription("Get the authenticated channel's profile: title, description, country, and lifetime subscriber, view, and video counts"),
	)

	s.AddTool(getInfoTool, common.InstrumentedToolHandlerWithService(
		"channel_get_info", instrumentation.ServiceYouTube, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			client, err := sc.YouTubeClient()
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return handleGetInfo(ctx, client)
		}))

	// List videos tool
	listVideosTool := mcp.NewTool("channel_list_videos",
		mcp.WithDescription("List the channel's most recent uploads with view, like, and comment counts"),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum number of videos to return (1-50, default: 10)"),
		),
	)

	s.AddTool(listVideosTool, common.InstrumentedToolHandlerWithService(
		"channel_list_videos", instrumentation.ServiceYouTube, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			client, err := sc.YouTubeClient()
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return handleListVideos(ctx, request.GetArguments(), client)
		}))

	// List playlists tool
	listPlaylistsTool := mcp.NewTool("channel_list_playlists",
		mcp.WithDescription("List the playlists owned by the channel"),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum number of playlists to return (1-50, default: 10)"),
		),
	)

	s.AddTool(listPlaylistsTool, common.InstrumentedToolHandlerWithService(
		"channel_list_playlists", instrumentation.ServiceYouTube, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			client, err := sc.YouTubeClient()
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return handleListPlaylists(ctx, request.GetArguments(), client)
		}))

	// Register video tools
	if err := RegisterVideoTools(s, sc); err != nil {
		return fmt.Errorf("failed to register video tools: %w", err)
	}

	return nil
}

func handleGetInfo(ctx context.Context, client dataClient) (*mcp.CallToolResult, error) {
	info, err := client.MyChannel(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get channel info: %v", err)), nil
	}

	slog.Debug("channel resolved", logging.OwnerHash(info.ID))

	subscribers := format.Count(info.Subscribers)
	if info.HiddenSubscribers {
		subscribers = "hidden"
	}

	pairs := [][2]string{
		{"ID", info.ID},
		{"Subscribers", subscribers},
		{"Views", format.Count(info.Views)},
		{"Videos", format.Count(info.Videos)},
	}
	if info.CustomURL != "" {
		pairs = append(pairs, [2]string{"Custom URL", info.CustomURL})
	}
	if info.Country != "" {
		pairs = append(pairs, [2]string{"Country", info.Country})
	}
	if info.PublishedAt != "" {
		pairs = append(pairs, [2]string{"Created", info.PublishedAt})
	}

	result := fmt.Sprintf("Channel: %s\n\n%s", info.Title, format.KV(pairs))
	if info.Description != "" {
		result += fmt.Sprintf("\nDescription:\n%s\n", info.Description)
	}

	return mcp.NewToolResultText(result), nil
}

func handleListVideos(ctx context.Context, args map[string]interface{}, client dataClient) (*mcp.CallToolResult, error) {
	maxResults := maxResultsFromArgs(args, 10, 50)

	videos, err := client.RecentUploads(ctx, maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list videos: %v", err)), nil
	}

	if len(videos) == 0 {
		return mcp.NewToolResultText("No videos found. The channel has no uploads yet."), nil
	}

	result := fmt.Sprintf("Found %d video(s):\n\n", len(videos))
	for i, v := range videos {
		result += formatVideoEntry(i+1, v)
	}

	return mcp.NewToolResultText(result), nil
}

func handleListPlaylists(ctx context.Context, args map[string]interface{}, client dataClient) (*mcp.CallToolResult, error) {
	maxResults := maxResultsFromArgs(args, 10, 50)

	playlists, err := client.Playlists(ctx, maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list playlists: %v", err)), nil
	}

	if len(playlists) == 0 {
		return mcp.NewToolResultText("No playlists found."), nil
	}

	result := fmt.Sprintf("Found %d playlist(s):\n\n", len(playlists))
	for i, p := range playlists {
		result += fmt.Sprintf("%d. %s\n", i+1, p.Title)
		result += fmt.Sprintf("   ID: %s\n", p.ID)
		result += fmt.Sprintf("   Videos: %s\n", format.Count(p.ItemCount))
		if p.PrivacyStatus != "" && p.PrivacyStatus != "public" {
			result += fmt.Sprintf("   Privacy: %s\n", p.PrivacyStatus)
		}
		result += "\n"
	}

	return mcp.NewToolResultText(result), nil
}

// formatVideoEntry renders one video as a numbered list entry.
func formatVideoEntry(n int, v youtube.VideoInfo) string {
	result := fmt.Sprintf("%d. %s\n", n, v.Title)
	result += fmt.Sprintf("   ID: %s\n", v.ID)
	if v.PublishedAt != "" {
		result += fmt.Sprintf("   Published: %s\n", v.PublishedAt)
	}
	if v.Duration > 0 {
		result += fmt.Sprintf("   Duration: %s\n", format.Seconds(v.Duration.Seconds()))
	}
	result += fmt.Sprintf("   Views: %s  Likes: %s  Comments: %s\n",
		format.Count(v.Views), format.Count(v.Likes), format.Count(v.Comments))
	if v.PrivacyStatus != "" && v.PrivacyStatus != "public" {
		result += fmt.Sprintf("   Privacy: %s\n", v.PrivacyStatus)
	}
	return result + "\n"
}
