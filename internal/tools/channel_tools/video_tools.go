package channel_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/tubemetrics/internal/instrumentation"
	"github.com/teemow/tubemetrics/internal/server"
	"github.com/teemow/tubemetrics/internal/tools/batch"
	"github.com/teemow/tubemetrics/internal/tools/common"
	"github.com/teemow/tubemetrics/internal/youtube"
)

// RegisterVideoTools registers video lookup and search tools with the MCP server
func RegisterVideoTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Video details tool
	getDetailsTool := mcp.NewTool("video_get_details",
		mcp.WithDescription("Get metadata and statistics for one or more videos: title, duration, privacy, views, likes, comments, tags"),
		mcp.WithString("video_ids",
			mcp.Required(),
			mcp.Description("Video ID (string) or array of video IDs"),
		),
	)

	s.AddTool(getDetailsTool, common.InstrumentedToolHandlerWithService(
		"video_get_details", instrumentation.ServiceYouTube, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			client, err := sc.YouTubeClient()
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return handleGetDetails(ctx, request.GetArguments(), client)
		}))

	// Video search tool
	searchTool := mcp.NewTool("video_search",
		mcp.WithDescription("Search within the channel's own videos by keyword"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search query"),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum number of videos to return (1-50, default: 10)"),
		),
	)

	s.AddTool(searchTool, common.InstrumentedToolHandlerWithService(
		"video_search", instrumentation.ServiceYouTube, instrumentation.OperationSearch, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			client, err := sc.YouTubeClient()
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return handleSearch(ctx, request.GetArguments(), client)
		}))

	return nil
}

func handleGetDetails(ctx context.Context, args map[string]interface{}, client dataClient) (*mcp.CallToolResult, error) {
	ids, err := batch.ParseStringOrArray(args["video_ids"], "video_ids")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	videos, err := client.Videos(ctx, ids)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get video details: %v", err)), nil
	}

	// The API silently drops unknown IDs; report them explicitly.
	found := make(map[string]bool, len(videos))
	for _, v := range videos {
		found[v.ID] = true
	}
	var missing []string
	for _, id := range ids {
		if !found[id] {
			missing = append(missing, id)
		}
	}

	result := fmt.Sprintf("Found %d of %d video(s):\n\n", len(videos), len(ids))
	for i, v := range videos {
		result += formatVideoDetails(i+1, v)
	}
	if len(missing) > 0 {
		result += "Not found:\n"
		for _, id := range missing {
			result += fmt.Sprintf("  - %s\n", id)
		}
	}

	return mcp.NewToolResultText(result), nil
}

func handleSearch(ctx context.Context, args map[string]interface{}, client dataClient) (*mcp.CallToolResult, error) {
	query, ok := args["query"].(string)
	if !ok || query == "" {
		return mcp.NewToolResultError("query is required"), nil
	}
	maxResults := maxResultsFromArgs(args, 10, 50)

	videos, err := client.SearchMyVideos(ctx, query, maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to search videos: %v", err)), nil
	}

	if len(videos) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No videos matched %q.", query)), nil
	}

	result := fmt.Sprintf("Found %d video(s) matching %q:\n\n", len(videos), query)
	for i, v := range videos {
		result += formatVideoEntry(i+1, v)
	}

	return mcp.NewToolResultText(result), nil
}

// formatVideoDetails renders one video including description and tags.
func formatVideoDetails(n int, v youtube.VideoInfo) string {
	result := formatVideoEntry(n, v)
	body := ""
	if v.Description != "" {
		body += fmt.Sprintf("   Description: %s\n", truncate(v.Description, 200))
	}
	if len(v.Tags) > 0 {
		body += fmt.Sprintf("   Tags: %s\n", strings.Join(v.Tags, ", "))
	}
	if body == "" {
		return result
	}
	// formatVideoEntry ends with a blank line; insert before it.
	return strings.TrimSuffix(result, "\n") + body + "\n"
}

// truncate shortens long free-form text for list output.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
