package report_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/tubemetrics/internal/instrumentation"
	"github.com/teemow/tubemetrics/internal/server"
	"github.com/teemow/tubemetrics/internal/tools/common"
)

// RegisterEngagementTools registers discovery and engagement report tools
func RegisterEngagementTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Traffic sources tool
	trafficSourcesTool := mcp.NewTool("report_traffic_sources",
		mcp.WithDescription("How viewers found the channel's videos: search, suggested, external, browse features"),
		mcp.WithString("start_date",
			mcp.Description("Start date YYYY-MM-DD (default: 28 days ago)"),
		),
		mcp.WithString("end_date",
			mcp.Description("End date YYYY-MM-DD (default: yesterday)"),
		),
	)

	s.AddTool(trafficSourcesTool, common.InstrumentedToolHandlerWithService(
		"report_traffic_sources", instrumentation.ServiceAnalytics, instrumentation.OperationQuery, sc,
		withClient(sc, handleTrafficSources)))

	// Search terms tool
	searchTermsTool := mcp.NewTool("report_search_terms",
		mcp.WithDescription("YouTube search terms that led viewers to the channel's videos"),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum number of terms to return (1-200, default: 25)"),
		),
		mcp.WithString("start_date",
			mcp.Description("Start date YYYY-MM-DD (default: 28 days ago)"),
		),
		mcp.WithString("end_date",
			mcp.Description("End date YYYY-MM-DD (default: yesterday)"),
		),
	)

	s.AddTool(searchTermsTool, common.InstrumentedToolHandlerWithService(
		"report_search_terms", instrumentation.ServiceAnalytics, instrumentation.OperationQuery, sc,
		withClient(sc, handleSearchTerms)))

	// Sharing services tool
	sharingServicesTool := mcp.NewTool("report_sharing_services",
		mcp.WithDescription("Which services viewers used to share the channel's videos"),
		mcp.WithString("start_date",
			mcp.Description("Start date YYYY-MM-DD (default: 28 days ago)"),
		),
		mcp.WithString("end_date",
			mcp.Description("End date YYYY-MM-DD (default: yesterday)"),
		),
	)

	s.AddTool(sharingServicesTool, common.InstrumentedToolHandlerWithService(
		"report_sharing_services", instrumentation.ServiceAnalytics, instrumentation.OperationQuery, sc,
		withClient(sc, handleSharingServices)))

	// Audience retention tool
	audienceRetentionTool := mcp.NewTool("report_audience_retention",
		mcp.WithDescription("The organic audience retention curve of a single video, by elapsed share of its length"),
		mcp.WithString("video_id",
			mcp.Required(),
			mcp.Description("Video ID"),
		),
		mcp.WithString("start_date",
			mcp.Description("Start date YYYY-MM-DD (default: 28 days ago)"),
		),
		mcp.WithString("end_date",
			mcp.Description("End date YYYY-MM-DD (default: yesterday)"),
		),
	)

	s.AddTool(audienceRetentionTool, common.InstrumentedToolHandlerWithService(
		"report_audience_retention", instrumentation.ServiceAnalytics, instrumentation.OperationQuery, sc,
		withClient(sc, handleAudienceRetention)))

	// Live vs on demand tool
	liveVsOnDemandTool := mcp.NewTool("report_live_vs_on_demand",
		mcp.WithDescription("Compare live stream and on-demand viewing"),
		mcp.WithString("start_date",
			mcp.Description("Start date YYYY-MM-DD (default: 28 days ago)"),
		),
		mcp.WithString("end_date",
			mcp.Description("End date YYYY-MM-DD (default: yesterday)"),
		),
	)

	s.AddTool(liveVsOnDemandTool, common.InstrumentedToolHandlerWithService(
		"report_live_vs_on_demand", instrumentation.ServiceAnalytics, instrumentation.OperationQuery, sc,
		withClient(sc, handleLiveVsOnDemand)))

	// Card performance tool
	cardPerformanceTool := mcp.NewTool("report_card_performance",
		mcp.WithDescription("Info card impressions, clicks, and click rates"),
		mcp.WithString("start_date",
			mcp.Description("Start date YYYY-MM-DD (default: 28 days ago)"),
		),
		mcp.WithString("end_date",
			mcp.Description("End date YYYY-MM-DD (default: yesterday)"),
		),
	)

	s.AddTool(cardPerformanceTool, common.InstrumentedToolHandlerWithService(
		"report_card_performance", instrumentation.ServiceAnalytics, instrumentation.OperationQuery, sc,
		withClient(sc, handleCardPerformance)))

	// Playlist summary tool
	playlistSummaryTool := mcp.NewTool("report_playlist_summary",
		mcp.WithDescription("Viewing totals for a single playlist: views, watch time, playlist starts"),
		mcp.WithString("playlist_id",
			mcp.Required(),
			mcp.Description("Playlist ID"),
		),
		mcp.WithString("start_date",
			mcp.Description("Start date YYYY-MM-DD (default: 28 days ago)"),
		),
		mcp.WithString("end_date",
			mcp.Description("End date YYYY-MM-DD (default: yesterday)"),
		),
	)

	s.AddTool(playlistSummaryTool, common.InstrumentedToolHandlerWithService(
		"report_playlist_summary", instrumentation.ServiceAnalytics, instrumentation.OperationQuery, sc,
		withClient(sc, handlePlaylistSummary)))

	return nil
}

func handleTrafficSources(ctx context.Context, args map[string]interface{}, client reportClient, metrics *instrumentation.Metrics) (*mcp.CallToolResult, error) {
	start, end, err := dateRange(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := client.TrafficSources(ctx, start, end)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get traffic sources: %v", err)), nil
	}
	recordRows(ctx, metrics, "report_traffic_sources", report)

	return mcp.NewToolResultText(renderReport("Traffic sources", start, end, report)), nil
}

func handleSearchTerms(ctx context.Context, args map[string]interface{}, client reportClient, metrics *instrumentation.Metrics) (*mcp.CallToolResult, error) {
	start, end, err := dateRange(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	maxResults := maxResultsFromArgs(args, 25, 200)

	report, err := client.SearchTerms(ctx, start, end, maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get search terms: %v", err)), nil
	}
	recordRows(ctx, metrics, "report_search_terms", report)

	return mcp.NewToolResultText(renderReport("Search terms", start, end, report)), nil
}

func handleSharingServices(ctx context.Context, args map[string]interface{}, client reportClient, metrics *instrumentation.Metrics) (*mcp.CallToolResult, error) {
	start, end, err := dateRange(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := client.SharingServices(ctx, start, end)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get sharing services: %v", err)), nil
	}
	recordRows(ctx, metrics, "report_sharing_services", report)

	return mcp.NewToolResultText(renderReport("Sharing services", start, end, report)), nil
}

func handleAudienceRetention(ctx context.Context, args map[string]interface{}, client reportClient, metrics *instrumentation.Metrics) (*mcp.CallToolResult, error) {
	videoID, ok := args["video_id"].(string)
	if !ok || videoID == "" {
		return mcp.NewToolResultError("video_id is required"), nil
	}
	start, end, err := dateRange(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := client.AudienceRetention(ctx, videoID, start, end)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get audience retention: %v", err)), nil
	}
	recordRows(ctx, metrics, "report_audience_retention", report)

	heading := fmt.Sprintf("Audience retention for %s", videoID)
	return mcp.NewToolResultText(renderReport(heading, start, end, report)), nil
}

func handleLiveVsOnDemand(ctx context.Context, args map[string]interface{}, client reportClient, metrics *instrumentation.Metrics) (*mcp.CallToolResult, error) {
	start, end, err := dateRange(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := client.LiveVsOnDemand(ctx, start, end)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get live vs on-demand report: %v", err)), nil
	}
	recordRows(ctx, metrics, "report_live_vs_on_demand", report)

	return mcp.NewToolResultText(renderReport("Live vs on-demand", start, end, report)), nil
}

func handleCardPerformance(ctx context.Context, args map[string]interface{}, client reportClient, metrics *instrumentation.Metrics) (*mcp.CallToolResult, error) {
	start, end, err := dateRange(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := client.CardPerformance(ctx, start, end)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get card performance: %v", err)), nil
	}
	recordRows(ctx, metrics, "report_card_performance", report)

	result := fmt.Sprintf("Card performance (%s to %s):\n\n%s", start, end, summaryKV(report))
	return mcp.NewToolResultText(result), nil
}

func handlePlaylistSummary(ctx context.Context, args map[string]interface{}, client reportClient, metrics *instrumentation.Metrics) (*mcp.CallToolResult, error) {
	playlistID, ok := args["playlist_id"].(string)
	if !ok || playlistID == "" {
		return mcp.NewToolResultError("playlist_id is required"), nil
	}
	start, end, err := dateRange(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := client.PlaylistSummary(ctx, playlistID, start, end)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get playlist summary: %v", err)), nil
	}
	recordRows(ctx, metrics, "report_playlist_summary", report)

	result := fmt.Sprintf("Playlist %s (%s to %s):\n\n%s", playlistID, start, end, summaryKV(report))
	return mcp.NewToolResultText(result), nil
}
