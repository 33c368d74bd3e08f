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

// RegisterAudienceTools registers audience breakdown report tools
func RegisterAudienceTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Demographics tool
	demographicsTool := mcp.NewTool("report_audience_demographics",
		mcp.WithDescription("Viewer share by age group and gender"),
		mcp.WithString("start_date",
			mcp.Description("Start date YYYY-MM-DD (default: 28 days ago)"),
		),
		mcp.WithString("end_date",
			mcp.Description("End date YYYY-MM-DD (default: yesterday)"),
		),
	)

	s.AddTool(demographicsTool, common.InstrumentedToolHandlerWithService(
		"report_audience_demographics", instrumentation.ServiceAnalytics, instrumentation.OperationQuery, sc,
		withClient(sc, handleDemographics)))

	// Geography tool
	geographyTool := mcp.NewTool("report_geography",
		mcp.WithDescription("Top countries by views"),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum number of countries to return (1-200, default: 25)"),
		),
		mcp.WithString("start_date",
			mcp.Description("Start date YYYY-MM-DD (default: 28 days ago)"),
		),
		mcp.WithString("end_date",
			mcp.Description("End date YYYY-MM-DD (default: yesterday)"),
		),
	)

	s.AddTool(geographyTool, common.InstrumentedToolHandlerWithService(
		"report_geography", instrumentation.ServiceAnalytics, instrumentation.OperationQuery, sc,
		withClient(sc, handleGeography)))

	// Device types tool
	deviceTypesTool := mcp.NewTool("report_device_types",
		mcp.WithDescription("Views by device category (mobile, desktop, TV, tablet, game console)"),
		mcp.WithString("start_date",
			mcp.Description("Start date YYYY-MM-DD (default: 28 days ago)"),
		),
		mcp.WithString("end_date",
			mcp.Description("End date YYYY-MM-DD (default: yesterday)"),
		),
	)

	s.AddTool(deviceTypesTool, common.InstrumentedToolHandlerWithService(
		"report_device_types", instrumentation.ServiceAnalytics, instrumentation.OperationQuery, sc,
		withClient(sc, handleDeviceTypes)))

	// Operating systems tool
	operatingSystemsTool := mcp.NewTool("report_operating_systems",
		mcp.WithDescription("Views by viewer operating system"),
		mcp.WithString("start_date",
			mcp.Description("Start date YYYY-MM-DD (default: 28 days ago)"),
		),
		mcp.WithString("end_date",
			mcp.Description("End date YYYY-MM-DD (default: yesterday)"),
		),
	)

	s.AddTool(operatingSystemsTool, common.InstrumentedToolHandlerWithService(
		"report_operating_systems", instrumentation.ServiceAnalytics, instrumentation.OperationQuery, sc,
		withClient(sc, handleOperatingSystems)))

	// Subscription status tool
	subscriptionStatusTool := mcp.NewTool("report_subscription_status",
		mcp.WithDescription("Compare viewing by subscribed and unsubscribed viewers"),
		mcp.WithString("start_date",
			mcp.Description("Start date YYYY-MM-DD (default: 28 days ago)"),
		),
		mcp.WithString("end_date",
			mcp.Description("End date YYYY-MM-DD (default: yesterday)"),
		),
	)

	s.AddTool(subscriptionStatusTool, common.InstrumentedToolHandlerWithService(
		"report_subscription_status", instrumentation.ServiceAnalytics, instrumentation.OperationQuery, sc,
		withClient(sc, handleSubscriptionStatus)))

	// Playback locations tool
	playbackLocationsTool := mcp.NewTool("report_playback_locations",
		mcp.WithDescription("Where playback happened: watch page, embedded players, channel page"),
		mcp.WithString("start_date",
			mcp.Description("Start date YYYY-MM-DD (default: 28 days ago)"),
		),
		mcp.WithString("end_date",
			mcp.Description("End date YYYY-MM-DD (default: yesterday)"),
		),
	)

	s.AddTool(playbackLocationsTool, common.InstrumentedToolHandlerWithService(
		"report_playback_locations", instrumentation.ServiceAnalytics, instrumentation.OperationQuery, sc,
		withClient(sc, handlePlaybackLocations)))

	return nil
}

func handleDemographics(ctx context.Context, args map[string]interface{}, client reportClient, metrics *instrumentation.Metrics) (*mcp.CallToolResult, error) {
	start, end, err := dateRange(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := client.Demographics(ctx, start, end)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get demographics: %v", err)), nil
	}
	recordRows(ctx, metrics, "report_audience_demographics", report)

	return mcp.NewToolResultText(renderReport("Audience demographics", start, end, report)), nil
}

func handleGeography(ctx context.Context, args map[string]interface{}, client reportClient, metrics *instrumentation.Metrics) (*mcp.CallToolResult, error) {
	start, end, err := dateRange(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	maxResults := maxResultsFromArgs(args, 25, 200)

	report, err := client.Geography(ctx, start, end, maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get geography: %v", err)), nil
	}
	recordRows(ctx, metrics, "report_geography", report)

	return mcp.NewToolResultText(renderReport("Top countries", start, end, report)), nil
}

func handleDeviceTypes(ctx context.Context, args map[string]interface{}, client reportClient, metrics *instrumentation.Metrics) (*mcp.CallToolResult, error) {
	start, end, err := dateRange(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := client.DeviceTypes(ctx, start, end)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get device types: %v", err)), nil
	}
	recordRows(ctx, metrics, "report_device_types", report)

	return mcp.NewToolResultText(renderReport("Device types", start, end, report)), nil
}

func handleOperatingSystems(ctx context.Context, args map[string]interface{}, client reportClient, metrics *instrumentation.Metrics) (*mcp.CallToolResult, error) {
	start, end, err := dateRange(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := client.OperatingSystems(ctx, start, end)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get operating systems: %v", err)), nil
	}
	recordRows(ctx, metrics, "report_operating_systems", report)

	return mcp.NewToolResultText(renderReport("Operating systems", start, end, report)), nil
}

func handleSubscriptionStatus(ctx context.Context, args map[string]interface{}, client reportClient, metrics *instrumentation.Metrics) (*mcp.CallToolResult, error) {
	start, end, err := dateRange(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := client.SubscriptionStatus(ctx, start, end)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get subscription status: %v", err)), nil
	}
	recordRows(ctx, metrics, "report_subscription_status", report)

	return mcp.NewToolResultText(renderReport("Subscription status", start, end, report)), nil
}

func handlePlaybackLocations(ctx context.Context, args map[string]interface{}, client reportClient, metrics *instrumentation.Metrics) (*mcp.CallToolResult, error) {
	start, end, err := dateRange(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := client.PlaybackLocations(ctx, start, end)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get playback locations: %v", err)), nil
	}
	recordRows(ctx, metrics, "report_playback_locations", report)

	return mcp.NewToolResultText(renderReport("Playback locations", start, end, report)), nil
}
