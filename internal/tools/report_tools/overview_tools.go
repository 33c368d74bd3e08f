package report_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/tubemetrics/internal/analytics"
	"github.com/teemow/tubemetrics/internal/instrumentation"
	"github.com/teemow/tubemetrics/internal/server"
	"github.com/teemow/tubemetrics/internal/tools/batch"
	"github.com/teemow/tubemetrics/internal/tools/common"
)

// defaultSeriesMetrics is used by the daily and monthly tools when the
// caller does not select metrics.
var defaultSeriesMetrics = []string{analytics.MetricViews, analytics.MetricMinutesWatched}

// RegisterOverviewTools registers channel and video overview report tools
func RegisterOverviewTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Channel summary tool
	channelSummaryTool := mcp.NewTool("report_channel_summary",
		mcp.WithDescription("Channel-wide engagement totals for a date range: views, watch time, average view duration, subscriber change, likes, comments, shares"),
		mcp.WithString("start_date",
			mcp.Description("Start date YYYY-MM-DD (default: 28 days ago)"),
		),
		mcp.WithString("end_date",
			mcp.Description("End date YYYY-MM-DD (default: yesterday)"),
		),
	)

	s.AddTool(channelSummaryTool, common.InstrumentedToolHandlerWithService(
		"report_channel_summary", instrumentation.ServiceAnalytics, instrumentation.OperationQuery, sc,
		withClient(sc, handleChannelSummary)))

	// Daily metrics tool
	dailyMetricsTool := mcp.NewTool("report_daily_metrics",
		mcp.WithDescription(fmt.Sprintf("Selected metrics broken down by day. Supported metrics: %s",
			strings.Join(analytics.TimeSeriesMetrics(), ", "))),
		mcp.WithString("metrics",
			mcp.Description("Metric name (string) or array of metric names (default: views, estimatedMinutesWatched)"),
		),
		mcp.WithString("start_date",
			mcp.Description("Start date YYYY-MM-DD (default: 28 days ago)"),
		),
		mcp.WithString("end_date",
			mcp.Description("End date YYYY-MM-DD (default: yesterday)"),
		),
	)

	s.AddTool(dailyMetricsTool, common.InstrumentedToolHandlerWithService(
		"report_daily_metrics", instrumentation.ServiceAnalytics, instrumentation.OperationQuery, sc,
		withClient(sc, handleDailyMetrics)))

	// Monthly metrics tool
	monthlyMetricsTool := mcp.NewTool("report_monthly_metrics",
		mcp.WithDescription(fmt.Sprintf("Selected metrics broken down by month. Dates are snapped to month boundaries. Supported metrics: %s",
			strings.Join(analytics.TimeSeriesMetrics(), ", "))),
		mcp.WithString("metrics",
			mcp.Description("Metric name (string) or array of metric names (default: views, estimatedMinutesWatched)"),
		),
		mcp.WithString("start_date",
			mcp.Description("Start date YYYY-MM-DD (default: 28 days ago)"),
		),
		mcp.WithString("end_date",
			mcp.Description("End date YYYY-MM-DD (default: yesterday)"),
		),
	)

	s.AddTool(monthlyMetricsTool, common.InstrumentedToolHandlerWithService(
		"report_monthly_metrics", instrumentation.ServiceAnalytics, instrumentation.OperationQuery, sc,
		withClient(sc, handleMonthlyMetrics)))

	// Top videos tool
	topVideosTool := mcp.NewTool("report_top_videos",
		mcp.WithDescription("The channel's most viewed videos in the date range"),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum number of videos to return (1-200, default: 10)"),
		),
		mcp.WithString("start_date",
			mcp.Description("Start date YYYY-MM-DD (default: 28 days ago)"),
		),
		mcp.WithString("end_date",
			mcp.Description("End date YYYY-MM-DD (default: yesterday)"),
		),
	)

	s.AddTool(topVideosTool, common.InstrumentedToolHandlerWithService(
		"report_top_videos", instrumentation.ServiceAnalytics, instrumentation.OperationQuery, sc,
		withClient(sc, handleTopVideos)))

	// Video summary tool
	videoSummaryTool := mcp.NewTool("report_video_summary",
		mcp.WithDescription("Engagement totals for one or more videos in the date range"),
		mcp.WithString("video_ids",
			mcp.Required(),
			mcp.Description("Video ID (string) or array of video IDs"),
		),
		mcp.WithString("start_date",
			mcp.Description("Start date YYYY-MM-DD (default: 28 days ago)"),
		),
		mcp.WithString("end_date",
			mcp.Description("End date YYYY-MM-DD (default: yesterday)"),
		),
	)

	s.AddTool(videoSummaryTool, common.InstrumentedToolHandlerWithService(
		"report_video_summary", instrumentation.ServiceAnalytics, instrumentation.OperationQuery, sc,
		withClient(sc, handleVideoSummary)))

	return nil
}

func handleChannelSummary(ctx context.Context, args map[string]interface{}, client reportClient, metrics *instrumentation.Metrics) (*mcp.CallToolResult, error) {
	start, end, err := dateRange(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := client.ChannelSummary(ctx, start, end)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get channel summary: %v", err)), nil
	}
	recordRows(ctx, metrics, "report_channel_summary", report)

	result := fmt.Sprintf("Channel summary (%s to %s):\n\n%s", start, end, summaryKV(report))
	return mcp.NewToolResultText(result), nil
}

// seriesMetricsFromArgs parses the optional metrics parameter for the
// time series tools.
func seriesMetricsFromArgs(args map[string]interface{}) ([]string, error) {
	if args["metrics"] == nil {
		return defaultSeriesMetrics, nil
	}
	return batch.ParseStringOrArray(args["metrics"], "metrics")
}

func handleDailyMetrics(ctx context.Context, args map[string]interface{}, client reportClient, metrics *instrumentation.Metrics) (*mcp.CallToolResult, error) {
	start, end, err := dateRange(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	selected, err := seriesMetricsFromArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := client.DailySeries(ctx, start, end, selected)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get daily metrics: %v", err)), nil
	}
	recordRows(ctx, metrics, "report_daily_metrics", report)

	return mcp.NewToolResultText(renderReport("Daily metrics", start, end, report)), nil
}

func handleMonthlyMetrics(ctx context.Context, args map[string]interface{}, client reportClient, metrics *instrumentation.Metrics) (*mcp.CallToolResult, error) {
	start, end, err := dateRange(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	selected, err := seriesMetricsFromArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := client.MonthlySeries(ctx, start, end, selected)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get monthly metrics: %v", err)), nil
	}
	recordRows(ctx, metrics, "report_monthly_metrics", report)

	return mcp.NewToolResultText(renderReport("Monthly metrics", start, end, report)), nil
}

func handleTopVideos(ctx context.Context, args map[string]interface{}, client reportClient, metrics *instrumentation.Metrics) (*mcp.CallToolResult, error) {
	start, end, err := dateRange(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	maxResults := maxResultsFromArgs(args, 10, 200)

	report, err := client.TopVideos(ctx, start, end, maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get top videos: %v", err)), nil
	}
	recordRows(ctx, metrics, "report_top_videos", report)

	return mcp.NewToolResultText(renderReport("Top videos", start, end, report)), nil
}

func handleVideoSummary(ctx context.Context, args map[string]interface{}, client reportClient, metrics *instrumentation.Metrics) (*mcp.CallToolResult, error) {
	ids, err := batch.ParseStringOrArray(args["video_ids"], "video_ids")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	start, end, err := dateRange(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	results := batch.ProcessBatch(ids, func(id string) (string, error) {
		report, err := client.VideoSummary(ctx, id, start, end)
		if err != nil {
			return "", err
		}
		recordRows(ctx, metrics, "report_video_summary", report)
		return fmt.Sprintf("Video %s (%s to %s):\n%s", id, start, end, summaryKV(report)), nil
	})

	return mcp.NewToolResultText(batch.FormatResults(results)), nil
}
