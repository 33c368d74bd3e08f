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

// RegisterRevenueTools registers monetization report tools. They require
// the monetary readonly scope and return errors on non-monetized channels.
func RegisterRevenueTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Revenue summary tool
	revenueSummaryTool := mcp.NewTool("revenue_summary",
		mcp.WithDescription("Estimated revenue totals and the daily revenue series. Requires a monetized channel."),
		mcp.WithString("start_date",
			mcp.Description("Start date YYYY-MM-DD (default: 28 days ago)"),
		),
		mcp.WithString("end_date",
			mcp.Description("End date YYYY-MM-DD (default: yesterday)"),
		),
	)

	s.AddTool(revenueSummaryTool, common.InstrumentedToolHandlerWithService(
		"revenue_summary", instrumentation.ServiceAnalytics, instrumentation.OperationQuery, sc,
		withClient(sc, handleRevenueSummary)))

	// Ad performance tool
	adPerformanceTool := mcp.NewTool("revenue_ad_performance",
		mcp.WithDescription("Gross revenue, ad impressions, and CPM by ad type. Requires a monetized channel."),
		mcp.WithString("start_date",
			mcp.Description("Start date YYYY-MM-DD (default: 28 days ago)"),
		),
		mcp.WithString("end_date",
			mcp.Description("End date YYYY-MM-DD (default: yesterday)"),
		),
	)

	s.AddTool(adPerformanceTool, common.InstrumentedToolHandlerWithService(
		"revenue_ad_performance", instrumentation.ServiceAnalytics, instrumentation.OperationQuery, sc,
		withClient(sc, handleAdPerformance)))

	return nil
}

func handleRevenueSummary(ctx context.Context, args map[string]interface{}, client reportClient, metrics *instrumentation.Metrics) (*mcp.CallToolResult, error) {
	start, end, err := dateRange(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	summary, err := client.RevenueSummary(ctx, start, end)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get revenue summary: %v", err)), nil
	}
	recordRows(ctx, metrics, "revenue_summary", summary)

	result := fmt.Sprintf("Revenue summary (%s to %s):\n\n%s", start, end, summaryKV(summary))

	// The daily breakdown is informative but secondary; a failure here
	// does not discard the totals.
	byDay, err := client.RevenueByDay(ctx, start, end)
	if err == nil {
		recordRows(ctx, metrics, "revenue_summary", byDay)
		result += "\nDaily revenue:\n\n" + renderReportTable(byDay)
	} else {
		result += fmt.Sprintf("\nDaily revenue unavailable: %v\n", err)
	}

	return mcp.NewToolResultText(result), nil
}

func handleAdPerformance(ctx context.Context, args map[string]interface{}, client reportClient, metrics *instrumentation.Metrics) (*mcp.CallToolResult, error) {
	start, end, err := dateRange(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := client.AdPerformance(ctx, start, end)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get ad performance: %v", err)), nil
	}
	recordRows(ctx, metrics, "revenue_ad_performance", report)

	return mcp.NewToolResultText(renderReport("Ad performance", start, end, report)), nil
}
