package report_tools

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/tubemetrics/internal/analytics"
	"github.com/teemow/tubemetrics/internal/format"
	"github.com/teemow/tubemetrics/internal/instrumentation"
	"github.com/teemow/tubemetrics/internal/server"
)

// reportClient is the slice of the Analytics client these tools use.
// *analytics.Client satisfies it.
type reportClient interface {
	ChannelSummary(ctx context.Context, startDate, endDate string) (*analytics.Report, error)
	DailySeries(ctx context.Context, startDate, endDate string, metrics []string) (*analytics.Report, error)
	MonthlySeries(ctx context.Context, startDate, endDate string, metrics []string) (*analytics.Report, error)
	TopVideos(ctx context.Context, startDate, endDate string, maxResults int64) (*analytics.Report, error)
	VideoSummary(ctx context.Context, videoID, startDate, endDate string) (*analytics.Report, error)
	Demographics(ctx context.Context, startDate, endDate string) (*analytics.Report, error)
	Geography(ctx context.Context, startDate, endDate string, maxResults int64) (*analytics.Report, error)
	TrafficSources(ctx context.Context, startDate, endDate string) (*analytics.Report, error)
	SearchTerms(ctx context.Context, startDate, endDate string, maxResults int64) (*analytics.Report, error)
	DeviceTypes(ctx context.Context, startDate, endDate string) (*analytics.Report, error)
	OperatingSystems(ctx context.Context, startDate, endDate string) (*analytics.Report, error)
	PlaybackLocations(ctx context.Context, startDate, endDate string) (*analytics.Report, error)
	SubscriptionStatus(ctx context.Context, startDate, endDate string) (*analytics.Report, error)
	SharingServices(ctx context.Context, startDate, endDate string) (*analytics.Report, error)
	AudienceRetention(ctx context.Context, videoID, startDate, endDate string) (*analytics.Report, error)
	LiveVsOnDemand(ctx context.Context, startDate, endDate string) (*analytics.Report, error)
	CardPerformance(ctx context.Context, startDate, endDate string) (*analytics.Report, error)
	RevenueSummary(ctx context.Context, startDate, endDate string) (*analytics.Report, error)
	RevenueByDay(ctx context.Context, startDate, endDate string) (*analytics.Report, error)
	AdPerformance(ctx context.Context, startDate, endDate string) (*analytics.Report, error)
	PlaylistSummary(ctx context.Context, playlistID, startDate, endDate string) (*analytics.Report, error)
}

// reportHandler is a tool handler with the analytics client and metrics
// already resolved.
type reportHandler func(ctx context.Context, args map[string]interface{}, client reportClient, metrics *instrumentation.Metrics) (*mcp.CallToolResult, error)

// withClient adapts a reportHandler to the MCP handler signature,
// resolving the Analytics client per call. The first call on a fresh
// install triggers the browser consent flow.
func withClient(sc *server.ServerContext, h reportHandler) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		client, err := sc.AnalyticsClient()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return h(ctx, request.GetArguments(), client, sc.Metrics())
	}
}

// RegisterReportTools registers all Analytics API tools with the MCP server
func RegisterReportTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	if err := RegisterOverviewTools(s, sc); err != nil {
		return fmt.Errorf("failed to register overview tools: %w", err)
	}
	if err := RegisterAudienceTools(s, sc); err != nil {
		return fmt.Errorf("failed to register audience tools: %w", err)
	}
	if err := RegisterEngagementTools(s, sc); err != nil {
		return fmt.Errorf("failed to register engagement tools: %w", err)
	}
	if err := RegisterRevenueTools(s, sc); err != nil {
		return fmt.Errorf("failed to register revenue tools: %w", err)
	}
	return nil
}

// dateRange extracts start_date and end_date, defaulting to the last 28
// days ending yesterday. Both bounds are validated as YYYY-MM-DD.
func dateRange(args map[string]interface{}) (start, end string, err error) {
	start, end = format.DefaultDateRange(time.Now())
	if v, ok := args["start_date"].(string); ok && v != "" {
		start = v
	}
	if v, ok := args["end_date"].(string); ok && v != "" {
		end = v
	}
	if _, perr := format.ParseDate(start); perr != nil {
		return "", "", fmt.Errorf("invalid start_date: %v", perr)
	}
	if _, perr := format.ParseDate(end); perr != nil {
		return "", "", fmt.Errorf("invalid end_date: %v", perr)
	}
	// YYYY-MM-DD compares correctly as a string.
	if start > end {
		return "", "", fmt.Errorf("start_date %s is after end_date %s", start, end)
	}
	return start, end, nil
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

// recordRows counts returned report rows when metrics are initialized.
func recordRows(ctx context.Context, metrics *instrumentation.Metrics, tool string, report *analytics.Report) {
	if metrics == nil {
		return
	}
	metrics.RecordReportRows(ctx, tool, len(report.Rows))
}

// renderReport renders a report as a date-ranged markdown table.
func renderReport(heading, start, end string, report *analytics.Report) string {
	return fmt.Sprintf("%s (%s to %s):\n\n%s", heading, start, end, renderReportTable(report))
}

// renderReportTable renders only the table portion of a report.
func renderReportTable(report *analytics.Report) string {
	return format.ReportTable(report.ColumnNames(), report.ColumnTypes(), report.Rows)
}

// summaryKV renders a single-row report as an aligned label/value block.
// Totals reports (channel, video, revenue, cards) come back as one row.
func summaryKV(report *analytics.Report) string {
	if len(report.Rows) == 0 {
		return "No data returned for this query and date range.\n"
	}
	names := report.ColumnNames()
	types := report.ColumnTypes()
	row := report.Rows[0]

	pairs := make([][2]string, 0, len(row))
	for i, v := range row {
		name, ctype := "", ""
		if i < len(names) {
			name = names[i]
		}
		if i < len(types) {
			ctype = types[i]
		}
		pairs = append(pairs, [2]string{format.Title(name), format.Cell(name, ctype, v)})
	}
	return format.KV(pairs)
}
