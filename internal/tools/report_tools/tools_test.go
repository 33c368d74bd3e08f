package report_tools

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/tubemetrics/internal/analytics"
)

// fakeReportClient implements reportClient, recording the last call.
type fakeReportClient struct {
	report *analytics.Report
	err    error

	lastMethod     string
	lastStart      string
	lastEnd        string
	lastMetrics    []string
	lastMaxResults int64
	lastID         string
}

func (f *fakeReportClient) call(method, start, end string) (*analytics.Report, error) {
	f.lastMethod = method
	f.lastStart = start
	f.lastEnd = end
	return f.report, f.err
}

func (f *fakeReportClient) ChannelSummary(ctx context.Context, start, end string) (*analytics.Report, error) {
	return f.call("ChannelSummary", start, end)
}

func (f *fakeReportClient) DailySeries(ctx context.Context, start, end string, metrics []string) (*analytics.Report, error) {
	f.lastMetrics = metrics
	return f.call("DailySeries", start, end)
}

func (f *fakeReportClient) MonthlySeries(ctx context.Context, start, end string, metrics []string) (*analytics.Report, error) {
	f.lastMetrics = metrics
	return f.call("MonthlySeries", start, end)
}

func (f *fakeReportClient) TopVideos(ctx context.Context, start, end string, maxResults int64) (*analytics.Report, error) {
	f.lastMaxResults = maxResults
	return f.call("TopVideos", start, end)
}

func (f *fakeReportClient) VideoSummary(ctx context.Context, videoID, start, end string) (*analytics.Report, error) {
	f.lastID = videoID
	return f.call("VideoSummary", start, end)
}

func (f *fakeReportClient) Demographics(ctx context.Context, start, end string) (*analytics.Report, error) {
	return f.call("Demographics", start, end)
}

func (f *fakeReportClient) Geography(ctx context.Context, start, end string, maxResults int64) (*analytics.Report, error) {
	f.lastMaxResults = maxResults
	return f.call("Geography", start, end)
}

func (f *fakeReportClient) TrafficSources(ctx context.Context, start, end string) (*analytics.Report, error) {
	return f.call("TrafficSources", start, end)
}

func (f *fakeReportClient) SearchTerms(ctx context.Context, start, end string, maxResults int64) (*analytics.Report, error) {
	f.lastMaxResults = maxResults
	return f.call("SearchTerms", start, end)
}

func (f *fakeReportClient) DeviceTypes(ctx context.Context, start, end string) (*analytics.Report, error) {
	return f.call("DeviceTypes", start, end)
}

func (f *fakeReportClient) OperatingSystems(ctx context.Context, start, end string) (*analytics.Report, error) {
	return f.call("OperatingSystems", start, end)
}

func (f *fakeReportClient) PlaybackLocations(ctx context.Context, start, end string) (*analytics.Report, error) {
	return f.call("PlaybackLocations", start, end)
}

func (f *fakeReportClient) SubscriptionStatus(ctx context.Context, start, end string) (*analytics.Report, error) {
	return f.call("SubscriptionStatus", start, end)
}

func (f *fakeReportClient) SharingServices(ctx context.Context, start, end string) (*analytics.Report, error) {
	return f.call("SharingServices", start, end)
}

func (f *fakeReportClient) AudienceRetention(ctx context.Context, videoID, start, end string) (*analytics.Report, error) {
	f.lastID = videoID
	return f.call("AudienceRetention", start, end)
}

func (f *fakeReportClient) LiveVsOnDemand(ctx context.Context, start, end string) (*analytics.Report, error) {
	return f.call("LiveVsOnDemand", start, end)
}

func (f *fakeReportClient) CardPerformance(ctx context.Context, start, end string) (*analytics.Report, error) {
	return f.call("CardPerformance", start, end)
}

func (f *fakeReportClient) RevenueSummary(ctx context.Context, start, end string) (*analytics.Report, error) {
	return f.call("RevenueSummary", start, end)
}

func (f *fakeReportClient) RevenueByDay(ctx context.Context, start, end string) (*analytics.Report, error) {
	return f.call("RevenueByDay", start, end)
}

func (f *fakeReportClient) AdPerformance(ctx context.Context, start, end string) (*analytics.Report, error) {
	return f.call("AdPerformance", start, end)
}

func (f *fakeReportClient) PlaylistSummary(ctx context.Context, playlistID, start, end string) (*analytics.Report, error) {
	f.lastID = playlistID
	return f.call("PlaylistSummary", start, end)
}

// viewsReport is a small two-day report used across tests.
func viewsReport() *analytics.Report {
	return &analytics.Report{
		Columns: []analytics.Column{
			{Name: "day", Type: "STRING"},
			{Name: "views", Type: "INTEGER"},
		},
		Rows: [][]interface{}{
			{"2026-01-01", float64(1200)},
			{"2026-01-02", float64(1350)},
		},
	}
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

func TestDateRange(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]interface{}
		want    [2]string
		wantErr bool
	}{
		{
			name: "explicit range",
			args: map[string]interface{}{
				"start_date": "2026-01-01",
				"end_date":   "2026-01-31",
			},
			want: [2]string{"2026-01-01", "2026-01-31"},
		},
		{
			name: "single day",
			args: map[string]interface{}{
				"start_date": "2026-01-15",
				"end_date":   "2026-01-15",
			},
			want: [2]string{"2026-01-15", "2026-01-15"},
		},
		{
			name: "invalid start date",
			args: map[string]interface{}{
				"start_date": "January 1st",
				"end_date":   "2026-01-31",
			},
			wantErr: true,
		},
		{
			name: "invalid end date",
			args: map[string]interface{}{
				"start_date": "2026-01-01",
				"end_date":   "2026-13-45",
			},
			wantErr: true,
		},
		{
			name: "start after end",
			args: map[string]interface{}{
				"start_date": "2026-02-01",
				"end_date":   "2026-01-01",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := dateRange(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("dateRange() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if start != tt.want[0] || end != tt.want[1] {
				t.Errorf("dateRange() = (%s, %s), want (%s, %s)", start, end, tt.want[0], tt.want[1])
			}
		})
	}
}

func TestDateRange_Defaults(t *testing.T) {
	start, end, err := dateRange(map[string]interface{}{})
	if err != nil {
		t.Fatalf("dateRange() error = %v", err)
	}
	if start == "" || end == "" {
		t.Fatal("default range should not be empty")
	}
	if start > end {
		t.Errorf("default range inverted: %s > %s", start, end)
	}
}

func TestMaxResultsFromArgs(t *testing.T) {
	args := map[string]interface{}{"max_results": float64(500)}
	if got := maxResultsFromArgs(args, 25, 200); got != 200 {
		t.Errorf("maxResultsFromArgs() = %d, want clamp to 200", got)
	}
	if got := maxResultsFromArgs(map[string]interface{}{}, 25, 200); got != 25 {
		t.Errorf("maxResultsFromArgs() = %d, want default 25", got)
	}
}

func TestSummaryKV(t *testing.T) {
	report := &analytics.Report{
		Columns: []analytics.Column{
			{Name: "views", Type: "INTEGER"},
			{Name: "estimatedMinutesWatched", Type: "INTEGER"},
			{Name: "averageViewDuration", Type: "INTEGER"},
		},
		Rows: [][]interface{}{
			{float64(123456), float64(5000), float64(272)},
		},
	}

	out := summaryKV(report)
	for _, want := range []string{
		"Views:",
		"123,456",
		"Estimated Minutes Watched:",
		"3d 11h 20m",
		"Average View Duration:",
		"4m 32s",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summaryKV() missing %q, got:\n%s", want, out)
		}
	}
}

func TestSummaryKV_Empty(t *testing.T) {
	report := &analytics.Report{
		Columns: []analytics.Column{{Name: "views", Type: "INTEGER"}},
	}
	if !strings.Contains(summaryKV(report), "No data returned") {
		t.Error("empty report should render the no-data message")
	}
}

func TestRecordRows_NilMetrics(t *testing.T) {
	// Metrics are nil when instrumentation is disabled.
	recordRows(context.Background(), nil, "report_channel_summary", viewsReport())
}

func TestRenderReport(t *testing.T) {
	out := renderReport("Daily metrics", "2026-01-01", "2026-01-02", viewsReport())
	for _, want := range []string{
		"Daily metrics (2026-01-01 to 2026-01-02):",
		"| Day ",
		"| Views ",
		"2026-01-01",
		"1,200",
		"1,350",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("renderReport() missing %q, got:\n%s", want, out)
		}
	}
}
