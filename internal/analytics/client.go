package analytics

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	youtubeanalytics "google.golang.org/api/youtubeanalytics/v2"

	"github.com/teemow/tubemetrics/internal/google"
	"github.com/teemow/tubemetrics/internal/quota"
)

// ownerChannel scopes every report to the channel that owns the OAuth
// session. Content-owner reports are out of scope.
const ownerChannel = "channel==MINE"

// Client wraps the YouTube Analytics service
type Client struct {
	svc   *youtubeanalytics.Service
	guard *quota.Guard
}

// NewClient creates a new Analytics client authenticated by the session manager.
// The session manager owns token refresh; this client never touches tokens directly.
func NewClient(ctx context.Context, session *google.SessionManager, guard *quota.Guard) (*Client, error) {
	if session == nil {
		return nil, fmt.Errorf("session manager cannot be nil")
	}

	httpClient, err := session.HTTPClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticated HTTP client: %w", err)
	}

	svc, err := youtubeanalytics.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube Analytics service: %w", err)
	}

	if guard == nil {
		guard = quota.NewDefaultGuard()
	}

	return &Client{svc: svc, guard: guard}, nil
}

// Query describes a single Analytics reports request. StartDate and
// EndDate are YYYY-MM-DD. Metrics is required; everything else is
// optional and omitted from the request when empty.
type Query struct {
	StartDate  string
	EndDate    string
	Metrics    []string
	Dimensions []string
	Filters    string
	Sort       string
	MaxResults int64
}

// Column describes one column of a report result table. Type is the
// API's data type for the column (STRING, INTEGER, FLOAT).
type Column struct {
	Name string
	Type string
}

// Report is a decoded Analytics result table. Rows may be empty when
// the channel has no data for the requested range.
type Report struct {
	Columns []Column
	Rows    [][]interface{}
}

// ColumnNames returns the report's column names in order.
func (r *Report) ColumnNames() []string {
	names := make([]string, 0, len(r.Columns))
	for _, c := range r.Columns {
		names = append(names, c.Name)
	}
	return names
}

// ColumnTypes returns the API data type of each column, in column order.
func (r *Report) ColumnTypes() []string {
	types := make([]string, 0, len(r.Columns))
	for _, c := range r.Columns {
		types = append(types, c.Type)
	}
	return types
}

// Run executes a reports query for the session's channel and decodes
// the result table. The call is rate-limited and retried through the
// quota guard.
func (c *Client) Run(ctx context.Context, q Query) (*Report, error) {
	if len(q.Metrics) == 0 {
		return nil, fmt.Errorf("analytics query requires at least one metric")
	}
	if q.StartDate == "" || q.EndDate == "" {
		return nil, fmt.Errorf("analytics query requires a start and end date")
	}

	call := c.svc.Reports.Query().
		Ids(ownerChannel).
		StartDate(q.StartDate).
		EndDate(q.EndDate).
		Metrics(strings.Join(q.Metrics, ","))

	if len(q.Dimensions) > 0 {
		call = call.Dimensions(strings.Join(q.Dimensions, ","))
	}
	if q.Filters != "" {
		call = call.Filters(q.Filters)
	}
	if q.Sort != "" {
		call = call.Sort(q.Sort)
	}
	if q.MaxResults > 0 {
		call = call.MaxResults(q.MaxResults)
	}

	var resp *youtubeanalytics.QueryResponse
	err := c.guard.Do(ctx, func() error {
		var callErr error
		resp, callErr = call.Context(ctx).Do()
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("analytics query failed: %w", err)
	}

	report := &Report{Rows: resp.Rows}
	for _, h := range resp.ColumnHeaders {
		report.Columns = append(report.Columns, Column{Name: h.Name, Type: h.DataType})
	}
	return report, nil
}
