package report_tools

import (
	"context"
	"strings"
	"testing"

	"github.com/teemow/tubemetrics/internal/analytics"
)

func TestHandleTrafficSources(t *testing.T) {
	client := &fakeReportClient{
		report: &analytics.Report{
			Columns: []analytics.Column{
				{Name: "insightTrafficSourceType", Type: "STRING"},
				{Name: "views", Type: "INTEGER"},
			},
			Rows: [][]interface{}{
				{"YT_SEARCH", float64(4200)},
				{"RELATED_VIDEO", float64(3100)},
			},
		},
	}

	result, err := handleTrafficSources(context.Background(), map[string]interface{}{}, client, nil)
	if err != nil {
		t.Fatalf("handleTrafficSources() error = %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "Traffic sources") {
		t.Error("output missing heading")
	}
	if !strings.Contains(text, "YT_SEARCH") || !strings.Contains(text, "4,200") {
		t.Errorf("output missing rows, got:\n%s", text)
	}
}

func TestHandleSearchTerms_DefaultMaxResults(t *testing.T) {
	client := &fakeReportClient{report: viewsReport()}

	_, err := handleSearchTerms(context.Background(), map[string]interface{}{}, client, nil)
	if err != nil {
		t.Fatalf("handleSearchTerms() error = %v", err)
	}
	if client.lastMaxResults != 25 {
		t.Errorf("max results = %d, want default 25", client.lastMaxResults)
	}
}

func TestHandleAudienceRetention(t *testing.T) {
	client := &fakeReportClient{
		report: &analytics.Report{
			Columns: []analytics.Column{
				{Name: "elapsedVideoTimeRatio", Type: "FLOAT"},
				{Name: "audienceWatchRatio", Type: "FLOAT"},
			},
			Rows: [][]interface{}{
				{float64(0.0), float64(1.0)},
				{float64(0.5), float64(0.62)},
			},
		},
	}

	args := map[string]interface{}{"video_id": "dQw4w9WgXcQ"}
	result, err := handleAudienceRetention(context.Background(), args, client, nil)
	if err != nil {
		t.Fatalf("handleAudienceRetention() error = %v", err)
	}

	if client.lastID != "dQw4w9WgXcQ" {
		t.Errorf("video id = %q, want dQw4w9WgXcQ", client.lastID)
	}
	if !strings.Contains(resultText(t, result), "Audience retention for dQw4w9WgXcQ") {
		t.Error("output missing per-video heading")
	}
}

func TestHandleAudienceRetention_MissingVideoID(t *testing.T) {
	client := &fakeReportClient{}

	result, err := handleAudienceRetention(context.Background(), map[string]interface{}{}, client, nil)
	if err != nil {
		t.Fatalf("handleAudienceRetention() error = %v", err)
	}
	if !result.IsError {
		t.Error("missing video_id should produce an error result")
	}
	if client.lastMethod != "" {
		t.Error("no API call should be made without a video id")
	}
}

func TestHandlePlaylistSummary(t *testing.T) {
	client := &fakeReportClient{
		report: &analytics.Report{
			Columns: []analytics.Column{
				{Name: "views", Type: "INTEGER"},
				{Name: "playlistStarts", Type: "INTEGER"},
			},
			Rows: [][]interface{}{{float64(900), float64(450)}},
		},
	}

	args := map[string]interface{}{"playlist_id": "PLabc"}
	result, err := handlePlaylistSummary(context.Background(), args, client, nil)
	if err != nil {
		t.Fatalf("handlePlaylistSummary() error = %v", err)
	}

	if client.lastID != "PLabc" {
		t.Errorf("playlist id = %q, want PLabc", client.lastID)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "Playlist PLabc") {
		t.Error("output missing playlist heading")
	}
	if !strings.Contains(text, "Playlist Starts:") {
		t.Errorf("output missing metric label, got:\n%s", text)
	}
}

func TestHandlePlaylistSummary_MissingID(t *testing.T) {
	client := &fakeReportClient{}

	result, err := handlePlaylistSummary(context.Background(), map[string]interface{}{}, client, nil)
	if err != nil {
		t.Fatalf("handlePlaylistSummary() error = %v", err)
	}
	if !result.IsError {
		t.Error("missing playlist_id should produce an error result")
	}
}

func TestHandleCardPerformance_NoData(t *testing.T) {
	client := &fakeReportClient{
		report: &analytics.Report{
			Columns: []analytics.Column{{Name: "cardImpressions", Type: "INTEGER"}},
		},
	}

	result, err := handleCardPerformance(context.Background(), map[string]interface{}{}, client, nil)
	if err != nil {
		t.Fatalf("handleCardPerformance() error = %v", err)
	}
	if result.IsError {
		t.Error("empty report should not be an error result")
	}
	if !strings.Contains(resultText(t, result), "No data returned") {
		t.Error("empty report should render the no-data message")
	}
}
