package format

import (
	"strings"
	"testing"
	"time"
)

func TestCount(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1000, "1,000"},
		{1234, "1,234"},
		{1234567, "1,234,567"},
		{1000000000, "1,000,000,000"},
		{-1234, "-1,234"},
	}
	for _, tt := range tests {
		if got := Count(tt.in); got != tt.want {
			t.Errorf("Count(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCompactCount(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1K"},
		{12345, "12.3K"},
		{1200000, "1.2M"},
		{1000000, "1M"},
		{4000000000, "4B"},
	}
	for _, tt := range tests {
		if got := CompactCount(tt.in); got != tt.want {
			t.Errorf("CompactCount(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMinutes(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h 0m"},
		{125, "2h 5m"},
		{4752, "3d 7h 12m"},
	}
	for _, tt := range tests {
		if got := Minutes(tt.in); got != tt.want {
			t.Errorf("Minutes(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSeconds(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0s"},
		{59.4, "59s"},
		{60, "1m 00s"},
		{272.4, "4m 32s"},
		{3725, "1h 2m 05s"},
	}
	for _, tt := range tests {
		if got := Seconds(tt.in); got != tt.want {
			t.Errorf("Seconds(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPercentAndMoney(t *testing.T) {
	if got := Percent(42.27); got != "42.3%" {
		t.Errorf("Percent(42.27) = %q", got)
	}
	if got := Money(1234.5); got != "$1,234.50" {
		t.Errorf("Money(1234.5) = %q", got)
	}
	if got := Money(0.999); got != "$1.00" {
		t.Errorf("Money(0.999) = %q", got)
	}
	if got := Money(-12.3); got != "-$12.30" {
		t.Errorf("Money(-12.3) = %q", got)
	}
}

func TestTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"views", "Views"},
		{"estimatedMinutesWatched", "Estimated Minutes Watched"},
		{"insightTrafficSourceType", "Insight Traffic Source Type"},
		{"cpm", "Cpm"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Title(tt.in); got != tt.want {
			t.Errorf("Title(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2026-03-14"); err != nil {
		t.Errorf("ParseDate(valid) error = %v", err)
	}
	for _, bad := range []string{"14-03-2026", "2026/03/14", "yesterday", ""} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) expected error", bad)
		}
	}
}

func TestDefaultDateRange(t *testing.T) {
	now := time.Date(2026, 8, 23, 15, 0, 0, 0, time.UTC)
	start, end := DefaultDateRange(now)
	if end != "2026-08-22" {
		t.Errorf("end = %q, want yesterday", end)
	}
	if start != "2026-07-26" {
		t.Errorf("start = %q, want 28 days before end", start)
	}
}

func TestTable(t *testing.T) {
	got := Table(
		[]string{"Video", "Views"},
		[][]string{
			{"Intro", "1,234"},
			{"Follow-up episode", "99"},
		},
	)

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("table has %d lines, want 4:\n%s", len(lines), got)
	}
	if !strings.HasPrefix(lines[0], "| Video") {
		t.Errorf("header row = %q", lines[0])
	}
	if !strings.Contains(lines[1], "---") {
		t.Errorf("separator row = %q", lines[1])
	}
	// All rows align to the same width.
	for i := 1; i < len(lines); i++ {
		if len(lines[i]) != len(lines[0]) {
			t.Errorf("line %d width %d != header width %d", i, len(lines[i]), len(lines[0]))
		}
	}
}

func TestKV(t *testing.T) {
	got := KV([][2]string{
		{"Subscribers", "1,234"},
		{"Views", "56,789"},
	})

	want := "Subscribers: 1,234\nViews:       56,789\n"
	if got != want {
		t.Errorf("KV() = %q, want %q", got, want)
	}
}

func TestCell(t *testing.T) {
	tests := []struct {
		name  string
		ctype string
		v     any
		want  string
	}{
		{"day", "STRING", "2026-08-01", "2026-08-01"},
		{"views", "INTEGER", float64(1234), "1,234"},
		{"estimatedMinutesWatched", "INTEGER", float64(4752), "3d 7h 12m"},
		{"averageViewDuration", "INTEGER", float64(272), "4m 32s"},
		{"averageViewPercentage", "FLOAT", 43.21, "43.2%"},
		{"viewerPercentage", "FLOAT", 12.5, "12.5%"},
		{"cardClickRate", "FLOAT", 0.042, "4.2%"},
		{"audienceWatchRatio", "FLOAT", 0.61, "61.0%"},
		{"estimatedRevenue", "FLOAT", 1234.5, "$1,234.50"},
		{"cpm", "FLOAT", 4.2, "$4.20"},
		{"subscribersGained", "INTEGER", float64(42), "42"},
		{"likes", "INTEGER", nil, ""},
	}
	for _, tt := range tests {
		if got := Cell(tt.name, tt.ctype, tt.v); got != tt.want {
			t.Errorf("Cell(%q, %q, %v) = %q, want %q", tt.name, tt.ctype, tt.v, got, tt.want)
		}
	}
}

func TestReportTable_Empty(t *testing.T) {
	got := ReportTable([]string{"views"}, []string{"INTEGER"}, nil)
	if !strings.Contains(got, "No data") {
		t.Errorf("empty report = %q, want a no-data notice", got)
	}
}
