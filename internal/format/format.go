// Package format renders YouTube Analytics values as human-readable
// text: grouped counts, watch-time durations, percentages, money and
// aligned markdown tables. Tool handlers lean on it so every report
// reads the same way.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// DateLayout is the wire format of Analytics API report dates.
const DateLayout = "2006-01-02"

// ParseDate validates a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// DefaultDateRange returns the last 28 full days ending yesterday,
// matching the YouTube Studio default window.
func DefaultDateRange(now time.Time) (start, end string) {
	e := now.AddDate(0, 0, -1)
	s := e.AddDate(0, 0, -27)
	return s.Format(DateLayout), e.Format(DateLayout)
}

// Count renders an integer with thousands separators: 1234567 -> 1,234,567.
func Count(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)

	var sb strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		sb.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(s[i : i+3])
	}

	if neg {
		return "-" + sb.String()
	}
	return sb.String()
}

// CompactCount renders large numbers the way YouTube does: 12.3K, 1.2M, 4B.
func CompactCount(n int64) string {
	abs := n
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 1_000_000_000:
		return trimTrailingZero(fmt.Sprintf("%.1fB", float64(n)/1e9))
	case abs >= 1_000_000:
		return trimTrailingZero(fmt.Sprintf("%.1fM", float64(n)/1e6))
	case abs >= 1_000:
		return trimTrailingZero(fmt.Sprintf("%.1fK", float64(n)/1e3))
	default:
		return strconv.FormatInt(n, 10)
	}
}

func trimTrailingZero(s string) string {
	return strings.Replace(s, ".0", "", 1)
}

// Minutes renders a watch-time total given in minutes: 4752 -> 3d 7h 12m.
func Minutes(m float64) string {
	total := int64(m)
	if total < 60 {
		return fmt.Sprintf("%dm", total)
	}
	days := total / (24 * 60)
	rem := total % (24 * 60)
	hours := rem / 60
	mins := rem % 60
	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, mins)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

// Seconds renders a duration given in seconds: 272.4 -> 4m 32s.
func Seconds(s float64) string {
	total := int64(math.Round(s))
	if total < 60 {
		return fmt.Sprintf("%ds", total)
	}
	if total < 3600 {
		return fmt.Sprintf("%dm %02ds", total/60, total%60)
	}
	return fmt.Sprintf("%dh %dm %02ds", total/3600, (total%3600)/60, total%60)
}

// Percent renders a 0-100 percentage with one decimal: 42.27 -> 42.3%.
func Percent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// Money renders a currency amount: 1234.5 -> $1,234.50. Revenue figures
// come back in the channel's payout currency; the symbol is cosmetic.
func Money(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	whole := int64(v)
	cents := int64(math.Round((v - float64(whole)) * 100))
	if cents == 100 {
		whole++
		cents = 0
	}
	s := fmt.Sprintf("$%s.%02d", Count(whole), cents)
	if neg {
		return "-" + s
	}
	return s
}

// Title turns an API metric or dimension name into a heading:
// estimatedMinutesWatched -> Estimated Minutes Watched.
func Title(name string) string {
	if name == "" {
		return ""
	}
	var sb strings.Builder
	runes := []rune(name)
	sb.WriteRune(unicode.ToUpper(runes[0]))
	for i := 1; i < len(runes); i++ {
		r := runes[i]
		if unicode.IsUpper(r) && !unicode.IsUpper(runes[i-1]) {
			sb.WriteByte(' ')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Table renders an aligned markdown table.
func Table(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		sb.WriteByte('|')
		for i, w := range widths {
			c := ""
			if i < len(cells) {
				c = cells[i]
			}
			sb.WriteString(" " + c + strings.Repeat(" ", w-len(c)) + " |")
		}
		sb.WriteByte('\n')
	}

	writeRow(headers)
	sb.WriteByte('|')
	for _, w := range widths {
		sb.WriteString(" " + strings.Repeat("-", w) + " |")
	}
	sb.WriteByte('\n')
	for _, row := range rows {
		writeRow(row)
	}
	return sb.String()
}

// KV renders label/value pairs as an aligned block for tool summaries.
func KV(pairs [][2]string) string {
	width := 0
	for _, p := range pairs {
		if len(p[0]) > width {
			width = len(p[0])
		}
	}

	var sb strings.Builder
	for _, p := range pairs {
		sb.WriteString(p[0])
		sb.WriteByte(':')
		sb.WriteString(strings.Repeat(" ", width-len(p[0])+1))
		sb.WriteString(p[1])
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Cell renders one report value according to its column name and type.
// Dimension values pass through; metric values get the formatting their
// name implies (durations, percentages, revenue, counts).
func Cell(name, ctype string, v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return metricValue(name, ctype, val)
	case int64:
		return metricValue(name, ctype, float64(val))
	case int:
		return metricValue(name, ctype, float64(val))
	default:
		return fmt.Sprint(v)
	}
}

func metricValue(name, ctype string, v float64) string {
	switch {
	case strings.Contains(name, "Percentage"):
		return Percent(v)
	case strings.HasSuffix(name, "Rate") || strings.HasSuffix(name, "Ratio"):
		// Ratios come back as 0-1 fractions.
		return Percent(v * 100)
	case name == "estimatedMinutesWatched":
		return Minutes(v)
	case name == "averageViewDuration" || name == "averageTimeInPlaylist":
		return Seconds(v)
	case name == "grossRevenue" || name == "cpm" || name == "playbackBasedCpm" ||
		(strings.HasPrefix(name, "estimated") && strings.HasSuffix(name, "Revenue")):
		return Money(v)
	case ctype == "INTEGER" || v == math.Trunc(v):
		return Count(int64(v))
	default:
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
}

// ReportTable renders a full Analytics report as a markdown table,
// formatting each column by its metric name and declared type.
func ReportTable(names, types []string, rows [][]any) string {
	if len(rows) == 0 {
		return "No data returned for this query and date range.\n"
	}

	headers := make([]string, len(names))
	for i, n := range names {
		headers[i] = Title(n)
	}

	out := make([][]string, len(rows))
	for r, row := range rows {
		cells := make([]string, len(row))
		for c, v := range row {
			name, ctype := "", ""
			if c < len(names) {
				name = names[c]
			}
			if c < len(types) {
				ctype = types[c]
			}
			cells[c] = Cell(name, ctype, v)
		}
		out[r] = cells
	}
	return Table(headers, out)
}
