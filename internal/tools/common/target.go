package common

import (
	"strings"
)

// Argument keys inspected for a query target, in priority order.
var targetKeys = []string{"video_id", "playlist_id", "video_ids", "query"}

// TargetFromArgs extracts the query target from request arguments for
// audit logging. The target names what a tool was asked about: a video
// ID, a playlist ID, or a search term. Returns an empty string when the
// tool has no target-like argument.
func TargetFromArgs(args map[string]interface{}) string {
	for _, key := range targetKeys {
		switch v := args[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case []interface{}:
			parts := make([]string, 0, len(v))
			for _, item := range v {
				if s, ok := item.(string); ok && s != "" {
					parts = append(parts, s)
				}
			}
			if len(parts) > 0 {
				return strings.Join(parts, ",")
			}
		}
	}
	return ""
}
