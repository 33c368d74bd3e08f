package instrumentation

import "strconv"

// Cardinality management helpers for metrics.
// These functions reduce high-cardinality label values to prevent metrics explosion.
//
// # Warning
//
// High cardinality in metrics can cause:
// - Increased memory usage in Prometheus/metrics backends
// - Slower query performance
// - Higher storage costs
//
// Video and playlist IDs are unbounded; never record them as metric
// labels directly. Use result-size buckets or the detailedLabels escape
// hatch instead.

// SizeBucket reduces a result row count to a small fixed label set.
//
// Example:
//
//	SizeBucket(0)    // "0"
//	SizeBucket(7)    // "1-10"
//	SizeBucket(33)   // "11-50"
//	SizeBucket(900)  // "51+"
func SizeBucket(n int) string {
	switch {
	case n <= 0:
		return "0"
	case n <= 10:
		return "1-10"
	case n <= 50:
		return "11-50"
	default:
		return "51+"
	}
}

// TruncateTarget caps a target identifier for log output. Search terms
// are user input and can be arbitrarily long.
func TruncateTarget(target string, max int) string {
	if max <= 0 || len(target) <= max {
		return target
	}
	return target[:max] + "... (" + strconv.Itoa(len(target)) + " chars)"
}

// Common operation types for Google API metrics.
// Status, OAuth, and Service constants are defined in config.go.
const (
	OperationList   = "list"
	OperationGet    = "get"
	OperationSearch = "search"
	OperationQuery  = "query"
	OperationRevoke = "revoke"
)
