package instrumentation

import "testing"

func TestSizeBucket(t *testing.T) {
	tests := []struct {
		rows     int
		expected string
	}{
		{-1, "0"},
		{0, "0"},
		{1, "1-10"},
		{10, "1-10"},
		{11, "11-50"},
		{50, "11-50"},
		{51, "51+"},
		{10000, "51+"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := SizeBucket(tt.rows)
			if result != tt.expected {
				t.Errorf("SizeBucket(%d) = %q, want %q", tt.rows, result, tt.expected)
			}
		})
	}
}

func TestTruncateTarget(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		max      int
		expected string
	}{
		{"short", "dQw4w9WgXcQ", 120, "dQw4w9WgXcQ"},
		{"exact", "abcde", 5, "abcde"},
		{"truncated", "abcdefghij", 4, "abcd... (10 chars)"},
		{"zero max keeps all", "abcdef", 0, "abcdef"},
		{"empty", "", 10, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := TruncateTarget(tt.target, tt.max)
			if result != tt.expected {
				t.Errorf("TruncateTarget(%q, %d) = %q, want %q", tt.target, tt.max, result, tt.expected)
			}
		})
	}
}

func TestOperationConstants(t *testing.T) {
	operations := map[string]string{
		OperationList:   "list",
		OperationGet:    "get",
		OperationSearch: "search",
		OperationQuery:  "query",
		OperationRevoke: "revoke",
	}

	for constant, expected := range operations {
		if constant != expected {
			t.Errorf("Operation constant = %q, want %q", constant, expected)
		}
	}
}
