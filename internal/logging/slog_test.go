package logging

import (
	"errors"
	"log/slog"
	"testing"
)

func TestWithOperation(t *testing.T) {
	logger := slog.Default()
	result := WithOperation(logger, "test_operation")
	if result == nil {
		t.Error("WithOperation returned nil")
	}
}

func TestWithTool(t *testing.T) {
	logger := slog.Default()
	result := WithTool(logger, "test_tool")
	if result == nil {
		t.Error("WithTool returned nil")
	}
}

func TestWithService(t *testing.T) {
	logger := slog.Default()
	result := WithService(logger, "analytics")
	if result == nil {
		t.Error("WithService returned nil")
	}
}

func TestWithChannel(t *testing.T) {
	logger := slog.Default()
	result := WithChannel(logger, "UCabc123")
	if result == nil {
		t.Error("WithChannel returned nil")
	}
}

func TestOperationAttr(t *testing.T) {
	attr := Operation("test_op")
	if attr.Key != KeyOperation {
		t.Errorf("Operation key = %q, want %q", attr.Key, KeyOperation)
	}
	if attr.Value.String() != "test_op" {
		t.Errorf("Operation value = %q, want %q", attr.Value.String(), "test_op")
	}
}

func TestServiceAttr(t *testing.T) {
	attr := Service("youtube")
	if attr.Key != KeyService {
		t.Errorf("Service key = %q, want %q", attr.Key, KeyService)
	}
	if attr.Value.String() != "youtube" {
		t.Errorf("Service value = %q, want %q", attr.Value.String(), "youtube")
	}
}

func TestChannelAttr(t *testing.T) {
	attr := Channel("UCabc123")
	if attr.Key != KeyChannel {
		t.Errorf("Channel key = %q, want %q", attr.Key, KeyChannel)
	}
	if attr.Value.String() != "UCabc123" {
		t.Errorf("Channel value = %q, want %q", attr.Value.String(), "UCabc123")
	}
}

func TestToolAttr(t *testing.T) {
	attr := Tool("channel_get_info")
	if attr.Key != KeyTool {
		t.Errorf("Tool key = %q, want %q", attr.Key, KeyTool)
	}
	if attr.Value.String() != "channel_get_info" {
		t.Errorf("Tool value = %q, want %q", attr.Value.String(), "channel_get_info")
	}
}

func TestStatusAttr(t *testing.T) {
	attr := Status(StatusSuccess)
	if attr.Key != KeyStatus {
		t.Errorf("Status key = %q, want %q", attr.Key, KeyStatus)
	}
	if attr.Value.String() != StatusSuccess {
		t.Errorf("Status value = %q, want %q", attr.Value.String(), StatusSuccess)
	}
}

func TestErr(t *testing.T) {
	// Test with error
	err := errors.New("test error")
	attr := Err(err)
	if attr.Key != KeyError {
		t.Errorf("Err key = %q, want %q", attr.Key, KeyError)
	}
	if attr.Value.String() != "test error" {
		t.Errorf("Err value = %q, want %q", attr.Value.String(), "test error")
	}

	// Test with nil - should return an empty group that slog will omit
	attr = Err(nil)
	// Empty Group has empty key
	if attr.Key != "" {
		t.Errorf("Err(nil) key = %q, want empty string (empty group)", attr.Key)
	}
}

func TestAnonymizeOwner(t *testing.T) {
	tests := []struct {
		channelID string
		wantLen   int  // Expected length of result (0 for empty)
		hasValue  bool // Whether result should have a value
	}{
		{"UC1234567890abcdefghij", 22, true}, // "owner:" + 16 hex chars
		{"UCzyxwvutsrqponmlkjihg", 22, true},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.channelID, func(t *testing.T) {
			result := AnonymizeOwner(tt.channelID)
			if tt.hasValue {
				if len(result) != tt.wantLen {
					t.Errorf("AnonymizeOwner(%q) length = %d, want %d", tt.channelID, len(result), tt.wantLen)
				}
				if result[:6] != "owner:" {
					t.Errorf("AnonymizeOwner(%q) should start with 'owner:', got %q", tt.channelID, result)
				}
			} else {
				if result != "" {
					t.Errorf("AnonymizeOwner(%q) = %q, want empty string", tt.channelID, result)
				}
			}
		})
	}

	// Test deterministic hashing
	hash1 := AnonymizeOwner("UCtest")
	hash2 := AnonymizeOwner("UCtest")
	if hash1 != hash2 {
		t.Error("AnonymizeOwner should return deterministic results")
	}

	// Test different channel IDs produce different hashes
	hash3 := AnonymizeOwner("UCother")
	if hash1 == hash3 {
		t.Error("Different channel IDs should produce different hashes")
	}
}

func TestOwnerHash(t *testing.T) {
	attr := OwnerHash("UC1234567890abcdefghij")
	if attr.Key != KeyOwnerHash {
		t.Errorf("OwnerHash key = %q, want %q", attr.Key, KeyOwnerHash)
	}
	if len(attr.Value.String()) != 22 {
		t.Errorf("OwnerHash value length = %d, want 22", len(attr.Value.String()))
	}
}

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		token    string
		expected string
	}{
		{"", "<empty>"},
		{"abc123", "[token:6 chars]"},
		{"a_very_long_token_string", "[token:24 chars]"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := SanitizeToken(tt.token)
			if result != tt.expected {
				t.Errorf("SanitizeToken(%q) = %q, want %q", tt.token, result, tt.expected)
			}
		})
	}
}

func TestStatusConstants(t *testing.T) {
	if StatusSuccess != "success" {
		t.Errorf("StatusSuccess = %q, want %q", StatusSuccess, "success")
	}
	if StatusError != "error" {
		t.Errorf("StatusError = %q, want %q", StatusError, "error")
	}
}
