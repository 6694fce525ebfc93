package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAPIError(t *testing.T) {
	err := NewAPIError(400, "/api/chat", "Message cannot be empty")

	if err == nil {
		t.Fatal("Expected non-nil error")
	}

	expected := "API error [400] at /api/chat: Message cannot be empty"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}

	noStatus := NewAPIError(0, "/api/chat", "boom")
	if noStatus.Error() != "API error at /api/chat: boom" {
		t.Errorf("Error() = %s", noStatus.Error())
	}
}

func TestNetworkError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewNetworkError("/api/chat", cause)

	expected := "network error at /api/chat: connection refused"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}

	if !errors.Is(err, cause) {
		t.Error("Expected NetworkError to unwrap to its cause")
	}

	if !errors.Is(err, ErrNetwork) {
		t.Error("Expected NetworkError to match ErrNetwork")
	}

	if NewNetworkError("/x", nil).Error() != "network error at /x" {
		t.Error("Expected nil-cause message")
	}
}

func TestParseError(t *testing.T) {
	err := NewParseError("not json", "/api/history")

	if err.Error() != "parse error: not json" {
		t.Errorf("Error() = %s", err.Error())
	}

	if !errors.Is(err, ErrInvalidResponse) {
		t.Error("Expected ParseError to match ErrInvalidResponse")
	}

	if !errors.Is(err, NewParseError("other", "")) {
		t.Error("Expected ParseError to match another ParseError")
	}
}

func TestClassification(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantAPI     bool
		wantNetwork bool
		wantParse   bool
	}{
		{"nil", nil, false, false, false},
		{"api", NewAPIError(500, "/api/chat", "x"), true, false, false},
		{"network", NewNetworkError("/api/chat", errors.New("eof")), false, true, false},
		{"parse", NewParseError("bad", "/api/chat"), false, true, true},
		{"wrapped api", fmt.Errorf("send: %w", NewAPIError(400, "/api/chat", "x")), true, false, false},
		{"wrapped network", fmt.Errorf("send: %w", NewNetworkError("/api/chat", nil)), false, true, false},
		{"plain", errors.New("plain"), false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAPIError(tt.err); got != tt.wantAPI {
				t.Errorf("IsAPIError() = %v, want %v", got, tt.wantAPI)
			}
			if got := IsNetworkError(tt.err); got != tt.wantNetwork {
				t.Errorf("IsNetworkError() = %v, want %v", got, tt.wantNetwork)
			}
			if got := IsParseError(tt.err); got != tt.wantParse {
				t.Errorf("IsParseError() = %v, want %v", got, tt.wantParse)
			}
		})
	}
}

func TestExtractors(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewAPIError(429, "/api/chat", "slow down"))

	if got := GetHTTPStatus(err); got != 429 {
		t.Errorf("GetHTTPStatus() = %d, want 429", got)
	}
	if got := GetEndpoint(err); got != "/api/chat" {
		t.Errorf("GetEndpoint() = %s", got)
	}
	if got := GetMessage(err); got != "slow down" {
		t.Errorf("GetMessage() = %s", got)
	}

	netErr := NewNetworkError("/api/history", nil)
	if got := GetHTTPStatus(netErr); got != 0 {
		t.Errorf("GetHTTPStatus() = %d, want 0", got)
	}
	if got := GetEndpoint(netErr); got != "/api/history" {
		t.Errorf("GetEndpoint() = %s", got)
	}
	if got := GetEndpoint(NewParseError("x", "/api/clear-chat")); got != "/api/clear-chat" {
		t.Errorf("GetEndpoint() = %s", got)
	}
	if got := GetMessage(netErr); got != "" {
		t.Errorf("GetMessage() = %s, want empty", got)
	}
	if got := GetEndpoint(errors.New("plain")); got != "" {
		t.Errorf("GetEndpoint() = %s, want empty", got)
	}
}
