package api

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	apierrors "github.com/diogo/webchat/internal/errors"
	"github.com/diogo/webchat/internal/models"
)

func newTestClient(t *testing.T, mock *fakeHTTP) *Client {
	t.Helper()
	client, err := NewClient("http://chat.test:5000/", WithHTTPClient(mock))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantURL string
		wantErr bool
	}{
		{"default when empty", "", models.DefaultBaseURL, false},
		{"trailing slash trimmed", "http://localhost:8080/", "http://localhost:8080", false},
		{"https with prefix", "https://bot.example.com/chatbot", "https://bot.example.com/chatbot", false},
		{"bad scheme", "ftp://example.com", "", true},
		{"missing host", "http://", "", true},
		{"garbage", "://nope", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.baseURL, WithHTTPClient(&fakeHTTP{}))
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewClient() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if client.BaseURL() != tt.wantURL {
				t.Errorf("BaseURL() = %s, want %s", client.BaseURL(), tt.wantURL)
			}
		})
	}
}

func TestNewClient_DefaultTransport(t *testing.T) {
	client, err := NewClient("", WithTimeout(10*time.Second))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	defer client.Close()

	if client.httpClient == nil {
		t.Fatal("expected a default HTTP client")
	}
	if client.timeout != 10*time.Second {
		t.Errorf("timeout = %v", client.timeout)
	}
}

func TestSendMessage_Success(t *testing.T) {
	mock := replyWith([]byte(`{"response":"hi","status":"success"}`), 200)
	client := newTestClient(t, mock)

	reply, err := client.SendMessage(context.Background(), "hello")
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if reply != "hi" {
		t.Errorf("reply = %q, want %q", reply, "hi")
	}

	req := mock.lastRequest
	if req.Method != "POST" {
		t.Errorf("method = %s", req.Method)
	}
	if req.URL.String() != "http://chat.test:5000/api/chat" {
		t.Errorf("url = %s", req.URL.String())
	}
	if req.Header.Get("Content-Type") != "application/json" {
		t.Errorf("content-type = %s", req.Header.Get("Content-Type"))
	}

	var sent map[string]string
	if err := json.Unmarshal(mock.lastBody, &sent); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if sent["message"] != "hello" {
		t.Errorf("sent message = %q", sent["message"])
	}
}

func TestSendMessage_Failures(t *testing.T) {
	tests := []struct {
		name        string
		mock        *fakeHTTP
		wantAPI     bool
		wantNetwork bool
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "application error with detail",
			mock:        replyWith([]byte(`{"error":"Message too long (max 5000 chars)"}`), 400),
			wantAPI:     true,
			wantStatus:  400,
			wantMessage: "Message too long (max 5000 chars)",
		},
		{
			name:       "application error without body",
			mock:       replyWith([]byte(`<html>Internal Server Error</html>`), 500),
			wantAPI:    true,
			wantStatus: 500,
		},
		{
			name:        "transport failure",
			mock:        failWith(errors.New("connection refused")),
			wantNetwork: true,
		},
		{
			name:        "malformed success body",
			mock:        replyWith([]byte(`not json`), 200),
			wantNetwork: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.mock)

			_, err := client.SendMessage(context.Background(), "hello")
			if err == nil {
				t.Fatal("expected error")
			}
			if got := apierrors.IsAPIError(err); got != tt.wantAPI {
				t.Errorf("IsAPIError() = %v, want %v (%v)", got, tt.wantAPI, err)
			}
			if got := apierrors.IsNetworkError(err); got != tt.wantNetwork {
				t.Errorf("IsNetworkError() = %v, want %v (%v)", got, tt.wantNetwork, err)
			}
			if got := apierrors.GetHTTPStatus(err); got != tt.wantStatus {
				t.Errorf("GetHTTPStatus() = %d, want %d", got, tt.wantStatus)
			}
			if got := apierrors.GetMessage(err); got != tt.wantMessage {
				t.Errorf("GetMessage() = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestSendMessage_EmptyMessage(t *testing.T) {
	mock := replyWith([]byte(`{}`), 200)
	client := newTestClient(t, mock)

	if _, err := client.SendMessage(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty message")
	}
	if mock.calls != 0 {
		t.Errorf("expected no request, got %d", mock.calls)
	}
}

func TestSendMessage_CanceledContext(t *testing.T) {
	mock := replyWith([]byte(`{"response":"late"}`), 200)
	client := newTestClient(t, mock)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.SendMessage(ctx, "hello")
	if !apierrors.IsNetworkError(err) {
		t.Fatalf("expected network error, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled in chain, got %v", err)
	}
}

func TestClearChat(t *testing.T) {
	mock := replyWith([]byte(`{"status":"success","message":"Chat history cleared"}`), 200)
	client := newTestClient(t, mock)

	if err := client.ClearChat(context.Background()); err != nil {
		t.Fatalf("ClearChat() error = %v", err)
	}
	if mock.lastRequest.Method != "POST" || mock.lastRequest.URL.Path != models.PathClearChat {
		t.Errorf("request = %s %s", mock.lastRequest.Method, mock.lastRequest.URL.Path)
	}

	failing := newTestClient(t, replyWith([]byte(``), 503))
	err := failing.ClearChat(context.Background())
	if apierrors.GetHTTPStatus(err) != 503 {
		t.Errorf("expected 503 APIError, got %v", err)
	}
}

func TestHistory(t *testing.T) {
	body := `{"history":[{"role":"user","content":"hi"},{"role":"assistant","content":"yo"},{"role":"model","content":"legacy"}]}`
	mock := replyWith([]byte(body), 200)
	client := newTestClient(t, mock)

	messages, err := client.History(context.Background())
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if mock.lastRequest.Method != "GET" {
		t.Errorf("method = %s", mock.lastRequest.Method)
	}

	want := []models.Message{
		{Role: models.RoleUser, Content: "hi"},
		{Role: models.RoleAssistant, Content: "yo"},
		{Role: models.RoleAssistant, Content: "legacy"},
	}
	if len(messages) != len(want) {
		t.Fatalf("got %d messages, want %d", len(messages), len(want))
	}
	for i := range want {
		if messages[i] != want[i] {
			t.Errorf("messages[%d] = %+v, want %+v", i, messages[i], want[i])
		}
	}
}

func TestParseHistory(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantLen   int
		wantParse bool
	}{
		{"empty array", `{"history":[]}`, 0, false},
		{"missing field", `{}`, 0, false},
		{"null field", `{"history":null}`, 0, false},
		{"not an array", `{"history":"nope"}`, 0, true},
		{"invalid json", `{"history":[`, 0, true},
		{"one entry", `{"history":[{"role":"user","content":"x"}]}`, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			messages, err := ParseHistory([]byte(tt.body))
			if got := apierrors.IsParseError(err); got != tt.wantParse {
				t.Fatalf("IsParseError() = %v, want %v (%v)", got, tt.wantParse, err)
			}
			if len(messages) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(messages), tt.wantLen)
			}
		})
	}
}

func TestClose(t *testing.T) {
	mock := replyWith([]byte(`{"response":"x"}`), 200)
	client := newTestClient(t, mock)

	client.Close()
	client.Close()

	if !client.IsClosed() {
		t.Error("expected client to be closed")
	}
	if !mock.idleClosed {
		t.Error("expected idle connections to be closed")
	}

	_, err := client.SendMessage(context.Background(), "hello")
	if !apierrors.IsNetworkError(err) {
		t.Errorf("expected network error after close, got %v", err)
	}
}

func TestMockClient(t *testing.T) {
	mock := &MockClient{Response: "Mock response"}

	var client ClientInterface = mock

	reply, err := client.SendMessage(context.Background(), "Hello")
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if reply != "Mock response" {
		t.Errorf("Expected 'Mock response', got '%s'", reply)
	}
	if mock.LastMessage != "Hello" {
		t.Errorf("Expected message 'Hello', got '%s'", mock.LastMessage)
	}

	_ = client.ClearChat(context.Background())
	_, _ = client.History(context.Background())
	send, history, clear := mock.Calls()
	if send != 1 || history != 1 || clear != 1 {
		t.Errorf("Calls() = %d, %d, %d", send, history, clear)
	}
	if client.BaseURL() != models.DefaultBaseURL {
		t.Errorf("BaseURL() = %s", client.BaseURL())
	}
}
