package api

import (
	"context"
	"sync"

	"github.com/diogo/webchat/internal/models"
)

// MockClient is a mock implementation of ClientInterface for testing
type MockClient struct {
	// Mock return values
	Response   string
	SendErr    error
	HistoryVal []models.Message
	HistoryErr error
	ClearErr   error
	URL        string

	// SendFunc, when set, replaces Response/SendErr
	SendFunc func(ctx context.Context, message string) (string, error)

	// Call counters/recorders
	mu           sync.Mutex
	SendCalls    int
	HistoryCalls int
	ClearCalls   int
	CloseCalled  bool
	LastMessage  string
}

// Ensure MockClient implements ClientInterface
var _ ClientInterface = (*MockClient)(nil)

func (m *MockClient) SendMessage(ctx context.Context, message string) (string, error) {
	m.mu.Lock()
	m.SendCalls++
	m.LastMessage = message
	fn := m.SendFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, message)
	}
	return m.Response, m.SendErr
}

func (m *MockClient) ClearChat(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalls++
	return m.ClearErr
}

func (m *MockClient) History(ctx context.Context) ([]models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.HistoryCalls++
	return m.HistoryVal, m.HistoryErr
}

func (m *MockClient) BaseURL() string {
	if m.URL == "" {
		return models.DefaultBaseURL
	}
	return m.URL
}

func (m *MockClient) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalled = true
}

// Calls returns the number of SendMessage, History and ClearChat calls
func (m *MockClient) Calls() (send, history, clear int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.SendCalls, m.HistoryCalls, m.ClearCalls
}
