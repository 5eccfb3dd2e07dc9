package api

import (
	"context"
	"sync"
)

// MockClient is a mock implementation of Generator for testing
type MockClient struct {
	// Mock return values
	Model              string
	GenerateContentVal string
	GenerateContentErr error
	// GenerateFunc, when set, replaces the canned values
	GenerateFunc func(ctx context.Context, prompt string) (string, error)

	// Call counters/recorders
	mu                  sync.Mutex
	CloseCalled         bool
	GenerateContentCall int
	LastPrompt          string
}

// Ensure MockClient implements Generator
var _ Generator = (*MockClient)(nil)

func (m *MockClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.GenerateContentCall++
	m.LastPrompt = prompt
	fn := m.GenerateFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, prompt)
	}
	return m.GenerateContentVal, m.GenerateContentErr
}

func (m *MockClient) ModelName() string {
	if m.Model == "" {
		return "mock"
	}
	return m.Model
}

func (m *MockClient) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalled = true
}

// Calls returns how many times GenerateContent ran
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.GenerateContentCall
}
