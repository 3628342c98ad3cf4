package gemini

import (
	"context"
	"sync"

	"github.com/google/generative-ai-go/genai"
)

// MockGenerator stands in for the SDK model in tests.
type MockGenerator struct {
	Response *genai.GenerateContentResponse
	Error    error

	mu    sync.Mutex
	parts []genai.Part
}

func (m *MockGenerator) GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	m.mu.Lock()
	m.parts = append(m.parts, parts...)
	m.mu.Unlock()
	return m.Response, m.Error
}

// LastPrompt returns the text of the most recent part sent.
func (m *MockGenerator) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.parts) == 0 {
		return ""
	}
	if t, ok := m.parts[len(m.parts)-1].(genai.Text); ok {
		return string(t)
	}
	return ""
}

// newWithGenerator returns a client backed by g.
func newWithGenerator(g generator) *Client {
	return &Client{model: g, timeout: defaultTimeout}
}
