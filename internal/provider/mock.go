package provider

import (
	"context"
	"sync"
)

// Call records the arguments of one MockProvider.Translate invocation.
type Call struct {
	Text   string
	Target string
	Source string
}

// MockProvider for testing
type MockProvider struct {
	ID       string
	Response *Translation
	Error    error
	// Handler, when set, takes precedence over Response and Error.
	Handler func(text, target, source string) (*Translation, error)

	mu    sync.Mutex
	calls []Call
}

func (m *MockProvider) Name() string {
	return m.ID
}

func (m *MockProvider) Translate(ctx context.Context, text, target, source string) (*Translation, error) {
	m.mu.Lock()
	m.calls = append(m.calls, Call{Text: text, Target: target, Source: source})
	m.mu.Unlock()
	if m.Handler != nil {
		return m.Handler(text, target, source)
	}
	if m.Error != nil {
		return nil, m.Error
	}
	return m.Response, nil
}

// Calls returns a copy of the recorded invocations.
func (m *MockProvider) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}
