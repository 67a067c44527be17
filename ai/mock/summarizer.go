package mock

import (
	"context"
	"fmt"
	"sync"
)

// MockSummarizer is a test double for ai.Summarizer.
// It is safe for concurrent use, matching the real summarizer's contract.
type MockSummarizer struct {
	// SummarizeFunc is called by Summarize if set.
	// If nil, returns a deterministic placeholder summary.
	SummarizeFunc func(ctx context.Context, path, text string) (string, error)

	mu    sync.Mutex
	paths []string
}

// NewMockSummarizer creates a mock summarizer with default behavior.
func NewMockSummarizer() *MockSummarizer {
	return &MockSummarizer{}
}

// Summarize records the call and returns the canned or derived summary.
func (m *MockSummarizer) Summarize(ctx context.Context, path, text string) (string, error) {
	m.mu.Lock()
	m.paths = append(m.paths, path)
	m.mu.Unlock()

	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, path, text)
	}
	return fmt.Sprintf("summary of %s", path), nil
}

// Paths returns a copy of every path passed to Summarize.
func (m *MockSummarizer) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.paths))
	copy(out, m.paths)
	return out
}

// CallCount returns the number of Summarize invocations.
func (m *MockSummarizer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.paths)
}
