package mock

import (
	"context"
	"strings"
)

// MockQuestionLister is a test double for ai.QuestionLister.
type MockQuestionLister struct {
	// ListQuestionsFunc is called by ListQuestions if set.
	// If nil, the prompt's last non-empty line is echoed back as the single
	// question, mimicking an atomic-query decomposition.
	ListQuestionsFunc func(ctx context.Context, prompt string) ([]string, error)

	// Prompts records every prompt passed to ListQuestions.
	Prompts []string
}

// NewMockQuestionLister creates a mock lister with default echo behavior.
func NewMockQuestionLister() *MockQuestionLister {
	return &MockQuestionLister{}
}

// ListQuestions records the prompt and returns the canned or derived list.
func (m *MockQuestionLister) ListQuestions(ctx context.Context, prompt string) ([]string, error) {
	m.Prompts = append(m.Prompts, prompt)

	if m.ListQuestionsFunc != nil {
		return m.ListQuestionsFunc(ctx, prompt)
	}

	lines := strings.Split(strings.TrimSpace(prompt), "\n")
	return []string{lines[len(lines)-1]}, nil
}

// CallCount returns the number of ListQuestions invocations.
func (m *MockQuestionLister) CallCount() int {
	return len(m.Prompts)
}
