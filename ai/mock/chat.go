package mock

import (
	"context"

	"github.com/parthenonlabs/repoassist/core"
)

// MockChatModel is a test double for ai.ChatModel.
type MockChatModel struct {
	// ChatFunc is called by Chat if set.
	// If nil, returns Reply.
	ChatFunc func(ctx context.Context, messages []core.Message) (string, error)

	// Reply is the canned answer returned when ChatFunc is nil.
	Reply string

	// Calls records the message sequences passed to Chat, in order.
	Calls [][]core.Message
}

// NewMockChatModel creates a mock chat model returning the given reply.
func NewMockChatModel(reply string) *MockChatModel {
	return &MockChatModel{Reply: reply}
}

// Chat records the call and returns the canned or injected reply.
func (m *MockChatModel) Chat(ctx context.Context, messages []core.Message) (string, error) {
	copied := make([]core.Message, len(messages))
	copy(copied, messages)
	m.Calls = append(m.Calls, copied)

	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, messages)
	}
	return m.Reply, nil
}

// CallCount returns the number of Chat invocations.
func (m *MockChatModel) CallCount() int {
	return len(m.Calls)
}

// LastCall returns the most recent message sequence, or nil if none.
func (m *MockChatModel) LastCall() []core.Message {
	if len(m.Calls) == 0 {
		return nil
	}
	return m.Calls[len(m.Calls)-1]
}
