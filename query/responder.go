package query

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/parthenonlabs/repoassist/ai"
	"github.com/parthenonlabs/repoassist/core"
)

// Responder delegates an assembled prompt context to the answering model.
type Responder struct {
	chat   ai.ChatModel
	logger *slog.Logger
}

// ResponderOption configures a Responder.
type ResponderOption func(*Responder)

// WithResponderLogger sets a custom logger.
// Default is slog.Default().
func WithResponderLogger(logger *slog.Logger) ResponderOption {
	return func(r *Responder) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResponder creates a responder backed by the given chat model.
func NewResponder(chat ai.ChatModel, opts ...ResponderOption) (*Responder, error) {
	if chat == nil {
		return nil, ErrProviderRequired
	}

	r := &Responder{
		chat:   chat,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Respond builds the ordered message sequence and returns the model's
// answer: system prompt first, then the history turns in original order,
// then one user turn with the literal query, context, and metadata.
func (r *Responder) Respond(ctx context.Context, pc core.PromptContext, history []core.Message) (string, error) {
	for _, msg := range history {
		if err := core.ValidateRole(msg.Role); err != nil {
			return "", err
		}
	}

	messages := make([]core.Message, 0, len(history)+2)
	messages = append(messages, core.Message{Role: core.RoleSystem, Content: systemPrompt})
	messages = append(messages, history...)
	messages = append(messages, core.Message{
		Role:    core.RoleUser,
		Content: fmt.Sprintf(finalPromptTemplate, pc.UserQuery, pc.ContextText, renderMetadata(pc.MetadataList)),
	})

	answer, err := r.chat.Chat(ctx, messages)
	if err != nil {
		r.logger.Error("error generating answer", "err", err)
		return "", err
	}
	return answer, nil
}

// renderMetadata renders the metadata list as a JSON array. json.Marshal
// sorts map keys, so the rendering is deterministic.
func renderMetadata(metadata []map[string]string) string {
	if len(metadata) == 0 {
		return "[]"
	}
	rendered, err := json.Marshal(metadata)
	if err != nil {
		return "[]"
	}
	return string(rendered)
}
