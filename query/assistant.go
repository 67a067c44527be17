package query

import (
	"context"
	"log/slog"
	"strings"

	"github.com/parthenonlabs/repoassist/ai"
	"github.com/parthenonlabs/repoassist/core"
	"github.com/parthenonlabs/repoassist/storage"
)

// Assistant answers questions about an ingested repository.
//
// Each turn runs the full query pipeline: optional planning (decomposition
// and expansion) per the profile, sequential multi-query retrieval under
// the profile's threshold, context assembly, and one answering call
// carrying the caller-supplied chat history.
type Assistant struct {
	planner   *Planner
	retriever *Retriever
	responder *Responder
	profile   Profile
	logger    *slog.Logger
}

// AssistantOption configures an Assistant.
type AssistantOption func(*Assistant)

// WithAssistantLogger sets a custom logger for the assistant and its
// pipeline stages. Default is slog.Default().
func WithAssistantLogger(logger *slog.Logger) AssistantOption {
	return func(a *Assistant) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAssistant wires the query pipeline over one table.
// The assistant does not own the store; the caller closes it.
func NewAssistant(store storage.VectorStore, provider ai.Provider, table string, profile Profile, opts ...AssistantOption) (*Assistant, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if provider == nil {
		return nil, ErrProviderRequired
	}
	if table == "" {
		return nil, ErrTableRequired
	}

	a := &Assistant{
		profile: profile,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}

	planner, err := NewPlanner(provider.QuestionLister(), WithPlannerLogger(a.logger))
	if err != nil {
		return nil, err
	}

	retriever, err := NewRetriever(store, table, profile.K, profile.Threshold,
		WithRetrieverLogger(a.logger))
	if err != nil {
		return nil, err
	}

	responder, err := NewResponder(provider.ChatModel(), WithResponderLogger(a.logger))
	if err != nil {
		return nil, err
	}

	a.planner = planner
	a.retriever = retriever
	a.responder = responder
	return a, nil
}

// Profile returns the assistant's retrieval profile.
func (a *Assistant) Profile() Profile {
	return a.profile
}

// HandleTurn answers one user query given the prior conversation history.
// An error aborts this turn only; the assistant remains usable.
func (a *Assistant) HandleTurn(ctx context.Context, query string, history []core.Message) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", ErrEmptyQuery
	}

	// 1. Plan the retrieval inputs.
	queries := []string{query}
	if a.profile.Decompose {
		queries = a.planner.Decompose(ctx, query)
	}
	if a.profile.Expand {
		expanded, err := a.planner.Expand(ctx, queries)
		if err != nil {
			return "", err
		}
		queries = expanded
	}

	// 2. Retrieve and filter.
	matches, err := a.retriever.Retrieve(ctx, queries)
	if err != nil {
		return "", err
	}

	// 3. Assemble grounding context and answer.
	pc := Assemble(query, matches)
	answer, err := a.responder.Respond(ctx, pc, history)
	if err != nil {
		return "", err
	}

	a.logger.Debug("turn answered", "queries", len(queries), "matches", len(matches))
	return answer, nil
}
