package query

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/parthenonlabs/repoassist/ai"
)

// Planner turns a raw user query into a set of retrieval sub-queries using
// a structured-output model: first decomposition into individual questions,
// then expansion of each question into two viewpoint variants.
type Planner struct {
	lister ai.QuestionLister
	logger *slog.Logger
}

// PlannerOption configures a Planner.
type PlannerOption func(*Planner)

// WithPlannerLogger sets a custom logger.
// Default is slog.Default().
func WithPlannerLogger(logger *slog.Logger) PlannerOption {
	return func(p *Planner) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPlanner creates a planner backed by the given structured-output model.
func NewPlanner(lister ai.QuestionLister, opts ...PlannerOption) (*Planner, error) {
	if lister == nil {
		return nil, ErrProviderRequired
	}

	p := &Planner{
		lister: lister,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Decompose splits the query into its constituent questions. A model
// failure or malformed answer is not fatal: the raw query is returned as a
// single-element list and the failure is logged.
func (p *Planner) Decompose(ctx context.Context, query string) []string {
	questions, err := p.lister.ListQuestions(ctx, fmt.Sprintf(decomposePromptTemplate, query))
	if err != nil {
		p.logger.Warn("query decomposition failed, using raw query", "err", err)
		return []string{query}
	}
	if len(questions) == 0 {
		p.logger.Warn("query decomposition returned no questions, using raw query")
		return []string{query}
	}
	p.logger.Debug("query decomposed", "count", len(questions))
	return questions
}

// Expand rephrases each question into two viewpoint variants and returns
// the combined list, which therefore holds exactly twice as many questions
// as the input. Unlike Decompose, a failure here aborts the turn.
func (p *Planner) Expand(ctx context.Context, questions []string) ([]string, error) {
	rendered, err := json.Marshal(questions)
	if err != nil {
		return nil, err
	}

	expanded, err := p.lister.ListQuestions(ctx, fmt.Sprintf(expandPromptTemplate, rendered))
	if err != nil {
		return nil, err
	}
	if len(expanded) != 2*len(questions) {
		return nil, fmt.Errorf("%w: expected %d expanded questions, got %d",
			ai.ErrMalformedOutput, 2*len(questions), len(expanded))
	}
	p.logger.Debug("questions expanded", "in", len(questions), "out", len(expanded))
	return expanded, nil
}
