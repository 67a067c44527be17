package query

import (
	"context"
	"log/slog"

	"github.com/parthenonlabs/repoassist/core"
	"github.com/parthenonlabs/repoassist/storage"
)

// Retriever issues similarity searches for a set of sub-queries and merges
// the results under a score threshold with first-seen deduplication.
//
// Sub-queries are searched sequentially, so the merged order is
// deterministic for a given input: results arrive in sub-query order, then
// in the store's ascending-score order within each sub-query.
type Retriever struct {
	store     storage.VectorStore
	table     string
	k         int
	threshold float32
	logger    *slog.Logger
}

// RetrieverOption configures a Retriever.
type RetrieverOption func(*Retriever)

// WithRetrieverLogger sets a custom logger.
// Default is slog.Default().
func WithRetrieverLogger(logger *slog.Logger) RetrieverOption {
	return func(r *Retriever) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRetriever creates a retriever over one table with the given per-query
// match count and score cutoff.
func NewRetriever(store storage.VectorStore, table string, k int, threshold float32, opts ...RetrieverOption) (*Retriever, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if table == "" {
		return nil, ErrTableRequired
	}

	r := &Retriever{
		store:     store,
		table:     table,
		k:         k,
		threshold: threshold,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Retrieve searches every sub-query and returns the merged matches.
// A match survives only if its score is strictly below the threshold and
// its document ID has not been seen in an earlier match.
func (r *Retriever) Retrieve(ctx context.Context, queries []string) ([]core.ScoredMatch, error) {
	var merged []core.ScoredMatch
	seen := make(map[core.ID]bool)

	for _, q := range queries {
		matches, err := r.store.SimilaritySearch(ctx, r.table, q, r.k)
		if err != nil {
			r.logger.Error("error searching for sub-query", "err", err)
			return nil, err
		}

		for _, match := range matches {
			if match.Score >= r.threshold {
				continue
			}
			if seen[match.Document.ID] {
				continue
			}
			seen[match.Document.ID] = true
			merged = append(merged, match)
		}
	}

	r.logger.Debug("retrieval complete", "queries", len(queries), "matches", len(merged))
	return merged, nil
}
