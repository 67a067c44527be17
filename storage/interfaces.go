package storage

import (
	"context"

	"github.com/parthenonlabs/repoassist/core"
)

// VectorStore persists documents with their embeddings and executes
// similarity queries against them. Implementations must be thread-safe and
// support concurrent access from ingestion workers and query turns sharing
// one store instance.
type VectorStore interface {
	// DropTable removes a table and all its documents.
	// Dropping an absent table is not an error.
	DropTable(ctx context.Context, table string) error

	// InitTable creates a table sized for the given embedding dimensionality.
	// Dropping and recreating an existing table loses its data; callers are
	// expected to treat drop-then-init as a deliberate destructive step.
	InitTable(ctx context.Context, table string, vectorSize int) error

	// AddDocuments embeds the documents' contents and persists them,
	// assigning content-derived IDs. Returns the assigned IDs in input order.
	AddDocuments(ctx context.Context, table string, docs []core.Document) ([]core.ID, error)

	// SimilaritySearch embeds the query text and returns up to k matches
	// ordered ascending by distance score (smaller = more similar).
	SimilaritySearch(ctx context.Context, table string, query string, k int) ([]core.ScoredMatch, error)

	// Close closes the store and releases resources.
	Close() error
}
