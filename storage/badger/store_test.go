package badger

import (
	"context"
	"testing"

	"github.com/parthenonlabs/repoassist/ai/mock"
	"github.com/parthenonlabs/repoassist/core"
	"github.com/parthenonlabs/repoassist/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) storage.VectorStore {
	t.Helper()

	embedder := mock.NewMockEmbedder()
	store, err := NewMemoryStore(embedder)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func testDocument(content, path string) core.Document {
	return core.Document{
		Content: content,
		Metadata: map[string]string{
			core.MetadataSource: "https://github.com/repos/x/y/contents/" + path,
			core.MetadataPath:   path,
		},
	}
}

func TestInitAndAddDocuments(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	require.NoError(t, store.InitTable(ctx, "docs", 384))

	ids, err := store.AddDocuments(ctx, "docs", []core.Document{
		testDocument("alpha text", "a.md"),
		testDocument("beta text", "b.md"),
	})
	require.NoError(t, err)
	require.Len(t, ids, 2)
	assert.NotEqual(t, ids[0], ids[1])

	// Re-adding identical content assigns identical IDs.
	again, err := store.AddDocuments(ctx, "docs", []core.Document{
		testDocument("alpha text", "a.md"),
	})
	require.NoError(t, err)
	assert.Equal(t, ids[0], again[0])
}

func TestAddDocumentsUnknownTable(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	_, err := store.AddDocuments(ctx, "missing", []core.Document{
		testDocument("text", "a.md"),
	})
	assert.ErrorIs(t, err, storage.ErrTableNotFound)
}

func TestSimilaritySearch(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	require.NoError(t, store.InitTable(ctx, "docs", 384))

	_, err := store.AddDocuments(ctx, "docs", []core.Document{
		testDocument("how the ingestion pipeline works", "pipeline.md"),
		testDocument("release notes for version two", "CHANGELOG.md"),
		testDocument("installation instructions", "INSTALL.md"),
	})
	require.NoError(t, err)

	matches, err := store.SimilaritySearch(ctx, "docs", "how the ingestion pipeline works", 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	// Exact content match comes first with distance ~0.
	assert.Equal(t, "how the ingestion pipeline works", matches[0].Document.Content)
	assert.InDelta(t, 0.0, float64(matches[0].Score), 1e-5)

	// Ascending by distance.
	assert.LessOrEqual(t, matches[0].Score, matches[1].Score)
}

func TestSimilaritySearchDeterministicOrder(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	require.NoError(t, store.InitTable(ctx, "docs", 384))
	_, err := store.AddDocuments(ctx, "docs", []core.Document{
		testDocument("first document", "a.md"),
		testDocument("second document", "b.md"),
		testDocument("third document", "c.md"),
	})
	require.NoError(t, err)

	first, err := store.SimilaritySearch(ctx, "docs", "document", 3)
	require.NoError(t, err)
	second, err := store.SimilaritySearch(ctx, "docs", "document", 3)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDropTable(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	require.NoError(t, store.InitTable(ctx, "docs", 384))
	_, err := store.AddDocuments(ctx, "docs", []core.Document{
		testDocument("some text", "a.md"),
	})
	require.NoError(t, err)

	require.NoError(t, store.DropTable(ctx, "docs"))

	// Table is gone; queries against it fail.
	_, err = store.SimilaritySearch(ctx, "docs", "some text", 1)
	assert.ErrorIs(t, err, storage.ErrTableNotFound)

	// Dropping an absent table is not an error.
	assert.NoError(t, store.DropTable(ctx, "docs"))
}

func TestDropAndRecreateIsEmpty(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	require.NoError(t, store.InitTable(ctx, "docs", 384))
	_, err := store.AddDocuments(ctx, "docs", []core.Document{
		testDocument("old content", "a.md"),
	})
	require.NoError(t, err)

	require.NoError(t, store.DropTable(ctx, "docs"))
	require.NoError(t, store.InitTable(ctx, "docs", 384))

	matches, err := store.SimilaritySearch(ctx, "docs", "old content", 5)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestVectorSizeMismatch(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	// Table expects a different dimensionality than the embedder produces.
	require.NoError(t, store.InitTable(ctx, "docs", 1536))

	_, err := store.AddDocuments(ctx, "docs", []core.Document{
		testDocument("some text", "a.md"),
	})
	assert.ErrorIs(t, err, storage.ErrVectorSizeMismatch)
}

func TestCosineDistance(t *testing.T) {
	a := normalizeVector([]float32{1, 0, 0})
	b := normalizeVector([]float32{0, 1, 0})
	c := normalizeVector([]float32{-1, 0, 0})

	assert.InDelta(t, 0.0, float64(cosineDistance(a, a)), 1e-6)
	assert.InDelta(t, 1.0, float64(cosineDistance(a, b)), 1e-6)
	assert.InDelta(t, 2.0, float64(cosineDistance(a, c)), 1e-6)
}

func TestNormalizeVector(t *testing.T) {
	v := normalizeVector([]float32{3, 4})
	assert.InDelta(t, 0.6, float64(v[0]), 1e-6)
	assert.InDelta(t, 0.8, float64(v[1]), 1e-6)

	zero := normalizeVector([]float32{0, 0})
	assert.Equal(t, []float32{0, 0}, zero)

	assert.Empty(t, normalizeVector(nil))
}
