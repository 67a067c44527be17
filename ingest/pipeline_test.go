package ingest

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parthenonlabs/repoassist/ai/mock"
	"github.com/parthenonlabs/repoassist/chunk"
	"github.com/parthenonlabs/repoassist/core"
)

// fakeStore implements storage.VectorStore and tracks how many AddDocuments
// calls run concurrently.
type fakeStore struct {
	mu      sync.Mutex
	tables  map[string]bool
	stored  []core.Document
	dropped int

	failContains string
	delay        time.Duration

	inFlight atomic.Int64
	maxSeen  atomic.Int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{tables: map[string]bool{}}
}

func (s *fakeStore) DropTable(ctx context.Context, table string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tables, table)
	s.stored = nil
	s.dropped++
	return nil
}

func (s *fakeStore) InitTable(ctx context.Context, table string, vectorSize int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[table] = true
	return nil
}

func (s *fakeStore) AddDocuments(ctx context.Context, table string, docs []core.Document) ([]core.ID, error) {
	cur := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		max := s.maxSeen.Load()
		if cur <= max || s.maxSeen.CompareAndSwap(max, cur) {
			break
		}
	}

	if s.delay > 0 {
		time.Sleep(s.delay)
	}

	ids := make([]core.ID, len(docs))
	for i, doc := range docs {
		if s.failContains != "" && strings.Contains(doc.Content, s.failContains) {
			return nil, errors.New("simulated store failure")
		}
		ids[i] = core.IDFromContent(doc.Content)
	}

	s.mu.Lock()
	s.stored = append(s.stored, docs...)
	s.mu.Unlock()
	return ids, nil
}

func (s *fakeStore) SimilaritySearch(ctx context.Context, table, query string, k int) ([]core.ScoredMatch, error) {
	return nil, nil
}

func (s *fakeStore) Close() error { return nil }

func (s *fakeStore) documents() []core.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Document, len(s.stored))
	copy(out, s.stored)
	return out
}

// fakeSource yields a fixed set of documents.
type fakeSource struct {
	docs []core.Document
}

func (f *fakeSource) Load(ctx context.Context, fn func(core.Document) error) error {
	for _, doc := range f.docs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(doc); err != nil {
			return err
		}
	}
	return nil
}

func sourceDoc(path, content string) core.Document {
	return core.Document{
		Content: content,
		Metadata: map[string]string{
			core.MetadataSource: "https://api.github.com/repos/acme/widgets/contents/" + path,
			core.MetadataPath:   path,
		},
	}
}

func newTestPipeline(t *testing.T, store *fakeStore, opts ...Option) *Pipeline {
	t.Helper()
	splitter := chunk.NewSplitter(chunk.WithChunkSize(1000), chunk.WithChunkOverlap(0))
	p, err := NewPipeline(store, splitter, opts...)
	require.NoError(t, err)
	t.Cleanup(p.Release)
	return p
}

func TestNewPipelineValidation(t *testing.T) {
	splitter := chunk.NewSplitter()

	_, err := NewPipeline(nil, splitter)
	assert.ErrorIs(t, err, ErrStoreRequired)

	_, err = NewPipeline(newFakeStore(), nil)
	assert.ErrorIs(t, err, ErrSplitterRequired)
}

func TestRunValidation(t *testing.T) {
	p := newTestPipeline(t, newFakeStore())

	_, err := p.Run(context.Background(), "", &fakeSource{})
	assert.ErrorIs(t, err, ErrTableRequired)

	_, err = p.Run(context.Background(), "repo")
	assert.ErrorIs(t, err, ErrNoSources)
}

func TestRunChunksAndRewritesSources(t *testing.T) {
	store := newFakeStore()
	p := newTestPipeline(t, store)

	src := &fakeSource{docs: []core.Document{
		sourceDoc("big.txt", strings.Repeat("a", 3000)),
		sourceDoc("small.txt", strings.Repeat("b", 500)),
	}}

	report, err := p.Run(context.Background(), "repo", src)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Documents)
	assert.Equal(t, 4, report.Chunks)
	assert.Empty(t, report.Failures)

	docs := store.documents()
	require.Len(t, docs, 4)
	for _, doc := range docs {
		source := doc.Metadata[core.MetadataSource]
		assert.True(t, strings.HasPrefix(source, "https://github.com/repos/acme/widgets/contents/"),
			"source not rewritten: %s", source)
		assert.LessOrEqual(t, len(doc.Content), 1000)
	}
	assert.Equal(t, 1, store.dropped)
	assert.True(t, store.tables["repo"])
}

func TestRunBoundsConcurrency(t *testing.T) {
	store := newFakeStore()
	store.delay = 5 * time.Millisecond
	p := newTestPipeline(t, store, WithConcurrency(5))

	docs := make([]core.Document, 20)
	for i := range docs {
		docs[i] = sourceDoc("file.txt", strings.Repeat("x", 100+i))
	}

	_, err := p.Run(context.Background(), "repo", &fakeSource{docs: docs})
	require.NoError(t, err)

	assert.LessOrEqual(t, store.maxSeen.Load(), int64(5))
}

func TestRunFailFast(t *testing.T) {
	store := newFakeStore()
	store.failContains = "poison"
	p := newTestPipeline(t, store)

	src := &fakeSource{docs: []core.Document{
		sourceDoc("ok.txt", "fine content"),
		sourceDoc("bad.txt", "poison content"),
	}}

	_, err := p.Run(context.Background(), "repo", src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "simulated store failure")
}

func TestRunCollectPolicy(t *testing.T) {
	store := newFakeStore()
	store.failContains = "poison"
	p := newTestPipeline(t, store, WithFailurePolicy(PolicyCollect))

	src := &fakeSource{docs: []core.Document{
		sourceDoc("ok.txt", "fine content"),
		sourceDoc("bad.txt", "poison content"),
		sourceDoc("also-ok.txt", "more fine content"),
	}}

	report, err := p.Run(context.Background(), "repo", src)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Documents)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "bad.txt", report.Failures[0].Path)
	assert.Error(t, report.Failures[0].Err)
}

func TestRunSkipsEmptyAndRejectsInvalidDocuments(t *testing.T) {
	store := newFakeStore()
	p := newTestPipeline(t, store, WithFailurePolicy(PolicyCollect))

	src := &fakeSource{docs: []core.Document{
		sourceDoc("empty.txt", "   \n"),
		{Content: "no metadata at all"},
		sourceDoc("ok.txt", "real content"),
	}}

	report, err := p.Run(context.Background(), "repo", src)
	require.NoError(t, err)

	// The empty file is skipped silently and not counted, the metadata-less
	// one is a failure.
	assert.Equal(t, 1, report.Documents)
	assert.Equal(t, 1, report.Chunks)
	require.Len(t, report.Failures, 1)
}

func TestRunMultipleSources(t *testing.T) {
	store := newFakeStore()
	p := newTestPipeline(t, store)

	md := &fakeSource{docs: []core.Document{sourceDoc("readme.md", "# Title\n\nIntro text.")}}
	code := &fakeSource{docs: []core.Document{sourceDoc("main.go", "package main\n\nfunc main() {}\n")}}

	report, err := p.Run(context.Background(), "repo", md, code)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Documents)
	assert.NotEmpty(t, store.documents())
}

func TestRunGeneratesSummaries(t *testing.T) {
	store := newFakeStore()
	summarizer := mock.NewMockSummarizer()
	p := newTestPipeline(t, store, WithSummarizer(summarizer))

	src := &fakeSource{docs: []core.Document{
		sourceDoc("a.txt", "first file contents"),
		sourceDoc("b.txt", "second file contents"),
	}}

	report, err := p.Run(context.Background(), "repo", src)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Summaries)
	assert.Equal(t, 2, summarizer.CallCount())

	var summaries int
	for _, doc := range store.documents() {
		if doc.IsSummary() {
			summaries++
			assert.Contains(t, doc.Content, "summary of")
		}
	}
	assert.Equal(t, 2, summaries)
}

func TestRunSummaryFailureIsNotFatal(t *testing.T) {
	store := newFakeStore()
	summarizer := mock.NewMockSummarizer()
	summarizer.SummarizeFunc = func(ctx context.Context, path, text string) (string, error) {
		return "", errors.New("model unavailable")
	}
	p := newTestPipeline(t, store, WithSummarizer(summarizer))

	src := &fakeSource{docs: []core.Document{sourceDoc("a.txt", "contents")}}

	report, err := p.Run(context.Background(), "repo", src)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Documents)
	assert.Equal(t, 0, report.Summaries)
}
