package ingest

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/sync/errgroup"

	"github.com/parthenonlabs/repoassist/ai"
	"github.com/parthenonlabs/repoassist/chunk"
	"github.com/parthenonlabs/repoassist/core"
	"github.com/parthenonlabs/repoassist/storage"
)

// Source yields documents one at a time. Load calls fn for every document
// in stream order and returns the first error fn reports, or the first
// transport error encountered.
type Source interface {
	Load(ctx context.Context, fn func(core.Document) error) error
}

// FailurePolicy controls how the pipeline reacts to a document that fails
// to chunk or store.
type FailurePolicy int

const (
	// PolicyFailFast cancels the whole run on the first failed document.
	PolicyFailFast FailurePolicy = iota

	// PolicyCollect records failed documents in the run report and keeps
	// going. Source transport failures still abort the run.
	PolicyCollect
)

// Failure describes one document the pipeline could not process.
type Failure struct {
	Path string
	Err  error
}

// Report summarizes a completed ingestion run. Documents counts only the
// source files that produced at least one stored chunk; skipped empty files
// are excluded.
type Report struct {
	Documents int
	Chunks    int
	Summaries int
	Failures  []Failure
}

// Pipeline drives repository ingestion: it recreates the target table,
// streams documents from each source concurrently, and fans every document
// out to a limiter-gated chunk-embed-store task. When a summarizer is
// configured, each source file additionally gets an asynchronous summary
// document generated on a worker pool.
type Pipeline struct {
	store      storage.VectorStore
	splitter   *chunk.Splitter
	limiter    *Limiter
	summarizer ai.Summarizer
	pool       *ants.Pool
	policy     FailurePolicy
	vectorSize int
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithConcurrency sets the maximum number of in-flight embed-and-store
// tasks. Default is DefaultConcurrency.
func WithConcurrency(n int) Option {
	return func(p *Pipeline) error {
		p.limiter = NewLimiter(n)
		return nil
	}
}

// WithSummarizer enables per-file summary documents, generated
// asynchronously on a worker pool. Summary failures are logged, never fatal.
func WithSummarizer(summarizer ai.Summarizer) Option {
	return func(p *Pipeline) error {
		if summarizer == nil {
			return nil
		}
		pool, err := ants.NewPool(DefaultConcurrency)
		if err != nil {
			return err
		}
		p.summarizer = summarizer
		p.pool = pool
		return nil
	}
}

// WithFailurePolicy sets how document-level failures are handled.
// Default is PolicyFailFast.
func WithFailurePolicy(policy FailurePolicy) Option {
	return func(p *Pipeline) error {
		p.policy = policy
		return nil
	}
}

// WithVectorSize sets the embedding dimensionality used when creating the
// target table.
func WithVectorSize(size int) Option {
	return func(p *Pipeline) error {
		if size > 0 {
			p.vectorSize = size
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates an ingestion pipeline. The pipeline does not own the
// store; the caller closes it after all runs complete.
func NewPipeline(store storage.VectorStore, splitter *chunk.Splitter, opts ...Option) (*Pipeline, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if splitter == nil {
		return nil, ErrSplitterRequired
	}

	p := &Pipeline{
		store:      store,
		splitter:   splitter,
		limiter:    NewLimiter(DefaultConcurrency),
		vectorSize: ai.DefaultVectorSize,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			p.Release()
			return nil, err
		}
	}

	return p, nil
}

// Run ingests every source into the named table. The table is dropped and
// recreated first, so a run replaces any previous contents.
//
// All per-document tasks run inside one structured scope: Run does not
// return until every task has finished or, under PolicyFailFast, until the
// first failure has cancelled the remaining work. The returned report is
// valid in both cases.
func (p *Pipeline) Run(ctx context.Context, table string, sources ...Source) (*Report, error) {
	if table == "" {
		return nil, ErrTableRequired
	}
	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	if err := p.store.DropTable(ctx, table); err != nil {
		return nil, err
	}
	if err := p.store.InitTable(ctx, table, p.vectorSize); err != nil {
		return nil, err
	}

	var (
		documents atomic.Int64
		chunks    atomic.Int64
		summaries atomic.Int64

		mu       sync.Mutex
		failures []Failure

		summaryWg sync.WaitGroup
	)

	g, gctx := errgroup.WithContext(ctx)

	for _, src := range sources {
		src := src
		g.Go(func() error {
			return src.Load(gctx, func(doc core.Document) error {
				g.Go(func() error {
					if err := p.limiter.Acquire(gctx); err != nil {
						return err
					}
					defer p.limiter.Release()

					n, err := p.processDocument(gctx, table, doc)
					if err != nil {
						if p.policy == PolicyCollect {
							p.logger.Error("document failed, continuing",
								"path", doc.Metadata[core.MetadataPath], "err", err)
							mu.Lock()
							failures = append(failures, Failure{
								Path: doc.Metadata[core.MetadataPath],
								Err:  err,
							})
							mu.Unlock()
							return nil
						}
						return err
					}
					if n == 0 {
						// Skipped document, nothing stored.
						return nil
					}

					documents.Add(1)
					chunks.Add(int64(n))

					if p.summarizer != nil {
						// Summaries run on the parent context so they are
						// not cancelled when the scope winds down normally.
						p.submitSummary(ctx, table, doc, &summaryWg, &summaries)
					}
					return nil
				})
				return nil
			})
		})
	}

	err := g.Wait()
	summaryWg.Wait()

	report := &Report{
		Documents: int(documents.Load()),
		Chunks:    int(chunks.Load()),
		Summaries: int(summaries.Load()),
		Failures:  failures,
	}
	if err != nil {
		return report, err
	}
	return report, nil
}

// processDocument rewrites the document's source URL, chunks it, and stores
// the chunks. Returns the number of chunks stored.
func (p *Pipeline) processDocument(ctx context.Context, table string, doc core.Document) (int, error) {
	// Empty files are common in real repositories; skip rather than fail.
	if strings.TrimSpace(doc.Content) == "" {
		p.logger.Debug("skipping empty document", "path", doc.Metadata[core.MetadataPath])
		return 0, nil
	}
	if err := core.ValidateDocument(&doc); err != nil {
		return 0, err
	}
	rewriteSource(&doc)

	pieces, err := p.splitter.Split(doc)
	if err != nil {
		return 0, err
	}
	if len(pieces) == 0 {
		return 0, nil
	}

	if _, err := p.store.AddDocuments(ctx, table, pieces); err != nil {
		return 0, err
	}

	p.logger.Debug("document ingested",
		"path", doc.Metadata[core.MetadataPath], "chunks", len(pieces))
	return len(pieces), nil
}

// submitSummary schedules asynchronous summary generation for one file.
func (p *Pipeline) submitSummary(ctx context.Context, table string, doc core.Document, wg *sync.WaitGroup, count *atomic.Int64) {
	wg.Add(1)
	err := p.pool.Submit(func() {
		defer wg.Done()

		path := doc.Metadata[core.MetadataPath]
		summary, err := p.summarizer.Summarize(ctx, path, doc.Content)
		if err != nil {
			p.logger.Error("error summarizing file", "path", path, "err", err)
			return
		}

		metadata := doc.CloneMetadata()
		metadata[core.MetadataSummary] = "true"
		_, err = p.store.AddDocuments(ctx, table, []core.Document{{
			Content:  summary,
			Metadata: metadata,
		}})
		if err != nil {
			p.logger.Error("error storing summary", "path", path, "err", err)
			return
		}
		count.Add(1)
	})
	if err != nil {
		wg.Done()
		p.logger.Error("error submitting summary task", "err", err)
	}
}

// Release releases the summary worker pool, if any.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

// rewriteSource replaces the API host in the document's source URL with its
// public equivalent, e.g. api.github.com becomes github.com.
func rewriteSource(doc *core.Document) {
	if src, ok := doc.Metadata[core.MetadataSource]; ok {
		doc.Metadata[core.MetadataSource] = strings.Replace(src, "api.", "", 1)
	}
}
