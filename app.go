// Copyright 2025 Parthenon Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package repoassist

import (
	"log/slog"

	"github.com/parthenonlabs/repoassist/ai"
	"github.com/parthenonlabs/repoassist/ai/openai"
	"github.com/parthenonlabs/repoassist/chunk"
	"github.com/parthenonlabs/repoassist/ingest"
	"github.com/parthenonlabs/repoassist/query"
	"github.com/parthenonlabs/repoassist/source"
	"github.com/parthenonlabs/repoassist/storage"
	"github.com/parthenonlabs/repoassist/storage/badger"
)

// App wires the store and the AI provider together and hands out ingestion
// pipelines and assistants sharing them. The store connection is opened
// once in Open and closed exactly once in Close, on every exit path.
type App struct {
	store    storage.VectorStore
	provider ai.Provider
	config   *ai.Config
	logger   *slog.Logger
}

// AppOption configures an App.
type AppOption func(*appOptions)

type appOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
	inMemory bool
	logger   *slog.Logger
}

// WithAIConfig sets the AI provider configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(cfg *ai.Config) AppOption {
	return func(o *appOptions) {
		if cfg != nil {
			o.aiConfig = cfg
		}
	}
}

// WithProvider injects a pre-built AI provider instead of constructing the
// OpenAI one, mainly for tests and alternate backends. The app takes
// ownership and closes it.
func WithProvider(provider ai.Provider) AppOption {
	return func(o *appOptions) {
		o.provider = provider
	}
}

// WithInMemory opens the store in memory, discarding data on Close.
func WithInMemory() AppOption {
	return func(o *appOptions) {
		o.inMemory = true
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) AppOption {
	return func(o *appOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Open creates an App over the store at filePath.
func Open(filePath string, opts ...AppOption) (*App, error) {
	options := &appOptions{
		aiConfig: ai.DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	provider := options.provider
	if provider == nil {
		var err error
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			return nil, err
		}
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		provider.Close()
		return nil, err
	}

	store, err := badger.NewStore(backend, provider.Embedder(),
		badger.WithLogger(options.logger))
	if err != nil {
		backend.Close()
		provider.Close()
		return nil, err
	}

	return &App{
		store:    store,
		provider: provider,
		config:   options.aiConfig,
		logger:   options.logger,
	}, nil
}

// Close releases the provider and the store.
func (a *App) Close() error {
	if err := a.provider.Close(); err != nil {
		a.logger.Error("error closing AI provider", "err", err)
	}

	// The store owns the backend and closes it.
	if err := a.store.Close(); err != nil {
		a.logger.Error("error closing store", "err", err)
		return err
	}
	return nil
}

// Store returns the shared vector store.
func (a *App) Store() storage.VectorStore {
	return a.store
}

// Provider returns the shared AI provider.
func (a *App) Provider() ai.Provider {
	return a.provider
}

// NewIngestionPipeline creates a pipeline sharing the app's store, sized
// for the configured embedding model.
func (a *App) NewIngestionPipeline(opts ...ingest.Option) (*ingest.Pipeline, error) {
	base := []ingest.Option{
		ingest.WithVectorSize(a.config.VectorSize),
		ingest.WithLogger(a.logger),
	}
	return ingest.NewPipeline(a.store, chunk.NewSplitter(), append(base, opts...)...)
}

// NewAssistant creates an assistant answering over one ingested table.
func (a *App) NewAssistant(table string, profile query.Profile, opts ...query.AssistantOption) (*query.Assistant, error) {
	base := []query.AssistantOption{query.WithAssistantLogger(a.logger)}
	return query.NewAssistant(a.store, a.provider, table, profile, append(base, opts...)...)
}

// RepoSources builds one document stream per file category for a GitHub
// repository. maxFiles caps accepted files per category; a value < 1 means
// no cap.
func RepoSources(repo, branch string, maxFiles int, opts ...source.LoaderOption) ([]ingest.Source, error) {
	sources := make([]ingest.Source, 0, len(source.Categories()))
	for _, category := range source.Categories() {
		filter := source.FilterFor(category)
		if maxFiles > 0 {
			filter = source.NewCappedFilter(filter, maxFiles).Accept
		}

		loaderOpts := append([]source.LoaderOption{source.WithFilter(filter)}, opts...)
		loader, err := source.NewLoader(repo, branch, loaderOpts...)
		if err != nil {
			return nil, err
		}
		sources = append(sources, loader)
	}
	return sources, nil
}
