package ingest

import "errors"

var (
	// ErrStoreRequired is returned when a pipeline is created without a store.
	ErrStoreRequired = errors.New("vector store is required")

	// ErrSplitterRequired is returned when a pipeline is created without a splitter.
	ErrSplitterRequired = errors.New("splitter is required")

	// ErrTableRequired is returned when Run is called with an empty table name.
	ErrTableRequired = errors.New("table name is required")

	// ErrNoSources is returned when Run is called without any document sources.
	ErrNoSources = errors.New("at least one document source is required")
)
