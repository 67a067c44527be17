package query

import "errors"

var (
	// ErrStoreRequired is returned when a component is created without a store.
	ErrStoreRequired = errors.New("vector store is required")

	// ErrProviderRequired is returned when a component is created without an AI provider.
	ErrProviderRequired = errors.New("ai provider is required")

	// ErrTableRequired is returned when a component is created without a table name.
	ErrTableRequired = errors.New("table name is required")

	// ErrEmptyQuery is returned when HandleTurn is called with an empty query.
	ErrEmptyQuery = errors.New("query must not be empty")

	// ErrUnknownProfile is returned by ProfileByName for unrecognized names.
	ErrUnknownProfile = errors.New("unknown retrieval profile")
)
