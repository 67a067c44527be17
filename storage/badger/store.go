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


package badger

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/parthenonlabs/repoassist/ai"
	"github.com/parthenonlabs/repoassist/core"
	"github.com/parthenonlabs/repoassist/storage"
)

// deleteBatchSize bounds the number of deletes per transaction so that
// dropping a large table does not exceed BadgerDB's transaction limits.
const deleteBatchSize = 1000

// Store implements storage.VectorStore on BadgerDB.
// Documents are embedded on insert via the injected embedder; similarity
// queries embed the query text and scan the table computing cosine distance.
type Store struct {
	backend  *Backend
	embedder ai.Embedder
	logger   *slog.Logger
}

var _ storage.VectorStore = (*Store)(nil)

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates a vector store over the given backend.
// The store takes ownership of the backend: Close closes it.
//
// Returns storage.VectorStore interface to enforce abstraction.
func NewStore(backend *Backend, embedder ai.Embedder, opts ...StoreOption) (storage.VectorStore, error) {
	if embedder == nil {
		return nil, storage.ErrEmbedderRequired
	}

	s := &Store{
		backend:  backend,
		embedder: embedder,
		logger:   slog.Default().With("component", "badger-store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// DropTable removes a table and all its documents.
// Dropping an absent table is not an error.
func (s *Store) DropTable(ctx context.Context, table string) error {
	if s.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	// Collect keys first, then delete in bounded batches.
	var keys [][]byte
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeDocumentPrefix(table)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			keys = append(keys, iter.Item().KeyCopy(nil))
		}
		return nil
	}, false)
	if err != nil {
		return err
	}
	keys = append(keys, makeTableMetaKey(table))

	for start := 0; start < len(keys); start += deleteBatchSize {
		end := min(start+deleteBatchSize, len(keys))
		err := s.backend.WithTx(func(tx *badger.Txn) error {
			for _, key := range keys[start:end] {
				if err := tx.Delete(key); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
					return err
				}
			}
			return tx.Commit()
		}, true)
		if err != nil {
			return err
		}
	}

	s.logger.Debug("dropped table", "table", table, "keys", len(keys))
	return nil
}

// InitTable creates a table sized for the given embedding dimensionality.
func (s *Store) InitTable(ctx context.Context, table string, vectorSize int) error {
	if s.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	if table == "" {
		return fmt.Errorf("table name is required")
	}
	if vectorSize < 1 {
		return fmt.Errorf("vector size must be positive")
	}

	value, err := storage.MarshalTableMeta(&storage.TableMeta{
		Name:       table,
		VectorSize: vectorSize,
	})
	if err != nil {
		return err
	}

	return s.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeTableMetaKey(table), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// AddDocuments embeds the documents' contents and persists them.
// IDs are derived from content and source so re-ingesting identical files is
// idempotent. Safe for concurrent callers.
func (s *Store) AddDocuments(ctx context.Context, table string, docs []core.Document) ([]core.ID, error) {
	if s.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	if len(docs) == 0 {
		return nil, nil
	}

	meta, err := s.tableMeta(table)
	if err != nil {
		return nil, err
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Content
	}

	vectors, err := s.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(docs) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d documents", len(vectors), len(docs))
	}

	ids := make([]core.ID, len(docs))
	err = s.backend.WithTx(func(tx *badger.Txn) error {
		for i, doc := range docs {
			if len(vectors[i]) != meta.VectorSize {
				return fmt.Errorf("%w: got %d, table %q expects %d",
					storage.ErrVectorSizeMismatch, len(vectors[i]), table, meta.VectorSize)
			}

			doc.ID = core.IDFromContent(doc.Content + "\x00" + doc.Metadata[core.MetadataSource])
			ids[i] = doc.ID

			value, err := storage.MarshalRecord(storage.NewRecord(doc, normalizeVector(vectors[i])))
			if err != nil {
				return err
			}
			if err := tx.Set(makeDocumentKey(table, doc.ID), value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("added documents", "table", table, "count", len(docs))
	return ids, nil
}

// SimilaritySearch embeds the query text and returns up to k matches ordered
// ascending by cosine distance.
func (s *Store) SimilaritySearch(ctx context.Context, table string, query string, k int) ([]core.ScoredMatch, error) {
	if s.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	if k < 1 {
		return nil, nil
	}
	if _, err := s.tableMeta(table); err != nil {
		return nil, err
	}

	queryVector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, err
	}
	queryVector = normalizeVector(queryVector)

	var matches []core.ScoredMatch
	err = s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeDocumentPrefix(table)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var record *storage.Record
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalRecord(val)
				return err
			})
			if err != nil {
				return err
			}
			if record == nil || len(record.Vector) == 0 {
				continue
			}

			matches = append(matches, core.ScoredMatch{
				Document: record.Document(),
				Score:    cosineDistance(queryVector, record.Vector),
			})
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Sort ascending by distance; ties broken by ID for reproducible order.
	slices.SortFunc(matches, func(a, b core.ScoredMatch) int {
		if c := cmp.Compare(a.Score, b.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Document.ID, b.Document.ID)
	})

	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

// Close closes the store and its backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// tableMeta loads a table's metadata, returning ErrTableNotFound when the
// table has not been initialized.
func (s *Store) tableMeta(table string) (*storage.TableMeta, error) {
	var meta *storage.TableMeta
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeTableMetaKey(table))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %q", storage.ErrTableNotFound, table)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			meta, err = storage.UnmarshalTableMeta(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return meta, nil
}
