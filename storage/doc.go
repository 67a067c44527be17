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


// Package storage provides the vector store abstraction for repoassist.
//
// This package defines the VectorStore interface that decouples the
// ingestion and query pipelines from the storage engine. The contract is
// intentionally small: drop/init a named table, add embedded documents,
// and run a scored similarity query.
//
// # Constructor Return Type Pattern
//
// Public constructors in implementation packages return the VectorStore
// interface to enforce abstraction and enable alternative backends:
//
//	store, err := badger.NewStore(path, embedder)  // returns storage.VectorStore
//
// # Score Semantics
//
// Similarity scores are cosine distances (1 - cosine similarity) over
// unit-normalized vectors, in the range [0, 2], ordered ascending. Callers
// should treat the score as an opaque ordering key; filtering thresholds are
// only meaningful relative to this metric.
//
// # Thread Safety
//
// All VectorStore implementations must be safe for concurrent use: a single
// store instance is shared across all ingestion workers and query turns.
package storage
