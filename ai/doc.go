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


// Package ai provides abstractions for the AI services used by repoassist.
//
// This package defines interfaces for text embeddings, conversational
// answering, structured query planning, and file summarization. It follows
// the dependency inversion principle: pipeline and query code depend on
// these abstractions rather than on concrete model clients.
//
// The package is designed around four key interfaces:
//
//   - Embedder: generates vector embeddings from text
//   - ChatModel: produces free-form answers from message sequences
//   - QuestionLister: returns strictly-typed question lists (JSON mode)
//   - Summarizer: produces short file summaries
//
// Provider aggregates all four for convenient initialization.
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without external dependencies
//
// Public constructors (openai.NewProvider) return interface types to enforce
// abstraction; mock constructors return concrete types so tests can inject
// behavior and assert call counts.
//
// # Usage Example
//
//	config := ai.NewConfig(ai.WithHost("http://localhost:11434/v1"))
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vec, err := provider.Embedder().EmbedText(ctx, "how does ingestion work?")
package ai
