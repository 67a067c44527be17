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


package chunk

import (
	"github.com/tmc/langchaingo/textsplitter"

	"github.com/parthenonlabs/repoassist/core"
	"github.com/parthenonlabs/repoassist/source"
)

// Defaults for chunk sizing.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 100
)

// codeSeparators prefer function and type boundaries before falling back to
// blank lines, lines, words, and finally characters.
var codeSeparators = []string{
	"\nfunc ", "\ntype ", "\nclass ", "\ndef ", "\nimpl ",
	"\n\n", "\n", " ", "",
}

// Splitter splits documents into bounded-size chunks.
// The splitting policy is content-category aware: markdown uses structural
// splitting on headers and paragraphs, source code prefers function and
// class boundaries, and plain text uses fixed-size windows. All policies
// respect the configured maximum chunk length and overlap.
//
// Splitting is deterministic: identical input and configuration always
// produce the identical chunk sequence.
type Splitter struct {
	chunkSize    int
	chunkOverlap int
}

// SplitterOption configures a Splitter.
type SplitterOption func(*Splitter)

// WithChunkSize sets the maximum chunk length in characters.
// Default is DefaultChunkSize.
func WithChunkSize(size int) SplitterOption {
	return func(s *Splitter) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithChunkOverlap sets the overlap between consecutive chunks.
// Default is DefaultChunkOverlap.
func WithChunkOverlap(overlap int) SplitterOption {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.chunkOverlap = overlap
		}
	}
}

// NewSplitter creates a splitter with the given options.
func NewSplitter(opts ...SplitterOption) *Splitter {
	s := &Splitter{
		chunkSize:    DefaultChunkSize,
		chunkOverlap: DefaultChunkOverlap,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ChunkSize returns the configured maximum chunk length.
func (s *Splitter) ChunkSize() int {
	return s.chunkSize
}

// Split splits a document into chunks. Each chunk inherits a copy of the
// parent's metadata; chunk IDs are assigned by the store on insert.
func (s *Splitter) Split(doc core.Document) ([]core.Document, error) {
	pieces, err := s.splitterFor(doc).SplitText(doc.Content)
	if err != nil {
		return nil, err
	}

	chunks := make([]core.Document, 0, len(pieces))
	for _, piece := range pieces {
		if piece == "" {
			continue
		}
		chunks = append(chunks, core.Document{
			Content:  piece,
			Metadata: doc.CloneMetadata(),
		})
	}
	return chunks, nil
}

// splitterFor selects the text splitter for a document's content category.
func (s *Splitter) splitterFor(doc core.Document) textsplitter.TextSplitter {
	switch source.CategoryOf(doc.Metadata[core.MetadataPath]) {
	case source.CategoryMarkdown:
		return textsplitter.NewMarkdownTextSplitter(
			textsplitter.WithChunkSize(s.chunkSize),
			textsplitter.WithChunkOverlap(s.chunkOverlap),
		)
	case source.CategoryCode:
		return textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(s.chunkSize),
			textsplitter.WithChunkOverlap(s.chunkOverlap),
			textsplitter.WithSeparators(codeSeparators),
		)
	default:
		return textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(s.chunkSize),
			textsplitter.WithChunkOverlap(s.chunkOverlap),
		)
	}
}
