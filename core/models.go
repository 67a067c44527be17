package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for stored documents.
// It is generated with content-based hashing so that re-ingesting identical
// content produces identical IDs.
type ID uint64

// IDFromContent generates a deterministic ID from text using BLAKE2b hashing.
// Identical input always produces the same ID.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Well-known metadata keys.
const (
	// MetadataSource is the canonical URL of the file a document came from.
	MetadataSource = "source"

	// MetadataPath is the repository-relative path of the file.
	MetadataPath = "path"

	// MetadataSummary marks a document as a model-generated file summary.
	MetadataSummary = "summary"
)

// Document is a unit of text with associated metadata.
// A document is immutable once stored; the ID is assigned on insert and is
// zero before that.
type Document struct {
	ID       ID
	Content  string
	Metadata map[string]string
}

// CloneMetadata returns a copy of the document's metadata.
// Chunks derived from a document inherit the parent metadata without
// sharing the underlying map.
func (d Document) CloneMetadata() map[string]string {
	if d.Metadata == nil {
		return nil
	}
	out := make(map[string]string, len(d.Metadata))
	for k, v := range d.Metadata {
		out[k] = v
	}
	return out
}

// IsSummary reports whether the document is a model-generated summary.
func (d Document) IsSummary() bool {
	return d.Metadata[MetadataSummary] == "true"
}

// ScoredMatch is a document returned by a similarity query together with its
// distance score. Smaller scores mean more similar; this implementation uses
// cosine distance over unit-normalized vectors, so scores fall in [0, 2].
// Callers should treat the score as an opaque ordering key.
type ScoredMatch struct {
	Document Document
	Score    float32
}

// Role identifies the author of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single turn in a conversation. An ordered sequence of
// messages forms the chat history.
type Message struct {
	Role    Role
	Content string
}

// PromptContext is the grounding material assembled for a single query turn:
// the user's question, the joined content of the retrieved documents, and
// their metadata in the same order.
type PromptContext struct {
	UserQuery    string
	ContextText  string
	MetadataList []map[string]string
}
