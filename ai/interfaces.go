package ai

import (
	"context"

	"github.com/parthenonlabs/repoassist/core"
)

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// ChatModel produces free-form answers from an ordered message sequence.
// Implementations must be thread-safe for concurrent use.
type ChatModel interface {
	// Chat sends the messages to the model in order and returns the
	// assistant's reply text. Returns an error if the call fails.
	Chat(ctx context.Context, messages []core.Message) (string, error)
}

// QuestionLister asks a model for a strictly-typed list of questions.
// The model is required to answer with a JSON object carrying a single
// "questions" key whose value is an array of strings; any other shape is
// reported as ErrMalformedOutput.
// Implementations must be thread-safe for concurrent use.
type QuestionLister interface {
	// ListQuestions sends the prompt and returns the parsed question list.
	ListQuestions(ctx context.Context, prompt string) ([]string, error)
}

// Summarizer produces a short natural-language summary of a file's content.
type Summarizer interface {
	// Summarize returns a summary of at most ~100 words for the given text.
	Summarize(ctx context.Context, path, text string) (string, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages the embedding, chat, and
// planning services, ensuring they share configuration appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// ChatModel returns the conversational answering service.
	ChatModel() ChatModel

	// QuestionLister returns the structured question-listing service used
	// for query decomposition and expansion.
	QuestionLister() QuestionLister

	// Summarizer returns the file summarization service.
	Summarizer() Summarizer

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
