// Package openai implements the ai interfaces using OpenAI-compatible APIs
// via langchaingo.
//
// Four services are provided: embeddings (Embedder), free-form answering
// (ChatModel), structured question listing in JSON mode (QuestionLister),
// and file summarization (Summarizer). All services work against any
// OpenAI-compatible endpoint (OpenAI, Ollama, LocalAI, vLLM).
//
// JSON-mode responses are parsed defensively: markdown code fences are
// stripped and common formatting defects repaired before unmarshaling, with
// up to three parse attempts per call.
package openai
