// Package query implements the answering side of the assistant.
//
// A turn flows through four stages. The Planner decomposes the user query
// into individual questions and expands each into viewpoint variants. The
// Retriever issues a similarity search per variant and merges the results,
// dropping matches at or above the profile's score threshold and any
// document already seen. Assemble joins the survivors into grounding
// context. The Responder sends the system prompt, the chat history, and a
// final user turn carrying query, context, and metadata to the answering
// model.
//
// Two built-in profiles tune the pipeline: both decompose compound queries,
// but only ProfileFocused expands the sub-questions, trading its stricter
// threshold for broader phrasing coverage.
package query
