// Package ingest turns streams of repository documents into stored,
// embedded chunks.
//
// A Pipeline run recreates the target table, consumes every configured
// document source concurrently, and processes each document in a
// limiter-gated task: the source URL is rewritten to its public host, the
// content is chunked, and the chunks are embedded and stored. An optional
// summarizer adds one short summary document per source file, generated
// asynchronously on a worker pool.
//
// The run is a single structured scope. Under the default fail-fast policy
// the first document failure cancels everything in flight; PolicyCollect
// instead records failures in the run report and keeps going.
package ingest
