// Package chunk splits repository documents into embedding-sized pieces.
//
// Each document is split with a policy chosen by its content category:
// markdown files split along headers and paragraphs, source files split
// along function and type boundaries, and everything else splits on
// whitespace. Every chunk carries a copy of the parent document's
// metadata so provenance survives retrieval.
package chunk
