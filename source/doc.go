// Package source loads repository files as documents.
//
// The GitHub Loader walks a branch's git tree and streams matching files
// lazily through a callback, fetching blob content one file at a time.
// Path filters select files by extension category (markdown, code, plain
// text), and CappedFilter bounds how many files a stream accepts.
package source
