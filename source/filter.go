package source

import (
	"path/filepath"
	"strings"
)

// PathFilter decides whether a repository path should be loaded.
type PathFilter func(path string) bool

// Category names the file-extension classes the ingestion pipeline streams
// independently.
type Category string

const (
	CategoryMarkdown Category = "markdown"
	CategoryCode     Category = "code"
	CategoryText     Category = "text"
)

var categoryExtensions = map[Category][]string{
	CategoryMarkdown: {".md", ".markdown", ".mdx"},
	CategoryCode: {
		".go", ".py", ".js", ".ts", ".jsx", ".tsx", ".java", ".rs",
		".rb", ".c", ".h", ".cpp", ".hpp", ".cs", ".kt", ".swift",
		".sh", ".sql",
	},
	CategoryText: {".txt", ".rst", ".adoc"},
}

// Categories returns all file categories in their canonical streaming order.
func Categories() []Category {
	return []Category{CategoryMarkdown, CategoryCode, CategoryText}
}

// FilterFor returns the path filter matching a category's file extensions.
func FilterFor(category Category) PathFilter {
	extensions := categoryExtensions[category]
	return func(path string) bool {
		ext := strings.ToLower(filepath.Ext(path))
		for _, e := range extensions {
			if ext == e {
				return true
			}
		}
		return false
	}
}

// CategoryOf classifies a repository path, defaulting to plain text for
// unknown extensions.
func CategoryOf(path string) Category {
	ext := strings.ToLower(filepath.Ext(path))
	for _, category := range Categories() {
		for _, e := range categoryExtensions[category] {
			if ext == e {
				return category
			}
		}
	}
	return CategoryText
}

// CappedFilter wraps a path filter with an explicit acceptance limit.
// It holds its count as a field rather than capturing a counter in a
// closure, so the remaining budget is inspectable.
// Not safe for concurrent use; each stream gets its own instance.
type CappedFilter struct {
	inner    PathFilter
	limit    int
	accepted int
}

// NewCappedFilter creates a filter accepting at most limit paths that pass
// the inner filter. A limit < 1 means no cap.
func NewCappedFilter(inner PathFilter, limit int) *CappedFilter {
	return &CappedFilter{inner: inner, limit: limit}
}

// Accept reports whether the path passes the inner filter and the cap.
func (f *CappedFilter) Accept(path string) bool {
	if !f.inner(path) {
		return false
	}
	if f.limit > 0 && f.accepted >= f.limit {
		return false
	}
	f.accepted++
	return true
}

// Accepted returns how many paths have been accepted so far.
func (f *CappedFilter) Accepted() int {
	return f.accepted
}
