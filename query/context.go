package query

import (
	"strings"

	"github.com/parthenonlabs/repoassist/core"
)

// Assemble builds the grounding context for one answering call: surviving
// match contents joined with blank lines, and their metadata collected in
// the same order.
func Assemble(query string, matches []core.ScoredMatch) core.PromptContext {
	contents := make([]string, len(matches))
	metadata := make([]map[string]string, len(matches))
	for i, match := range matches {
		contents[i] = match.Document.Content
		metadata[i] = match.Document.CloneMetadata()
	}

	return core.PromptContext{
		UserQuery:    query,
		ContextText:  strings.Join(contents, "\n\n"),
		MetadataList: metadata,
	}
}
