package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/parthenonlabs/repoassist/core"
)

// Key prefixes for different data types
const (
	tableMetaPrefix = "tblmeta"
	documentPrefix  = "doc"
)

// makeTableMetaKey generates the metadata key for a table.
func makeTableMetaKey(table string) []byte {
	return []byte(fmt.Sprintf("%s:%s", tableMetaPrefix, table))
}

// makeDocumentKey generates a key for a document in a table.
// Format: prefix:table:id, with the ID in BigEndian so iteration order is
// stable across runs.
func makeDocumentKey(table string, id core.ID) []byte {
	prefix := fmt.Sprintf("%s:%s:", documentPrefix, table)
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeDocumentPrefix generates the key prefix covering all documents in a table.
func makeDocumentPrefix(table string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", documentPrefix, table))
}
