package storage

import (
	"encoding/json"
	"fmt"

	"github.com/parthenonlabs/repoassist/core"
)

// Record is the stored form of a document: the document itself plus the
// embedding vector computed for its content.
type Record struct {
	ID       core.ID           `json:"id"`
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata,omitempty"`
	Vector   []float32         `json:"vector"`
}

// NewRecord builds a Record from a document and its embedding.
func NewRecord(doc core.Document, vector []float32) *Record {
	return &Record{
		ID:       doc.ID,
		Content:  doc.Content,
		Metadata: doc.Metadata,
		Vector:   vector,
	}
}

// Document returns the document carried by the record.
func (r *Record) Document() core.Document {
	return core.Document{
		ID:       r.ID,
		Content:  r.Content,
		Metadata: r.Metadata,
	}
}

// MarshalRecord serializes a Record to bytes.
func MarshalRecord(record *Record) ([]byte, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return data, nil
}

// UnmarshalRecord deserializes a Record from bytes.
func UnmarshalRecord(data []byte) (*Record, error) {
	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return &record, nil
}

// TableMeta describes an initialized table.
type TableMeta struct {
	Name       string `json:"name"`
	VectorSize int    `json:"vector_size"`
}

// MarshalTableMeta serializes table metadata to bytes.
func MarshalTableMeta(meta *TableMeta) ([]byte, error) {
	data, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return data, nil
}

// UnmarshalTableMeta deserializes table metadata from bytes.
func UnmarshalTableMeta(data []byte) (*TableMeta, error) {
	var meta TableMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return &meta, nil
}
