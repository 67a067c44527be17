package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateDocument(t *testing.T) {
	valid := Document{
		Content: "some text",
		Metadata: map[string]string{
			MetadataSource: "https://api.github.com/repos/x/y/contents/doc.md",
			MetadataPath:   "doc.md",
		},
	}

	tests := []struct {
		name    string
		mutate  func(d *Document)
		wantErr error
	}{
		{
			name:   "valid document",
			mutate: func(d *Document) {},
		},
		{
			name:    "empty content",
			mutate:  func(d *Document) { d.Content = "" },
			wantErr: ErrEmptyContent,
		},
		{
			name:    "missing source",
			mutate:  func(d *Document) { delete(d.Metadata, MetadataSource) },
			wantErr: ErrMissingSource,
		},
		{
			name:    "missing path",
			mutate:  func(d *Document) { delete(d.Metadata, MetadataPath) },
			wantErr: ErrMissingPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := valid
			doc.Metadata = valid.CloneMetadata()
			tt.mutate(&doc)

			err := ValidateDocument(&doc)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidDocument)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateDocumentNil(t *testing.T) {
	assert.ErrorIs(t, ValidateDocument(nil), ErrInvalidDocument)
}

func TestValidateRole(t *testing.T) {
	assert.NoError(t, ValidateRole(RoleSystem))
	assert.NoError(t, ValidateRole(RoleUser))
	assert.NoError(t, ValidateRole(RoleAssistant))
	assert.ErrorIs(t, ValidateRole(Role("moderator")), ErrInvalidRole)
}
