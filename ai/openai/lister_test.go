package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuestionList(t *testing.T) {
	t.Run("plain JSON object", func(t *testing.T) {
		questions, err := parseQuestionList(`{"questions": ["What is X?", "How does Y work?"]}`)
		require.NoError(t, err)
		assert.Equal(t, []string{"What is X?", "How does Y work?"}, questions)
	})

	t.Run("wrapped in code fences", func(t *testing.T) {
		questions, err := parseQuestionList("```json\n{\"questions\": [\"What is X?\"]}\n```")
		require.NoError(t, err)
		assert.Equal(t, []string{"What is X?"}, questions)
	})

	t.Run("missing opening quote on key is repaired", func(t *testing.T) {
		questions, err := parseQuestionList(`{questions": ["What is X?"]}`)
		require.NoError(t, err)
		assert.Equal(t, []string{"What is X?"}, questions)
	})

	t.Run("not JSON", func(t *testing.T) {
		_, err := parseQuestionList("here are your questions: what is X?")
		assert.Error(t, err)
	})

	t.Run("wrong shape", func(t *testing.T) {
		_, err := parseQuestionList(`{"answers": ["What is X?"]}`)
		assert.Error(t, err)
	})

	t.Run("empty array", func(t *testing.T) {
		_, err := parseQuestionList(`{"questions": []}`)
		assert.Error(t, err)
	})

	t.Run("empty entry", func(t *testing.T) {
		_, err := parseQuestionList(`{"questions": ["What is X?", "  "]}`)
		assert.Error(t, err)
	})
}

func TestRepairJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "valid JSON untouched",
			in:   `{"questions": ["a", "b"]}`,
			want: `{"questions": ["a", "b"]}`,
		},
		{
			name: "missing opening quote after brace",
			in:   `{questions": ["a"]}`,
			want: `{"questions": ["a"]}`,
		},
		{
			name: "missing opening quote after comma",
			in:   `{"a": 1, b": 2}`,
			want: `{"a": 1, "b": 2}`,
		},
		{
			name: "empty string",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, repairJSON(tt.in))
		})
	}
}
