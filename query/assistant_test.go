package query

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parthenonlabs/repoassist/ai/mock"
	"github.com/parthenonlabs/repoassist/core"
)

func TestNewAssistantValidation(t *testing.T) {
	provider := mock.NewMockProvider()
	store := &cannedStore{}

	_, err := NewAssistant(nil, provider, "repo", ProfileBroad)
	assert.ErrorIs(t, err, ErrStoreRequired)

	_, err = NewAssistant(store, nil, "repo", ProfileBroad)
	assert.ErrorIs(t, err, ErrProviderRequired)

	_, err = NewAssistant(store, provider, "", ProfileBroad)
	assert.ErrorIs(t, err, ErrTableRequired)
}

func TestProfileByName(t *testing.T) {
	focused, err := ProfileByName("focused")
	require.NoError(t, err)
	assert.Equal(t, ProfileFocused, focused)

	broad, err := ProfileByName("broad")
	require.NoError(t, err)
	assert.Equal(t, ProfileBroad, broad)

	_, err = ProfileByName("nope")
	assert.ErrorIs(t, err, ErrUnknownProfile)
}

func TestHandleTurnRejectsEmptyQuery(t *testing.T) {
	assistant, err := NewAssistant(&cannedStore{}, mock.NewMockProvider(), "repo", ProfileBroad)
	require.NoError(t, err)

	_, err = assistant.HandleTurn(context.Background(), "   ", nil)
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestHandleTurnBroadDecomposesWithoutExpansion(t *testing.T) {
	provider := mock.NewMockProvider().(*mock.MockProvider)
	lister := provider.GetMockQuestionLister()
	lister.ListQuestionsFunc = func(ctx context.Context, prompt string) ([]string, error) {
		return []string{"what loads files?", "how are chunks stored?"}, nil
	}
	store := &cannedStore{results: map[string][]core.ScoredMatch{
		"what loads files?":      {match(1, "a tree walker streams blobs", 0.4)},
		"how are chunks stored?": {match(2, "chunks land in one table", 0.5)},
	}}

	assistant, err := NewAssistant(store, provider, "repo", ProfileBroad)
	require.NoError(t, err)

	answer, err := assistant.HandleTurn(context.Background(),
		"what loads files and how are chunks stored?", nil)
	require.NoError(t, err)
	assert.Equal(t, "mock answer", answer)

	// One planner call for decomposition, none for expansion; each
	// sub-question drives its own similarity query.
	assert.Equal(t, 1, lister.CallCount())
	assert.Equal(t, []string{"what loads files?", "how are chunks stored?"}, store.queries)

	final := provider.GetMockChatModel().LastCall()
	require.NotEmpty(t, final)
	content := final[len(final)-1].Content
	assert.Contains(t, content, "a tree walker streams blobs")
	assert.Contains(t, content, "chunks land in one table")
}

func TestHandleTurnWithoutPlanningUsesRawQuery(t *testing.T) {
	provider := mock.NewMockProvider().(*mock.MockProvider)
	store := &cannedStore{results: map[string][]core.ScoredMatch{
		"how does ingestion work?": {match(1, "ingestion streams files", 0.4)},
	}}

	profile := Profile{Name: "plain", K: 2, Threshold: 0.9}
	assistant, err := NewAssistant(store, provider, "repo", profile)
	require.NoError(t, err)

	answer, err := assistant.HandleTurn(context.Background(), "how does ingestion work?", nil)
	require.NoError(t, err)
	assert.Equal(t, "mock answer", answer)

	// The raw query is the only retrieval input and no planner call happens.
	assert.Equal(t, []string{"how does ingestion work?"}, store.queries)
	assert.Equal(t, 0, provider.GetMockQuestionLister().CallCount())
}

func TestHandleTurnFocusedPlansQueries(t *testing.T) {
	provider := mock.NewMockProvider().(*mock.MockProvider)
	lister := provider.GetMockQuestionLister()
	lister.ListQuestionsFunc = func(ctx context.Context, prompt string) ([]string, error) {
		if lister.CallCount() == 1 {
			return []string{"what is chunking?"}, nil
		}
		return []string{"how are files split?", "what bounds chunk size?"}, nil
	}

	store := &cannedStore{results: map[string][]core.ScoredMatch{
		"how are files split?":    {match(1, "splitting by category", 0.3)},
		"what bounds chunk size?": {match(2, "a configured maximum", 0.5)},
	}}

	assistant, err := NewAssistant(store, provider, "repo", ProfileFocused)
	require.NoError(t, err)

	answer, err := assistant.HandleTurn(context.Background(), "what is chunking?", nil)
	require.NoError(t, err)
	assert.Equal(t, "mock answer", answer)

	// Two planner calls: decomposition then expansion.
	assert.Equal(t, 2, lister.CallCount())
	assert.Equal(t, []string{"how are files split?", "what bounds chunk size?"}, store.queries)

	final := provider.GetMockChatModel().LastCall()
	content := final[len(final)-1].Content
	assert.Contains(t, content, "splitting by category")
	assert.Contains(t, content, "a configured maximum")
	assert.Contains(t, content, "User Query:\nwhat is chunking?")
}

func TestHandleTurnExpansionFailureAbortsTurn(t *testing.T) {
	provider := mock.NewMockProvider().(*mock.MockProvider)
	lister := provider.GetMockQuestionLister()
	lister.ListQuestionsFunc = func(ctx context.Context, prompt string) ([]string, error) {
		return nil, errors.New("model unavailable")
	}

	assistant, err := NewAssistant(&cannedStore{}, provider, "repo", ProfileFocused)
	require.NoError(t, err)

	// Decomposition failure falls back, expansion failure aborts.
	_, err = assistant.HandleTurn(context.Background(), "anything?", nil)
	require.Error(t, err)
	assert.Equal(t, 0, provider.GetMockChatModel().CallCount())
}

func TestHandleTurnForwardsHistory(t *testing.T) {
	provider := mock.NewMockProvider().(*mock.MockProvider)
	store := &cannedStore{}

	assistant, err := NewAssistant(store, provider, "repo", ProfileBroad)
	require.NoError(t, err)

	history := []core.Message{
		{Role: core.RoleUser, Content: "what previously?"},
		{Role: core.RoleAssistant, Content: "previous answer"},
	}
	_, err = assistant.HandleTurn(context.Background(), "and now?", history)
	require.NoError(t, err)

	messages := provider.GetMockChatModel().LastCall()
	require.Len(t, messages, 4)
	assert.Equal(t, "what previously?", messages[1].Content)
	assert.Equal(t, "previous answer", messages[2].Content)
}
