package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsTagger/internal/domain"
)

func TestExecuteStageOneRequiredMatch(t *testing.T) {
	t.Parallel()

	articles := newFakeArticles()
	articles.byTags = func(tags []string, partial bool, _ domain.SearchFilter) ([]domain.Article, error) {
		require.False(t, partial, "stage one matches exactly")
		require.Equal(t, []string{"OpenAI"}, tags)
		return []domain.Article{
			{ID: "a1", ImportanceScore: 8.0},
			{ID: "a2", ImportanceScore: 9.5},
		}, nil
	}
	tags := &fakeTags{names: map[string][]string{
		"a1": {"OpenAI", "LLM"},
		"a2": {"Gaming"},
	}}

	executor := NewSearchExecutor(SearchExecutorDeps{Articles: articles, Tags: tags})
	result, err := executor.Execute(context.Background(), domain.SearchIntent{
		RequiredTags:        []string{"OpenAI"},
		ImportanceThreshold: 6.0,
		Limit:               20,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StageRequired, result.Stage)
	assert.Equal(t, 1, result.RequiredUsed)
	assert.Equal(t, 2, result.TotalCount)

	// a1 hits the required tag: 8.0*0.3 + 5.0 = 7.4; a2 only carries its
	// importance share: 9.5*0.3 = 2.85. The hit outranks raw importance.
	require.Len(t, result.Articles, 2)
	assert.Equal(t, "a1", result.Articles[0].ID)
	assert.InDelta(t, 7.4, result.Relevance["a1"], 0.0001)
	assert.InDelta(t, 2.85, result.Relevance["a2"], 0.0001)
}

func TestExecuteFallsThroughToStageTwo(t *testing.T) {
	t.Parallel()

	articles := newFakeArticles()
	articles.byTags = func(tags []string, partial bool, _ domain.SearchFilter) ([]domain.Article, error) {
		if !partial {
			return nil, nil
		}
		require.Equal(t, []string{"Gaming"}, tags)
		return []domain.Article{{ID: "b1", ImportanceScore: 7.0}}, nil
	}
	tags := &fakeTags{names: map[string][]string{"b1": {"gaming news"}}}

	executor := NewSearchExecutor(SearchExecutorDeps{Articles: articles, Tags: tags})
	result, err := executor.Execute(context.Background(), domain.SearchIntent{
		RequiredTags:  []string{"OpenAI"},
		PreferredTags: []string{"Gaming"},
		Limit:         20,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StagePreferred, result.Stage)
	// 7.0*0.3 + 2.0 preferred hit through substring match.
	assert.InDelta(t, 4.1, result.Relevance["b1"], 0.0001)
}

func TestExecuteStageThreeImportanceOnly(t *testing.T) {
	t.Parallel()

	articles := newFakeArticles()
	articles.byScore = func(filter domain.SearchFilter) ([]domain.Article, error) {
		assert.Equal(t, 7.0, filter.MinImportance, "floor is raised to the stage minimum")
		assert.Equal(t, 10, filter.Limit, "stage three caps the limit")
		return []domain.Article{{ID: "c1", ImportanceScore: 8.0}}, nil
	}

	executor := NewSearchExecutor(SearchExecutorDeps{Articles: articles, Tags: &fakeTags{}})
	result, err := executor.Execute(context.Background(), domain.SearchIntent{
		ImportanceThreshold: 6.0,
		Limit:               20,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StageImportance, result.Stage)
	require.Len(t, result.Articles, 1)
	assert.InDelta(t, 2.4, result.Relevance["c1"], 0.0001)
}

func TestExecuteStageThreeKeepsHigherThreshold(t *testing.T) {
	t.Parallel()

	articles := newFakeArticles()
	articles.byScore = func(filter domain.SearchFilter) ([]domain.Article, error) {
		assert.Equal(t, 8.5, filter.MinImportance, "a stricter caller threshold survives")
		return nil, nil
	}

	executor := NewSearchExecutor(SearchExecutorDeps{Articles: articles, Tags: &fakeTags{}})
	_, err := executor.Execute(context.Background(), domain.SearchIntent{ImportanceThreshold: 8.5, Limit: 5})
	require.NoError(t, err)
}

func TestExecuteExcludedTagsFilterEveryStage(t *testing.T) {
	t.Parallel()

	articles := newFakeArticles()
	articles.byTags = func(_ []string, partial bool, _ domain.SearchFilter) ([]domain.Article, error) {
		if partial {
			return nil, nil
		}
		return []domain.Article{
			{ID: "d1", ImportanceScore: 9.0},
			{ID: "d2", ImportanceScore: 8.0},
		}, nil
	}
	tags := &fakeTags{names: map[string][]string{
		"d1": {"OpenAI", "Rumor Mill"},
		"d2": {"OpenAI"},
	}}

	executor := NewSearchExecutor(SearchExecutorDeps{Articles: articles, Tags: tags})
	result, err := executor.Execute(context.Background(), domain.SearchIntent{
		RequiredTags: []string{"OpenAI"},
		ExcludedTags: []string{"rumor"},
		Limit:        20,
	})
	require.NoError(t, err)

	require.Len(t, result.Articles, 1, "a required-tag winner is still dropped on an excluded match")
	assert.Equal(t, "d2", result.Articles[0].ID)
	assert.Equal(t, domain.StageRequired, result.Stage)
}

func TestExecuteStoreErrorPropagates(t *testing.T) {
	t.Parallel()

	articles := newFakeArticles()
	articles.byTags = func(_ []string, _ bool, _ domain.SearchFilter) ([]domain.Article, error) {
		return nil, errStub
	}

	executor := NewSearchExecutor(SearchExecutorDeps{Articles: articles, Tags: &fakeTags{}})
	_, err := executor.Execute(context.Background(), domain.SearchIntent{RequiredTags: []string{"OpenAI"}})
	require.ErrorIs(t, err, errStub)
}
