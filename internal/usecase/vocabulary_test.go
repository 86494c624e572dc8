package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsTagger/internal/domain"
)

func TestVocabularyBuildTiers(t *testing.T) {
	t.Parallel()

	articles := newFakeArticles()
	articles.ids = []string{"a1", "a2", "a3"}

	tags := &fakeTags{assignments: []domain.TagAssignment{
		{Name: "OpenAI", Confidence: 0.9},
		{Name: "OpenAI", Confidence: 0.8},
		{Name: "OpenAI", Confidence: 0.75},
		{Name: "Gaming", Confidence: 0.6},
		{Name: "rumor", Confidence: 0.4},
		{Name: "rumor", Confidence: 0.45},
		{Name: "rumor", Confidence: 0.3},
		{Name: "rumor", Confidence: 0.2},
		{Name: "rumor", Confidence: 0.1},
	}}

	vocab, err := NewVocabularyManager(VocabularyManagerDeps{Articles: articles, Tags: tags}).Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"OpenAI"}, vocab.High, "confident and frequent")
	assert.Equal(t, []string{"Gaming"}, vocab.Medium, "one mid-confidence use is enough")
	assert.False(t, vocab.Contains("rumor"), "frequency never compensates for low confidence")
}

func TestVocabularyTiersAreExclusive(t *testing.T) {
	t.Parallel()

	articles := newFakeArticles()
	articles.ids = []string{"a1"}

	// Qualifies for both tiers; high wins and medium must not list it.
	tags := &fakeTags{assignments: []domain.TagAssignment{
		{Name: "AI", Confidence: 0.9},
		{Name: "AI", Confidence: 0.85},
		{Name: "AI", Confidence: 0.55},
	}}

	vocab, err := NewVocabularyManager(VocabularyManagerDeps{Articles: articles, Tags: tags}).Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"AI"}, vocab.High)
	assert.Empty(t, vocab.Medium)
}

func TestVocabularySingleHighConfidenceUseIsNotEnough(t *testing.T) {
	t.Parallel()

	articles := newFakeArticles()
	articles.ids = []string{"a1"}

	tags := &fakeTags{assignments: []domain.TagAssignment{
		{Name: "OneOff", Confidence: 0.95},
	}}

	vocab, err := NewVocabularyManager(VocabularyManagerDeps{Articles: articles, Tags: tags}).Build(context.Background())
	require.NoError(t, err)

	assert.Empty(t, vocab.High, "high tier needs at least two confident uses")
	assert.Empty(t, vocab.Medium, "a confident one-off is not medium either")
}

func TestVocabularyEmptyCorpus(t *testing.T) {
	t.Parallel()

	vocab, err := NewVocabularyManager(VocabularyManagerDeps{Articles: newFakeArticles(), Tags: &fakeTags{}}).Build(context.Background())
	require.NoError(t, err)

	assert.Empty(t, vocab.High)
	assert.Empty(t, vocab.Medium)
}
