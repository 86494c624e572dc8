package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsTagger/internal/domain"
)

// taggingStub removes successfully analyzed articles from the untagged set,
// mimicking what a real analysis pass does to the store.
type taggingStub struct {
	store *fakeArticles
	fail  bool
	calls int
}

func (s *taggingStub) AnalyzeAndTag(_ context.Context, article domain.Article) (domain.AnalysisResult, error) {
	s.calls++
	if s.fail {
		return domain.AnalysisResult{}, errStub
	}

	kept := make([]domain.Article, 0, len(s.store.untagged))
	for _, a := range s.store.untagged {
		if a.ID != article.ID {
			kept = append(kept, a)
		}
	}
	s.store.untagged = kept
	return domain.AnalysisResult{}, nil
}

func TestCoverageRunReachesTarget(t *testing.T) {
	t.Parallel()

	articles := newFakeArticles()
	articles.ids = []string{"a1", "a2", "a3", "a4"}
	articles.untagged = []domain.Article{{ID: "a3"}, {ID: "a4"}}

	stub := &taggingStub{store: articles}
	runner := NewCoverageRunner(CoverageRunnerDeps{
		Articles: articles,
		Analyzer: stub,
		Sleep:    func(time.Duration) {},
	})

	report, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, report.Success)
	assert.Equal(t, 100, report.Coverage)
	assert.Equal(t, 1, report.Attempts, "one pass suffices when every analysis lands")
	assert.Equal(t, 4, report.TotalArticles)
	assert.Equal(t, 4, report.TaggedArticles)
	assert.Empty(t, report.Untagged)
	assert.Equal(t, 2, stub.calls)
}

func TestCoverageRunAlreadyComplete(t *testing.T) {
	t.Parallel()

	articles := newFakeArticles()
	articles.ids = []string{"a1", "a2"}

	stub := &taggingStub{store: articles}
	runner := NewCoverageRunner(CoverageRunnerDeps{
		Articles: articles,
		Analyzer: stub,
		Sleep:    func(time.Duration) {},
	})

	report, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, report.Success)
	assert.Equal(t, 0, report.Attempts)
	assert.Equal(t, 0, stub.calls, "nothing to analyze, nothing analyzed")
}

func TestCoverageRunExhaustsRetryBudget(t *testing.T) {
	t.Parallel()

	articles := newFakeArticles()
	articles.ids = []string{"a1", "a2", "a3", "a4"}
	articles.untagged = []domain.Article{{ID: "a3"}, {ID: "a4"}}

	stub := &taggingStub{store: articles, fail: true}
	runner := NewCoverageRunner(CoverageRunnerDeps{
		Articles:   articles,
		Analyzer:   stub,
		MaxRetries: 3,
		Sleep:      func(time.Duration) {},
	})

	report, err := runner.Run(context.Background())
	require.NoError(t, err, "per-article failures never abort the run")

	assert.False(t, report.Success)
	assert.Equal(t, 50, report.Coverage, "two of four articles stay tagged")
	assert.Equal(t, 3, report.Attempts)
	assert.Len(t, report.Untagged, 2, "the stubborn articles are reported for follow-up")
	assert.Equal(t, 6, stub.calls)
}

func TestCoverageRunPartialTarget(t *testing.T) {
	t.Parallel()

	articles := newFakeArticles()
	articles.ids = []string{"a1", "a2", "a3", "a4"}
	articles.untagged = []domain.Article{{ID: "a4"}}

	runner := NewCoverageRunner(CoverageRunnerDeps{
		Articles:       articles,
		Analyzer:       &taggingStub{store: articles, fail: true},
		MaxRetries:     1,
		TargetCoverage: 75,
		Sleep:          func(time.Duration) {},
	})

	report, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, report.Success, "75 percent coverage meets a 75 percent target")
	assert.Equal(t, 75, report.Coverage)
	assert.Equal(t, 0, report.Attempts)
}

func TestCoverageRunEmptyCorpusIsComplete(t *testing.T) {
	t.Parallel()

	runner := NewCoverageRunner(CoverageRunnerDeps{
		Articles: newFakeArticles(),
		Analyzer: &taggingStub{store: newFakeArticles()},
		Sleep:    func(time.Duration) {},
	})

	report, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, report.Success)
	assert.Equal(t, 100, report.Coverage)
}
