package usecase

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"NewsTagger/internal/domain"
	"NewsTagger/internal/ports"
)

const (
	stageThreeImportanceFloor = 7.0
	stageThreeMaxLimit        = 10

	relevanceImportanceWeight = 0.3
	relevanceRequiredBonus    = 5.0
	relevancePreferredBonus   = 2.0
)

// SearchExecutorDeps wires the stores into the staged search.
type SearchExecutorDeps struct {
	Articles ports.ArticleRepository
	Tags     ports.TagRepository
	Logger   *slog.Logger
}

// SearchExecutor runs the three-stage fallback search: exact required-tag
// match, partial preferred-tag match, then importance-only. Whichever stage
// produced results, excluded tags are filtered afterwards and survivors are
// ordered by relevance.
type SearchExecutor struct {
	articles ports.ArticleRepository
	tags     ports.TagRepository
	logger   *slog.Logger
}

// NewSearchExecutor constructs the search component.
func NewSearchExecutor(deps SearchExecutorDeps) *SearchExecutor {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &SearchExecutor{articles: deps.Articles, tags: deps.Tags, logger: deps.Logger}
}

// Execute runs the waterfall for a validated intent. Store errors propagate;
// everything else degrades stage by stage.
func (e *SearchExecutor) Execute(ctx context.Context, intent domain.SearchIntent) (domain.SearchResult, error) {
	start := time.Now()

	articles, stage, err := e.runStages(ctx, intent)
	if err != nil {
		return domain.SearchResult{}, err
	}

	ids := make([]string, 0, len(articles))
	for _, a := range articles {
		ids = append(ids, a.ID)
	}

	tagsByArticle, err := e.tags.NamesForArticles(ctx, ids)
	if err != nil {
		return domain.SearchResult{}, err
	}
	for i := range articles {
		articles[i].Tags = tagsByArticle[articles[i].ID]
	}

	// The excluded-tag filter applies unconditionally: even a required-tag
	// hit is dropped when it also matches an excluded tag.
	if len(intent.ExcludedTags) > 0 {
		kept := articles[:0]
		for _, a := range articles {
			if !matchesAnyTag(a.Tags, intent.ExcludedTags) {
				kept = append(kept, a)
			}
		}
		articles = kept
	}

	relevance := make(map[string]float64, len(articles))
	for _, a := range articles {
		relevance[a.ID] = relevanceScore(a, intent)
	}

	sort.SliceStable(articles, func(i, j int) bool {
		return relevance[articles[i].ID] > relevance[articles[j].ID]
	})

	elapsed := time.Since(start)
	e.logger.Debug("search executed",
		"stage", string(stage),
		"results", len(articles),
		"elapsed", elapsed)

	return domain.SearchResult{
		Articles:      articles,
		Intent:        intent,
		Stage:         stage,
		RequiredUsed:  len(intent.RequiredTags),
		PreferredUsed: len(intent.PreferredTags),
		Relevance:     relevance,
		TotalCount:    len(articles),
		Elapsed:       elapsed,
	}, nil
}

func (e *SearchExecutor) runStages(ctx context.Context, intent domain.SearchIntent) ([]domain.Article, domain.SearchStage, error) {
	filter := domain.SearchFilter{
		MinImportance: intent.ImportanceThreshold,
		From:          intent.From,
		To:            intent.To,
		Limit:         intent.Limit,
	}

	// Stage 1: exact match on required tags, OR across tags.
	if len(intent.RequiredTags) > 0 {
		articles, err := e.articles.SearchByTags(ctx, intent.RequiredTags, false, filter)
		if err != nil {
			return nil, "", err
		}
		if len(articles) > 0 {
			return articles, domain.StageRequired, nil
		}
	}

	// Stage 2: substring match on preferred tags.
	if len(intent.PreferredTags) > 0 {
		articles, err := e.articles.SearchByTags(ctx, intent.PreferredTags, true, filter)
		if err != nil {
			return nil, "", err
		}
		if len(articles) > 0 {
			return articles, domain.StagePreferred, nil
		}
	}

	// Stage 3: highest-importance analyzed articles, ignoring tags.
	floor := intent.ImportanceThreshold
	if floor < stageThreeImportanceFloor {
		floor = stageThreeImportanceFloor
	}

	limit := intent.Limit
	if limit <= 0 || limit > stageThreeMaxLimit {
		limit = stageThreeMaxLimit
	}

	articles, err := e.articles.SearchByImportance(ctx, domain.SearchFilter{
		MinImportance: floor,
		From:          intent.From,
		To:            intent.To,
		Limit:         limit,
	})
	if err != nil {
		return nil, "", err
	}

	return articles, domain.StageImportance, nil
}

// relevanceScore weights base importance and adds a bonus per tag hit,
// additive across multiple hits, floored at zero.
func relevanceScore(article domain.Article, intent domain.SearchIntent) float64 {
	score := article.ImportanceScore * relevanceImportanceWeight

	for _, required := range intent.RequiredTags {
		if matchesAnyTag(article.Tags, []string{required}) {
			score += relevanceRequiredBonus
		}
	}

	for _, preferred := range intent.PreferredTags {
		if matchesAnyTag(article.Tags, []string{preferred}) {
			score += relevancePreferredBonus
		}
	}

	if score < 0 {
		score = 0
	}
	return score
}

// matchesAnyTag reports whether any article tag contains any candidate as a
// case-insensitive substring.
func matchesAnyTag(articleTags, candidates []string) bool {
	for _, candidate := range candidates {
		lowered := strings.ToLower(candidate)
		for _, tag := range articleTags {
			if strings.Contains(strings.ToLower(tag), lowered) {
				return true
			}
		}
	}
	return false
}
