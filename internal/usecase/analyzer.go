package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"NewsTagger/internal/domain"
	"NewsTagger/internal/ports"
)

const (
	maxPrematchedTags   = 10
	maxFallbackTags     = 5
	fallbackConfidence  = 0.7
	fallbackImportance  = 6.0
	fallbackSummaryRune = 150
)

// techAliases expands known technology tag names into the keywords that
// signal them, since the tag name itself rarely appears verbatim.
var techAliases = map[string][]string{
	"言語AI":    {"gpt", "llm", "claude", "gemini", "chatgpt", "言語モデル", "言語ai", "large language"},
	"画像生成AI":  {"dall-e", "midjourney", "stable diffusion", "画像生成", "image generation"},
	"音声認識":    {"whisper", "音声認識", "speech recognition", "voice"},
	"機械学習":    {"machine learning", "ml", "機械学習", "neural network"},
	"マルチモーダル": {"multimodal", "マルチモーダル", "vision", "image understanding"},
	"LLM":     {"llm", "large language model", "大規模言語モデル"},
}

// AnalyzerDeps wires the driven adapters into the analysis use case.
type AnalyzerDeps struct {
	Catalog        ports.CatalogRepository
	Articles       ports.ArticleRepository
	Tags           ports.TagRepository
	Generator      ports.Generator
	Logger         *slog.Logger
	TargetLanguage string
	AssignedBy     string
}

// Analyzer sends article text to the analysis service, repairs and validates
// the response, and persists tags, summary, and refined importance. Every
// service failure degrades to a deterministic fallback.
type Analyzer struct {
	catalog        ports.CatalogRepository
	articles       ports.ArticleRepository
	tags           ports.TagRepository
	generator      ports.Generator
	logger         *slog.Logger
	targetLanguage string
	assignedBy     string
}

// NewAnalyzer constructs the analysis component.
func NewAnalyzer(deps AnalyzerDeps) *Analyzer {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.TargetLanguage == "" {
		deps.TargetLanguage = "ja"
	}
	if deps.AssignedBy == "" {
		deps.AssignedBy = "gemini_flash"
	}

	return &Analyzer{
		catalog:        deps.Catalog,
		articles:       deps.Articles,
		tags:           deps.Tags,
		generator:      deps.Generator,
		logger:         deps.Logger,
		targetLanguage: deps.TargetLanguage,
		assignedBy:     deps.AssignedBy,
	}
}

// AnalyzeAndTag runs the full analysis for one article and persists the
// outcome. The returned result is always shape-complete: a failing service
// call or unusable response yields the fallback, never an error. Only a
// failing article update propagates, since that means the store itself is
// down.
func (a *Analyzer) AnalyzeAndTag(ctx context.Context, article domain.Article) (domain.AnalysisResult, error) {
	prematched := a.matchCatalogTags(ctx, article.Title+" "+article.Summary)

	result := a.analyze(ctx, article, prematched)

	if err := a.persist(ctx, article, result); err != nil {
		return result, err
	}

	return result, nil
}

func (a *Analyzer) analyze(ctx context.Context, article domain.Article, prematched []domain.CatalogTag) domain.AnalysisResult {
	prompt := buildAnalysisPrompt(article, prematched)

	raw, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		a.logger.Warn("analysis call failed, using fallback", "url", article.URL, "error", err)
		return fallbackAnalysis(article.Title, article.Summary, prematched)
	}

	result, ok := parseAnalysis(raw)
	if !ok {
		a.logger.Warn("analysis response unusable, using fallback", "url", article.URL)
		return fallbackAnalysis(article.Title, article.Summary, prematched)
	}

	return result
}

// matchCatalogTags performs the lightweight predefined-tag pre-match used to
// bias the prompt. Catalog failures yield an empty candidate list, not an
// error.
func (a *Analyzer) matchCatalogTags(ctx context.Context, content string) []domain.CatalogTag {
	catalog, err := a.catalog.ListAll(ctx)
	if err != nil {
		a.logger.Warn("catalog list failed", "error", err)
		return nil
	}

	lowered := strings.ToLower(content)

	var matched []domain.CatalogTag
	for _, tag := range catalog {
		if strings.Contains(lowered, strings.ToLower(tag.Name)) {
			matched = append(matched, tag)
		} else if tag.Category == domain.CategoryTechnology && containsAny(lowered, techAliases[tag.Name]) {
			matched = append(matched, tag)
		}

		if len(matched) >= maxPrematchedTags {
			break
		}
	}

	return matched
}

// fallbackAnalysis is the deterministic result used whenever the service
// response cannot be trusted.
func fallbackAnalysis(title, summary string, prematched []domain.CatalogTag) domain.AnalysisResult {
	runes := []rune(summary)
	if len(runes) > fallbackSummaryRune {
		summary = string(runes[:fallbackSummaryRune]) + "..."
	}

	limit := len(prematched)
	if limit > maxFallbackTags {
		limit = maxFallbackTags
	}

	tags := make([]domain.AnalyzedTag, 0, limit)
	for _, tag := range prematched[:limit] {
		tags = append(tags, domain.AnalyzedTag{
			Name:          tag.Name,
			Confidence:    fallbackConfidence,
			Category:      tag.Category,
			AutoGenerated: false,
		})
	}

	return domain.AnalysisResult{
		Summary:         summary,
		Tags:            tags,
		ImportanceScore: fallbackImportance,
		Sentiment:       "neutral",
		KeyPoints:       []string{title},
		Fallback:        true,
	}
}

// persist applies the analysis to the store: article update first, then one
// tag row per tag. Per-tag failures are logged and skipped; the article
// update failing propagates.
func (a *Analyzer) persist(ctx context.Context, article domain.Article, result domain.AnalysisResult) error {
	importance := domain.ClampImportance(result.ImportanceScore)

	if err := a.articles.ApplyAnalysis(ctx, article.ID, importance, result.Summary); err != nil {
		return fmt.Errorf("apply analysis for %s: %w", article.ID, err)
	}

	for _, tag := range result.Tags {
		row := domain.ArticleTag{
			ArticleID:       article.ID,
			Name:            tag.Name,
			Category:        tag.Category,
			ConfidenceScore: domain.ClampConfidence(tag.Confidence),
			AutoGenerated:   tag.AutoGenerated,
			AssignedBy:      a.assignedBy,
		}

		if !tag.AutoGenerated {
			entry, err := a.catalog.FindByName(ctx, tag.Name)
			if err != nil {
				a.logger.Warn("catalog lookup failed", "tag", tag.Name, "error", err)
			} else if entry != nil {
				row.CatalogID = entry.ID
			}
		}

		if err := a.tags.Insert(ctx, row); err != nil {
			a.logger.Warn("tag save failed", "tag", tag.Name, "article", article.ID, "error", err)
		}
	}

	if result.TranslatedTitle != "" && article.Language != a.targetLanguage {
		if err := a.articles.UpdateTitle(ctx, article.ID, result.TranslatedTitle); err != nil {
			a.logger.Warn("title update failed", "article", article.ID, "error", err)
		}
	}

	return nil
}

func buildAnalysisPrompt(article domain.Article, prematched []domain.CatalogTag) string {
	var predefined strings.Builder
	for _, tag := range prematched {
		fmt.Fprintf(&predefined, "- %s (%s, reliability: %.1f)\n", tag.Name, tag.Category, tag.BaseReliability)
	}
	if predefined.Len() == 0 {
		predefined.WriteString("(no matching predefined tags)\n")
	}

	var categories []string
	for _, cat := range domain.Categories() {
		categories = append(categories, string(cat))
	}

	return fmt.Sprintf(`Analyze the following news article and assign tags.

**Article:**
Title: %s
Summary: %s
Source: %s
URL: %s

**Predefined tags (prefer these when applicable):**
%s
**Output format (strict JSON, mind the brace balance):**
{
  "title_ja": "title translated into Japanese",
  "summary": "concise summary of the article (100-150 characters)",
  "tags": [
    {
      "tag_name": "tag name",
      "confidence_score": 0.9,
      "category": "company",
      "is_auto_generated": false
    }
  ],
  "importance_score": 7.5,
  "sentiment": "neutral",
  "key_points": ["point 1", "point 2"]
}

**Output rules:**
- The JSON must start with { and end with }
- No newlines or special characters inside strings
- No trailing comma after the last element of an array
- Keep scores in range (importance_score: 1.0-10.0, confidence_score: 0.1-1.0)

**Instructions:**
1. Always translate an English title into natural Japanese in "title_ja"
2. Prefer predefined tags from the list above with is_auto_generated: false
3. Create new tags only for important concepts no predefined tag covers, with is_auto_generated: true
4. Pick each tag's category from: %s
5. At most 8 tags

**Importance rubric:**
- 9.0-10.0: industry-changing announcement
- 8.0-8.9: major product launch or critical news
- 7.0-7.9: notable update or announcement
- 6.0-6.9: regular news
- 5.0-5.9: minor update
- 1.0-4.9: everything else

Output only the JSON. No explanations.`,
		article.Title, article.Summary, article.SourceName, article.URL,
		predefined.String(), strings.Join(categories, ", "))
}
