package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"NewsTagger/internal/domain"
	"NewsTagger/internal/ports"
)

const (
	defaultIntentThreshold  = 6.0
	defaultIntentLimit      = 20
	fallbackIntentThreshold = 5.0
	fallbackIntentLimit     = 10
	maxVocabularyInPrompt   = 100
)

// IntentResolverDeps wires the analysis service into intent resolution.
type IntentResolverDeps struct {
	Generator ports.Generator
	Logger    *slog.Logger
}

// IntentResolver maps a free-text query onto a validated tag intent using
// the current vocabulary tiers.
type IntentResolver struct {
	generator ports.Generator
	logger    *slog.Logger
}

// NewIntentResolver constructs the resolver component.
func NewIntentResolver(deps IntentResolverDeps) *IntentResolver {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &IntentResolver{generator: deps.Generator, logger: deps.Logger}
}

type intentPayload struct {
	RequiredTags        []string `json:"required_tags"`
	PreferredTags       []string `json:"preferred_tags"`
	ExcludedTags        []string `json:"excluded_tags"`
	ImportanceThreshold float64  `json:"importance_threshold"`
	Limit               int      `json:"limit"`
}

// Resolve turns a query into a SearchIntent. Tags the model proposes that
// are absent from the vocabulary are dropped silently; entirely empty tag
// lists after validation are a valid outcome, not a retry trigger. Service
// failures fall back to a whitespace-token heuristic.
func (r *IntentResolver) Resolve(ctx context.Context, query string, vocab Vocabulary) domain.SearchIntent {
	raw, err := r.generator.Generate(ctx, buildIntentPrompt(query, vocab))
	if err != nil {
		r.logger.Warn("intent analysis failed, using heuristic", "query", query, "error", err)
		return heuristicIntent(query)
	}

	var payload intentPayload
	if err := json.Unmarshal([]byte(repairJSON(raw)), &payload); err != nil {
		r.logger.Warn("intent response unusable, using heuristic", "query", query, "error", err)
		return heuristicIntent(query)
	}

	intent := domain.SearchIntent{
		RequiredTags:        keepKnown(payload.RequiredTags, vocab),
		PreferredTags:       keepKnown(payload.PreferredTags, vocab),
		ExcludedTags:        keepKnown(payload.ExcludedTags, vocab),
		ImportanceThreshold: payload.ImportanceThreshold,
		Limit:               payload.Limit,
	}
	if intent.ImportanceThreshold <= 0 {
		intent.ImportanceThreshold = defaultIntentThreshold
	}
	if intent.Limit <= 0 {
		intent.Limit = defaultIntentLimit
	}

	return intent
}

// heuristicIntent is the deterministic fallback: tokens longer than two
// characters become preferred tags.
func heuristicIntent(query string) domain.SearchIntent {
	var preferred []string
	for _, token := range strings.Fields(strings.ToLower(query)) {
		if len([]rune(token)) > 2 {
			preferred = append(preferred, token)
		}
	}

	return domain.SearchIntent{
		PreferredTags:       preferred,
		ImportanceThreshold: fallbackIntentThreshold,
		Limit:               fallbackIntentLimit,
	}
}

func keepKnown(tags []string, vocab Vocabulary) []string {
	var kept []string
	for _, tag := range tags {
		if vocab.Contains(tag) {
			kept = append(kept, tag)
		}
	}
	return kept
}

func buildIntentPrompt(query string, vocab Vocabulary) string {
	high := vocab.High
	if len(high) > maxVocabularyInPrompt {
		high = high[:maxVocabularyInPrompt]
	}
	medium := vocab.Medium
	if len(medium) > maxVocabularyInPrompt {
		medium = medium[:maxVocabularyInPrompt]
	}

	return fmt.Sprintf(`Analyze the search query and pick matching tags from the existing vocabulary.
Return empty arrays when nothing applies.

**Search query:** %s

**Required-tag candidates (high quality, %d total):**
%s

**Preferred-tag candidates (related expansion, %d total):**
%s

**Rules:**
1. required_tags: only high-quality tags directly relevant to the query ([] when none)
2. preferred_tags: medium-quality tags that widen the search ([] when none)
3. excluded_tags: tags the query explicitly rules out ([] when none)
4. Never invent a tag that is not listed above
5. Empty arrays are a correct answer, do not force matches

**Output format (JSON):**
{
  "required_tags": [],
  "preferred_tags": [],
  "excluded_tags": [],
  "importance_threshold": 6.0,
  "limit": 20
}

Output only the JSON. No explanations.`,
		query,
		len(vocab.High), strings.Join(high, ", "),
		len(vocab.Medium), strings.Join(medium, ", "))
}
