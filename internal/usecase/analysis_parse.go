package usecase

import (
	"encoding/json"
	"regexp"
	"strings"

	"NewsTagger/internal/domain"
)

// analysisPayload mirrors the strict JSON object the analysis service is
// asked to produce.
type analysisPayload struct {
	TitleJA string `json:"title_ja"`
	Summary string `json:"summary"`
	Tags    []struct {
		TagName         string  `json:"tag_name"`
		ConfidenceScore float64 `json:"confidence_score"`
		Category        string  `json:"category"`
		IsAutoGenerated bool    `json:"is_auto_generated"`
	} `json:"tags"`
	ImportanceScore float64  `json:"importance_score"`
	Sentiment       string   `json:"sentiment"`
	KeyPoints       []string `json:"key_points"`
}

var (
	codeFenceExpr     = regexp.MustCompile("```(?:json)?\\s*")
	controlCharExpr   = regexp.MustCompile(`[\x00-\x1F\x7F]`)
	trailingCommaExpr = regexp.MustCompile(`,(\s*[}\]])`)
	newlineExpr       = regexp.MustCompile(`[\n\r]`)
)

// repairJSON applies the documented cleanup steps to a model response that
// carries no JSON-validity guarantee: fence markers, leading prose, truncated
// tails, control characters, trailing commas, stray newlines.
func repairJSON(raw string) string {
	cleaned := codeFenceExpr.ReplaceAllString(raw, "")
	cleaned = strings.TrimSpace(cleaned)

	if !strings.HasPrefix(cleaned, "{") {
		if start := strings.Index(cleaned, "{"); start >= 0 {
			cleaned = cleaned[start:]
		}
	}

	if !strings.HasSuffix(cleaned, "}") {
		if end := lastBalancedBrace(cleaned); end >= 0 {
			cleaned = cleaned[:end+1]
		}
	}

	cleaned = controlCharExpr.ReplaceAllString(cleaned, "")
	cleaned = trailingCommaExpr.ReplaceAllString(cleaned, "$1")
	cleaned = newlineExpr.ReplaceAllString(cleaned, " ")

	return cleaned
}

// lastBalancedBrace returns the index of the last '}' that closes the
// opening brace at depth zero, or -1 when the text never balances.
func lastBalancedBrace(text string) int {
	depth := 0
	last := -1
	for i, r := range text {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				last = i
			}
		}
	}
	return last
}

// parseAnalysis repairs and decodes a model response. The boolean reports
// whether the response was usable; callers fall back deterministically when
// it is not. Scores are clamped here so no caller ever sees an out-of-range
// value.
func parseAnalysis(raw string) (domain.AnalysisResult, bool) {
	var payload analysisPayload
	if err := json.Unmarshal([]byte(repairJSON(raw)), &payload); err != nil {
		return domain.AnalysisResult{}, false
	}

	if payload.Summary == "" || payload.Tags == nil {
		return domain.AnalysisResult{}, false
	}

	result := domain.AnalysisResult{
		TranslatedTitle: payload.TitleJA,
		Summary:         payload.Summary,
		ImportanceScore: domain.ClampImportance(payload.ImportanceScore),
		Sentiment:       payload.Sentiment,
		KeyPoints:       payload.KeyPoints,
	}
	if result.Sentiment == "" {
		result.Sentiment = "neutral"
	}

	result.Tags = make([]domain.AnalyzedTag, 0, len(payload.Tags))
	for _, tag := range payload.Tags {
		if tag.TagName == "" {
			continue
		}
		result.Tags = append(result.Tags, domain.AnalyzedTag{
			Name:          tag.TagName,
			Confidence:    domain.ClampConfidence(tag.ConfidenceScore),
			Category:      domain.NormalizeTagCategory(tag.Category),
			AutoGenerated: tag.IsAutoGenerated,
		})
	}

	return result, true
}
