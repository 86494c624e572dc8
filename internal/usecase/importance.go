package usecase

import (
	"strings"

	"NewsTagger/internal/domain"
)

const baseImportance = 5.0

var categoryBonus = map[string]float64{
	"AI":            2.0,
	"Tech":          1.0,
	"Startup":       0.5,
	"World":         0.4,
	"Business":      0.3,
	"Music":         0.2,
	"Sports":        0.1,
	"Entertainment": 0.1,
	"Conspiracy":    -0.5,
	"General":       0.0,
}

// Keyword tiers for the baseline score. Only the highest matched tier
// contributes its bonus.
var importanceKeywordTiers = []struct {
	bonus    float64
	keywords []string
}{
	{1.5, []string{
		"breaking", "速報", "breakthrough", "画期的", "革新",
		"acquisition", "merger", "買収",
		"openai", "chatgpt", "claude", "gemini", "ai model",
	}},
	{1.0, []string{
		"announces", "launches", "新発表", "発表",
		"update", "アップデート", "更新", "release", "リリース",
		"new feature", "新機能", "beta", "ベータ", "preview",
		"funding", "資金調達", "investment", "投資", "ipo",
	}},
	{0.5, []string{
		"tutorial", "チュートリアル", "how to", "方法", "guide",
		"tips", "コツ", "best practices", "ベストプラクティス",
	}},
}

// baselineImportance computes the deterministic heuristic score assigned at
// collection time, before any AI refinement. Result is clamped to
// [1.0, 10.0] and rounded to one decimal.
func baselineImportance(title, summary string, source domain.FeedSource, targetLanguage string) float64 {
	score := baseImportance

	// Reliability 10 maps to +2.0, reliability 1 to -2.0.
	score += ((float64(source.Reliability) - 5.5) / 4.5) * 2.0

	score += categoryBonus[source.Category]

	content := strings.ToLower(title) + " " + strings.ToLower(summary)
	for _, tier := range importanceKeywordTiers {
		if containsAny(content, tier.keywords) {
			score += tier.bonus
			break
		}
	}

	length := len([]rune(summary))
	if length > 300 {
		score += 0.3
	} else if length < 100 {
		score -= 0.2
	}

	if source.Language != targetLanguage {
		score += 0.2
	}

	return domain.RoundScore(domain.ClampImportance(score))
}

func containsAny(content string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(content, keyword) {
			return true
		}
	}
	return false
}
