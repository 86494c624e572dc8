package feed

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripMarkup removes HTML tags and collapses whitespace. Feed descriptions
// frequently carry embedded markup that must not reach the store.
func StripMarkup(value string) string {
	text := value
	if strings.ContainsAny(value, "<>") {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(value))
		if err == nil {
			text = doc.Text()
		}
	}
	return strings.Join(strings.Fields(text), " ")
}

// TruncateSummary bounds a cleaned summary to maxLen runes, appending an
// ellipsis when content was cut.
func TruncateSummary(value string, maxLen int) string {
	runes := []rune(value)
	if len(runes) < maxLen {
		return value
	}
	return string(runes[:maxLen]) + "..."
}
