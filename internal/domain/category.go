package domain

import "strings"

// TagCategory is the fixed classification a tag belongs to. The analysis
// service is instructed to pick one of these; anything else is normalized
// into the CategoryTopic bucket.
type TagCategory string

const (
	CategoryCompany      TagCategory = "company"
	CategoryPerson       TagCategory = "person"
	CategoryTechnology   TagCategory = "technology"
	CategoryPlatform     TagCategory = "platform"
	CategoryGenre        TagCategory = "genre"
	CategoryAnnouncement TagCategory = "announcement_type"
	CategoryImportance   TagCategory = "importance"
	CategoryEvent        TagCategory = "event"

	// CategoryTopic is the default bucket for free-form category strings.
	CategoryTopic TagCategory = "topic"
)

// Categories lists every assignable category, default bucket included.
func Categories() []TagCategory {
	return []TagCategory{
		CategoryCompany,
		CategoryPerson,
		CategoryTechnology,
		CategoryPlatform,
		CategoryGenre,
		CategoryAnnouncement,
		CategoryImportance,
		CategoryEvent,
		CategoryTopic,
	}
}

var categoryAliases = map[string]TagCategory{
	"company":           CategoryCompany,
	"companies":         CategoryCompany,
	"organization":      CategoryCompany,
	"org":               CategoryCompany,
	"person":            CategoryPerson,
	"people":            CategoryPerson,
	"artist":            CategoryPerson,
	"technology":        CategoryTechnology,
	"tech":              CategoryTechnology,
	"platform":          CategoryPlatform,
	"service":           CategoryPlatform,
	"genre":             CategoryGenre,
	"announcement_type": CategoryAnnouncement,
	"announcement":      CategoryAnnouncement,
	"news_type":         CategoryAnnouncement,
	"importance":        CategoryImportance,
	"priority":          CategoryImportance,
	"event":             CategoryEvent,
	"events":            CategoryEvent,
	"topic":             CategoryTopic,
}

// NormalizeTagCategory maps a free-form category string onto the fixed enum.
// Total over all inputs: unknown, empty, and garbage values land in
// CategoryTopic.
func NormalizeTagCategory(raw string) TagCategory {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, "-", "_")
	if cat, ok := categoryAliases[key]; ok {
		return cat
	}
	return CategoryTopic
}
