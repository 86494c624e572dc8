package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTagCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want TagCategory
	}{
		{"company", CategoryCompany},
		{"Company", CategoryCompany},
		{"organization", CategoryCompany},
		{"  tech  ", CategoryTechnology},
		{"announcement type", CategoryAnnouncement},
		{"announcement-type", CategoryAnnouncement},
		{"news_type", CategoryAnnouncement},
		{"people", CategoryPerson},
		{"priority", CategoryImportance},
		{"", CategoryTopic},
		{"totally made up", CategoryTopic},
		{"12345", CategoryTopic},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NormalizeTagCategory(tt.raw))
		})
	}
}

func TestCategoriesIncludesDefaultBucket(t *testing.T) {
	t.Parallel()

	assert.Contains(t, Categories(), CategoryTopic)
	assert.Len(t, Categories(), 9)
}
