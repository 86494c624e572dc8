package usecase

import (
	"context"
	"errors"

	"NewsTagger/internal/domain"
)

var errStub = errors.New("stub failure")

// fakeArticles implements ports.ArticleRepository with overridable behavior.
type fakeArticles struct {
	existing  map[string]bool
	inserted  []domain.Article
	analyses  map[string]float64
	titles    map[string]string
	ids       []string
	untagged  []domain.Article
	byTags    func(tags []string, partial bool, filter domain.SearchFilter) ([]domain.Article, error)
	byScore   func(filter domain.SearchFilter) ([]domain.Article, error)
	insertErr error
	applyErr  error
}

func newFakeArticles() *fakeArticles {
	return &fakeArticles{
		existing: make(map[string]bool),
		analyses: make(map[string]float64),
		titles:   make(map[string]string),
	}
}

func (f *fakeArticles) ExistingURLs(_ context.Context, urls []string) ([]string, error) {
	var found []string
	for _, url := range urls {
		if f.existing[url] {
			found = append(found, url)
		}
	}
	return found, nil
}

func (f *fakeArticles) Insert(_ context.Context, article domain.Article) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, article)
	f.existing[article.URL] = true
	return nil
}

func (f *fakeArticles) ApplyAnalysis(_ context.Context, articleID string, importance float64, _ string) error {
	if f.applyErr != nil {
		return f.applyErr
	}
	f.analyses[articleID] = importance
	return nil
}

func (f *fakeArticles) UpdateTitle(_ context.Context, articleID, title string) error {
	f.titles[articleID] = title
	return nil
}

func (f *fakeArticles) CountAll(_ context.Context) (int, error) {
	return len(f.ids), nil
}

func (f *fakeArticles) ListIDs(_ context.Context) ([]string, error) {
	return f.ids, nil
}

func (f *fakeArticles) ListUntagged(_ context.Context) ([]domain.Article, error) {
	return f.untagged, nil
}

func (f *fakeArticles) SearchByTags(_ context.Context, tags []string, partial bool, filter domain.SearchFilter) ([]domain.Article, error) {
	if f.byTags == nil {
		return nil, nil
	}
	return f.byTags(tags, partial, filter)
}

func (f *fakeArticles) SearchByImportance(_ context.Context, filter domain.SearchFilter) ([]domain.Article, error) {
	if f.byScore == nil {
		return nil, nil
	}
	return f.byScore(filter)
}

// fakeTags implements ports.TagRepository.
type fakeTags struct {
	rows        []domain.ArticleTag
	assignments []domain.TagAssignment
	names       map[string][]string
	insertErr   error
}

func (f *fakeTags) Insert(_ context.Context, tag domain.ArticleTag) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.rows = append(f.rows, tag)
	return nil
}

func (f *fakeTags) AssignmentsForArticles(_ context.Context, _ []string) ([]domain.TagAssignment, error) {
	return f.assignments, nil
}

func (f *fakeTags) NamesForArticles(_ context.Context, _ []string) (map[string][]string, error) {
	if f.names == nil {
		return map[string][]string{}, nil
	}
	return f.names, nil
}

// fakeCatalog implements ports.CatalogRepository.
type fakeCatalog struct {
	tags    []domain.CatalogTag
	listErr error
}

func (f *fakeCatalog) ListAll(_ context.Context) ([]domain.CatalogTag, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.tags, nil
}

func (f *fakeCatalog) FindByName(_ context.Context, name string) (*domain.CatalogTag, error) {
	for _, tag := range f.tags {
		if tag.Name == name {
			entry := tag
			return &entry, nil
		}
	}
	return nil, nil
}

// fakeGenerator implements ports.Generator with a canned response or error.
type fakeGenerator struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

// fakeFetcher implements ports.FeedFetcher keyed by feed URL.
type fakeFetcher struct {
	items map[string][]domain.FeedItem
	errs  map[string]error
}

func (f *fakeFetcher) Fetch(_ context.Context, feedURL string) ([]domain.FeedItem, error) {
	if err := f.errs[feedURL]; err != nil {
		return nil, err
	}
	return f.items[feedURL], nil
}
