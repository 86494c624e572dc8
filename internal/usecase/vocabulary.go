package usecase

import (
	"context"
	"fmt"
	"sort"

	"NewsTagger/internal/batch"
	"NewsTagger/internal/domain"
	"NewsTagger/internal/ports"
)

const (
	highConfidenceFloor   = 0.7
	mediumConfidenceFloor = 0.5
	highFrequencyFloor    = 2
	mediumFrequencyFloor  = 1
)

// Vocabulary partitions observed tag names into quality tiers. The tiers are
// mutually exclusive: a name that qualifies as high quality never appears in
// the medium list.
type Vocabulary struct {
	High   []string
	Medium []string
}

// Contains reports whether the name is in either tier.
func (v Vocabulary) Contains(name string) bool {
	for _, tag := range v.High {
		if tag == name {
			return true
		}
	}
	for _, tag := range v.Medium {
		if tag == name {
			return true
		}
	}
	return false
}

// VocabularyManagerDeps wires the stores backing the vocabulary scan.
type VocabularyManagerDeps struct {
	Articles  ports.ArticleRepository
	Tags      ports.TagRepository
	BatchSize int
}

// VocabularyManager computes quality tiers from aggregate tag statistics.
// Recomputed per request; no cache.
type VocabularyManager struct {
	articles  ports.ArticleRepository
	tags      ports.TagRepository
	batchSize int
}

// NewVocabularyManager constructs the vocabulary component.
func NewVocabularyManager(deps VocabularyManagerDeps) *VocabularyManager {
	if deps.BatchSize <= 0 {
		deps.BatchSize = batch.DefaultChunkSize
	}
	return &VocabularyManager{
		articles:  deps.Articles,
		tags:      deps.Tags,
		batchSize: deps.BatchSize,
	}
}

// Build scans every tag assignment and classifies names:
// high quality when some assignment has confidence >= 0.7 and the name was
// used at that confidence at least twice; medium quality when some
// assignment sits in [0.5, 0.7) at least once.
func (m *VocabularyManager) Build(ctx context.Context) (Vocabulary, error) {
	ids, err := m.articles.ListIDs(ctx)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("list article ids: %w", err)
	}

	assignments, err := batch.InChunks(ids, m.batchSize, func(chunk []string) ([]domain.TagAssignment, error) {
		return m.tags.AssignmentsForArticles(ctx, chunk)
	})
	if err != nil {
		return Vocabulary{}, fmt.Errorf("load assignments: %w", err)
	}

	highCounts := make(map[string]int)
	mediumCounts := make(map[string]int)
	for _, a := range assignments {
		switch {
		case a.Confidence >= highConfidenceFloor:
			highCounts[a.Name]++
		case a.Confidence >= mediumConfidenceFloor:
			mediumCounts[a.Name]++
		}
	}

	var vocab Vocabulary
	for name, count := range highCounts {
		if count >= highFrequencyFloor {
			vocab.High = append(vocab.High, name)
		}
	}

	high := make(map[string]bool, len(vocab.High))
	for _, name := range vocab.High {
		high[name] = true
	}

	for name, count := range mediumCounts {
		if count >= mediumFrequencyFloor && !high[name] {
			vocab.Medium = append(vocab.Medium, name)
		}
	}

	sort.Strings(vocab.High)
	sort.Strings(vocab.Medium)

	return vocab, nil
}
