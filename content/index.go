package content

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Index answers listing and detail queries over a loaded article set.
// It is immutable after construction and safe for concurrent readers.
type Index struct {
	articles []Article
	byID     map[string]int
	tags     []string
}

// NewIndex sorts a copy of articles by published date, newest first, with
// ties broken by id ascending.
func NewIndex(articles []Article) *Index {
	sorted := slices.Clone(articles)
	slices.SortStableFunc(sorted, compareArticles)

	byID := make(map[string]int, len(sorted))
	tagSet := make(map[string]struct{})
	for i, a := range sorted {
		if _, dup := byID[a.ID]; !dup {
			byID[a.ID] = i
		}
		for _, t := range a.Tags {
			tagSet[t] = struct{}{}
		}
	}
	tags := make([]string, 0, len(tagSet))
	for t := range tagSet {
		tags = append(tags, t)
	}
	sort.Strings(tags)

	return &Index{articles: sorted, byID: byID, tags: tags}
}

func compareArticles(a, b Article) int {
	if c := b.PublishedDate.Compare(a.PublishedDate); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}

// Len returns the number of indexed articles.
func (ix *Index) Len() int { return len(ix.articles) }

// List returns every article summary in listing order.
func (ix *Index) List() []ArticleSummary {
	out := make([]ArticleSummary, len(ix.articles))
	for i, a := range ix.articles {
		out[i] = a.ToSummary()
	}
	return out
}

// ListByTag returns summaries of articles tagged tag, in listing order.
// An empty tag returns the full listing.
func (ix *Index) ListByTag(tag string) []ArticleSummary {
	if strings.TrimSpace(tag) == "" {
		return ix.List()
	}
	out := []ArticleSummary{}
	for _, a := range ix.articles {
		if a.HasTag(tag) {
			out = append(out, a.ToSummary())
		}
	}
	return out
}

// Articles returns the full articles in listing order.
func (ix *Index) Articles() []Article {
	return slices.Clone(ix.articles)
}

// Get returns the article with the given id, or an error matching ErrNotFound.
func (ix *Index) Get(id string) (Article, error) {
	i, ok := ix.byID[id]
	if !ok {
		return Article{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return ix.articles[i], nil
}

// Tags returns the sorted set of tags across all articles.
func (ix *Index) Tags() []string {
	return slices.Clone(ix.tags)
}
