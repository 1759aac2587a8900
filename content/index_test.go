package content

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestIndexListNewestFirst(t *testing.T) {
	ix := NewIndex([]Article{
		{ID: "january", Title: "January", PublishedDate: day("2024-01-01")},
		{ID: "june", Title: "June", PublishedDate: day("2024-06-01")},
		{ID: "march", Title: "March", PublishedDate: day("2024-03-01")},
	})

	got := ix.List()
	require.Len(t, got, 3)
	assert.Equal(t, "june", got[0].ID)
	assert.Equal(t, "march", got[1].ID)
	assert.Equal(t, "january", got[2].ID)
}

func TestIndexTiesBrokenByID(t *testing.T) {
	ix := NewIndex([]Article{
		{ID: "zeta", PublishedDate: day("2024-02-02")},
		{ID: "alpha", PublishedDate: day("2024-02-02")},
		{ID: "older", PublishedDate: day("2024-01-01")},
		{ID: "mid", PublishedDate: day("2024-02-02")},
	})

	var order []string
	for _, s := range ix.List() {
		order = append(order, s.ID)
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta", "older"}, order)
}

func TestIndexDoesNotMutateInput(t *testing.T) {
	in := []Article{
		{ID: "b", PublishedDate: day("2024-01-01")},
		{ID: "a", PublishedDate: day("2024-02-01")},
	}
	NewIndex(in)
	assert.Equal(t, "b", in[0].ID)
}

func TestIndexGetAgreesWithList(t *testing.T) {
	ix := NewIndex([]Article{
		{ID: "first", Title: "First", PublishedDate: day("2024-01-01"), Summary: "one", Tags: []string{"go"}},
		{ID: "second", Title: "Second", PublishedDate: day("2024-02-01"), Summary: "two"},
	})

	for _, s := range ix.List() {
		a, err := ix.Get(s.ID)
		require.NoError(t, err)
		assert.Equal(t, s.ID, a.ID)
		if diff := cmp.Diff(s, a.ToSummary()); diff != "" {
			t.Errorf("listing and detail disagree for %s (-list +detail):\n%s", s.ID, diff)
		}
	}
}

func TestIndexGetNotFound(t *testing.T) {
	ix := NewIndex([]Article{{ID: "exists", PublishedDate: day("2024-01-01")}})

	_, err := ix.Get("nonexistent-slug")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIndexEmpty(t *testing.T) {
	ix := NewIndex(nil)
	assert.Equal(t, 0, ix.Len())
	assert.Empty(t, ix.List())
	assert.Empty(t, ix.Tags())
	_, err := ix.Get("anything")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIndexTags(t *testing.T) {
	ix := NewIndex([]Article{
		{ID: "a", PublishedDate: day("2024-01-01"), Tags: []string{"web", "go"}},
		{ID: "b", PublishedDate: day("2024-02-01"), Tags: []string{"go"}},
		{ID: "c", PublishedDate: day("2024-03-01")},
	})

	assert.Equal(t, []string{"go", "web"}, ix.Tags())

	var tagged []string
	for _, s := range ix.ListByTag(" GO ") {
		tagged = append(tagged, s.ID)
	}
	assert.Equal(t, []string{"b", "a"}, tagged)
	assert.Empty(t, ix.ListByTag("rust"))
	assert.Len(t, ix.ListByTag(""), 3)
}

func TestListIsIdempotentAcrossLoads(t *testing.T) {
	dir := t.TempDir()
	writeArticle(t, dir, "a.md", article("A", "2024-01-01", "alpha"))
	writeArticle(t, dir, "b.md", article("B", "2024-06-01", "beta"))
	writeArticle(t, dir, "c.md", article("C", "2024-06-01", "gamma"))
	writeArticle(t, dir, "bad.md", article("Bad", "not-a-date", "nope"))

	loader := NewDirLoader(dir, LoaderConfig{Logger: quietLogger()})
	list := func() []ArticleSummary {
		res, err := loader.Load(context.Background())
		require.NoError(t, err)
		return NewIndex(res.Articles).List()
	}

	first := list()
	second := list()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("listing changed between loads (-first +second):\n%s", diff)
	}
	require.Len(t, first, 3)
	assert.Equal(t, "b", first[0].ID)
	assert.Equal(t, "c", first[1].ID)
	assert.Equal(t, "a", first[2].ID)
}
