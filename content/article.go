// Package content loads article source files and indexes them for the
// listing and detail pages.
package content

import "time"

// DateLayout is the canonical calendar date format used in front matter,
// feeds and sitemaps.
const DateLayout = "2006-01-02"

// SiteCardID names the site-wide Open Graph card at /og/site.png. No article
// may take it as its id.
const SiteCardID = "site"

// Article is one blog post parsed from a content file.
type Article struct {
	ID            string
	Title         string
	PublishedDate time.Time
	Summary       string
	Tags          []string
	Image         string
	Body          string
	SourcePath    string
}

// ArticleSummary is the subset of an Article shown on listing pages.
type ArticleSummary struct {
	ID            string
	Title         string
	PublishedDate time.Time
	Summary       string
	Tags          []string
}

// ToSummary returns the listing view of a.
func (a Article) ToSummary() ArticleSummary {
	return ArticleSummary{
		ID:            a.ID,
		Title:         a.Title,
		PublishedDate: a.PublishedDate,
		Summary:       a.Summary,
		Tags:          a.Tags,
	}
}

// Link returns the site-relative path of the article page.
func (a Article) Link() string {
	return "/blog/" + a.ID
}

// Link returns the site-relative path of the article page.
func (s ArticleSummary) Link() string {
	return "/blog/" + s.ID
}

// Date returns the published date formatted with DateLayout.
func (a Article) Date() string {
	return a.PublishedDate.Format(DateLayout)
}

// HasTag reports whether the article carries tag (case-insensitive).
func (a Article) HasTag(tag string) bool {
	tag = normalizeTag(tag)
	for _, t := range a.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
