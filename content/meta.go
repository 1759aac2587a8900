package content

import (
	"net/url"
	"path"
	"strings"
)

// PageMeta carries per-page title, description and canonical URL into the
// page head, along with the OpenGraph fields derived from them.
type PageMeta struct {
	Title         string
	Description   string
	CanonicalURL  string
	OGType        string // "website" or "article"
	Image         string
	PublishedTime string
}

// ArticleMeta derives the detail page metadata for a. baseURL is the site's
// absolute URL.
func ArticleMeta(a Article, baseURL string) PageMeta {
	description := a.Summary
	if description == "" {
		description = BodyExcerpt(a.Body, DefaultSummaryLength)
	}
	return PageMeta{
		Title:         a.Title,
		Description:   description,
		CanonicalURL:  BuildURL(baseURL, "blog", a.ID),
		OGType:        "article",
		Image:         ImageURL(a, baseURL),
		PublishedTime: a.Date(),
	}
}

// ImageURL resolves the OpenGraph image of a to an absolute URL, falling
// back to the generated card at /og/{id}.png.
func ImageURL(a Article, baseURL string) string {
	switch {
	case a.Image == "":
		return BuildURL(baseURL, "og", a.ID+".png")
	case strings.HasPrefix(a.Image, "http://"), strings.HasPrefix(a.Image, "https://"):
		return a.Image
	default:
		return BuildURL(baseURL, a.Image)
	}
}

// BuildURL joins path segments onto a base URL.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join("/", u.Path, path.Join(pathSegments...))
	if len(pathSegments) == 0 {
		u.Path = strings.TrimSuffix(u.Path, "/")
	}
	return u.String()
}
