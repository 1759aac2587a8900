package views

import (
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/eringen/folio/content"
)

// Greeting returns a salutation for the hour of t.
func Greeting(t time.Time) string {
	switch h := t.Hour(); {
	case h < 11:
		return "Good morning"
	case h < 18:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

// ClassNames joins the non-empty class names with single spaces.
func ClassNames(classes ...string) string {
	var out []string
	for _, c := range classes {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return strings.Join(out, " ")
}

// DocumentTitle applies the site's title template to title. An empty title
// yields the site name.
func DocumentTitle(site Site, title string) string {
	if title == "" {
		return site.Name
	}
	if site.TitleTemplate == "" || !strings.Contains(site.TitleTemplate, "%s") {
		return title
	}
	return fmt.Sprintf(site.TitleTemplate, title)
}

// FormatDate renders t as "January 2, 2006". The zero time renders empty.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("January 2, 2006")
}

// IsActive reports whether the nav link href covers path.
func IsActive(path, href string) bool {
	if href == "/" {
		return path == "/"
	}
	return path == href || strings.HasPrefix(path, href+"/")
}

// NavClass returns CSS classes for a navigation link.
func NavClass(active bool) string {
	return ClassNames(
		"transition-all hover:text-neutral-800 dark:hover:text-neutral-200 flex align-middle relative py-1 px-2 m-1",
		activeClass(active, "font-semibold"),
	)
}

// TagClass returns CSS classes for a tag pill, with active variant.
func TagClass(active bool) string {
	return ClassNames(
		"inline-flex items-center rounded border px-2 py-1 text-xs font-semibold uppercase tracking-wide",
		activeClass(active, "tag-active"),
	)
}

func activeClass(active bool, class string) string {
	if active {
		return class
	}
	return ""
}

// RelatedArticles returns up to limit articles that share at least one tag
// with current, in the order given.
func RelatedArticles(current content.Article, all []content.ArticleSummary, limit int) []content.ArticleSummary {
	if len(current.Tags) == 0 {
		return nil
	}
	var related []content.ArticleSummary
	for _, s := range all {
		if s.ID == current.ID {
			continue
		}
		for _, t := range s.Tags {
			if current.HasTag(t) {
				related = append(related, s)
				break
			}
		}
		if limit > 0 && len(related) == limit {
			break
		}
	}
	return related
}

// WebsiteJSONLD produces a Schema.org WebSite JSON-LD block for site.
func WebsiteJSONLD(site Site) template.JS {
	data := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     site.Name,
		"url":      content.BuildURL(site.URL),
	}
	if site.Description != "" {
		data["description"] = site.Description
	}
	if site.Author != "" {
		data["author"] = person(site.Author)
	}
	return marshalJS(data)
}

// BlogPostingJSONLD produces a Schema.org BlogPosting JSON-LD block for a.
func BlogPostingJSONLD(site Site, a content.Article, meta content.PageMeta) template.JS {
	data := map[string]any{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      a.Title,
		"description":   meta.Description,
		"datePublished": a.Date(),
		"url":           meta.CanonicalURL,
		"image":         meta.Image,
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  site.Name,
		},
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   meta.CanonicalURL,
		},
	}
	if site.Author != "" {
		data["author"] = person(site.Author)
	}
	if len(a.Tags) > 0 {
		data["keywords"] = strings.Join(a.Tags, ", ")
	}
	return marshalJS(data)
}

func person(name string) map[string]string {
	return map[string]string{"@type": "Person", "name": name}
}

// marshalJS encodes v for a <script type="application/ld+json"> block.
// json.Marshal escapes <, > and & so the result cannot close the script.
func marshalJS(v any) template.JS {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return template.JS(b)
}
