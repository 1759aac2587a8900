// Package views holds the default page components. Each component is an
// html/template page wrapped as a templ.Component, so callers can replace
// any of them with generated templ code.
package views

import (
	"embed"
	"html/template"
	"time"

	"github.com/a-h/templ"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"documentTitle": DocumentTitle,
	"formatDate":    FormatDate,
	"isActive":      IsActive,
	"navClass":      NavClass,
	"tagClass":      TagClass,
	"year":          func() int { return time.Now().Year() },
}

var (
	homeTemplate    = page("home.html")
	blogTemplate    = page("blog.html")
	articleTemplate = page("article.html")
	statusTemplate  = page("status.html")
)

// page parses the shared layout together with one page file and returns the
// layout entry point.
func page(name string) *template.Template {
	t := template.Must(template.New(name).Funcs(funcs).ParseFS(templateFS,
		"templates/layout.html",
		"templates/partials.html",
		"templates/"+name,
	))
	return t.Lookup("layout")
}

// Home renders the landing page with the greeting and latest articles.
func Home(p HomePage) templ.Component {
	return templ.FromGoHTML(homeTemplate, p)
}

// Blog renders the article listing, optionally filtered by tag.
func Blog(p BlogPage) templ.Component {
	return templ.FromGoHTML(blogTemplate, p)
}

// Article renders a single article with its related articles.
func Article(p ArticlePage) templ.Component {
	return templ.FromGoHTML(articleTemplate, p)
}

// NotFound renders the 404 page. Code and Message default when unset.
func NotFound(p StatusPage) templ.Component {
	if p.Code == 0 {
		p.Code = 404
	}
	if p.Message == "" {
		p.Message = "This page could not be found."
	}
	return templ.FromGoHTML(statusTemplate, p)
}

// ServerError renders the 500 page.
func ServerError(p StatusPage) templ.Component {
	if p.Code == 0 {
		p.Code = 500
	}
	if p.Message == "" {
		p.Message = "Something went wrong."
	}
	return templ.FromGoHTML(statusTemplate, p)
}
