package views

import (
	"html/template"

	"github.com/eringen/folio/content"
)

// Site holds site-wide settings from the [site] section of folio.toml.
// Every page carries it so nothing is hardcoded in templates.
type Site struct {
	Name          string
	URL           string
	Description   string
	Author        string
	TitleTemplate string // e.g. "%s | Jane Doe"
	Locale        string // og:locale, e.g. "en_US"
	Lang          string // <html lang>
	Intro         []string
	Nav           []NavLink
}

// NavLink is one entry in the top navigation.
type NavLink struct {
	Href  string
	Label string
}

// Page is embedded in every page model.
type Page struct {
	Site   Site
	Meta   content.PageMeta
	JSONLD template.JS
	Path   string // request path, used to mark the active nav link
}

type HomePage struct {
	Page
	Greeting string
	Articles []content.ArticleSummary
}

type BlogPage struct {
	Page
	Articles []content.ArticleSummary
	Tag      string
	Tags     []string
}

type ArticlePage struct {
	Page
	Article content.Article
	Body    template.HTML
	Related []content.ArticleSummary
}

// StatusPage renders 404 and 500 responses.
type StatusPage struct {
	Page
	Code    int
	Message string
}
